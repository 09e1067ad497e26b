package progression

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AlexSaifo/school-management-system-sub002/models"
)

// lockForUpdate adds a row lock on dialects that support it. SQLite (used in
// tests) has no row locks; its single writer serializes transactions anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// resolveAvailable finds a destination classroom for the grade/year pair:
// active rooms ordered by id ascending, first one with occupancy < capacity.
// First-fit is the entire policy; no balancing is attempted. The stable order
// makes repeated runs over unchanged data pick the same room.
func resolveAvailable(tx *gorm.DB, gradeLevelID, academicYearID uint) (*models.ClassRoom, error) {
	var rooms []models.ClassRoom
	err := lockForUpdate(tx).
		Where("grade_level_id = ? AND academic_year_id = ? AND is_active = ?", gradeLevelID, academicYearID, true).
		Order("id ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}

	for i := range rooms {
		room := &rooms[i]
		if room.Capacity == nil {
			// A room without a seat limit is misconfigured, not unbounded.
			return nil, ErrCapacityNotSet
		}
		occ, err := room.Occupancy(tx)
		if err != nil {
			return nil, err
		}
		if occ < int64(*room.Capacity) {
			return room, nil
		}
	}
	return nil, ErrNoClassRoomAvailable
}
