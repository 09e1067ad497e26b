package models

import (
	"time"

	"gorm.io/gorm"
)

type AcademicYear struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:20;uniqueIndex;not null"` // e.g. "2025/2026"
	StartDate time.Time `json:"start_date" gorm:"type:date;not null"`
	EndDate   time.Time `json:"end_date" gorm:"type:date;not null"`
	IsActive  bool      `json:"is_active" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NextAcademicYear returns the earliest year whose start date is strictly after
// the given year's end date. There may be zero or one meaningful successor; when
// several exist the earliest start wins.
func NextAcademicYear(db *gorm.DB, after *AcademicYear) (*AcademicYear, error) {
	var next AcademicYear
	err := db.
		Where("start_date > ?", after.EndDate).
		Order("start_date ASC").
		First(&next).Error
	if err != nil {
		return nil, err
	}
	return &next, nil
}
