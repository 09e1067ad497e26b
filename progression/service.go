package progression

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlexSaifo/school-management-system-sub002/models"
)

// Request is one student's progression order within a batch.
type Request struct {
	StudentID        uint   `json:"student_id"`
	ToGradeLevelID   uint   `json:"to_grade_level_id"`
	ToAcademicYearID uint   `json:"to_academic_year_id"`
	ToClassRoomID    *uint  `json:"to_class_room_id,omitempty"`
	ProgressionType  string `json:"progression_type"` // PROMOTED | RETAINED
	Reason           string `json:"reason,omitempty"`
}

type ItemResult struct {
	StudentID       uint   `json:"student_id"`
	ProgressionID   uint   `json:"progression_id,omitempty"`
	ProgressionType string `json:"progression_type,omitempty"`
	Success         bool   `json:"success"`
	Error           string `json:"error,omitempty"`
}

type BatchResult struct {
	BatchID   string       `json:"batch_id"`
	Results   []ItemResult `json:"results"`
	Succeeded int          `json:"succeeded"`
	Total     int          `json:"total"`
	Message   string       `json:"message"`
}

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Run processes a batch of progression requests strictly in order, one
// transaction per student. A malformed batch is rejected as a whole with a
// *ValidationError before any student is touched; after that point a failing
// item is recorded in its own result and never aborts the rest.
func (s *Service) Run(ctx context.Context, items []Request, operatorID uint) (*BatchResult, error) {
	if err := validate(items); err != nil {
		return nil, err
	}

	batchID := uuid.NewString()
	results := make([]ItemResult, 0, len(items))
	succeeded := 0

	for _, item := range items {
		rec, err := s.ProcessOne(ctx, item, operatorID, batchID)
		if err != nil {
			results = append(results, ItemResult{
				StudentID: item.StudentID,
				Success:   false,
				Error:     err.Error(),
			})
			continue
		}
		succeeded++
		results = append(results, ItemResult{
			StudentID:       item.StudentID,
			ProgressionID:   rec.ID,
			ProgressionType: rec.ProgressionType,
			Success:         true,
		})
	}

	return &BatchResult{
		BatchID:   batchID,
		Results:   results,
		Succeeded: succeeded,
		Total:     len(items),
		Message:   fmt.Sprintf("Processed %d out of %d progressions", succeeded, len(items)),
	}, nil
}

// ProcessOne moves a single student as one atomic unit: load + snapshot,
// resolve destination, re-point the classroom reference, write the audit
// record. Any error rolls the whole item back.
func (s *Service) ProcessOne(ctx context.Context, req Request, operatorID uint, batchID string) (*models.ProgressionRecord, error) {
	var rec *models.ProgressionRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		rec, err = s.processOne(tx, req, operatorID, batchID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) processOne(tx *gorm.DB, req Request, operatorID uint, batchID string) (*models.ProgressionRecord, error) {
	var student models.Student
	if err := tx.First(&student, "id = ?", req.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	var current *models.ClassRoom
	var fromYearID, fromGradeID, fromRoomID *uint
	if student.ClassRoomID != nil {
		var cur models.ClassRoom
		if err := tx.First(&cur, "id = ?", *student.ClassRoomID).Error; err != nil {
			return nil, err
		}
		current = &cur
		fromRoomID = &cur.ID
		fromGradeID = &cur.GradeLevelID
		fromYearID = &cur.AcademicYearID
	}

	dest, err := s.resolveDestination(tx, req, current)
	if err != nil {
		return nil, err
	}

	if err := tx.Model(&models.Student{}).
		Where("id = ?", student.ID).
		Update("class_room_id", dest.ID).Error; err != nil {
		return nil, err
	}

	rec := models.ProgressionRecord{
		BatchID:            batchID,
		StudentID:          student.ID,
		FromAcademicYearID: fromYearID,
		FromGradeLevelID:   fromGradeID,
		FromClassRoomID:    fromRoomID,
		ToAcademicYearID:   dest.AcademicYearID,
		ToGradeLevelID:     dest.GradeLevelID,
		ToClassRoomID:      dest.ID,
		ProgressionType:    req.ProgressionType,
		Reason:             req.Reason,
		EffectiveAt:        s.now().UTC(),
		OperatorID:         operatorID,
	}
	if err := tx.Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Service) resolveDestination(tx *gorm.DB, req Request, current *models.ClassRoom) (*models.ClassRoom, error) {
	switch req.ProgressionType {
	case models.ProgressionPromoted:
		if req.ToClassRoomID != nil {
			return resolveExplicit(tx, req)
		}
		return resolveAvailable(tx, req.ToGradeLevelID, req.ToAcademicYearID)

	case models.ProgressionRetained:
		// Prefer the classroom with the same name+section in the target year:
		// the same physical group migrates together, so its own old occupancy
		// is not held against it.
		if current != nil {
			var same models.ClassRoom
			err := lockForUpdate(tx).
				Where("grade_level_id = ? AND academic_year_id = ? AND is_active = ? AND name = ? AND section = ?",
					req.ToGradeLevelID, req.ToAcademicYearID, true, current.Name, current.Section).
				Order("id ASC").
				First(&same).Error
			if err == nil {
				return &same, nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		return resolveAvailable(tx, req.ToGradeLevelID, req.ToAcademicYearID)
	}
	return nil, fmt.Errorf("unknown progression type %q", req.ProgressionType)
}

// resolveExplicit validates a caller-chosen classroom: it must belong to the
// requested grade and year, be active, and still have a free seat.
func resolveExplicit(tx *gorm.DB, req Request) (*models.ClassRoom, error) {
	var room models.ClassRoom
	if err := lockForUpdate(tx).First(&room, "id = ?", *req.ToClassRoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassRoomNotFound
		}
		return nil, err
	}
	if room.GradeLevelID != req.ToGradeLevelID || room.AcademicYearID != req.ToAcademicYearID {
		return nil, ErrClassRoomMismatch
	}
	if !room.IsActive {
		return nil, ErrClassRoomInactive
	}
	if room.Capacity == nil {
		return nil, ErrCapacityNotSet
	}
	occ, err := room.Occupancy(tx)
	if err != nil {
		return nil, err
	}
	if occ >= int64(*room.Capacity) {
		return nil, ErrClassRoomFull
	}
	return &room, nil
}

// validate rejects the whole batch on structural faults. The explicit
// to_class_room_id requirement for PROMOTED is kept here on purpose even
// though the processor can fall back to a search; operators must pick a room,
// and the fallback remains a second line of defense for internal callers.
func validate(items []Request) error {
	fields := map[string]string{}
	if len(items) == 0 {
		fields["items"] = "at least one progression item is required"
		return &ValidationError{Fields: fields}
	}
	for i, it := range items {
		key := func(f string) string { return fmt.Sprintf("items[%d].%s", i, f) }
		if it.StudentID == 0 {
			fields[key("student_id")] = "this field is required"
		}
		if it.ToGradeLevelID == 0 {
			fields[key("to_grade_level_id")] = "this field is required"
		}
		if it.ToAcademicYearID == 0 {
			fields[key("to_academic_year_id")] = "this field is required"
		}
		switch it.ProgressionType {
		case models.ProgressionPromoted:
			if it.ToClassRoomID == nil {
				fields[key("to_class_room_id")] = "required when progression_type is PROMOTED"
			}
		case models.ProgressionRetained:
		default:
			fields[key("progression_type")] = "must be PROMOTED or RETAINED"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
