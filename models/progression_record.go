package models

import "time"

const (
	ProgressionPromoted = "PROMOTED"
	ProgressionRetained = "RETAINED"
)

// ProgressionRecord is an append-only audit entry: one row per student per
// successful progression run. No handler updates or deletes these.
type ProgressionRecord struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	BatchID   string `json:"batch_id" gorm:"size:36;index;not null"`
	StudentID uint   `json:"student_id" gorm:"not null;index"`

	// Snapshot of where the student was at the moment of processing. All
	// nullable: a student may never have been placed before.
	FromAcademicYearID *uint `json:"from_academic_year_id"`
	FromGradeLevelID   *uint `json:"from_grade_level_id"`
	FromClassRoomID    *uint `json:"from_class_room_id"`

	ToAcademicYearID uint `json:"to_academic_year_id" gorm:"not null"`
	ToGradeLevelID   uint `json:"to_grade_level_id" gorm:"not null"`
	ToClassRoomID    uint `json:"to_class_room_id" gorm:"not null"`

	ProgressionType string    `json:"progression_type" gorm:"size:10;not null"` // PROMOTED | RETAINED
	Reason          string    `json:"reason" gorm:"size:255"`
	EffectiveAt     time.Time `json:"effective_at" gorm:"not null"`
	OperatorID      uint      `json:"operator_id" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
}
