package models

import "time"

// TimetableSlot places a subject + teacher in a classroom on a weekday.
// Times are "HH:MM" strings; string comparison orders them correctly.
type TimetableSlot struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ClassRoomID uint      `json:"class_room_id" gorm:"not null;index"`
	SubjectID   uint      `json:"subject_id" gorm:"not null"`
	TeacherID   uint      `json:"teacher_id" gorm:"not null;index"`
	Weekday     int       `json:"weekday" gorm:"not null"` // 1 = Monday ... 7 = Sunday
	StartTime   string    `json:"start_time" gorm:"size:5;not null"`
	EndTime     string    `json:"end_time" gorm:"size:5;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
