package models

import "time"

type Attendance struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_attendance_student_date"`
	Date      string    `json:"date" gorm:"type:date;not null;uniqueIndex:idx_attendance_student_date"` // YYYY-MM-DD
	Status    string    `json:"status" gorm:"size:10;not null"` // present | absent | late | leave
	Note      string    `json:"note" gorm:"size:255"`
	MarkedBy  uint      `json:"marked_by" gorm:"not null"` // user id of the marker
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
