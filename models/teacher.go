package models

import "time"

type Teacher struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TeacherCode string    `json:"teacher_code" gorm:"size:20;uniqueIndex;not null"`
	FirstName   string    `json:"first_name" gorm:"size:50;not null"`
	LastName    string    `json:"last_name" gorm:"size:50;not null"`
	Phone       string    `json:"phone" gorm:"size:15"`
	UserID      *uint     `json:"user_id,omitempty" gorm:"index"` // login account, if any
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
