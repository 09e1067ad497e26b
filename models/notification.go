package models

import "time"

type Notification struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"not null;index"`
	Title     string     `json:"title" gorm:"size:120;not null"`
	Body      string     `json:"body" gorm:"type:text"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
