package models

import "time"

type Subject struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Code         string    `json:"code" gorm:"size:20;uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"size:80;not null"`
	GradeLevelID uint      `json:"grade_level_id" gorm:"not null;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
