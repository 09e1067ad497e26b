package models

import "time"

// GradeLevel is reference data; progression reads it but never writes it.
type GradeLevel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:40;not null"`
	Level     int       `json:"level" gorm:"uniqueIndex;not null"` // ordering, 1 = lowest
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
