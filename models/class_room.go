package models

import (
	"time"

	"gorm.io/gorm"
)

type ClassRoom struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Name           string `json:"name" gorm:"size:40;not null"`   // e.g. "A"
	Section        string `json:"section" gorm:"size:10;not null"` // e.g. "1"
	GradeLevelID   uint   `json:"grade_level_id" gorm:"not null;index"`
	AcademicYearID uint   `json:"academic_year_id" gorm:"not null;index"`

	// Capacity is deliberately a pointer: NULL means the room was created
	// without a seat limit, which is a configuration fault. It is never read
	// as "unbounded".
	Capacity *int `json:"capacity"`

	IsActive bool `json:"is_active" gorm:"default:true"`

	GradeLevel   *GradeLevel   `json:"grade_level,omitempty" gorm:"foreignKey:GradeLevelID"`
	AcademicYear *AcademicYear `json:"academic_year,omitempty" gorm:"foreignKey:AcademicYearID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Occupancy counts students currently assigned to this room.
func (r *ClassRoom) Occupancy(db *gorm.DB) (int64, error) {
	var n int64
	err := db.Model(&Student{}).Where("class_room_id = ?", r.ID).Count(&n).Error
	return n, err
}
