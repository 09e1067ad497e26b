package models

import "time"

type Student struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	StudentCode string     `json:"student_code" gorm:"size:20;uniqueIndex;not null"`
	FirstName   string     `json:"first_name" gorm:"size:50;not null"`
	LastName    string     `json:"last_name" gorm:"size:50;not null"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Address     string     `json:"address" gorm:"size:255"`
	Phone       string     `json:"phone" gorm:"size:15"`
	Status      string     `json:"status" gorm:"size:20;not null;default:'active'"` // active | left | suspended

	// Current grade and year are derived through the classroom; a student with
	// no classroom (new intake, withdrawn) has a NULL reference.
	ClassRoomID *uint      `json:"class_room_id,omitempty" gorm:"index"`
	ClassRoom   *ClassRoom `json:"class_room,omitempty" gorm:"foreignKey:ClassRoomID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
