package models

import "time"

// ChatMessage is store-and-poll only; there is no realtime delivery channel.
type ChatMessage struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	PublicID    string     `json:"public_id" gorm:"size:36;uniqueIndex;not null"`
	SenderID    uint       `json:"sender_id" gorm:"not null;index"`
	RecipientID uint       `json:"recipient_id" gorm:"not null;index"`
	Body        string     `json:"body" gorm:"type:text;not null"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
