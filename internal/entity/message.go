package entity

import "time"

// Message belongs to exactly one pairing. IsRead is the only field that
// ever changes after creation, flipped by the receiving side.
type Message struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	PairingID uint      `gorm:"column:pairing_id;not null;index" json:"pairing_id"`
	SenderID  uint      `gorm:"column:sender_id;not null" json:"sender_id"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	IsRead    bool      `gorm:"column:is_read;not null;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;not null" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
