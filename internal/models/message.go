package models

import "time"

// Message is a single directed text message between confirmed friends.
// Rows are immutable after creation except for Read, which flips to true
// exactly once when the recipient lists their unread messages.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"not null;index" json:"sender_id"`
	RecipientID uint      `gorm:"not null;index:idx_messages_unread" json:"recipient_id"`
	Text        string    `gorm:"column:message_text;type:text;not null" json:"text"`
	Read        bool      `gorm:"column:status_check;not null;default:false;index:idx_messages_unread" json:"read"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Sender    User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

// TableName specifies the table name for GORM
func (Message) TableName() string {
	return "messages"
}
