package models

import "time"

// FriendLink is a directed friend-request row. Status false means the
// request is pending; true means the recipient accepted it. A confirmed
// link is symmetric for query purposes, but the row keeps its direction
// so we know who initiated. Declining deletes the row outright, so a
// declined pair can request again later.
type FriendLink struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"not null;uniqueIndex:idx_friend_links_pair" json:"sender_id"`
	RecipientID uint      `gorm:"not null;uniqueIndex:idx_friend_links_pair" json:"recipient_id"`
	Status      bool      `gorm:"not null;default:false" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Sender    User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

// TableName specifies the table name for GORM
func (FriendLink) TableName() string {
	return "friend_links"
}

// Confirmed reports whether the link represents an accepted friendship.
func (f *FriendLink) Confirmed() bool {
	return f.Status
}

// OtherParty returns the user on the opposite end of the link from userID.
func (f *FriendLink) OtherParty(userID uint) User {
	if f.SenderID == userID {
		return f.Recipient
	}
	return f.Sender
}
