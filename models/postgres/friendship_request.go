package postgres

import (
	"time"
)

/*
 * 'FriendshipRequest' represents a pending friend request between two users.
 * Accepting one deletes the row and creates a Friendship
 */
type FriendshipRequest struct {
	Sender    string    `gorm:"primaryKey;size:50;not null"`
	Recipient string    `gorm:"primaryKey;size:50;not null"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	SenderProfile    Profile `gorm:"foreignKey:Sender;constraint:OnDelete:CASCADE"`
	RecipientProfile Profile `gorm:"foreignKey:Recipient;constraint:OnDelete:CASCADE"`
}
