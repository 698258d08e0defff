package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'MatchChatMessage' is an append-only chat entry scoped to a Match. System
 * messages (lifecycle events, invitations, veto results) carry IsSystem=true
 * and no sender
 */
type MatchChatMessage struct {
	ID             string    `gorm:"primaryKey;size:36;not null"`
	MatchID        string    `gorm:"size:36;not null;index:idx_match_chat_match"`
	SenderUsername *string   `gorm:"size:50"` // nil for system messages
	Body           string    `gorm:"type:text;not null"`
	IsSystem       bool      `gorm:"default:false"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP;index:idx_match_chat_created"`

	// Relationships
	Match  Match    `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
	Sender *Profile `gorm:"foreignKey:SenderUsername"`
}

func (m *MatchChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
