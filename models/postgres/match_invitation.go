package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// How long an invited team has to respond
const InvitationTTL = 24 * time.Hour

/*
 * 'MatchInvitation' represents an invitation for a Team to join a Match. It
 * contains references to Match, Team and Profile (inviter).
 *
 * Expired invitations are never deleted or reclaimed by any job: expiry is a
 * read-time check (see IsExpired) that only disables accept/decline
 */
type MatchInvitation struct {
	ID                 string           `gorm:"primaryKey;size:36;not null"`
	MatchID            string           `gorm:"size:36;not null;index:idx_match_invitations_match"`
	TeamID             string           `gorm:"size:36;not null;index:idx_match_invitations_team"`
	InviterUsername    string           `gorm:"size:50;not null"`
	Status             InvitationStatus `gorm:"size:20;default:'pending'"`
	AcceptanceDeadline time.Time        `gorm:"not null"`
	CreatedAt          time.Time        `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Match   Match   `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
	Team    Team    `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	Inviter Profile `gorm:"foreignKey:InviterUsername"`
}

func (i *MatchInvitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.AcceptanceDeadline.IsZero() {
		i.AcceptanceDeadline = time.Now().Add(InvitationTTL)
	}
	return nil
}

// IsExpired reports whether the acceptance deadline has passed at 'now'
func (i *MatchInvitation) IsExpired(now time.Time) bool {
	return now.After(i.AcceptanceDeadline)
}
