package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MatchStatus string

const (
	MatchScheduled  MatchStatus = "scheduled"
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
	MatchCancelled  MatchStatus = "cancelled"
	MatchDisputed   MatchStatus = "disputed"
)

/*
 * 'Match' defines the structure of a scheduled match between two teams.
 * It contains references to Game, Profile (creator), MatchParticipant,
 * MatchSettings, MatchInvitation and MatchChatMessage.
 *
 * Status transitions go through services/match.Lifecycle, never through raw
 * updates. A match holds at most 2 participants.
 */
type Match struct {
	ID               string      `gorm:"primaryKey;size:36;not null"`
	GameID           string      `gorm:"size:50;index:idx_matches_game"`
	CreatorUsername  string      `gorm:"size:50;index:idx_matches_creator"`
	Status           MatchStatus `gorm:"size:20;default:'scheduled';index:idx_matches_status"`
	MatchType        string      `gorm:"size:30"` // e.g. "team_vs_team"
	MatchFormat      string      `gorm:"size:30"` // e.g. "bo3"
	ScheduledStart   time.Time
	ScheduledEnd     *time.Time
	SetupCompletedAt *time.Time
	CreatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Game         Game                `gorm:"foreignKey:GameID"`
	Creator      Profile             `gorm:"foreignKey:CreatorUsername"`
	Participants []*MatchParticipant `gorm:"foreignKey:MatchID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Settings     *MatchSettings      `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
	Invitations  []*MatchInvitation  `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
	ChatMessages []*MatchChatMessage `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
}

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// IsScheduler reports whether a username created the match
func (m *Match) IsScheduler(username string) bool {
	return m.CreatorUsername == username
}
