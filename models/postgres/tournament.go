package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TournamentStatus string

const (
	TournamentOpen      TournamentStatus = "open"
	TournamentRunning   TournamentStatus = "running"
	TournamentFinished  TournamentStatus = "finished"
	TournamentCancelled TournamentStatus = "cancelled"
)

/*
 * 'Tournament' represents a team tournament for a given game. It contains
 * references to Game and TournamentParticipant
 */
type Tournament struct {
	ID        string           `gorm:"primaryKey;size:36;not null"`
	Name      string           `gorm:"size:100;not null"`
	GameID    string           `gorm:"size:50;index:idx_tournaments_game"`
	Status    TournamentStatus `gorm:"size:20;default:'open'"`
	StartDate time.Time
	MaxTeams  int       `gorm:"default:16"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Game         Game                     `gorm:"foreignKey:GameID"`
	Participants []*TournamentParticipant `gorm:"foreignKey:TournamentID;constraint:OnDelete:CASCADE"`
}

func (t *Tournament) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
