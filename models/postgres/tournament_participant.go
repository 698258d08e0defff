package postgres

import (
	"time"
)

/*
 * 'TournamentParticipant' registers a Team in a Tournament
 */
type TournamentParticipant struct {
	// NOTE: composite primary key definition
	TournamentID string    `gorm:"primaryKey;size:36;not null"`
	TeamID       string    `gorm:"primaryKey;size:36;not null;index"`
	RegisteredAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Tournament Tournament `gorm:"foreignKey:TournamentID"`
	Team       Team       `gorm:"foreignKey:TeamID"`
}
