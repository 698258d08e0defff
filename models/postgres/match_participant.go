package postgres

import (
	"time"
)

type ParticipantResult string

const (
	ResultWin  ParticipantResult = "win"
	ResultLoss ParticipantResult = "loss"
)

/*
 * 'MatchParticipant' binds a Team to one side of a Match. The team reference
 * is immutable once created; 'Result' is filled when the match is resolved
 */
type MatchParticipant struct {
	// NOTE: composite primary key definition
	MatchID  string            `gorm:"primaryKey;size:36;not null"`
	TeamID   string            `gorm:"primaryKey;size:36;not null;index"`
	Result   ParticipantResult `gorm:"size:10"`
	JoinedAt time.Time         `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Match Match `gorm:"foreignKey:MatchID"`
	Team  Team  `gorm:"foreignKey:TeamID"`
}
