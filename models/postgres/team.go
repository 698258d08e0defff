package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'Team' represents an esports team competing in matches and tournaments.
 * It contains references to Game and TeamMember
 */
type Team struct {
	ID        string    `gorm:"primaryKey;size:36;not null"`
	Name      string    `gorm:"size:100;not null;index:idx_teams_name"`
	Tag       string    `gorm:"size:10"`
	GameID    string    `gorm:"size:50;index:idx_teams_game"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Game    Game          `gorm:"foreignKey:GameID"`
	Members []*TeamMember `gorm:"foreignKey:TeamID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
