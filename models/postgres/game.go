package postgres

import (
	"gorm.io/datatypes"
)

/*
 * 'Game' represents a supported esports title. Its default map pool seeds the
 * veto session when a match has no custom pool configured
 */
type Game struct {
	ID             string         `gorm:"primaryKey;size:50;not null"`
	Name           string         `gorm:"size:100;not null;uniqueIndex"`
	ShortCode      string         `gorm:"size:10"`
	DefaultMapPool datatypes.JSON `gorm:"type:jsonb;default:'[]'"` // ordered array of map names

	Teams   []Team  `gorm:"foreignKey:GameID"`
	Matches []Match `gorm:"foreignKey:GameID"`
}
