package postgres

import (
	"gorm.io/datatypes"
)

/*
 * 'MatchSettings' holds the per-match configuration, 1:1 with Match.
 * SelectedMaps is written once by the veto sync and holds the final ordered
 * pool (3 entries after a completed veto)
 */
type MatchSettings struct {
	MatchID      string         `gorm:"primaryKey;size:36;not null"`
	SelectedMaps datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Settings     datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Rules        string         `gorm:"type:text"`

	Match Match `gorm:"foreignKey:MatchID"`
}
