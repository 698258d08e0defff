package postgres

import (
	"time"
)

/*
 * 'MatchResult' records the outcome of a finished match, written by the
 * report-result flow together with the completed transition
 */
type MatchResult struct {
	MatchID       string    `gorm:"primaryKey;size:36;not null"`
	WinnerTeamID  string    `gorm:"size:36;not null"`
	LoserTeamID   string    `gorm:"size:36;not null"`
	WinnerScore   int       `gorm:"default:0"`
	LoserScore    int       `gorm:"default:0"`
	ReportedBy    string    `gorm:"size:50;not null"`
	ReportedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Match      Match   `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
	WinnerTeam Team    `gorm:"foreignKey:WinnerTeamID"`
	LoserTeam  Team    `gorm:"foreignKey:LoserTeamID"`
	Reporter   Profile `gorm:"foreignKey:ReportedBy"`
}
