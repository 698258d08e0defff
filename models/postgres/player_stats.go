package postgres

/*
 * 'PlayerStats' accumulates per-game counters for a player. Win rates are
 * never stored, they are derived in services/stats on every read
 */
type PlayerStats struct {
	// NOTE: composite primary key definition
	Username          string `gorm:"primaryKey;size:50;not null"`
	GameID            string `gorm:"primaryKey;size:50;not null"`
	MatchesPlayed     int    `gorm:"default:0"`
	MatchesWon        int    `gorm:"default:0"`
	TournamentsPlayed int    `gorm:"default:0"`
	TournamentsWon    int    `gorm:"default:0"`

	// Relationships
	Profile Profile `gorm:"foreignKey:Username"`
	Game    Game    `gorm:"foreignKey:GameID"`
}
