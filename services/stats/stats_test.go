package stats

import (
	"testing"

	models "Scrimhub/models/postgres"

	"github.com/stretchr/testify/assert"
)

func TestWinRateZeroGamesNeverDivides(t *testing.T) {
	assert.Equal(t, 0.0, WinRate(0, 0))
	assert.Equal(t, 0.0, WinRate(5, 0), "won > 0 with played == 0 still guards")
	assert.Equal(t, 50.0, WinRate(1, 2))
	assert.Equal(t, 100.0, WinRate(3, 3))
}

func TestAggregateSumsAcrossRows(t *testing.T) {
	rows := []models.PlayerStats{
		{Username: "a", GameID: "cod", MatchesPlayed: 10, MatchesWon: 7, TournamentsPlayed: 2, TournamentsWon: 1},
		{Username: "a", GameID: "cs", MatchesPlayed: 4, MatchesWon: 0},
		{Username: "b", GameID: "cod", MatchesPlayed: 6, MatchesWon: 3, TournamentsPlayed: 1},
	}

	s := Aggregate(rows)
	assert.Equal(t, 20, s.MatchesPlayed)
	assert.Equal(t, 10, s.MatchesWon)
	assert.Equal(t, 3, s.TournamentsPlayed)
	assert.Equal(t, 1, s.TournamentsWon)
	assert.Equal(t, 50.0, s.MatchWinRate)
	assert.InDelta(t, 33.33, s.TournamentWinRate, 0.01)
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)
	assert.Zero(t, s.MatchesPlayed)
	assert.Equal(t, 0.0, s.MatchWinRate)
	assert.Equal(t, 0.0, s.TournamentWinRate)
}
