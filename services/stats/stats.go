package stats

import (
	models "Scrimhub/models/postgres"
)

/*
 * Pure read-side reductions over PlayerStats rows. Nothing here is cached or
 * persisted: controllers fetch rows and reduce per request.
 */

// Summary is the aggregate exposed on profile and team endpoints
type Summary struct {
	MatchesPlayed     int     `json:"matches_played"`
	MatchesWon        int     `json:"matches_won"`
	TournamentsPlayed int     `json:"tournaments_played"`
	TournamentsWon    int     `json:"tournaments_won"`
	MatchWinRate      float64 `json:"match_win_rate"`
	TournamentWinRate float64 `json:"tournament_win_rate"`
}

// WinRate guards the zero denominator: no games means rate 0, never NaN
func WinRate(won, played int) float64 {
	if played == 0 {
		return 0
	}
	return float64(won) / float64(played) * 100
}

// Aggregate sums a set of stat rows (e.g. one player across games, or a
// whole roster) and derives the win rates
func Aggregate(rows []models.PlayerStats) Summary {
	var s Summary
	for _, row := range rows {
		s.MatchesPlayed += row.MatchesPlayed
		s.MatchesWon += row.MatchesWon
		s.TournamentsPlayed += row.TournamentsPlayed
		s.TournamentsWon += row.TournamentsWon
	}
	s.MatchWinRate = WinRate(s.MatchesWon, s.MatchesPlayed)
	s.TournamentWinRate = WinRate(s.TournamentsWon, s.TournamentsPlayed)
	return s
}
