package match

import (
	"errors"
	"fmt"

	models "Scrimhub/models/postgres"

	"gorm.io/gorm"
)

var ErrNotAParticipant = errors.New("team is not a participant of this match")

/*
 * Result reporting: one transaction writes the MatchResult row, marks both
 * participants, bumps every roster member's PlayerStats counters and flips
 * the match to completed with a system message.
 */
func (l *Lifecycle) ReportResult(m *models.Match, winnerTeamID, loserTeamID string, winnerScore, loserScore int, reportedBy string) error {
	var winnerName string

	if !participantTeam(m, winnerTeamID) || !participantTeam(m, loserTeamID) {
		return ErrNotAParticipant
	}

	err := l.DB.Transaction(func(tx *gorm.DB) error {
		result := models.MatchResult{
			MatchID:      m.ID,
			WinnerTeamID: winnerTeamID,
			LoserTeamID:  loserTeamID,
			WinnerScore:  winnerScore,
			LoserScore:   loserScore,
			ReportedBy:   reportedBy,
		}
		if err := tx.Create(&result).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.MatchParticipant{}).
			Where("match_id = ? AND team_id = ?", m.ID, winnerTeamID).
			Update("result", models.ResultWin).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.MatchParticipant{}).
			Where("match_id = ? AND team_id = ?", m.ID, loserTeamID).
			Update("result", models.ResultLoss).Error; err != nil {
			return err
		}

		if err := bumpTeamStats(tx, winnerTeamID, m.GameID, true); err != nil {
			return err
		}
		if err := bumpTeamStats(tx, loserTeamID, m.GameID, false); err != nil {
			return err
		}

		var winner models.Team
		if err := tx.Where("id = ?", winnerTeamID).First(&winner).Error; err == nil {
			winnerName = winner.Name
		}

		return l.Transition(tx, m, models.MatchCompleted,
			fmt.Sprintf("Match completed. %s takes the win %d-%d.", winnerName, winnerScore, loserScore))
	})
	return err
}

func participantTeam(m *models.Match, teamID string) bool {
	for _, p := range m.Participants {
		if p.TeamID == teamID {
			return true
		}
	}
	return false
}

// bumpTeamStats increments matches_played (and matches_won for the winning
// side) for every member of the team's roster, creating rows as needed
func bumpTeamStats(tx *gorm.DB, teamID string, gameID string, won bool) error {
	var members []models.TeamMember
	if err := tx.Where("team_id = ?", teamID).Find(&members).Error; err != nil {
		return err
	}

	for _, member := range members {
		stats := models.PlayerStats{Username: member.Username, GameID: gameID}
		if err := tx.Where("username = ? AND game_id = ?", member.Username, gameID).
			FirstOrCreate(&stats).Error; err != nil {
			return err
		}

		stats.MatchesPlayed++
		if won {
			stats.MatchesWon++
		}
		if err := tx.Save(&stats).Error; err != nil {
			return err
		}
	}
	return nil
}
