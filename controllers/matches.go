package controllers

import (
	models "Scrimhub/models/postgres"
	matchsvc "Scrimhub/services/match"
	socketio_types "Scrimhub/services/socket_io/types"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// loadMatch fetches a match with everything the orchestrator needs
func loadMatch(db *gorm.DB, matchID string) (*models.Match, error) {
	var m models.Match
	err := db.Preload("Participants").Preload("Participants.Team").
		Preload("Settings").Where("id = ?", matchID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// isParticipant reports whether the user belongs to one of the match teams,
// returning that team's id
func isParticipant(db *gorm.DB, m *models.Match, username string) (bool, string) {
	for _, p := range m.Participants {
		if teamMembership(db, p.TeamID, username) != nil {
			return true, p.TeamID
		}
	}
	return false, ""
}

// @Summary Create a match
// @Description Creates a scheduled match and its empty settings row
// @Tags matches
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param game_id formData string true "Game id"
// @Param scheduled_start formData string true "RFC3339 start time"
// @Param match_type formData string false "Match type"
// @Param match_format formData string false "Match format (bo1, bo3...)"
// @Success 201 {object} object{match_id=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/matches [post]
// @Security ApiKeyAuth
func CreateMatch(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		gameID := c.PostForm("game_id")
		startRaw := c.PostForm("scheduled_start")
		if gameID == "" || startRaw == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "game_id and scheduled_start are required"})
			return
		}

		start, err := time.Parse(time.RFC3339, startRaw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "scheduled_start must be RFC3339"})
			return
		}

		var game models.Game
		if err := db.Where("id = ?", gameID).First(&game).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Game not found"})
			return
		}

		m := models.Match{
			GameID:          gameID,
			CreatorUsername: user.ProfileUsername,
			Status:          models.MatchScheduled,
			MatchType:       c.DefaultPostForm("match_type", "team_vs_team"),
			MatchFormat:     c.DefaultPostForm("match_format", "bo3"),
			ScheduledStart:  start,
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			return tx.Create(&models.MatchSettings{MatchID: m.ID}).Error
		})
		if err != nil {
			log.Printf("Error creating match: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating match"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"match_id": m.ID})
	}
}

// @Summary List matches
// @Description Lists matches, optionally filtered by status or game
// @Tags matches
// @Produce json
// @Param status query string false "Status filter"
// @Param game_id query string false "Game filter"
// @Success 200 {array} object{match_id=string,status=string}
// @Failure 500 {object} object{error=string}
// @Router /matches [get]
func ListMatches(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Match{}).Order("scheduled_start DESC").Limit(100)
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if gameID := c.Query("game_id"); gameID != "" {
			query = query.Where("game_id = ?", gameID)
		}

		var matches []models.Match
		if err := query.Find(&matches).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching matches"})
			return
		}

		out := make([]gin.H, len(matches))
		for i, m := range matches {
			out[i] = gin.H{
				"match_id":        m.ID,
				"game_id":         m.GameID,
				"status":          m.Status,
				"match_format":    m.MatchFormat,
				"scheduled_start": m.ScheduledStart,
				"creator":         m.CreatorUsername,
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary Get a match
// @Description Returns the match with participants, settings and the caller's role flags
// @Tags matches
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param match_id path string true "Match id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} object{error=string}
// @Router /auth/matches/{match_id} [get]
// @Security ApiKeyAuth
func GetMatch(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		m, err := loadMatch(db, c.Param("match_id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}

		participants := make([]gin.H, len(m.Participants))
		for i, p := range m.Participants {
			participants[i] = gin.H{
				"team_id":   p.TeamID,
				"team_name": p.Team.Name,
				"result":    p.Result,
				"joined_at": p.JoinedAt,
			}
		}

		participant, teamID := isParticipant(db, m, user.ProfileUsername)

		c.JSON(http.StatusOK, gin.H{
			"match_id":           m.ID,
			"game_id":            m.GameID,
			"status":             m.Status,
			"match_type":         m.MatchType,
			"match_format":       m.MatchFormat,
			"scheduled_start":    m.ScheduledStart,
			"setup_completed_at": m.SetupCompletedAt,
			"participants":       participants,
			"selected_maps":      matchsvc.SelectedMaps(m.Settings),
			"rules":              settingsRules(m.Settings),
			"ready":              matchsvc.IsReady(m),
			"is_scheduler":       m.IsScheduler(user.ProfileUsername),
			"is_participant":     participant,
			"participant_team":   teamID,
		})
	}
}

func settingsRules(s *models.MatchSettings) string {
	if s == nil {
		return ""
	}
	return s.Rules
}

// @Summary Mark match setup as complete
// @Description Scheduler-only; requires both participants and a finished veto
// @Tags matches
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param match_id path string true "Match id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/matches/{match_id}/complete_setup [post]
// @Security ApiKeyAuth
func CompleteMatchSetup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		m, err := loadMatch(db, c.Param("match_id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}

		if !m.IsScheduler(user.ProfileUsername) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the scheduler can complete setup"})
			return
		}
		if m.Status != models.MatchScheduled {
			c.JSON(http.StatusConflict, gin.H{"error": "Setup can only be completed while the match is scheduled"})
			return
		}
		if len(m.Participants) != matchsvc.MaxParticipants {
			c.JSON(http.StatusConflict, gin.H{"error": "Both teams must join before setup can complete"})
			return
		}
		if len(matchsvc.SelectedMaps(m.Settings)) == 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Maps must be selected before setup can complete"})
			return
		}

		now := time.Now()
		if err := db.Model(&models.Match{}).Where("id = ?", m.ID).
			Update("setup_completed_at", now).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error completing setup"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Match setup completed"})
	}
}

// @Summary Start a match
// @Description Moves a ready match to in_progress once the start time is reached
// @Tags matches
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param match_id path string true "Match id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/matches/{match_id}/start [post]
// @Security ApiKeyAuth
func StartMatch(db *gorm.DB, sio *socketio_types.SocketServer) gin.HandlerFunc {
	lifecycle := matchsvc.NewLifecycle(db)
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		m, err := loadMatch(db, c.Param("match_id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}

		participant, _ := isParticipant(db, m, user.ProfileUsername)
		if !m.IsScheduler(user.ProfileUsername) && !participant {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the scheduler or a participant can start the match"})
			return
		}

		if err := lifecycle.Start(m, time.Now()); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}

		sio.BroadcastToMatch(m.ID, "match_status", gin.H{"match_id": m.ID, "status": m.Status})
		c.JSON(http.StatusOK, gin.H{"message": "Match started", "status": m.Status})
	}
}

// @Summary Cancel a match
// @Description Scheduler-only; allowed while the match has not finished
// @Tags matches
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param match_id path string true "Match id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/matches/{match_id}/cancel [post]
// @Security ApiKeyAuth
func CancelMatch(db *gorm.DB, sio *socketio_types.SocketServer) gin.HandlerFunc {
	lifecycle := matchsvc.NewLifecycle(db)
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		m, err := loadMatch(db, c.Param("match_id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}

		if !m.IsScheduler(user.ProfileUsername) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the scheduler can cancel the match"})
			return
		}

		if err := lifecycle.Cancel(m); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}

		sio.BroadcastToMatch(m.ID, "match_status", gin.H{"match_id": m.ID, "status": m.Status})
		c.JSON(http.StatusOK, gin.H{"message": "Match cancelled"})
	}
}

// @Summary Report a match result
// @Description Writes the result, updates player stats and completes the match in one transaction
// @Tags matches
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param match_id path string true "Match id"
// @Param winner_team_id formData string true "Winning team"
// @Param winner_score formData int false "Winner score"
// @Param loser_score formData int false "Loser score"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/matches/{match_id}/result [post]
// @Security ApiKeyAuth
func ReportMatchResult(db *gorm.DB, sio *socketio_types.SocketServer) gin.HandlerFunc {
	lifecycle := matchsvc.NewLifecycle(db)
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		m, err := loadMatch(db, c.Param("match_id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}

		participant, _ := isParticipant(db, m, user.ProfileUsername)
		if !m.IsScheduler(user.ProfileUsername) && !participant {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the scheduler or a participant can report the result"})
			return
		}

		winnerTeamID := c.PostForm("winner_team_id")
		if winnerTeamID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "winner_team_id is required"})
			return
		}

		loserTeamID := ""
		for _, p := range m.Participants {
			if p.TeamID != winnerTeamID {
				loserTeamID = p.TeamID
			}
		}
		if loserTeamID == "" || len(m.Participants) != matchsvc.MaxParticipants {
			c.JSON(http.StatusBadRequest, gin.H{"error": "winner_team_id must be one of the two participants"})
			return
		}

		winnerScore := atoiDefault(c.PostForm("winner_score"), 1)
		loserScore := atoiDefault(c.PostForm("loser_score"), 0)

		err = lifecycle.ReportResult(m, winnerTeamID, loserTeamID, winnerScore, loserScore, user.ProfileUsername)
		if err != nil {
			if errors.Is(err, matchsvc.ErrInvalidTransition) || errors.Is(err, matchsvc.ErrNotAParticipant) {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			log.Printf("Error reporting result for match %s: %v", m.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reporting result"})
			return
		}

		sio.BroadcastToMatch(m.ID, "match_status", gin.H{"match_id": m.ID, "status": m.Status})
		c.JSON(http.StatusOK, gin.H{"message": "Result reported", "status": m.Status})
	}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
