package controllers

import (
	models "Scrimhub/models/postgres"
	"Scrimhub/services/stats"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errTournamentFull = errors.New("tournament is full")

// @Summary Create a tournament
// @Tags tournaments
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param name formData string true "Tournament name"
// @Param game_id formData string false "Game id"
// @Param start_date formData string false "RFC3339 start date"
// @Param max_teams formData int false "Team capacity (default 16)"
// @Success 201 {object} object{tournament_id=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/tournaments [post]
// @Security ApiKeyAuth
func CreateTournament(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c, db); !ok {
			return
		}

		name := c.PostForm("name")
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tournament name is required"})
			return
		}

		startDate := time.Now()
		if raw := c.PostForm("start_date"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be RFC3339"})
				return
			}
			startDate = parsed
		}

		tournament := models.Tournament{
			Name:      name,
			GameID:    c.PostForm("game_id"),
			Status:    models.TournamentOpen,
			StartDate: startDate,
			MaxTeams:  atoiDefault(c.PostForm("max_teams"), 16),
		}
		if err := db.Create(&tournament).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating tournament"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"tournament_id": tournament.ID})
	}
}

// @Summary List tournaments
// @Tags tournaments
// @Produce json
// @Param status query string false "Filter by status"
// @Param game_id query string false "Filter by game"
// @Success 200 {array} map[string]interface{}
// @Failure 500 {object} object{error=string}
// @Router /tournaments [get]
func ListTournaments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Tournament{}).Preload("Participants")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if gameID := c.Query("game_id"); gameID != "" {
			query = query.Where("game_id = ?", gameID)
		}

		var tournaments []models.Tournament
		if err := query.Order("start_date ASC").Find(&tournaments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching tournaments"})
			return
		}

		out := make([]gin.H, len(tournaments))
		for i, t := range tournaments {
			out[i] = gin.H{
				"tournament_id": t.ID,
				"name":          t.Name,
				"game_id":       t.GameID,
				"status":        t.Status,
				"start_date":    t.StartDate,
				"max_teams":     t.MaxTeams,
				"registered":    len(t.Participants),
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary Get a tournament and its registered teams
// @Tags tournaments
// @Produce json
// @Param tournament_id path string true "Tournament id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} object{error=string}
// @Router /tournaments/{tournament_id} [get]
func GetTournament(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tournament models.Tournament
		err := db.Preload("Participants").Preload("Participants.Team").
			Where("id = ?", c.Param("tournament_id")).First(&tournament).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
			return
		}

		teams := make([]gin.H, len(tournament.Participants))
		for i, p := range tournament.Participants {
			teams[i] = gin.H{
				"team_id":       p.TeamID,
				"name":          p.Team.Name,
				"registered_at": p.RegisteredAt,
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"tournament_id": tournament.ID,
			"name":          tournament.Name,
			"game_id":       tournament.GameID,
			"status":        tournament.Status,
			"start_date":    tournament.StartDate,
			"max_teams":     tournament.MaxTeams,
			"teams":         teams,
		})
	}
}

// @Summary Get tournament standings
// @Description Registered teams ordered by their rosters' aggregated match wins
// @Tags tournaments
// @Produce json
// @Param tournament_id path string true "Tournament id"
// @Success 200 {array} map[string]interface{}
// @Failure 404 {object} object{error=string}
// @Router /tournaments/{tournament_id}/standings [get]
func GetTournamentStandings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tournament models.Tournament
		err := db.Preload("Participants").Preload("Participants.Team").
			Preload("Participants.Team.Members").
			Where("id = ?", c.Param("tournament_id")).First(&tournament).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
			return
		}

		standings := make([]gin.H, 0, len(tournament.Participants))
		for _, p := range tournament.Participants {
			usernames := make([]string, len(p.Team.Members))
			for i, m := range p.Team.Members {
				usernames[i] = m.Username
			}

			var rows []models.PlayerStats
			if len(usernames) > 0 {
				if err := db.Where("username IN ? AND game_id = ?", usernames, tournament.GameID).
					Find(&rows).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching standings"})
					return
				}
			}

			standings = append(standings, gin.H{
				"team_id": p.TeamID,
				"name":    p.Team.Name,
				"summary": stats.Aggregate(rows),
			})
		}

		sort.SliceStable(standings, func(i, j int) bool {
			return standings[i]["summary"].(stats.Summary).MatchesWon >
				standings[j]["summary"].(stats.Summary).MatchesWon
		})

		c.JSON(http.StatusOK, gin.H{
			"tournament_id": tournament.ID,
			"standings":     standings,
		})
	}
}

// @Summary Register a team in a tournament
// @Description Caller must be owner or captain; capacity checked inside the transaction
// @Tags tournaments
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param tournament_id path string true "Tournament id"
// @Param team_id formData string true "Team to register"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/tournaments/{tournament_id}/register [post]
// @Security ApiKeyAuth
func RegisterTeam(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		teamID := c.PostForm("team_id")

		member := teamMembership(db, teamID, user.ProfileUsername)
		if member == nil || !member.CanActForTeam() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the team owner or captain can register the team"})
			return
		}

		var tournament models.Tournament
		if err := db.Where("id = ?", c.Param("tournament_id")).First(&tournament).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tournament not found"})
			return
		}
		if tournament.Status != models.TournamentOpen {
			c.JSON(http.StatusConflict, gin.H{"error": "Tournament is not open for registration"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.TournamentParticipant{}).
				Where("tournament_id = ?", tournament.ID).Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(tournament.MaxTeams) {
				return errTournamentFull
			}
			return tx.Create(&models.TournamentParticipant{
				TournamentID: tournament.ID,
				TeamID:       teamID,
			}).Error
		})
		if err == errTournamentFull {
			c.JSON(http.StatusConflict, gin.H{"error": "Tournament is full"})
			return
		}
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Team is already registered"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Team registered successfully"})
	}
}
