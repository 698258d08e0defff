package controllers

import (
	models "Scrimhub/models/postgres"
	"Scrimhub/services/stats"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Get a player's aggregated statistics
// @Description Per-game rows plus an overall summary; win rates are derived, never stored
// @Tags stats
// @Produce json
// @Param username path string true "Player username"
// @Success 200 {object} object{username=string,overall=object,per_game=array}
// @Failure 404 {object} object{error=string}
// @Router /stats/players/{username} [get]
func GetPlayerStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		var profile models.Profile
		if err := db.Where("username = ?", username).First(&profile).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
			return
		}

		var rows []models.PlayerStats
		if err := db.Where("username = ?", username).Find(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching stats"})
			return
		}

		perGame := make([]gin.H, len(rows))
		for i, row := range rows {
			perGame[i] = gin.H{
				"game_id": row.GameID,
				"summary": stats.Aggregate([]models.PlayerStats{row}),
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"username": username,
			"overall":  stats.Aggregate(rows),
			"per_game": perGame,
		})
	}
}

// @Summary Get a team's aggregated statistics
// @Description Sums the stat rows of every roster member
// @Tags stats
// @Produce json
// @Param team_id path string true "Team id"
// @Success 200 {object} object{team_id=string,summary=object}
// @Failure 404 {object} object{error=string}
// @Router /stats/teams/{team_id} [get]
func GetTeamStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID := c.Param("team_id")

		var team models.Team
		if err := db.Preload("Members").Where("id = ?", teamID).First(&team).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
			return
		}

		usernames := make([]string, len(team.Members))
		for i, m := range team.Members {
			usernames[i] = m.Username
		}

		var rows []models.PlayerStats
		if len(usernames) > 0 {
			if err := db.Where("username IN ?", usernames).Find(&rows).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching stats"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"team_id": team.ID,
			"name":    team.Name,
			"summary": stats.Aggregate(rows),
		})
	}
}
