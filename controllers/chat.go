package controllers

import (
	models "Scrimhub/models/postgres"
	redis_services "Scrimhub/services/redis"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Get the chat history of a match
// @Description Messages in chronological order; system messages carry no sender
// @Tags chat
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param match_id path string true "Match id"
// @Param limit query int false "Max messages to return (default 100)"
// @Success 200 {array} map[string]interface{}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/matches/{match_id}/chat [get]
// @Security ApiKeyAuth
func GetMatchChat(db *gorm.DB) gin.HandlerFunc {
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
		if !participant && !m.IsScheduler(user.ProfileUsername) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only match participants can read the chat"})
			return
		}

		limit := atoiDefault(c.Query("limit"), 100)

		var messages []models.MatchChatMessage
		if err := db.Preload("Sender").Where("match_id = ?", m.ID).
			Order("created_at ASC").Limit(limit).Find(&messages).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching chat history"})
			return
		}

		out := make([]gin.H, len(messages))
		for i, msg := range messages {
			entry := gin.H{
				"message_id": msg.ID,
				"body":       msg.Body,
				"is_system":  msg.IsSystem,
				"created_at": msg.CreatedAt,
			}
			if msg.SenderUsername != nil {
				entry["sender"] = *msg.SenderUsername
				if msg.Sender != nil {
					entry["sender_icon"] = msg.Sender.UserIcon
				}
			}
			out[i] = entry
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary Get the current veto session of a match
// @Description Reads the live session from Redis; 404 once the session expired or was synced
// @Tags veto
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param match_id path string true "Match id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} object{error=string}
// @Router /auth/matches/{match_id}/veto [get]
// @Security ApiKeyAuth
func GetVetoState(db *gorm.DB, redisClient *redis_services.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c, db); !ok {
			return
		}

		session, err := redisClient.GetVetoSession(c.Param("match_id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active veto session for this match"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"match_id":  session.MatchID,
			"veto_type": session.Type,
			"status":    session.Status,
			"next_team": session.NextTeamID,
			"remaining": session.Remaining,
			"bans":      session.Bans,
		})
	}
}
