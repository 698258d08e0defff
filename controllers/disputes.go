package controllers

import (
	models "Scrimhub/models/postgres"
	matchsvc "Scrimhub/services/match"
	socketio_types "Scrimhub/services/socket_io/types"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary File a dispute against a completed match
// @Description Participant-only; stores the dispute and flips the match to disputed in one transaction
// @Tags disputes
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param match_id path string true "Match id"
// @Param reason formData string true "Why the result is contested"
// @Success 201 {object} object{dispute_id=string,match_status=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/matches/{match_id}/disputes [post]
// @Security ApiKeyAuth
func CreateDispute(db *gorm.DB, sio *socketio_types.SocketServer) gin.HandlerFunc {
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

		participant, teamID := isParticipant(db, m, user.ProfileUsername)
		if !participant {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only match participants can file a dispute"})
			return
		}

		reason := strings.TrimSpace(c.PostForm("reason"))
		if reason == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Dispute reason cannot be empty"})
			return
		}

		if m.Status != models.MatchCompleted && m.Status != models.MatchDisputed {
			c.JSON(http.StatusConflict, gin.H{"error": "Only completed matches can be disputed"})
			return
		}

		dispute := models.Dispute{
			MatchID:          m.ID,
			TeamID:           teamID,
			ReporterUsername: user.ProfileUsername,
			Status:           models.DisputeOpen,
			Reason:           reason,
		}

		lifecycle := matchsvc.NewLifecycle(db)
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&dispute).Error; err != nil {
				return err
			}
			// A second dispute on an already disputed match is stored but the
			// status stays put
			if m.Status == models.MatchDisputed {
				return nil
			}
			return lifecycle.Transition(tx, m, models.MatchDisputed,
				fmt.Sprintf("The match result has been disputed by %s.", user.ProfileUsername))
		})
		if errors.Is(err, matchsvc.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			log.Printf("Error filing dispute for match %s: %v", m.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error filing dispute"})
			return
		}

		sio.BroadcastToMatch(m.ID, "match_status", gin.H{
			"match_id": m.ID,
			"status":   m.Status,
		})
		c.JSON(http.StatusCreated, gin.H{
			"dispute_id":   dispute.ID,
			"match_status": m.Status,
		})
	}
}

// @Summary List disputes for a match
// @Tags disputes
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param match_id path string true "Match id"
// @Success 200 {array} map[string]interface{}
// @Failure 500 {object} object{error=string}
// @Router /auth/matches/{match_id}/disputes [get]
// @Security ApiKeyAuth
func ListDisputes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c, db); !ok {
			return
		}

		var disputes []models.Dispute
		err := db.Where("match_id = ?", c.Param("match_id")).
			Order("created_at ASC").Find(&disputes).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching disputes"})
			return
		}

		out := make([]gin.H, len(disputes))
		for i, d := range disputes {
			out[i] = gin.H{
				"dispute_id": d.ID,
				"team_id":    d.TeamID,
				"reporter":   d.ReporterUsername,
				"status":     d.Status,
				"reason":     d.Reason,
				"resolution": d.Resolution,
				"created_at": d.CreatedAt,
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary Resolve or reject a dispute
// @Description Restricted to moderators (users flagged is_moderator)
// @Tags disputes
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param dispute_id path string true "Dispute id"
// @Param status formData string true "resolved or rejected"
// @Param resolution formData string true "Moderator notes"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /auth/disputes/{dispute_id}/resolve [post]
// @Security ApiKeyAuth
func ResolveDispute(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		if !user.IsModerator {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only moderators can resolve disputes"})
			return
		}

		status := models.DisputeStatus(c.PostForm("status"))
		if status != models.DisputeResolved && status != models.DisputeRejected {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be resolved or rejected"})
			return
		}

		var dispute models.Dispute
		if err := db.Where("id = ?", c.Param("dispute_id")).First(&dispute).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dispute not found"})
			return
		}
		if dispute.Status != models.DisputeOpen {
			c.JSON(http.StatusConflict, gin.H{"error": "Dispute is already closed"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&dispute).Updates(map[string]interface{}{
				"status":     status,
				"resolution": c.PostForm("resolution"),
			}).Error; err != nil {
				return err
			}
			return matchsvc.AppendSystemMessage(tx, dispute.MatchID,
				fmt.Sprintf("Dispute has been %s by a moderator.", status))
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error resolving dispute"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Dispute " + string(status)})
	}
}
