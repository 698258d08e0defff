package controllers

import (
	models "Scrimhub/models/postgres"
	matchsvc "Scrimhub/services/match"
	socketio_types "Scrimhub/services/socket_io/types"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Search teams to invite
// @Description Case-insensitive partial name match, excluding teams already participating or already invited (pending/accepted) in this match
// @Tags invitations
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param match_id path string true "Match id"
// @Param q query string true "Team name substring"
// @Success 200 {array} object{team_id=string,name=string,tag=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/matches/{match_id}/team_search [get]
// @Security ApiKeyAuth
func SearchInvitableTeams(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c, db); !ok {
			return
		}
		matchID := c.Param("match_id")
		q := strings.ToLower(c.Query("q"))

		participating := db.Model(&models.MatchParticipant{}).
			Select("team_id").Where("match_id = ?", matchID)
		invited := db.Model(&models.MatchInvitation{}).
			Select("team_id").Where("match_id = ? AND status IN ?", matchID,
			[]models.InvitationStatus{models.InvitationPending, models.InvitationAccepted})

		var teams []models.Team
		err := db.Where("LOWER(name) LIKE ?", "%"+q+"%").
			Where("id NOT IN (?)", participating).
			Where("id NOT IN (?)", invited).
			Limit(20).Find(&teams).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error searching teams"})
			return
		}

		out := make([]gin.H, len(teams))
		for i, t := range teams {
			out[i] = gin.H{"team_id": t.ID, "name": t.Name, "tag": t.Tag}
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary Invite a team to a match
// @Description Scheduler-only; the invitation expires 24 hours after creation
// @Tags invitations
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param match_id path string true "Match id"
// @Param team_id formData string true "Team to invite"
// @Success 201 {object} object{invitation_id=string,acceptance_deadline=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/matches/{match_id}/invitations [post]
// @Security ApiKeyAuth
func InviteTeam(db *gorm.DB, sio *socketio_types.SocketServer) gin.HandlerFunc {
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
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the scheduler can invite teams"})
			return
		}
		if m.Status != models.MatchScheduled {
			c.JSON(http.StatusConflict, gin.H{"error": "Teams can only be invited while the match is scheduled"})
			return
		}
		if len(m.Participants) >= matchsvc.MaxParticipants {
			c.JSON(http.StatusConflict, gin.H{"error": "Match already has two participants"})
			return
		}

		teamID := c.PostForm("team_id")
		var team models.Team
		if err := db.Where("id = ?", teamID).First(&team).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Team not found"})
			return
		}

		for _, p := range m.Participants {
			if p.TeamID == teamID {
				c.JSON(http.StatusConflict, gin.H{"error": "Team is already participating"})
				return
			}
		}

		var existing models.MatchInvitation
		result := db.Where("match_id = ? AND team_id = ? AND status IN ?", m.ID, teamID,
			[]models.InvitationStatus{models.InvitationPending, models.InvitationAccepted}).
			First(&existing)
		if result.RowsAffected > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Team is already invited"})
			return
		}

		invitation := models.MatchInvitation{
			MatchID:         m.ID,
			TeamID:          teamID,
			InviterUsername: user.ProfileUsername,
			Status:          models.InvitationPending,
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&invitation).Error; err != nil {
				return err
			}
			return matchsvc.AppendSystemMessage(tx, m.ID,
				fmt.Sprintf("%s has been invited to the match.", team.Name))
		})
		if err != nil {
			log.Printf("Error creating invitation: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating invitation"})
			return
		}

		sio.BroadcastToMatch(m.ID, "invitation_created", gin.H{
			"invitation_id": invitation.ID,
			"team_id":       teamID,
			"team_name":     team.Name,
		})
		c.JSON(http.StatusCreated, gin.H{
			"invitation_id":       invitation.ID,
			"acceptance_deadline": invitation.AcceptanceDeadline,
		})
	}
}

// @Summary List invitations for the authenticated user's teams
// @Description Includes a computed 'expired' flag; expired invitations are never deleted, only disabled
// @Tags invitations
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} map[string]interface{}
// @Failure 500 {object} object{error=string}
// @Router /auth/invitations [get]
// @Security ApiKeyAuth
func ListMyInvitations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		var memberships []models.TeamMember
		if err := db.Where("username = ?", user.ProfileUsername).Find(&memberships).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching teams"})
			return
		}
		teamIDs := make([]string, len(memberships))
		for i, m := range memberships {
			teamIDs[i] = m.TeamID
		}

		var invitations []models.MatchInvitation
		if len(teamIDs) > 0 {
			if err := db.Preload("Match").Preload("Team").
				Where("team_id IN ?", teamIDs).Find(&invitations).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching invitations"})
				return
			}
		}

		now := time.Now()
		out := make([]gin.H, len(invitations))
		for i, inv := range invitations {
			out[i] = gin.H{
				"invitation_id":       inv.ID,
				"match_id":            inv.MatchID,
				"team_id":             inv.TeamID,
				"team_name":           inv.Team.Name,
				"inviter":             inv.InviterUsername,
				"status":              inv.Status,
				"acceptance_deadline": inv.AcceptanceDeadline,
				"expired":             inv.IsExpired(now),
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

// invitationForAction loads a pending invitation and verifies that the
// caller may act for the invited team
func invitationForAction(c *gin.Context, db *gorm.DB, username string) (*models.MatchInvitation, bool) {
	var invitation models.MatchInvitation
	if err := db.Preload("Team").Where("id = ?", c.Param("invitation_id")).
		First(&invitation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
		return nil, false
	}

	member := teamMembership(db, invitation.TeamID, username)
	if member == nil || !member.CanActForTeam() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the team owner or captain can respond to invitations"})
		return nil, false
	}

	if invitation.Status != models.InvitationPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Invitation is no longer pending"})
		return nil, false
	}
	if invitation.IsExpired(time.Now()) {
		c.JSON(http.StatusConflict, gin.H{"error": "Invitation has expired"})
		return nil, false
	}
	return &invitation, true
}

// @Summary Accept a match invitation
// @Description One transaction: invitation accepted + participant created + system chat message
// @Tags invitations
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param invitation_id path string true "Invitation id"
// @Success 200 {object} object{message=string,match_id=string}
// @Failure 403 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/invitations/{invitation_id}/accept [post]
// @Security ApiKeyAuth
func AcceptInvitation(db *gorm.DB, sio *socketio_types.SocketServer) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		invitation, ok := invitationForAction(c, db, user.ProfileUsername)
		if !ok {
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			// Re-count inside the transaction so two accepts can't both slip in
			var count int64
			if err := tx.Model(&models.MatchParticipant{}).
				Where("match_id = ?", invitation.MatchID).Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(matchsvc.MaxParticipants) {
				return matchsvc.ErrMatchFull
			}

			if err := tx.Model(&models.MatchInvitation{}).Where("id = ?", invitation.ID).
				Update("status", models.InvitationAccepted).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.MatchParticipant{
				MatchID: invitation.MatchID,
				TeamID:  invitation.TeamID,
			}).Error; err != nil {
				return err
			}
			return matchsvc.AppendSystemMessage(tx, invitation.MatchID,
				fmt.Sprintf("%s has joined the match.", invitation.Team.Name))
		})
		if err == matchsvc.ErrMatchFull {
			c.JSON(http.StatusConflict, gin.H{"error": "Match already has two participants"})
			return
		}
		if err != nil {
			log.Printf("Error accepting invitation %s: %v", invitation.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error accepting invitation"})
			return
		}

		sio.BroadcastToMatch(invitation.MatchID, "participant_joined", gin.H{
			"match_id":  invitation.MatchID,
			"team_id":   invitation.TeamID,
			"team_name": invitation.Team.Name,
		})
		c.JSON(http.StatusOK, gin.H{"message": "Invitation accepted", "match_id": invitation.MatchID})
	}
}

// @Summary Decline a match invitation
// @Tags invitations
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param invitation_id path string true "Invitation id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/invitations/{invitation_id}/decline [post]
// @Security ApiKeyAuth
func DeclineInvitation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		invitation, ok := invitationForAction(c, db, user.ProfileUsername)
		if !ok {
			return
		}

		if err := db.Model(&models.MatchInvitation{}).Where("id = ?", invitation.ID).
			Update("status", models.InvitationDeclined).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error declining invitation"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Invitation declined"})
	}
}

// @Summary Cancel a pending invitation
// @Description Only the inviter can cancel; the row is deleted
// @Tags invitations
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param invitation_id path string true "Invitation id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/invitations/{invitation_id} [delete]
// @Security ApiKeyAuth
func CancelInvitation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		var invitation models.MatchInvitation
		if err := db.Where("id = ?", c.Param("invitation_id")).First(&invitation).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
			return
		}

		if invitation.InviterUsername != user.ProfileUsername {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the inviter can cancel the invitation"})
			return
		}
		if invitation.Status != models.InvitationPending {
			c.JSON(http.StatusConflict, gin.H{"error": "Only pending invitations can be cancelled"})
			return
		}

		if err := db.Delete(&invitation).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error cancelling invitation"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Invitation cancelled"})
	}
}
