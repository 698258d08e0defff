package controllers

import (
	models "Scrimhub/models/postgres"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// teamMembership fetches the caller's membership row, nil when not a member
func teamMembership(db *gorm.DB, teamID string, username string) *models.TeamMember {
	var member models.TeamMember
	if err := db.Where("team_id = ? AND username = ?", teamID, username).
		First(&member).Error; err != nil {
		return nil
	}
	return &member
}

// @Summary Create a team
// @Description Creates a team; the creator becomes its owner
// @Tags teams
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param name formData string true "Team name"
// @Param tag formData string false "Team tag"
// @Param game_id formData string false "Game id"
// @Success 201 {object} object{team_id=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/teams [post]
// @Security ApiKeyAuth
func CreateTeam(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		name := strings.TrimSpace(c.PostForm("name"))
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Team name is required"})
			return
		}

		team := models.Team{
			Name:   name,
			Tag:    c.PostForm("tag"),
			GameID: c.PostForm("game_id"),
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&team).Error; err != nil {
				return err
			}
			return tx.Create(&models.TeamMember{
				TeamID:   team.ID,
				Username: user.ProfileUsername,
				Role:     models.RoleOwner,
			}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating team"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"team_id": team.ID})
	}
}

// @Summary Get a team and its roster
// @Tags teams
// @Produce json
// @Param team_id path string true "Team id"
// @Success 200 {object} object{team_id=string,name=string,tag=string,members=array}
// @Failure 404 {object} object{error=string}
// @Router /teams/{team_id} [get]
func GetTeam(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID := c.Param("team_id")

		var team models.Team
		if err := db.Preload("Members").Where("id = ?", teamID).First(&team).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		members := make([]gin.H, len(team.Members))
		for i, m := range team.Members {
			members[i] = gin.H{
				"username":  m.Username,
				"role":      m.Role,
				"joined_at": m.JoinedAt,
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"team_id": team.ID,
			"name":    team.Name,
			"tag":     team.Tag,
			"game_id": team.GameID,
			"members": members,
		})
	}
}

// @Summary List the authenticated user's teams
// @Tags teams
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{team_id=string,name=string,role=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/teams [get]
// @Security ApiKeyAuth
func ListMyTeams(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		var memberships []models.TeamMember
		if err := db.Preload("Team").Where("username = ?", user.ProfileUsername).
			Find(&memberships).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching teams"})
			return
		}

		teams := make([]gin.H, len(memberships))
		for i, m := range memberships {
			teams[i] = gin.H{
				"team_id": m.TeamID,
				"name":    m.Team.Name,
				"tag":     m.Team.Tag,
				"role":    m.Role,
			}
		}
		c.JSON(http.StatusOK, teams)
	}
}

// @Summary Add a member to a team
// @Description Only owners and captains can manage the roster
// @Tags teams
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param team_id path string true "Team id"
// @Param username formData string true "User to add"
// @Param role formData string false "Role (captain or member)"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /auth/teams/{team_id}/members [post]
// @Security ApiKeyAuth
func AddTeamMember(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		teamID := c.Param("team_id")

		caller := teamMembership(db, teamID, user.ProfileUsername)
		if caller == nil || !caller.CanActForTeam() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the team owner or captain can manage the roster"})
			return
		}

		username := c.PostForm("username")
		if username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
			return
		}

		var profile models.Profile
		if err := db.Where("username = ?", username).First(&profile).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
			return
		}

		role := models.TeamRole(c.DefaultPostForm("role", string(models.RoleMember)))
		if role != models.RoleCaptain && role != models.RoleMember {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}

		member := models.TeamMember{TeamID: teamID, Username: username, Role: role}
		if err := db.Create(&member).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding member"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Member added successfully"})
	}
}

// @Summary Remove a member from a team
// @Tags teams
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param team_id path string true "Team id"
// @Param username path string true "User to remove"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/teams/{team_id}/members/{username} [delete]
// @Security ApiKeyAuth
func RemoveTeamMember(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		teamID := c.Param("team_id")
		username := c.Param("username")

		caller := teamMembership(db, teamID, user.ProfileUsername)
		// Members may always remove themselves
		if username != user.ProfileUsername {
			if caller == nil || !caller.CanActForTeam() {
				c.JSON(http.StatusForbidden, gin.H{"error": "Only the team owner or captain can manage the roster"})
				return
			}
		}

		result := db.Where("team_id = ? AND username = ?", teamID, username).
			Delete(&models.TeamMember{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing member"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
	}
}
