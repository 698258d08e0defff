package controllers

import (
	models "Scrimhub/models/postgres"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Get a user's public profile
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} object{username=string,icon=integer,country=string,bio=string}
// @Failure 404 {object} object{error=string}
// @Router /users/{username} [get]
func GetUserPublicInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		var profile models.Profile
		if err := db.Where("username = ?", username).First(&profile).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"username": profile.Username,
			"icon":     profile.UserIcon,
			"country":  profile.Country,
			"bio":      profile.Bio,
		})
	}
}

// @Summary Get the authenticated user's private info
// @Tags users
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{email=string,username=string,full_name=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/me [get]
// @Security ApiKeyAuth
func GetUserPrivateInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		var profile models.Profile
		db.Where("username = ?", user.ProfileUsername).First(&profile)

		c.JSON(http.StatusOK, gin.H{
			"email":        user.Email,
			"username":     user.ProfileUsername,
			"full_name":    user.FullName,
			"member_since": user.MemberSince,
			"icon":         profile.UserIcon,
			"country":      profile.Country,
			"bio":          profile.Bio,
		})
	}
}

// @Summary Update the authenticated user's profile
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param full_name formData string false "Full name"
// @Param country formData string false "Country code"
// @Param bio formData string false "Bio"
// @Success 200 {object} object{message=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/update [patch]
// @Security ApiKeyAuth
func UpdateUserInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		if fullName, set := c.GetPostForm("full_name"); set {
			if err := db.Model(&models.User{}).Where("email = ?", user.Email).
				Update("full_name", fullName).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating user"})
				return
			}
		}

		updates := map[string]interface{}{}
		if country, set := c.GetPostForm("country"); set {
			updates["country"] = country
		}
		if bio, set := c.GetPostForm("bio"); set {
			updates["bio"] = bio
		}
		if len(updates) > 0 {
			if err := db.Model(&models.Profile{}).Where("username = ?", user.ProfileUsername).
				Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
	}
}
