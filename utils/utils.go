package utils

import (
	"Scrimhub/models/postgres"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
)

// ErrorHandler handles global errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

// UserIcon returns the icon of the user, defaulting to 1
func UserIcon(db *gorm.DB, username string) int {
	var icon int
	err := db.Model(&postgres.Profile{}).
		Select("user_icon").
		Where("username = ?", username).
		Find(&icon).Error
	if err != nil {
		return 1
	}

	return icon
}
