package controllers

import (
	models "Scrimhub/models/postgres"
	redis_models "Scrimhub/models/redis"
	redis_services "Scrimhub/services/redis"
	"Scrimhub/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// presenceStatus reads a friend's live status, offline when the key is gone
func presenceStatus(redisClient *redis_services.RedisClient, username string) redis_models.PlayerStatus {
	if redisClient == nil {
		return redis_models.StatusOffline
	}
	presence, err := redisClient.GetPlayerPresence(username)
	if err != nil {
		return redis_models.StatusOffline
	}
	return presence.Status
}

// @Summary Get a list of a user friends
// @Description Returns a list of the user's friends
// @Tags friends
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{username=string,icon=integer,status=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/friends [get]
// @Security ApiKeyAuth
func ListFriends(db *gorm.DB, redisClient *redis_services.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		username := user.ProfileUsername

		var friendships []models.Friendship
		result := db.Where("username1 = ? OR username2 = ?", username, username).Find(&friendships)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching friendships"})
			return
		}

		friendsUsernames := []string{}
		for _, friendship := range friendships {
			if friendship.Username1 == username {
				friendsUsernames = append(friendsUsernames, friendship.Username2)
			} else {
				friendsUsernames = append(friendsUsernames, friendship.Username1)
			}
		}

		// Fetch friend profiles
		var friends []models.Profile
		if len(friendsUsernames) > 0 {
			result = db.Where("username IN (?)", friendsUsernames).Find(&friends)
			if result.Error != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching friends data"})
				return
			}
		}

		simplifiedFriends := make([]gin.H, len(friends))
		for i, friend := range friends {
			simplifiedFriends[i] = gin.H{
				"username": friend.Username,
				"icon":     friend.UserIcon,
				"status":   presenceStatus(redisClient, friend.Username),
			}
		}

		c.JSON(http.StatusOK, simplifiedFriends)
	}
}

// @Summary Send a friend request
// @Description Sends a friend request from the sender to another user
// @Tags friends
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param friendUsername formData string true "Username of the recipient"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/sendFriendRequest [post]
func SendFriendRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		senderUsername := user.ProfileUsername
		receiverUsername := c.PostForm("friendUsername")

		if receiverUsername == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Both usernames are required"})
			return
		}

		if senderUsername == receiverUsername {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot send a friend request to yourself"})
			return
		}

		// Check if recipient exists
		var receiver models.Profile
		if err := db.Where("username = ?", receiverUsername).First(&receiver).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Receiver user not found"})
			return
		}

		// Check if they are already friends
		var existingFriendship models.Friendship
		result := db.Where(
			"(username1 = ? AND username2 = ?) OR (username1 = ? AND username2 = ?)",
			senderUsername, receiverUsername, receiverUsername, senderUsername,
		).First(&existingFriendship)

		if result.RowsAffected > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You are already friends"})
			return
		}

		// Check if a friend request already exists
		var existingRequest models.FriendshipRequest
		result = db.Where("sender = ? AND recipient = ?", senderUsername, receiverUsername).
			First(&existingRequest)

		if result.RowsAffected > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Friend request already sent"})
			return
		}

		friendRequest := models.FriendshipRequest{
			Sender:    senderUsername,
			Recipient: receiverUsername,
		}

		if err := db.Create(&friendRequest).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error sending friend request"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Friend request sent successfully"})
	}
}

// @Summary List received friend requests
// @Description Retrieve all friendship requests where the authenticated user is the recipient
// @Tags friends
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} map[string]interface{} "received_friendship_requests"
// @Failure 500 {object} object{error=string}
// @Router /auth/friendship_requests [get]
// @Security ApiKeyAuth
func GetAllFriendshipRequests(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}

		var friendRequests []models.FriendshipRequest
		if err := db.Where("recipient = ?", user.ProfileUsername).Find(&friendRequests).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving received friendship requests"})
			return
		}

		var requestsInfo []gin.H
		for _, request := range friendRequests {
			requestsInfo = append(requestsInfo, gin.H{
				"username": request.Sender,
				"icon":     utils.UserIcon(db, request.Sender),
			})
		}

		c.JSON(http.StatusOK, gin.H{"received_friendship_requests": requestsInfo})
	}
}

// @Summary Accept a friend request
// @Description Deletes the pending request and creates the friendship in one transaction
// @Tags friends
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param friendUsername formData string true "Username of the sender"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/acceptFriendRequest [post]
func AcceptFriendRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		friendUsername := c.PostForm("friendUsername")

		var request models.FriendshipRequest
		result := db.Where("sender = ? AND recipient = ?", friendUsername, user.ProfileUsername).
			First(&request)
		if result.RowsAffected == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Friend request does not exist"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&request).Error; err != nil {
				return err
			}
			return tx.Create(&models.Friendship{
				Username1: friendUsername,
				Username2: user.ProfileUsername,
			}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error accepting friend request"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted"})
	}
}

// @Summary Delete a pending friend request
// @Tags friends
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param friendUsername formData string true "Username of the sender"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/delete_friendship_request [delete]
func DeleteFriendshipRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		friendUsername := c.PostForm("friendUsername")

		var request models.FriendshipRequest
		result := db.Where(
			"(sender = ? AND recipient = ?) OR (sender = ? AND recipient = ?)",
			friendUsername, user.ProfileUsername, user.ProfileUsername, friendUsername,
		).First(&request)
		if result.RowsAffected == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Friend request does not exist"})
			return
		}

		if err := db.Delete(&request).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting friend request"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Friend request deleted"})
	}
}

// @Summary Remove a friend
// @Description Removes a friend from the user's friend list
// @Tags friends
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param friendUsername formData string true "Username of the friend to be removed"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Security ApiKeyAuth
// @Router /auth/deleteFriend [delete]
func DeleteFriend(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		username := user.ProfileUsername
		friendUsername := c.PostForm("friendUsername")

		if friendUsername == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Both usernames are required"})
			return
		}

		var friendship models.Friendship
		result := db.Where(
			"(username1 = ? AND username2 = ?) OR (username1 = ? AND username2 = ?)",
			username, friendUsername, friendUsername, username,
		).First(&friendship)

		if result.RowsAffected == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Friendship does not exist"})
			return
		}

		if err := db.Delete(&friendship).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting friend"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Friend removed successfully"})
	}
}
