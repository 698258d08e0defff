package socketio_utils

import (
	"Scrimhub/middleware"
	models "Scrimhub/models/postgres"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// VerifyUserConnection authenticates a socket.io client from the JWT in its
// handshake auth payload and resolves the associated username
func VerifyUserConnection(client *socket.Socket, db *gorm.DB) (success bool, username, email string) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		client.Emit("error", gin.H{"error": "Authentication failed: missing auth data"})
		return false, "", ""
	}

	email, err := middleware.SocketJWTDecoder(authData)
	if err != nil {
		log.Println("Error decoding socket JWT:", err)
		client.Emit("error", gin.H{
			"error": "Authentication failed: invalid JWT. Remember to set it on the 'authorization' field with the 'Bearer ' prefix.",
		})
		return false, "", ""
	}

	var user models.User
	if result := db.Where("email = ?", email).First(&user); result.Error != nil {
		log.Println("Error fetching user from database:", result.Error)
		client.Emit("error", gin.H{"error": "Authentication failed: could not find user"})
		return false, "", email
	}

	return true, user.ProfileUsername, email
}

// ValidateMatchAndUser checks that the match exists and that the user belongs
// to one of its participating teams (or is the scheduler). Returns the match
// and the user's team id ("" for the scheduler).
func ValidateMatchAndUser(db *gorm.DB, client *socket.Socket,
	username string, matchID string) (*models.Match, string, error) {

	var m models.Match
	err := db.Preload("Participants").Where("id = ?", matchID).First(&m).Error
	if err != nil {
		client.Emit("error", gin.H{"error": "Match not found"})
		return nil, "", err
	}

	for _, p := range m.Participants {
		var member models.TeamMember
		err := db.Where("team_id = ? AND username = ?", p.TeamID, username).
			First(&member).Error
		if err == nil {
			return &m, p.TeamID, nil
		}
	}

	if m.IsScheduler(username) {
		return &m, "", nil
	}

	client.Emit("error", gin.H{"error": "You are not part of this match"})
	return nil, "", fmt.Errorf("user %s not in match %s", username, matchID)
}
