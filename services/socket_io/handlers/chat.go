package handlers

import (
	models "Scrimhub/models/postgres"
	redis_models "Scrimhub/models/redis"
	socketio_types "Scrimhub/services/socket_io/types"
	socketio_utils "Scrimhub/services/socket_io/utils"
	"Scrimhub/utils"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleMatchMessage persists a chat message and broadcasts the stored row to
// the match room. The broadcast payload is built from the persisted record,
// so every client sees exactly what the history endpoint will return.
func HandleMatchMessage(client *socket.Socket, db *gorm.DB, username string,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Expected match id and message body"})
			return
		}
		matchID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Match id must be a string"})
			return
		}
		body, ok := args[1].(string)
		if !ok || strings.TrimSpace(body) == "" {
			client.Emit("error", gin.H{"error": "Message body cannot be empty"})
			return
		}

		m, _, err := socketio_utils.ValidateMatchAndUser(db, client, username, matchID)
		if err != nil {
			return
		}

		msg := models.MatchChatMessage{
			MatchID:        m.ID,
			SenderUsername: &username,
			Body:           body,
		}
		if err := db.Create(&msg).Error; err != nil {
			log.Printf("[CHAT-ERROR] Error persisting message for match %s: %v", m.ID, err)
			client.Emit("error", gin.H{"error": "Error sending message"})
			return
		}

		sio.BroadcastToMatch(m.ID, "match_message", redis_models.ChatMessage{
			ID:        msg.ID,
			MatchID:   msg.MatchID,
			Username:  username,
			UserIcon:  utils.UserIcon(db, username),
			Body:      msg.Body,
			IsSystem:  false,
			Timestamp: msg.CreatedAt,
		})
	}
}
