package handlers

import (
	socketio_types "Scrimhub/services/socket_io/types"
	socketio_utils "Scrimhub/services/socket_io/utils"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// HandleJoinMatch puts the client in the match room after checking that the
// user actually belongs to the match (roster member or scheduler)
func HandleJoinMatch(client *socket.Socket, db *gorm.DB, username string,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing match id"})
			return
		}
		matchID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Match id must be a string"})
			return
		}
		log.Printf("[JOIN] User %s joining match room %s", username, matchID)

		m, _, err := socketio_utils.ValidateMatchAndUser(db, client, username, matchID)
		if err != nil {
			return
		}

		client.Join(socketio_types.MatchRoom(m.ID))

		sio.BroadcastToMatch(m.ID, "user_joined_room", gin.H{
			"match_id": m.ID,
			"username": username,
		})
		client.Emit("match_joined", gin.H{
			"match_id": m.ID,
			"status":   m.Status,
		})
	}
}

// HandleLeaveMatch removes the client from the match room
func HandleLeaveMatch(client *socket.Socket, username string,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing match id"})
			return
		}
		matchID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Match id must be a string"})
			return
		}

		client.Leave(socketio_types.MatchRoom(matchID))
		sio.BroadcastToMatch(matchID, "user_left_room", gin.H{
			"match_id": matchID,
			"username": username,
		})
	}
}
