package handlers

import (
	"Scrimhub/services/redis"
	redis_utils "Scrimhub/services/redis/utils"
	socketio_types "Scrimhub/services/socket_io/types"
	"log"
)

// HandleDisconnecting clears the presence key and drops the connection from
// the map. Socket.io removes the client from its rooms on its own; a missing
// presence key reads as offline.
func HandleDisconnecting(username string, sio *socketio_types.SocketServer,
	redisClient *redis.RedisClient) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] User disconnecting: %s", username)

		if redisClient != nil {
			keys := []string{redis_utils.FormatPresenceKey(username)}
			if err := redisClient.CleanupKeys(keys); err != nil {
				log.Printf("[DISCONNECT-ERROR] Error clearing presence for %s: %v", username, err)
			}
		}

		sio.RemoveConnection(username)
		log.Printf("[DISCONNECT-DONE] User disconnected: %s", username)
	}
}
