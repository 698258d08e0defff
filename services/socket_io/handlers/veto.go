package handlers

import (
	models "Scrimhub/models/postgres"
	redis_models "Scrimhub/models/redis"
	"Scrimhub/services/redis"
	socketio_types "Scrimhub/services/socket_io/types"
	socketio_utils "Scrimhub/services/socket_io/utils"
	"Scrimhub/services/veto"
	"Scrimhub/sync"
	"encoding/json"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// vetoStatePayload is what every veto event broadcasts, clients render the
// whole board from it instead of patching individual bans
func vetoStatePayload(session *redis_models.VetoSession) gin.H {
	return gin.H{
		"match_id":  session.MatchID,
		"veto_type": session.Type,
		"status":    session.Status,
		"next_team": session.NextTeamID,
		"remaining": session.Remaining,
		"bans":      session.Bans,
	}
}

// HandleStartVeto creates a fresh veto session for a scheduled match and
// stores it in Redis. Restarting replaces any session already running.
func HandleStartVeto(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
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
		vetoType := redis_models.VetoStandard
		if len(args) > 1 {
			if raw, ok := args[1].(string); ok && raw != "" {
				vetoType = redis_models.VetoType(raw)
			}
		}
		log.Printf("[VETO] User %s starting %s veto for match %s", username, vetoType, matchID)

		m, _, err := socketio_utils.ValidateMatchAndUser(db, client, username, matchID)
		if err != nil {
			return
		}
		if !m.IsScheduler(username) {
			client.Emit("error", gin.H{"error": "Only the scheduler can start the veto"})
			return
		}
		if m.Status != models.MatchScheduled {
			client.Emit("error", gin.H{"error": "Veto can only run before the match starts"})
			return
		}
		if len(m.Participants) != 2 {
			client.Emit("error", gin.H{"error": "Both teams must join before the veto"})
			return
		}

		var game models.Game
		if err := db.Where("id = ?", m.GameID).First(&game).Error; err != nil {
			client.Emit("error", gin.H{"error": "Game not found"})
			return
		}
		var pool []string
		if err := json.Unmarshal(game.DefaultMapPool, &pool); err != nil || len(pool) == 0 {
			client.Emit("error", gin.H{"error": "Game has no map pool configured"})
			return
		}

		session, err := veto.Start(m.ID, vetoType,
			m.Participants[0].TeamID, m.Participants[1].TeamID, pool)
		if errors.Is(err, veto.ErrUnsupportedVetoType) {
			client.Emit("error", gin.H{"error": "Unsupported veto type: " + string(vetoType)})
			return
		}
		if err != nil {
			client.Emit("error", gin.H{"error": "Error starting veto"})
			return
		}

		if err := redisClient.SaveVetoSession(session); err != nil {
			log.Printf("[VETO-ERROR] Error saving session for match %s: %v", m.ID, err)
			client.Emit("error", gin.H{"error": "Error saving veto session"})
			return
		}

		sio.BroadcastToMatch(m.ID, "veto_started", vetoStatePayload(session))

		// random vetoes complete on the spot, so sync immediately
		if session.Status == redis_models.VetoCompleted {
			finishVeto(redisClient, client, db, session, sio)
		}
	}
}

// HandleBanMap applies one elimination on behalf of the caller's team and
// broadcasts the updated board. When the pool reaches its final size the
// result is synced to the match settings.
func HandleBanMap(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Expected match id and map name"})
			return
		}
		matchID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Match id must be a string"})
			return
		}
		mapName, ok := args[1].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Map name must be a string"})
			return
		}

		_, teamID, err := socketio_utils.ValidateMatchAndUser(db, client, username, matchID)
		if err != nil {
			return
		}
		if teamID == "" {
			client.Emit("error", gin.H{"error": "Only team members can ban maps"})
			return
		}

		session, err := redisClient.GetVetoSession(matchID)
		if err != nil {
			client.Emit("error", gin.H{"error": "No active veto session for this match"})
			return
		}

		if err := veto.Ban(session, teamID, mapName); err != nil {
			switch {
			case errors.Is(err, veto.ErrWrongTurn):
				client.Emit("error", gin.H{"error": "It is not your team's turn"})
			case errors.Is(err, veto.ErrUnknownMap):
				client.Emit("error", gin.H{"error": "Map is not in the remaining pool"})
			case errors.Is(err, veto.ErrVetoCompleted):
				client.Emit("error", gin.H{"error": "Veto already completed"})
			default:
				client.Emit("error", gin.H{"error": err.Error()})
			}
			return
		}

		if err := redisClient.SaveVetoSession(session); err != nil {
			log.Printf("[VETO-ERROR] Error saving session for match %s: %v", matchID, err)
			client.Emit("error", gin.H{"error": "Error saving veto session"})
			return
		}

		sio.BroadcastToMatch(matchID, "map_banned", vetoStatePayload(session))

		if session.Status == redis_models.VetoCompleted {
			finishVeto(redisClient, client, db, session, sio)
		}
	}
}

// finishVeto persists the surviving pool to Postgres and announces the result
func finishVeto(redisClient *redis.RedisClient, client *socket.Socket, db *gorm.DB,
	session *redis_models.VetoSession, sio *socketio_types.SocketServer) {
	syncManager := sync.NewSyncManager(redisClient, db)
	if err := syncManager.SyncVetoResult(session); err != nil {
		log.Printf("[VETO-ERROR] Error syncing veto result for match %s: %v", session.MatchID, err)
		client.Emit("error", gin.H{"error": "Error persisting veto result"})
		return
	}

	sio.BroadcastToMatch(session.MatchID, "veto_completed", gin.H{
		"match_id":      session.MatchID,
		"selected_maps": session.Remaining,
	})
}
