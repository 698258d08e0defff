package sync

import (
	"encoding/json"
	"fmt"
	"strings"

	models "Scrimhub/models/postgres"
	redis_models "Scrimhub/models/redis"
	"Scrimhub/services/match"
	"Scrimhub/services/redis"

	"gorm.io/gorm"
)

/*
 * SyncManager moves veto results from their ephemeral Redis home into
 * Postgres. A veto session lives only in Redis while it runs; once it
 * completes, the surviving pool becomes MatchSettings.SelectedMaps and the
 * Redis key is dropped.
 */
type SyncManager struct {
	redisClient *redis.RedisClient
	db          *gorm.DB
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(redisClient *redis.RedisClient, db *gorm.DB) *SyncManager {
	return &SyncManager{
		redisClient: redisClient,
		db:          db,
	}
}

// SyncVetoResult persists a completed veto session's remaining maps to the
// match settings, announces the selection in the match chat and cleans the
// Redis key. The Postgres writes happen in one transaction; the Redis
// delete is best effort (an orphaned key expires on its own).
func (sm *SyncManager) SyncVetoResult(session *redis_models.VetoSession) error {
	if session.Status != redis_models.VetoCompleted {
		return fmt.Errorf("veto session for match %s is still in progress", session.MatchID)
	}

	selected, err := json.Marshal(session.Remaining)
	if err != nil {
		return fmt.Errorf("error marshaling selected maps: %v", err)
	}

	err = sm.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MatchSettings{}).
			Where("match_id = ?", session.MatchID).
			Update("selected_maps", selected).Error; err != nil {
			return fmt.Errorf("error updating match settings: %v", err)
		}

		body := fmt.Sprintf("Map veto completed. Playing: %s", strings.Join(session.Remaining, ", "))
		return match.AppendSystemMessage(tx, session.MatchID, body)
	})
	if err != nil {
		return err
	}

	if sm.redisClient == nil {
		return nil
	}
	return sm.redisClient.DeleteVetoSession(session.MatchID)
}
