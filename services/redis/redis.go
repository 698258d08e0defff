package redis

import (
	redis_models "Scrimhub/models/redis"
	redis_utils "Scrimhub/services/redis/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Abandoned veto sessions simply fall out of Redis after this long
const VetoSessionTTL = 2 * time.Hour

// RedisClient handles Redis operations
type RedisClient struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(addr string, db int) *RedisClient {
	var client *redis.Client
	if addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		})
	}
	return &RedisClient{
		Client: client,
		Ctx:    context.Background(),
	}
}

// SaveVetoSession stores the live veto state of a match
// Key format: "match:{match_id}:veto"
func (rc *RedisClient) SaveVetoSession(session *redis_models.VetoSession) error {
	key := redis_utils.FormatVetoSessionKey(session.MatchID)
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error marshaling veto session: %v", err)
	}
	return rc.Client.Set(rc.Ctx, key, data, VetoSessionTTL).Err()
}

// GetVetoSession retrieves the live veto state of a match, redis.Nil when
// no session is running
func (rc *RedisClient) GetVetoSession(matchID string) (*redis_models.VetoSession, error) {
	key := redis_utils.FormatVetoSessionKey(matchID)
	data, err := rc.Client.Get(rc.Ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var session redis_models.VetoSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("error unmarshaling veto session: %v", err)
	}
	return &session, nil
}

// DeleteVetoSession drops the session, used on restart and after sync
func (rc *RedisClient) DeleteVetoSession(matchID string) error {
	return rc.Client.Del(rc.Ctx, redis_utils.FormatVetoSessionKey(matchID)).Err()
}

// SavePlayerPresence stores a player's connection state
// Key format: "player:{username}:presence"
// TTL: 24 hours
func (rc *RedisClient) SavePlayerPresence(presence *redis_models.PlayerPresence) error {
	key := redis_utils.FormatPresenceKey(presence.Username)
	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("error marshaling presence: %v", err)
	}
	return rc.Client.Set(rc.Ctx, key, data, 24*time.Hour).Err()
}

// GetPlayerPresence retrieves a player's connection state
func (rc *RedisClient) GetPlayerPresence(username string) (*redis_models.PlayerPresence, error) {
	key := redis_utils.FormatPresenceKey(username)
	data, err := rc.Client.Get(rc.Ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var presence redis_models.PlayerPresence
	if err := json.Unmarshal(data, &presence); err != nil {
		return nil, fmt.Errorf("error unmarshaling presence: %v", err)
	}
	return &presence, nil
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.Client.Del(rc.Ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}
