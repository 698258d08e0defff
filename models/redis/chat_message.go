package redis

import "time"

// ChatMessage is the realtime wire form of a match chat entry
type ChatMessage struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match_id"`
	Username  string    `json:"username"` // empty for system messages
	UserIcon  int       `json:"user_icon"`
	Body      string    `json:"body"`
	IsSystem  bool      `json:"is_system"`
	Timestamp time.Time `json:"timestamp"`
}
