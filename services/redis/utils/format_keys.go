package utils

import "fmt"

// FormatVetoSessionKey builds the key holding a match's live veto state
func FormatVetoSessionKey(matchID string) string {
	return fmt.Sprintf("match:%s:veto", matchID)
}

// FormatPresenceKey builds the key holding a player's connection state
func FormatPresenceKey(username string) string {
	return fmt.Sprintf("player:%s:presence", username)
}
