package redis

type VetoType string

const (
	VetoStandard VetoType = "standard"
	VetoCaptain  VetoType = "captain"
	VetoRandom   VetoType = "random"
)

type VetoStatus string

const (
	VetoInProgress VetoStatus = "in_progress"
	VetoCompleted  VetoStatus = "completed"
)

// VetoBan is a single elimination turn: which team banned which map
type VetoBan struct {
	MapName string `json:"map_name"`
	TeamID  string `json:"team_id"`
}

/*
 * 'VetoSession' is the live state of a map veto, held only in Redis while the
 * veto runs. It is never persisted to Postgres: restarting a veto deletes the
 * key and starts over, and abandoned sessions fall out via TTL. Only the
 * final selection survives, written to MatchSettings by sync.SyncManager
 */
type VetoSession struct {
	MatchID    string     `json:"match_id"`
	Type       VetoType   `json:"type"`
	TeamA      string     `json:"team_a"` // TeamA always bans first
	TeamB      string     `json:"team_b"`
	Remaining  []string   `json:"remaining"`
	Bans       []VetoBan  `json:"bans"`
	NextTeamID string     `json:"next_team_id"`
	Status     VetoStatus `json:"status"`
}
