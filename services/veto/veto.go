package veto

import (
	"errors"
	"math/rand"
	"slices"

	redis_models "Scrimhub/models/redis"
)

// FinalPoolSize is how many maps survive a veto. A pool that already holds
// this many (or fewer) maps completes immediately with whatever is left.
const FinalPoolSize = 3

var ErrWrongTurn = errors.New("not this team's turn")
var ErrUnknownTeam = errors.New("team is not part of this veto")
var ErrUnknownMap = errors.New("map is not in the remaining pool")
var ErrVetoCompleted = errors.New("veto already completed")
var ErrUnsupportedVetoType = errors.New("unsupported veto type")

/*
 * Pure map-veto engine. Sessions are plain values owned by the caller
 * (services/redis keeps the live copy); every rule lives here so the
 * controllers and socket handlers never reason about turns themselves.
 *
 * standard: teams alternate banning one map per turn, teamA first, until
 *           FinalPoolSize maps remain.
 * random:   single shuffle, keep the first FinalPoolSize maps.
 * captain:  declared but has no selection algorithm; Start rejects it.
 */

// Start builds a fresh session for a match. The pool is copied, never
// aliased, so a caller mutating its slice cannot corrupt the session.
func Start(matchID string, vetoType redis_models.VetoType, teamA, teamB string, pool []string) (*redis_models.VetoSession, error) {
	session := &redis_models.VetoSession{
		MatchID:    matchID,
		Type:       vetoType,
		TeamA:      teamA,
		TeamB:      teamB,
		Bans:       []redis_models.VetoBan{},
		NextTeamID: teamA,
		Status:     redis_models.VetoInProgress,
	}

	switch vetoType {
	case redis_models.VetoStandard:
		session.Remaining = slices.Clone(pool)
		// Undersized pools terminate before any ban happens
		if len(session.Remaining) <= FinalPoolSize {
			session.Status = redis_models.VetoCompleted
			session.NextTeamID = ""
		}
		return session, nil

	case redis_models.VetoRandom:
		shuffled := slices.Clone(pool)
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		session.Remaining = shuffled[:min(FinalPoolSize, len(shuffled))]
		session.Status = redis_models.VetoCompleted
		session.NextTeamID = ""
		return session, nil

	case redis_models.VetoCaptain:
		return nil, ErrUnsupportedVetoType

	default:
		return nil, ErrUnsupportedVetoType
	}
}

// Ban eliminates one map on behalf of teamID and advances the turn. The
// session is mutated in place; the caller persists it back to Redis. When
// the remaining pool reaches FinalPoolSize the session flips to completed.
func Ban(s *redis_models.VetoSession, teamID string, mapName string) error {
	if s.Status == redis_models.VetoCompleted {
		return ErrVetoCompleted
	}
	if teamID != s.TeamA && teamID != s.TeamB {
		return ErrUnknownTeam
	}
	if teamID != s.NextTeamID {
		return ErrWrongTurn
	}

	idx := slices.Index(s.Remaining, mapName)
	if idx == -1 {
		return ErrUnknownMap
	}

	s.Remaining = slices.Delete(s.Remaining, idx, idx+1)
	s.Bans = append(s.Bans, redis_models.VetoBan{MapName: mapName, TeamID: teamID})
	s.NextTeamID = Opponent(s, teamID)

	if len(s.Remaining) <= FinalPoolSize {
		s.Status = redis_models.VetoCompleted
		s.NextTeamID = ""
	}
	return nil
}

// Opponent returns the other team of the session
func Opponent(s *redis_models.VetoSession, teamID string) string {
	if teamID == s.TeamA {
		return s.TeamB
	}
	return s.TeamA
}
