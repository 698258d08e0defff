package veto

import (
	"fmt"
	"testing"

	redis_models "Scrimhub/models/redis"

	"github.com/stretchr/testify/assert"
)

func standardPool() []string {
	return []string{"Raid", "Express", "Standoff", "Meltdown", "Slums", "Firing Range", "Nuketown"}
}

func TestStandardVetoScenario(t *testing.T) {
	// Two teams, 7-map pool, 4 alternating bans, exactly 3 maps left
	s, err := Start("match1", redis_models.VetoStandard, "teamA", "teamB", standardPool())
	assert.NoError(t, err)
	assert.Equal(t, "teamA", s.NextTeamID, "teamA bans first")

	bans := []struct {
		team    string
		mapName string
	}{
		{"teamA", "Nuketown"},
		{"teamB", "Slums"},
		{"teamA", "Express"},
		{"teamB", "Meltdown"},
	}

	for _, b := range bans {
		assert.Equal(t, redis_models.VetoInProgress, s.Status)
		assert.NoError(t, Ban(s, b.team, b.mapName))
	}

	assert.Equal(t, redis_models.VetoCompleted, s.Status)
	assert.Equal(t, []string{"Raid", "Standoff", "Firing Range"}, s.Remaining)
	assert.Len(t, s.Bans, 4)
}

func TestStandardVetoTerminatesForAnyPoolSize(t *testing.T) {
	for n := 3; n <= 12; n++ {
		t.Run(fmt.Sprintf("pool_size_%d", n), func(t *testing.T) {
			pool := make([]string, n)
			for i := range pool {
				pool[i] = fmt.Sprintf("map%d", i)
			}

			s, err := Start("m", redis_models.VetoStandard, "a", "b", pool)
			assert.NoError(t, err)

			expectedTurn := "a"
			for s.Status == redis_models.VetoInProgress {
				// Strict alternation until termination
				assert.Equal(t, expectedTurn, s.NextTeamID)
				assert.NoError(t, Ban(s, s.NextTeamID, s.Remaining[0]))
				if expectedTurn == "a" {
					expectedTurn = "b"
				} else {
					expectedTurn = "a"
				}
			}

			assert.Len(t, s.Remaining, min(FinalPoolSize, n))
		})
	}
}

func TestStandardVetoUndersizedPoolCompletesImmediately(t *testing.T) {
	for _, pool := range [][]string{{}, {"Raid"}, {"Raid", "Express"}, {"Raid", "Express", "Standoff"}} {
		s, err := Start("m", redis_models.VetoStandard, "a", "b", pool)
		assert.NoError(t, err)
		assert.Equal(t, redis_models.VetoCompleted, s.Status)
		assert.Equal(t, pool, s.Remaining)
		assert.ErrorIs(t, Ban(s, "a", "Raid"), ErrVetoCompleted)
	}
}

func TestStandardVetoTurnRules(t *testing.T) {
	s, err := Start("m", redis_models.VetoStandard, "a", "b", standardPool())
	assert.NoError(t, err)

	assert.ErrorIs(t, Ban(s, "b", "Raid"), ErrWrongTurn)
	assert.ErrorIs(t, Ban(s, "c", "Raid"), ErrUnknownTeam)
	assert.ErrorIs(t, Ban(s, "a", "NotAMap"), ErrUnknownMap)

	// Failed bans must not consume the turn
	assert.Equal(t, "a", s.NextTeamID)
	assert.Len(t, s.Remaining, 7)

	assert.NoError(t, Ban(s, "a", "Raid"))
	assert.ErrorIs(t, Ban(s, "a", "Express"), ErrWrongTurn, "same team cannot ban twice in a row")
}

func TestRandomVetoIsThreeMapSubset(t *testing.T) {
	pool := standardPool()

	for i := 0; i < 50; i++ {
		s, err := Start("m", redis_models.VetoRandom, "a", "b", pool)
		assert.NoError(t, err)
		assert.Equal(t, redis_models.VetoCompleted, s.Status)
		assert.Len(t, s.Remaining, 3)

		seen := map[string]bool{}
		for _, m := range s.Remaining {
			assert.Contains(t, pool, m)
			assert.False(t, seen[m], "no duplicates in random selection")
			seen[m] = true
		}
	}
}

func TestRandomVetoSmallPool(t *testing.T) {
	s, err := Start("m", redis_models.VetoRandom, "a", "b", []string{"Raid", "Express"})
	assert.NoError(t, err)
	assert.Equal(t, redis_models.VetoCompleted, s.Status)
	assert.Len(t, s.Remaining, 2)
}

func TestCaptainVetoIsUnsupported(t *testing.T) {
	_, err := Start("m", redis_models.VetoCaptain, "a", "b", standardPool())
	assert.ErrorIs(t, err, ErrUnsupportedVetoType)
}

func TestStartCopiesPool(t *testing.T) {
	pool := standardPool()
	s, err := Start("m", redis_models.VetoStandard, "a", "b", pool)
	assert.NoError(t, err)

	pool[0] = "mutated"
	assert.Equal(t, "Raid", s.Remaining[0])
}
