package sync

import (
	"fmt"
	"testing"

	models "Scrimhub/models/postgres"
	redis_models "Scrimhub/models/redis"
	matchsvc "Scrimhub/services/match"
	"Scrimhub/services/veto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		models.Profile{}, models.Game{}, models.Match{},
		models.MatchSettings{}, models.MatchChatMessage{}))
	return db
}

// Two teams, seven maps, four alternating bans: exactly three maps must end
// up in the match settings, plus a system message in the chat.
func TestSyncVetoResultPersistsSelectedMaps(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.Profile{Username: "scheduler"}).Error)
	require.NoError(t, db.Create(&models.Game{ID: "cod", Name: "Call of Duty"}).Error)
	m := models.Match{GameID: "cod", CreatorUsername: "scheduler", Status: models.MatchScheduled}
	require.NoError(t, db.Create(&m).Error)
	require.NoError(t, db.Create(&models.MatchSettings{MatchID: m.ID}).Error)

	pool := []string{"Raid", "Express", "Standoff", "Meltdown", "Slums", "Firing Range", "Nuketown"}
	session, err := veto.Start(m.ID, redis_models.VetoStandard, "team-a", "team-b", pool)
	require.NoError(t, err)

	turn := "team-a"
	for session.Status != redis_models.VetoCompleted {
		require.NoError(t, veto.Ban(session, turn, session.Remaining[0]))
		turn = veto.Opponent(session, turn)
	}
	require.Len(t, session.Bans, 4)

	sm := NewSyncManager(nil, db)
	require.NoError(t, sm.SyncVetoResult(session))

	var settings models.MatchSettings
	require.NoError(t, db.First(&settings, "match_id = ?", m.ID).Error)
	selected := matchsvc.SelectedMaps(&settings)
	assert.Len(t, selected, 3)
	assert.ElementsMatch(t, session.Remaining, selected)

	var messages []models.MatchChatMessage
	require.NoError(t, db.Where("match_id = ? AND is_system = ?", m.ID, true).
		Find(&messages).Error)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Body, "Map veto completed")
}

func TestSyncVetoResultRejectsRunningSession(t *testing.T) {
	db := newTestDB(t)

	session := &redis_models.VetoSession{
		MatchID: "some-match",
		Status:  redis_models.VetoInProgress,
	}

	sm := NewSyncManager(nil, db)
	assert.Error(t, sm.SyncVetoResult(session))
}
