package match

import (
	"fmt"
	"testing"
	"time"

	models "Scrimhub/models/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
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
		models.Profile{}, models.Game{}, models.Team{}, models.TeamMember{},
		models.Match{}, models.MatchParticipant{}, models.MatchSettings{},
		models.MatchResult{}, models.MatchChatMessage{}, models.PlayerStats{}))
	return db
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    models.MatchStatus
		to      models.MatchStatus
		allowed bool
	}{
		{models.MatchScheduled, models.MatchInProgress, true},
		{models.MatchScheduled, models.MatchCancelled, true},
		{models.MatchScheduled, models.MatchCompleted, false},
		{models.MatchScheduled, models.MatchDisputed, false},
		{models.MatchInProgress, models.MatchCompleted, true},
		{models.MatchInProgress, models.MatchCancelled, true},
		{models.MatchInProgress, models.MatchScheduled, false},
		{models.MatchCompleted, models.MatchDisputed, true},
		{models.MatchCompleted, models.MatchScheduled, false},
		{models.MatchCancelled, models.MatchScheduled, false},
		{models.MatchDisputed, models.MatchCompleted, false},
		{models.MatchDisputed, models.MatchScheduled, false},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s_to_%s", tc.from, tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to))
		})
	}
}

func seedMatch(t *testing.T, db *gorm.DB) *models.Match {
	require.NoError(t, db.Create(&models.Profile{Username: "scheduler"}).Error)
	require.NoError(t, db.Create(&models.Game{ID: "cod", Name: "Call of Duty"}).Error)

	m := models.Match{
		GameID:          "cod",
		CreatorUsername: "scheduler",
		Status:          models.MatchScheduled,
		ScheduledStart:  time.Now().Add(-time.Minute),
	}
	require.NoError(t, db.Create(&m).Error)
	require.NoError(t, db.Create(&models.MatchSettings{MatchID: m.ID}).Error)
	return &m
}

func TestTransitionAppendsSystemMessage(t *testing.T) {
	db := newTestDB(t)
	l := NewLifecycle(db)
	m := seedMatch(t, db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return l.Transition(tx, m, models.MatchInProgress, "Match has started.")
	})
	require.NoError(t, err)
	assert.Equal(t, models.MatchInProgress, m.Status)

	var stored models.Match
	require.NoError(t, db.First(&stored, "id = ?", m.ID).Error)
	assert.Equal(t, models.MatchInProgress, stored.Status)

	var messages []models.MatchChatMessage
	require.NoError(t, db.Where("match_id = ?", m.ID).Find(&messages).Error)
	require.Len(t, messages, 1)
	assert.True(t, messages[0].IsSystem)
	assert.Nil(t, messages[0].SenderUsername)
	assert.Equal(t, "Match has started.", messages[0].Body)
}

func TestTransitionRejectsIllegalMove(t *testing.T) {
	db := newTestDB(t)
	l := NewLifecycle(db)
	m := seedMatch(t, db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return l.Transition(tx, m, models.MatchDisputed, "should not happen")
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Nothing written: status untouched, no chat message
	var stored models.Match
	require.NoError(t, db.First(&stored, "id = ?", m.ID).Error)
	assert.Equal(t, models.MatchScheduled, stored.Status)

	var count int64
	db.Model(&models.MatchChatMessage{}).Where("match_id = ?", m.ID).Count(&count)
	assert.Zero(t, count)
}

func TestTransitionRejectsStaleStatus(t *testing.T) {
	db := newTestDB(t)
	l := NewLifecycle(db)
	m := seedMatch(t, db)

	// Keep a copy that still believes the match is scheduled
	stale := *m

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return l.Transition(tx, m, models.MatchInProgress, "Match has started.")
	}))

	err := db.Transaction(func(tx *gorm.DB) error {
		return l.Transition(tx, &stale, models.MatchCancelled, "Match has been cancelled by the scheduler.")
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// The losing request leaves no trace: status untouched, no second message
	var stored models.Match
	require.NoError(t, db.First(&stored, "id = ?", m.ID).Error)
	assert.Equal(t, models.MatchInProgress, stored.Status)

	var messages []models.MatchChatMessage
	require.NoError(t, db.Where("match_id = ?", m.ID).Find(&messages).Error)
	require.Len(t, messages, 1)
	assert.Equal(t, "Match has started.", messages[0].Body)
}

func TestStartRequiresReadyMatch(t *testing.T) {
	db := newTestDB(t)
	l := NewLifecycle(db)
	m := seedMatch(t, db)

	// No participants, no maps, no setup timestamp
	assert.ErrorIs(t, l.Start(m, time.Now()), ErrMatchNotReady)

	for _, teamID := range []string{"team-a", "team-b"} {
		require.NoError(t, db.Create(&models.Team{ID: teamID, Name: teamID, GameID: "cod"}).Error)
		require.NoError(t, db.Create(&models.MatchParticipant{MatchID: m.ID, TeamID: teamID}).Error)
		m.Participants = append(m.Participants, &models.MatchParticipant{MatchID: m.ID, TeamID: teamID})
	}
	assert.ErrorIs(t, l.Start(m, time.Now()), ErrMatchNotReady, "maps not selected yet")

	now := time.Now()
	m.Settings = &models.MatchSettings{
		MatchID:      m.ID,
		SelectedMaps: datatypes.JSON([]byte(`["Raid","Standoff","Firing Range"]`)),
	}
	m.SetupCompletedAt = &now

	assert.ErrorIs(t, l.Start(m, m.ScheduledStart.Add(-time.Hour)), ErrTooEarly)
	assert.NoError(t, l.Start(m, now))
	assert.Equal(t, models.MatchInProgress, m.Status)
}

func TestReportResultUpdatesStatsAndCompletes(t *testing.T) {
	db := newTestDB(t)
	l := NewLifecycle(db)
	m := seedMatch(t, db)
	m.Status = models.MatchInProgress
	require.NoError(t, db.Model(&models.Match{}).Where("id = ?", m.ID).
		Update("status", models.MatchInProgress).Error)

	for _, teamID := range []string{"team-a", "team-b"} {
		require.NoError(t, db.Create(&models.Team{ID: teamID, Name: teamID, GameID: "cod"}).Error)
		require.NoError(t, db.Create(&models.MatchParticipant{MatchID: m.ID, TeamID: teamID}).Error)
		m.Participants = append(m.Participants, &models.MatchParticipant{MatchID: m.ID, TeamID: teamID})
	}
	require.NoError(t, db.Create(&models.Profile{Username: "winner1"}).Error)
	require.NoError(t, db.Create(&models.TeamMember{TeamID: "team-a", Username: "winner1", Role: models.RoleOwner}).Error)

	require.NoError(t, l.ReportResult(m, "team-a", "team-b", 2, 1, "winner1"))
	assert.Equal(t, models.MatchCompleted, m.Status)

	var stats models.PlayerStats
	require.NoError(t, db.Where("username = ? AND game_id = ?", "winner1", "cod").First(&stats).Error)
	assert.Equal(t, 1, stats.MatchesPlayed)
	assert.Equal(t, 1, stats.MatchesWon)

	var participant models.MatchParticipant
	require.NoError(t, db.Where("match_id = ? AND team_id = ?", m.ID, "team-a").First(&participant).Error)
	assert.Equal(t, models.ResultWin, participant.Result)

	assert.ErrorIs(t, l.ReportResult(m, "team-c", "team-b", 1, 0, "winner1"), ErrNotAParticipant)
}
