package controllers

import (
	models "Scrimhub/models/postgres"
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func disputeRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/matches/:match_id/disputes", CreateDispute(db, nil))
	router.GET("/auth/matches/:match_id/disputes", ListDisputes(db))
	return router
}

func seedCompletedMatch(t *testing.T, db *gorm.DB) *models.Match {
	require.NoError(t, db.Create(&models.Game{ID: "cod", Name: "Call of Duty"}).Error)
	seedTeam(t, db, "team-alpha", "Alpha Squad", "alpha_owner")
	seedTeam(t, db, "team-beta", "Beta Squad", "beta_owner")

	m := models.Match{GameID: "cod", CreatorUsername: "scheduler", Status: models.MatchCompleted}
	require.NoError(t, db.Create(&m).Error)
	require.NoError(t, db.Create(&models.MatchParticipant{MatchID: m.ID, TeamID: "team-alpha"}).Error)
	require.NoError(t, db.Create(&models.MatchParticipant{MatchID: m.ID, TeamID: "team-beta"}).Error)
	return &m
}

func TestCreateDisputeFlipsMatchToDisputed(t *testing.T) {
	t.Setenv("KEY", "test-secret")
	db := newTestDB(t)
	router := disputeRouter(db)

	seedAccount(t, db, "scheduler")
	ownerToken := seedAccount(t, db, "alpha_owner")
	seedAccount(t, db, "beta_owner")
	m := seedCompletedMatch(t, db)

	w := doForm(router, http.MethodPost, "/auth/matches/"+m.ID+"/disputes",
		ownerToken, url.Values{"reason": {"Final score was reported wrong"}})
	require.Equal(t, http.StatusCreated, w.Code)

	var stored models.Match
	require.NoError(t, db.First(&stored, "id = ?", m.ID).Error)
	assert.Equal(t, models.MatchDisputed, stored.Status)

	var dispute models.Dispute
	require.NoError(t, db.Where("match_id = ?", m.ID).First(&dispute).Error)
	assert.Equal(t, models.DisputeOpen, dispute.Status)
	assert.Equal(t, "team-alpha", dispute.TeamID)

	var messages []models.MatchChatMessage
	require.NoError(t, db.Where("match_id = ? AND is_system = ?", m.ID, true).
		Find(&messages).Error)
	assert.NotEmpty(t, messages)
}

func TestSecondDisputeIsStoredWithoutStatusChange(t *testing.T) {
	t.Setenv("KEY", "test-secret")
	db := newTestDB(t)
	router := disputeRouter(db)

	seedAccount(t, db, "scheduler")
	alphaToken := seedAccount(t, db, "alpha_owner")
	betaToken := seedAccount(t, db, "beta_owner")
	m := seedCompletedMatch(t, db)

	w := doForm(router, http.MethodPost, "/auth/matches/"+m.ID+"/disputes",
		alphaToken, url.Values{"reason": {"Wrong score"}})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doForm(router, http.MethodPost, "/auth/matches/"+m.ID+"/disputes",
		betaToken, url.Values{"reason": {"We also disagree"}})
	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.Dispute{}).Where("match_id = ?", m.ID).Count(&count)
	assert.EqualValues(t, 2, count)

	var stored models.Match
	require.NoError(t, db.First(&stored, "id = ?", m.ID).Error)
	assert.Equal(t, models.MatchDisputed, stored.Status)
}

func TestDisputeRejectsEmptyReasonBeforeWriting(t *testing.T) {
	t.Setenv("KEY", "test-secret")
	db := newTestDB(t)
	router := disputeRouter(db)

	seedAccount(t, db, "scheduler")
	ownerToken := seedAccount(t, db, "alpha_owner")
	seedAccount(t, db, "beta_owner")
	m := seedCompletedMatch(t, db)

	w := doForm(router, http.MethodPost, "/auth/matches/"+m.ID+"/disputes",
		ownerToken, url.Values{"reason": {"   "}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Dispute{}).Where("match_id = ?", m.ID).Count(&count)
	assert.Zero(t, count)

	var stored models.Match
	require.NoError(t, db.First(&stored, "id = ?", m.ID).Error)
	assert.Equal(t, models.MatchCompleted, stored.Status)
}

func TestDisputeRejectedWhileMatchRunning(t *testing.T) {
	t.Setenv("KEY", "test-secret")
	db := newTestDB(t)
	router := disputeRouter(db)

	seedAccount(t, db, "scheduler")
	ownerToken := seedAccount(t, db, "alpha_owner")
	require.NoError(t, db.Create(&models.Game{ID: "cod", Name: "Call of Duty"}).Error)
	seedTeam(t, db, "team-alpha", "Alpha Squad", "alpha_owner")

	m := models.Match{GameID: "cod", CreatorUsername: "scheduler", Status: models.MatchInProgress}
	require.NoError(t, db.Create(&m).Error)
	require.NoError(t, db.Create(&models.MatchParticipant{MatchID: m.ID, TeamID: "team-alpha"}).Error)

	w := doForm(router, http.MethodPost, "/auth/matches/"+m.ID+"/disputes",
		ownerToken, url.Values{"reason": {"Too soon"}})
	assert.Equal(t, http.StatusConflict, w.Code)
}
