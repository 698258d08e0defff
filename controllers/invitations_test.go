package controllers

import (
	"Scrimhub/middleware"
	models "Scrimhub/models/postgres"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
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
		models.User{}, models.Profile{}, models.Game{}, models.Team{},
		models.TeamMember{}, models.Match{}, models.MatchParticipant{},
		models.MatchSettings{}, models.MatchInvitation{},
		models.MatchChatMessage{}, models.Dispute{}))
	return db
}

// seedAccount creates a profile + user pair and returns a bearer token
func seedAccount(t *testing.T, db *gorm.DB, username string) string {
	email := username + "@example.com"
	require.NoError(t, db.Create(&models.Profile{Username: username}).Error)
	require.NoError(t, db.Create(&models.User{
		Email:           email,
		ProfileUsername: username,
		PasswordHash:    "x",
	}).Error)

	token, err := middleware.GenerateToken(email)
	require.NoError(t, err)
	return "Bearer " + token
}

func seedTeam(t *testing.T, db *gorm.DB, id, name, owner string) {
	require.NoError(t, db.Create(&models.Team{ID: id, Name: name, GameID: "cod"}).Error)
	require.NoError(t, db.Create(&models.TeamMember{
		TeamID: id, Username: owner, Role: models.RoleOwner,
	}).Error)
}

func doForm(router *gin.Engine, method, path, token string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", token)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func invitationRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/auth/matches/:match_id/team_search", SearchInvitableTeams(db))
	router.POST("/auth/matches/:match_id/invitations", InviteTeam(db, nil))
	router.POST("/auth/invitations/:invitation_id/accept", AcceptInvitation(db, nil))
	router.POST("/auth/invitations/:invitation_id/decline", DeclineInvitation(db))
	return router
}

func TestSearchExcludesParticipantsAndInvitees(t *testing.T) {
	t.Setenv("KEY", "test-secret")
	db := newTestDB(t)
	router := invitationRouter(db)

	token := seedAccount(t, db, "scheduler")
	seedAccount(t, db, "alpha_owner")
	seedAccount(t, db, "beta_owner")
	seedAccount(t, db, "gamma_owner")
	require.NoError(t, db.Create(&models.Game{ID: "cod", Name: "Call of Duty"}).Error)

	seedTeam(t, db, "team-alpha", "Alpha Squad", "alpha_owner")
	seedTeam(t, db, "team-beta", "Beta Squad", "beta_owner")
	seedTeam(t, db, "team-gamma", "Gamma Squad", "gamma_owner")

	m := models.Match{GameID: "cod", CreatorUsername: "scheduler", Status: models.MatchScheduled}
	require.NoError(t, db.Create(&m).Error)

	// Alpha already participates, Beta has a pending invitation
	require.NoError(t, db.Create(&models.MatchParticipant{MatchID: m.ID, TeamID: "team-alpha"}).Error)
	require.NoError(t, db.Create(&models.MatchInvitation{
		MatchID: m.ID, TeamID: "team-beta", InviterUsername: "scheduler",
		Status: models.InvitationPending,
	}).Error)

	w := doForm(router, http.MethodGet, "/auth/matches/"+m.ID+"/team_search?q=squad", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "team-gamma", results[0]["team_id"])
}

func TestAcceptInvitationCreatesParticipantAndSystemMessage(t *testing.T) {
	t.Setenv("KEY", "test-secret")
	db := newTestDB(t)
	router := invitationRouter(db)

	schedulerToken := seedAccount(t, db, "scheduler")
	ownerToken := seedAccount(t, db, "alpha_owner")
	require.NoError(t, db.Create(&models.Game{ID: "cod", Name: "Call of Duty"}).Error)
	seedTeam(t, db, "team-alpha", "Alpha Squad", "alpha_owner")

	m := models.Match{GameID: "cod", CreatorUsername: "scheduler", Status: models.MatchScheduled}
	require.NoError(t, db.Create(&m).Error)

	w := doForm(router, http.MethodPost, "/auth/matches/"+m.ID+"/invitations",
		schedulerToken, url.Values{"team_id": {"team-alpha"}})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		InvitationID string `json:"invitation_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doForm(router, http.MethodPost, "/auth/invitations/"+created.InvitationID+"/accept",
		ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var invitation models.MatchInvitation
	require.NoError(t, db.First(&invitation, "id = ?", created.InvitationID).Error)
	assert.Equal(t, models.InvitationAccepted, invitation.Status)

	var participant models.MatchParticipant
	require.NoError(t, db.Where("match_id = ? AND team_id = ?", m.ID, "team-alpha").
		First(&participant).Error)

	var messages []models.MatchChatMessage
	require.NoError(t, db.Where("match_id = ? AND is_system = ?", m.ID, true).
		Find(&messages).Error)
	assert.NotEmpty(t, messages)
}

func TestAcceptInvitationRejectsFullMatch(t *testing.T) {
	t.Setenv("KEY", "test-secret")
	db := newTestDB(t)
	router := invitationRouter(db)

	seedAccount(t, db, "scheduler")
	gammaToken := seedAccount(t, db, "gamma_owner")
	require.NoError(t, db.Create(&models.Game{ID: "cod", Name: "Call of Duty"}).Error)
	seedTeam(t, db, "team-gamma", "Gamma Squad", "gamma_owner")

	m := models.Match{GameID: "cod", CreatorUsername: "scheduler", Status: models.MatchScheduled}
	require.NoError(t, db.Create(&m).Error)
	require.NoError(t, db.Create(&models.MatchParticipant{MatchID: m.ID, TeamID: "team-a"}).Error)
	require.NoError(t, db.Create(&models.MatchParticipant{MatchID: m.ID, TeamID: "team-b"}).Error)

	invitation := models.MatchInvitation{
		MatchID: m.ID, TeamID: "team-gamma", InviterUsername: "scheduler",
		Status: models.InvitationPending,
	}
	require.NoError(t, db.Create(&invitation).Error)

	w := doForm(router, http.MethodPost, "/auth/invitations/"+invitation.ID+"/accept",
		gammaToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Nothing written: invitation still pending, no third participant
	var stored models.MatchInvitation
	require.NoError(t, db.First(&stored, "id = ?", invitation.ID).Error)
	assert.Equal(t, models.InvitationPending, stored.Status)

	var count int64
	db.Model(&models.MatchParticipant{}).Where("match_id = ?", m.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestInviteTeamRejectsFullMatch(t *testing.T) {
	t.Setenv("KEY", "test-secret")
	db := newTestDB(t)
	router := invitationRouter(db)

	schedulerToken := seedAccount(t, db, "scheduler")
	seedAccount(t, db, "gamma_owner")
	require.NoError(t, db.Create(&models.Game{ID: "cod", Name: "Call of Duty"}).Error)
	seedTeam(t, db, "team-gamma", "Gamma Squad", "gamma_owner")

	m := models.Match{GameID: "cod", CreatorUsername: "scheduler", Status: models.MatchScheduled}
	require.NoError(t, db.Create(&m).Error)
	require.NoError(t, db.Create(&models.MatchParticipant{MatchID: m.ID, TeamID: "team-a"}).Error)
	require.NoError(t, db.Create(&models.MatchParticipant{MatchID: m.ID, TeamID: "team-b"}).Error)

	w := doForm(router, http.MethodPost, "/auth/matches/"+m.ID+"/invitations",
		schedulerToken, url.Values{"team_id": {"team-gamma"}})
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	db.Model(&models.MatchInvitation{}).Where("match_id = ?", m.ID).Count(&count)
	assert.Zero(t, count)
}

func TestInviteTeamRejectsFinishedMatch(t *testing.T) {
	t.Setenv("KEY", "test-secret")
	db := newTestDB(t)
	router := invitationRouter(db)

	schedulerToken := seedAccount(t, db, "scheduler")
	seedAccount(t, db, "alpha_owner")
	require.NoError(t, db.Create(&models.Game{ID: "cod", Name: "Call of Duty"}).Error)
	seedTeam(t, db, "team-alpha", "Alpha Squad", "alpha_owner")

	m := models.Match{GameID: "cod", CreatorUsername: "scheduler", Status: models.MatchCompleted}
	require.NoError(t, db.Create(&m).Error)

	w := doForm(router, http.MethodPost, "/auth/matches/"+m.ID+"/invitations",
		schedulerToken, url.Values{"team_id": {"team-alpha"}})
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	db.Model(&models.MatchInvitation{}).Where("match_id = ?", m.ID).Count(&count)
	assert.Zero(t, count)
}

func TestExpiredInvitationCannotBeAccepted(t *testing.T) {
	t.Setenv("KEY", "test-secret")
	db := newTestDB(t)
	router := invitationRouter(db)

	seedAccount(t, db, "scheduler")
	ownerToken := seedAccount(t, db, "alpha_owner")
	require.NoError(t, db.Create(&models.Game{ID: "cod", Name: "Call of Duty"}).Error)
	seedTeam(t, db, "team-alpha", "Alpha Squad", "alpha_owner")

	m := models.Match{GameID: "cod", CreatorUsername: "scheduler", Status: models.MatchScheduled}
	require.NoError(t, db.Create(&m).Error)

	invitation := models.MatchInvitation{
		MatchID: m.ID, TeamID: "team-alpha", InviterUsername: "scheduler",
		Status:             models.InvitationPending,
		AcceptanceDeadline: time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&invitation).Error)

	w := doForm(router, http.MethodPost, "/auth/invitations/"+invitation.ID+"/accept",
		ownerToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Expiry never mutates the row
	var stored models.MatchInvitation
	require.NoError(t, db.First(&stored, "id = ?", invitation.ID).Error)
	assert.Equal(t, models.InvitationPending, stored.Status)
}

func TestDeclineRequiresTeamRole(t *testing.T) {
	t.Setenv("KEY", "test-secret")
	db := newTestDB(t)
	router := invitationRouter(db)

	seedAccount(t, db, "scheduler")
	seedAccount(t, db, "alpha_owner")
	strangerToken := seedAccount(t, db, "stranger")
	require.NoError(t, db.Create(&models.Game{ID: "cod", Name: "Call of Duty"}).Error)
	seedTeam(t, db, "team-alpha", "Alpha Squad", "alpha_owner")

	m := models.Match{GameID: "cod", CreatorUsername: "scheduler", Status: models.MatchScheduled}
	require.NoError(t, db.Create(&m).Error)

	invitation := models.MatchInvitation{
		MatchID: m.ID, TeamID: "team-alpha", InviterUsername: "scheduler",
		Status: models.InvitationPending,
	}
	require.NoError(t, db.Create(&invitation).Error)

	w := doForm(router, http.MethodPost, "/auth/invitations/"+invitation.ID+"/decline",
		strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
