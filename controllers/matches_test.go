package controllers

import (
	models "Scrimhub/models/postgres"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func matchSetupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/matches/:match_id/complete_setup", CompleteMatchSetup(db))
	return router
}

func TestCompleteSetupRejectedOnceMatchLeftScheduled(t *testing.T) {
	t.Setenv("KEY", "test-secret")
	db := newTestDB(t)
	router := matchSetupRouter(db)

	schedulerToken := seedAccount(t, db, "scheduler")
	seedAccount(t, db, "alpha_owner")
	seedAccount(t, db, "beta_owner")
	m := seedCompletedMatch(t, db)

	w := doForm(router, http.MethodPost, "/auth/matches/"+m.ID+"/complete_setup",
		schedulerToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var stored models.Match
	require.NoError(t, db.First(&stored, "id = ?", m.ID).Error)
	assert.Nil(t, stored.SetupCompletedAt)
	assert.Equal(t, models.MatchCompleted, stored.Status)
}
