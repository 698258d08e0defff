package controllers

import (
	"Scrimhub/services/gameapi"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// providerFor picks the external stat provider for a request
func providerFor(name string) gameapi.Client {
	switch name {
	case "steam":
		return gameapi.NewSteamClient()
	case "riot", "":
		return gameapi.NewRiotClient()
	default:
		return nil
	}
}

// writeProviderResponse maps the normalized provider envelope onto the HTTP
// response, never leaking provider-specific errors verbatim
func writeProviderResponse(c *gin.Context, resp gameapi.Response) {
	if resp.Error != "" {
		status := http.StatusBadGateway
		if resp.Status == http.StatusNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "Provider lookup failed"})
		return
	}
	c.Data(http.StatusOK, "application/json", resp.Data)
}

// @Summary Look up a player's profile on an external game API
// @Description Proxies Riot/Steam lookups behind a normalized envelope
// @Tags players
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param provider query string false "riot (default) or steam"
// @Param player_id path string true "Provider player id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} object{error=string}
// @Failure 502 {object} object{error=string}
// @Router /auth/players/{player_id}/profile [get]
// @Security ApiKeyAuth
func LookupPlayerProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c, db); !ok {
			return
		}
		provider := providerFor(c.Query("provider"))
		if provider == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown provider"})
			return
		}
		writeProviderResponse(c, provider.GetPlayerProfile(c.Param("player_id")))
	}
}

// @Summary Look up a player's external match history
// @Tags players
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param provider query string false "riot (default) or steam"
// @Param player_id path string true "Provider player id"
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} object{error=string}
// @Router /auth/players/{player_id}/recent_matches [get]
// @Security ApiKeyAuth
func LookupRecentMatches(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUser(c, db); !ok {
			return
		}
		provider := providerFor(c.Query("provider"))
		if provider == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown provider"})
			return
		}
		writeProviderResponse(c, provider.GetRecentMatches(c.Param("player_id")))
	}
}
