package gameapi

import (
	"net/url"
	"os"
)

// SteamClient talks to the Steam Web API. Steam passes the key as a query
// parameter instead of a header
type SteamClient struct {
	baseClient
}

func NewSteamClient() *SteamClient {
	return &SteamClient{
		baseClient: newBaseClient(
			"https://api.steampowered.com",
			os.Getenv("STEAM_API_KEY"),
			"",
		),
	}
}

func (c *SteamClient) withKey(extra url.Values) url.Values {
	if extra == nil {
		extra = url.Values{}
	}
	if c.apiKey != "" {
		extra.Set("key", c.apiKey)
	}
	return extra
}

func (c *SteamClient) GetPlayerProfile(playerID string) Response {
	return c.get("/ISteamUser/GetPlayerSummaries/v2/",
		c.withKey(url.Values{"steamids": {playerID}}))
}

func (c *SteamClient) GetPlayerStats(playerID string) Response {
	return c.get("/ISteamUserStats/GetUserStatsForGame/v2/",
		c.withKey(url.Values{"steamid": {playerID}, "appid": {"730"}}))
}

func (c *SteamClient) GetRecentMatches(playerID string) Response {
	return c.get("/IPlayerService/GetRecentlyPlayedGames/v1/",
		c.withKey(url.Values{"steamid": {playerID}}))
}

func (c *SteamClient) GetLeaderboard(region string) Response {
	return c.get("/ISteamUserStats/GetGlobalStatsForGame/v1/",
		c.withKey(url.Values{"appid": {"730"}}))
}

func (c *SteamClient) SearchPlayer(query string) Response {
	return c.get("/ISteamUser/ResolveVanityURL/v1/",
		c.withKey(url.Values{"vanityurl": {query}}))
}
