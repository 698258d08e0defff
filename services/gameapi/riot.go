package gameapi

import (
	"net/url"
	"os"
)

// RiotClient talks to the Riot Games API
type RiotClient struct {
	baseClient
}

func NewRiotClient() *RiotClient {
	return &RiotClient{
		baseClient: newBaseClient(
			"https://europe.api.riotgames.com",
			os.Getenv("RIOT_API_KEY"),
			"X-Riot-Token",
		),
	}
}

func (c *RiotClient) GetPlayerProfile(playerID string) Response {
	return c.get("/riot/account/v1/accounts/by-puuid/"+url.PathEscape(playerID), nil)
}

func (c *RiotClient) GetPlayerStats(playerID string) Response {
	return c.get("/lol/league/v4/entries/by-puuid/"+url.PathEscape(playerID), nil)
}

func (c *RiotClient) GetRecentMatches(playerID string) Response {
	return c.get("/lol/match/v5/matches/by-puuid/"+url.PathEscape(playerID)+"/ids",
		url.Values{"count": {"10"}})
}

func (c *RiotClient) GetLeaderboard(region string) Response {
	return c.get("/lol/league/v4/challengerleagues/by-queue/RANKED_SOLO_5x5",
		url.Values{"region": {region}})
}

func (c *RiotClient) SearchPlayer(query string) Response {
	return c.get("/riot/account/v1/accounts/by-riot-id/"+url.PathEscape(query), nil)
}
