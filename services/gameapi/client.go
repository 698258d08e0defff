package gameapi

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

/*
 * Thin clients for external game-stat providers. Every provider implements
 * Client and answers with the same normalized envelope, so controllers never
 * see provider-specific errors. Rate limiting (HTTP 429) and transient
 * failures are retried with a fixed delay up to a configured count.
 */

// Response is the normalized provider answer: either Data or Error is set
type Response struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
	Status int             `json:"status"`
}

// Client is the surface every game-stat provider exposes
type Client interface {
	GetPlayerProfile(playerID string) Response
	GetPlayerStats(playerID string) Response
	GetRecentMatches(playerID string) Response
	GetLeaderboard(region string) Response
	SearchPlayer(query string) Response
}

const (
	defaultMaxRetries = 3
	defaultRetryDelay = 500 * time.Millisecond
)

// baseClient carries the shared request plumbing of all providers
type baseClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	authHeader string
	maxRetries int
	retryDelay time.Duration
}

func newBaseClient(baseURL, apiKey, authHeader string) baseClient {
	return baseClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		authHeader: authHeader,
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
	}
}

// retryable: rate limits and server-side failures; client errors are final
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// get performs the request, retrying transient failures. Exhausted retries
// surface as a normalized error envelope, never a panic or raw error.
func (c *baseClient) get(path string, query url.Values) Response {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastStatus int
	var lastErr string

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(c.retryDelay)
		}

		req, err := http.NewRequest(http.MethodGet, endpoint, nil)
		if err != nil {
			return Response{Error: err.Error(), Status: 0}
		}
		if c.apiKey != "" {
			req.Header.Set(c.authHeader, c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Transport error, worth another try
			lastStatus = 0
			lastErr = err.Error()
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastStatus = resp.StatusCode
			lastErr = err.Error()
			continue
		}

		if resp.StatusCode == http.StatusOK {
			return Response{Data: body, Status: resp.StatusCode}
		}

		lastStatus = resp.StatusCode
		lastErr = fmt.Sprintf("provider returned status %d", resp.StatusCode)

		if !retryable(resp.StatusCode) {
			break
		}
		log.Printf("gameapi: %s answered %d, retrying (%d/%d)", endpoint, resp.StatusCode, attempt+1, c.maxRetries)
	}

	return Response{Error: lastErr, Status: lastStatus}
}
