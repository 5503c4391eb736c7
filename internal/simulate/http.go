package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTP status code constants.
const (
	statusOK      = 200
	statusCreated = 201
)

// Worker configuration constants.
const (
	workerChannelMultiplier = 2
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// decodeResponse reads the body and decodes JSON into v, expecting status.
func decodeResponse(resp *http.Response, wantStatus int, v interface{}) error {
	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != wantStatus {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// seedRoster registers the generated players concurrently.
func seedRoster(ctx context.Context, config *Config, roster []Player, stats *Stats) error {
	log.Printf("Seeding %d players with %d workers...", len(roster), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/players"

	var seeded, failed int64

	playerChan := make(chan Player, config.Workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range playerChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				resp, err := client.Post(ctx, url, map[string]interface{}{
					"name":   p.Name,
					"rating": p.Rating,
					"tags":   p.Tags,
				})
				if err != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				if err := decodeResponse(resp, statusCreated, nil); err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Printf("seed %s failed: %v", p.Name, err)
					}
					continue
				}
				atomic.AddInt64(&seeded, 1)
			}
		}()
	}

	go func() {
		defer close(playerChan)
		for _, p := range roster {
			select {
			case <-ctx.Done():
				return
			case playerChan <- p:
			}
		}
	}()

	wg.Wait()

	stats.PlayersSeeded = int(atomic.LoadInt64(&seeded))
	if failed > 0 {
		return fmt.Errorf("failed to seed %d of %d players", failed, len(roster))
	}
	log.Printf("Seeded %d players", stats.PlayersSeeded)
	return nil
}

// balancePool asks the service to split a matchday pool.
func balancePool(ctx context.Context, client *HTTPClient, config *Config, pool []PoolPlayer) (*BalanceResult, error) {
	resp, err := client.Post(ctx, config.BaseURL+"/balance", map[string]interface{}{
		"pool": pool,
	})
	if err != nil {
		return nil, fmt.Errorf("balance request failed: %w", err)
	}
	var result BalanceResult
	if err := decodeResponse(resp, statusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// recordMatch submits a match result.
func recordMatch(ctx context.Context, client *HTTPClient, config *Config, submission map[string]interface{}) (*MatchAck, error) {
	resp, err := client.Post(ctx, config.BaseURL+"/matches", submission)
	if err != nil {
		return nil, fmt.Errorf("match submission failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != statusCreated && resp.StatusCode != statusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	var ack MatchAck
	if err := json.Unmarshal(body, &ack); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &ack, nil
}

// fetchRoster retrieves the current roster.
func fetchRoster(ctx context.Context, client *HTTPClient, config *Config) ([]Player, error) {
	resp, err := client.Get(ctx, config.BaseURL+"/players")
	if err != nil {
		return nil, fmt.Errorf("roster request failed: %w", err)
	}
	var players []Player
	if err := decodeResponse(resp, statusOK, &players); err != nil {
		return nil, err
	}
	return players, nil
}

// fetchMatches retrieves the full match history.
func fetchMatches(ctx context.Context, client *HTTPClient, config *Config) ([]Match, error) {
	resp, err := client.Get(ctx, config.BaseURL+"/matches")
	if err != nil {
		return nil, fmt.Errorf("matches request failed: %w", err)
	}
	var matches []Match
	if err := decodeResponse(resp, statusOK, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// getLeaderboard retrieves the top N leaderboard entries.
func getLeaderboard(ctx context.Context, config *Config, stats *Stats) ([]Entry, error) {
	client := newHTTPClient(config.Timeout)
	url := fmt.Sprintf("%s/leaderboard?limit=%d", config.BaseURL, config.TopN)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("leaderboard request failed: %w", err)
	}
	var entries []Entry
	if err := decodeResponse(resp, statusOK, &entries); err != nil {
		return nil, err
	}
	stats.LeaderboardEntries = len(entries)
	return entries, nil
}

// retrieveRanks fetches per-player rank entries concurrently.
func retrieveRanks(ctx context.Context, config *Config, roster []Player) (map[string]Entry, error) {
	log.Printf("Retrieving ranks for %d players with %d workers...", len(roster), config.Workers)

	client := newHTTPClient(config.Timeout)

	type rankResult struct {
		entry Entry
		err   error
	}

	nameChan := make(chan string, config.Workers*workerChannelMultiplier)
	resultChan := make(chan rankResult, len(roster))
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range nameChan {
				resp, err := client.Get(ctx, config.BaseURL+"/rank/"+name)
				if err != nil {
					resultChan <- rankResult{err: err}
					continue
				}
				var entry Entry
				if err := decodeResponse(resp, statusOK, &entry); err != nil {
					resultChan <- rankResult{err: err}
					continue
				}
				resultChan <- rankResult{entry: entry}
			}
		}()
	}

	go func() {
		defer close(nameChan)
		for _, p := range roster {
			select {
			case <-ctx.Done():
				return
			case nameChan <- p.Name:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	ranks := make(map[string]Entry, len(roster))
	for result := range resultChan {
		if result.err != nil {
			return nil, fmt.Errorf("rank retrieval failed: %w", result.err)
		}
		ranks[result.entry.Name] = result.entry
	}
	return ranks, nil
}
