package playtomic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rafa-garcia/go-playtomic-api/client"
	"github.com/rafa-garcia/go-playtomic-api/models"
)

const (
	defaultBaseURL = "https://api.playtomic.io"
	timeLayout     = "2006-01-02T15:04:05"
	pageSize       = 300
)

// APIClient implements PlaytomicClient. Searches go through the go-playtomic-api
// client; match details are fetched directly because the library model does
// not carry per-set results.
type APIClient struct {
	httpClient *http.Client
	apiClient  *client.Client
	BaseURL    string
}

var _ PlaytomicClient = (*APIClient)(nil)

// NewClient creates a Playtomic client with the given request timeout and retry count.
func NewClient(timeout time.Duration, retries int) *APIClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: timeout},
		apiClient: client.NewClient(
			client.WithTimeout(timeout),
			client.WithRetries(retries),
		),
		BaseURL: defaultBaseURL,
	}
}

// GetMatches pages through the search results for params.
func (c *APIClient) GetMatches(ctx context.Context, params *SearchMatchesParams) ([]MatchSummary, error) {
	var (
		allMatches []MatchSummary
		page       = 0
	)

	for {
		externalParams := &models.SearchMatchesParams{
			SportID:       params.SportID,
			HasPlayers:    params.HasPlayers,
			Sort:          params.Sort,
			TenantIDs:     params.TenantIDs,
			FromStartDate: params.FromStartDate,
			Size:          pageSize,
			Page:          page,
		}

		log.Debug("Fetching matches from Playtomic API", "params", externalParams)
		matches, err := c.apiClient.GetMatches(ctx, externalParams)
		if err != nil {
			return nil, fmt.Errorf("error fetching matches from playtomic api: %w", err)
		}

		for _, m := range matches {
			allMatches = append(allMatches, MatchSummary{
				MatchID: m.MatchID,
				OwnerID: m.OwnerID,
			})
		}

		if len(matches) < pageSize {
			break
		}
		page++
	}
	log.Info("Fetched matches from Playtomic", "count", len(allMatches), "pages", page+1)
	return allMatches, nil
}

// GetSpecificMatch fetches a specific match by its ID.
func (c *APIClient) GetSpecificMatch(ctx context.Context, matchID string) (PadelMatch, error) {
	url := fmt.Sprintf("%s/v1/matches/%s", c.BaseURL, matchID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return PadelMatch{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "PadelRatings/1.0")

	log.Debug("Requesting specific match from Playtomic API", "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return PadelMatch{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from Playtomic API", "status", resp.StatusCode, "body", string(body))
		return PadelMatch{}, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	var matchResponse playtomicMatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&matchResponse); err != nil {
		return PadelMatch{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return toPadelMatch(matchID, matchResponse)
}

func toPadelMatch(matchID string, r playtomicMatchResponse) (PadelMatch, error) {
	start, err := time.Parse(timeLayout, r.StartDate)
	if err != nil {
		return PadelMatch{}, fmt.Errorf("failed to parse start time: %w", err)
	}
	end, err := time.Parse(timeLayout, r.EndDate)
	if err != nil {
		return PadelMatch{}, fmt.Errorf("failed to parse end time: %w", err)
	}

	m := PadelMatch{
		MatchID:       matchID,
		OwnerID:       r.OwnerID,
		Start:         start.Unix(),
		End:           end.Unix(),
		GameStatus:    GameStatus(r.GameStatus),
		ResultsStatus: ResultsStatus(r.ResultsStatus),
		ResourceName:  r.ResourceName,
		Tenant:        Tenant{ID: r.Tenant.ID, Name: r.Tenant.Name},
	}
	switch m.GameStatus {
	case GameStatusPending, GameStatusPlayed, GameStatusCanceled, GameStatusWaitingFor, GameStatusExpired, GameStatusInProgress:
	default:
		log.Warn("Unknown game status received from Playtomic API", "status", r.GameStatus, "matchID", matchID)
		m.GameStatus = GameStatusUnknown
	}

	for _, rt := range r.Teams {
		t := Team{ID: rt.TeamID}
		for _, rp := range rt.Players {
			t.Players = append(t.Players, Player{UserID: rp.UserID, Name: rp.Name})
		}
		m.Teams = append(m.Teams, t)
	}
	for _, rr := range r.Results {
		set := SetResult{Name: rr.Name, Scores: make(map[string]int, len(rr.Scores))}
		for _, s := range rr.Scores {
			set.Scores[s.TeamID] = s.Score
		}
		m.Results = append(m.Results, set)
	}
	return m, nil
}
