package playtomic

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rafa-garcia/go-playtomic-api/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matchJSON = `{
	"owner_id": "user-1",
	"start_date": "2025-07-09T18:00:00",
	"end_date": "2025-07-09T19:30:00",
	"game_status": "PLAYED",
	"results_status": "CONFIRMED",
	"resource_name": "Court 1",
	"tenant": { "tenant_id": "tenant-abc", "tenant_name": "Padel Club" },
	"teams": [
		{ "team_id": "t1", "players": [
			{ "user_id": "user-1", "name": "Ana" },
			{ "user_id": "user-2", "name": "Bea" }
		]},
		{ "team_id": "t2", "players": [
			{ "user_id": "user-3", "name": "Cris" },
			{ "user_id": "user-4", "name": "Dani" }
		]}
	],
	"results": [
		{ "name": "Set-1", "scores": [ { "team_id": "t1", "score": 6 }, { "team_id": "t2", "score": 3 } ] },
		{ "name": "Set-2", "scores": [ { "team_id": "t2", "score": 6 }, { "team_id": "t1", "score": 7 } ] }
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &APIClient{
		httpClient: server.Client(),
		apiClient:  client.NewClient(),
		BaseURL:    server.URL,
	}
}

func TestGetSpecificMatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/matches/match-abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, matchJSON)
	})

	m, err := c.GetSpecificMatch(context.Background(), "match-abc")
	require.NoError(t, err)
	assert.Equal(t, "match-abc", m.MatchID)
	assert.Equal(t, GameStatusPlayed, m.GameStatus)
	assert.Equal(t, ResultsStatusConfirmed, m.ResultsStatus)
	assert.Equal(t, "Padel Club", m.Tenant.Name)
	require.Len(t, m.Teams, 2)
	assert.Equal(t, "Cris", m.Teams[1].Players[0].Name)
	require.Len(t, m.Results, 2)
	assert.Equal(t, 7, m.Results[1].Scores["t1"])
	assert.Equal(t, time.Date(2025, time.July, 9, 19, 30, 0, 0, time.UTC).Unix(), m.End)
}

func TestGetSpecificMatchErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})

	_, err := c.GetSpecificMatch(context.Background(), "missing")
	assert.ErrorContains(t, err, "404")
}

func TestGetSpecificMatchUnknownStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"start_date":"2025-07-09T18:00:00","end_date":"2025-07-09T19:30:00","game_status":"SOMETHING"}`)
	})

	m, err := c.GetSpecificMatch(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, GameStatusUnknown, m.GameStatus)
}
