package playtomic

import "errors"

// ErrNotRateable marks a match that cannot enter the rating history:
// not played, results unconfirmed, or not a complete doubles match.
var ErrNotRateable = errors.New("match is not a played doubles match with confirmed results")

// SearchMatchesParams defines the parameters for searching for matches.
type SearchMatchesParams struct {
	SportID       string
	HasPlayers    bool
	Sort          string
	TenantIDs     []string
	FromStartDate string
}

// MatchSummary contains the essential details of a match from a search result.
type MatchSummary struct {
	MatchID string
	OwnerID *string
}

// PadelMatch holds the parts of a Playtomic match the rating history needs.
type PadelMatch struct {
	MatchID       string
	OwnerID       string
	Start         int64
	End           int64
	GameStatus    GameStatus
	ResultsStatus ResultsStatus
	Teams         []Team
	Results       []SetResult
	ResourceName  string
	Tenant        Tenant
}

// GameStatus defines the status of a game.
type GameStatus string

const (
	GameStatusPending    GameStatus = "PENDING"
	GameStatusPlayed     GameStatus = "PLAYED"
	GameStatusUnknown    GameStatus = "UNKNOWN"
	GameStatusCanceled   GameStatus = "CANCELED"
	GameStatusWaitingFor GameStatus = "WAITING_FOR"
	GameStatusExpired    GameStatus = "EXPIRED"
	GameStatusInProgress GameStatus = "IN_PROGRESS"
)

// ResultsStatus defines the status of the match results.
type ResultsStatus string

const (
	ResultsStatusPending    ResultsStatus = "PENDING"
	ResultsStatusConfirmed  ResultsStatus = "CONFIRMED"
	ResultsStatusInvalid    ResultsStatus = "INVALID"
	ResultsStatusNotAllowed ResultsStatus = "NOT_ALLOWED"
	ResultsStatusExpired    ResultsStatus = "EXPIRED"
	ResultsStatusCanceled   ResultsStatus = "CANCELED"
	ResultsStatusWaitingFor ResultsStatus = "WAITING_FOR"
	ResultsStatusValidating ResultsStatus = "VALIDATING"
)

// Team represents a team in a match.
type Team struct {
	ID      string
	Players []Player
}

// Player represents a player in a match.
type Player struct {
	UserID string
	Name   string
}

// SetResult holds the games per team id for one set.
type SetResult struct {
	Name   string
	Scores map[string]int
}

// Tenant represents a Playtomic tenant (club).
type Tenant struct {
	ID   string
	Name string
}

type playtomicMatchResponse struct {
	OwnerID       string                  `json:"owner_id"`
	StartDate     string                  `json:"start_date"`
	EndDate       string                  `json:"end_date"`
	GameStatus    string                  `json:"game_status"`
	Teams         []playtomicTeamResponse `json:"teams"`
	Results       []playtomicResult       `json:"results"`
	ResultsStatus string                  `json:"results_status"`
	ResourceName  string                  `json:"resource_name"`
	Tenant        playtomicTenant         `json:"tenant"`
}

type playtomicResult struct {
	Name   string               `json:"name"`
	Scores []playtomicTeamScore `json:"scores"`
}

type playtomicTeamScore struct {
	TeamID string `json:"team_id"`
	Score  int    `json:"score"`
}

type playtomicTenant struct {
	ID   string `json:"tenant_id"`
	Name string `json:"tenant_name"`
}

type playtomicTeamResponse struct {
	TeamID  string                    `json:"team_id"`
	Players []playtomicPlayerResponse `json:"players"`
}

type playtomicPlayerResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}
