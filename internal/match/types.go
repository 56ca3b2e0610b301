package match

import "time"

// Side identifies one of the two teams in a match.
type Side int

const (
	Team1 Side = 1
	Team2 Side = 2
)

// DateLayout is the calendar date format used in rows and CSV files.
const DateLayout = "2006-01-02"

// Source records where a match entered the history.
type Source string

const (
	SourceManual    Source = "manual"
	SourceCSV       Source = "csv"
	SourcePlaytomic Source = "playtomic"
)

// Team is a doubles pair. Player names are the player identity.
type Team struct {
	A string `json:"a" msgpack:"a"`
	B string `json:"b" msgpack:"b"`
}

// Players returns both members of the team.
func (t Team) Players() [2]string {
	return [2]string{t.A, t.B}
}

// Has reports whether the named player is on the team.
func (t Team) Has(player string) bool {
	return t.A == player || t.B == player
}

// SetScore holds the games won by each team in one set.
type SetScore struct {
	Team1 int `json:"team1" msgpack:"team1"`
	Team2 int `json:"team2" msgpack:"team2"`
}

// Margin is the absolute game difference of the set.
func (s SetScore) Margin() int {
	if s.Team1 > s.Team2 {
		return s.Team1 - s.Team2
	}
	return s.Team2 - s.Team1
}

// Record is one played 2v2 match. Sets always holds two or three entries.
type Record struct {
	ID         string     `json:"id,omitempty" msgpack:"id"`
	ExternalID string     `json:"external_id,omitempty" msgpack:"external_id"`
	Source     Source     `json:"source,omitempty" msgpack:"source"`
	Date       time.Time  `json:"date" msgpack:"date"`
	Team1      Team       `json:"team1" msgpack:"team1"`
	Team2      Team       `json:"team2" msgpack:"team2"`
	Sets       []SetScore `json:"sets" msgpack:"sets"`
	Winner     Side       `json:"winner_team" msgpack:"winner_team"`
}

// Winners returns the team that won the match.
func (r Record) Winners() Team {
	if r.Winner == Team1 {
		return r.Team1
	}
	return r.Team2
}

// Losers returns the team that lost the match.
func (r Record) Losers() Team {
	if r.Winner == Team1 {
		return r.Team2
	}
	return r.Team1
}

// Players returns all four players, team 1 first.
func (r Record) Players() [4]string {
	return [4]string{r.Team1.A, r.Team1.B, r.Team2.A, r.Team2.B}
}

// Form is the caller supplied input for a new match. Scores are raw strings
// as they arrive from a form or JSON body; the winner is never supplied.
type Form struct {
	Date         string `json:"date"`
	Team1Player1 string `json:"team1_player1"`
	Team1Player2 string `json:"team1_player2"`
	Team2Player1 string `json:"team2_player1"`
	Team2Player2 string `json:"team2_player2"`
	Set1Team1    string `json:"set1_team1"`
	Set1Team2    string `json:"set1_team2"`
	Set2Team1    string `json:"set2_team1"`
	Set2Team2    string `json:"set2_team2"`
	Set3Team1    string `json:"set3_team1"`
	Set3Team2    string `json:"set3_team2"`
}

// Row is the flat string representation shared by the store and CSV files.
// Missing optional set fields are empty strings.
type Row struct {
	Date         string
	Team1Player1 string
	Team1Player2 string
	Team2Player1 string
	Team2Player2 string
	Set1Team1    string
	Set1Team2    string
	Set2Team1    string
	Set2Team2    string
	Set3Team1    string
	Set3Team2    string
	WinnerTeam   string
}
