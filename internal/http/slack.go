package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ratings/internal/dashboard"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		// Non-Slack notifiers still answer with plain JSON.
		writeJSON(w, http.StatusOK, msg)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(slackMsg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lb, err := s.Dashboard.Leaderboard(r.Context())
		if err != nil {
			writeError(w, "Failed to build leaderboard", err)
			return
		}
		msg, err := s.Notifier.FormatLeaderboardResponse(lb)
		if err != nil {
			writeError(w, "Failed to format leaderboard", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

func (s *Server) PlayerStatsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		playerName := strings.Join(strings.Fields(r.FormValue("text")), " ")
		if playerName == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received player stats command", "player", playerName)
		profile, err := s.Dashboard.Player(r.Context(), playerName)
		var msg any
		switch {
		case errors.Is(err, dashboard.ErrPlayerNotFound):
			msg, err = s.Notifier.FormatPlayerNotFoundResponse(playerName)
		case err != nil:
			writeError(w, "Failed to load player", err)
			return
		default:
			msg, err = s.Notifier.FormatPlayerStatsResponse(profile)
		}
		if err != nil {
			writeError(w, "Failed to format player stats", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}
