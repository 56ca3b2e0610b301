package http

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ratings/internal/club"
	"github.com/mauv0809/padel-ratings/internal/csvio"
	"github.com/mauv0809/padel-ratings/internal/dashboard"
	"github.com/mauv0809/padel-ratings/internal/match"
	"github.com/mauv0809/padel-ratings/internal/processor"
	"github.com/mauv0809/padel-ratings/internal/pubsub"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := s.Dashboard.Build(r.Context())
		if err != nil {
			writeError(w, "Failed to build dashboard", err)
			return
		}
		writeJSON(w, http.StatusOK, data)
	}
}

func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lb, err := s.Dashboard.Leaderboard(r.Context())
		if err != nil {
			writeError(w, "Failed to build leaderboard", err)
			return
		}
		writeJSON(w, http.StatusOK, lb)
	}
}

func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aggregates, err := s.Dashboard.Stats(r.Context())
		if err != nil {
			writeError(w, "Failed to compute stats", err)
			return
		}
		writeJSON(w, http.StatusOK, aggregates)
	}
}

func (s *Server) EloHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ratings, err := s.Dashboard.Elo(r.Context())
		if err != nil {
			writeError(w, "Failed to compute Elo ratings", err)
			return
		}
		writeJSON(w, http.StatusOK, ratings)
	}
}

func (s *Server) EloHistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		history, err := s.Dashboard.EloHistory(r.Context(), r.URL.Query().Get("player"))
		if err != nil {
			writeError(w, "Failed to compute Elo history", err)
			return
		}
		writeJSON(w, http.StatusOK, history)
	}
}

func (s *Server) SkillHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ratings, err := s.Dashboard.Skill(r.Context())
		if err != nil {
			writeError(w, "Failed to compute skill ratings", err)
			return
		}
		writeJSON(w, http.StatusOK, ratings)
	}
}

func (s *Server) PartnershipsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minMatches := dashboard.DefaultOptions().MinPartnershipMatches
		if v := r.URL.Query().Get("min"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				http.Error(w, "min must be a positive integer", http.StatusBadRequest)
				return
			}
			minMatches = n
		}
		partnerships, err := s.Dashboard.Partnerships(r.Context(), minMatches)
		if err != nil {
			writeError(w, "Failed to compute partnerships", err)
			return
		}
		writeJSON(w, http.StatusOK, partnerships)
	}
}

func (s *Server) PlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := s.Dashboard.Player(r.Context(), r.PathValue("name"))
		if err != nil {
			writeError(w, "Failed to load player", err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

func (s *Server) CountersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.Counters.GetAll()
		if err != nil {
			writeError(w, "Failed to load counters", err)
			return
		}
		writeJSON(w, http.StatusOK, counters)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Store.GetMatches(r.Context())
		if err != nil {
			writeError(w, "Failed to get matches", err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

// AddMatchHandler records a match submitted as JSON or as form values.
func (s *Server) AddMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := decodeForm(r)
		if err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		recorded, err := s.Processor.RecordMatch(r.Context(), form, isDryRunFromContext(r))
		if err != nil {
			writeError(w, "Failed to record match", err)
			return
		}
		status := http.StatusCreated
		if recorded.DryRun {
			status = http.StatusOK
		}
		writeJSON(w, status, recorded)
	}
}

func (s *Server) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Store.GetMatches(r.Context())
		if err != nil {
			writeError(w, "Failed to get matches", err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="matches.csv"`)
		if err := csvio.Encode(w, matches); err != nil {
			log.Error("Failed to write CSV export", "error", err)
		}
	}
}

// ImportHandler replaces the history with the uploaded csv_file.
func (s *Server) ImportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "Expected a multipart form upload", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("csv_file")
		if err != nil {
			http.Error(w, "Missing csv_file", http.StatusBadRequest)
			return
		}
		defer file.Close()

		log.Info("Importing match history", "file", header.Filename, "size", header.Size)
		n, err := s.Processor.ImportCSV(r.Context(), file, isDryRunFromContext(r))
		if err != nil {
			writeError(w, "Failed to import matches", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"imported": n, "dry_run": isDryRunFromContext(r)})
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would clear matches", "matchID", matchID)
			fmt.Fprint(w, "Dry run, nothing cleared.")
			return
		}
		if matchID != "" {
			log.Info("Received request to clear a specific match", "matchID", matchID)
			if err := s.Store.ClearMatch(r.Context(), matchID); err != nil {
				writeError(w, "Failed to clear match", err)
				return
			}
			fmt.Fprintf(w, "Cleared match %s from store!", matchID)
			return
		}
		log.Info("Received request to clear entire store")
		if err := s.Store.Clear(r.Context()); err != nil {
			writeError(w, "Failed to clear store", err)
			return
		}
		fmt.Fprint(w, "Store cleared!")
	}
}

func (s *Server) SyncHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := defaultSyncDays
		if v := r.URL.Query().Get("days"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "days must be an integer", http.StatusBadRequest)
				return
			}
			days = n
		}
		result, err := s.Processor.SyncPlaytomic(r.Context(), days, isDryRunFromContext(r))
		if err != nil {
			writeError(w, "Failed to sync Playtomic matches", err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// MatchRecordedHandler is the push endpoint of the match-recorded subscription.
func (s *Server) MatchRecordedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := pubsub.DecodePush(r.Body)
		if err != nil {
			log.Error("Failed to decode push message", "error", err)
			http.Error(w, "Invalid push message", http.StatusBadRequest)
			return
		}
		var event pubsub.MatchRecorded
		if err := s.PubSub.ProcessMessage(raw, &event); err != nil {
			http.Error(w, "Invalid message data", http.StatusBadRequest)
			return
		}
		if err := s.Processor.HandleMatchRecorded(r.Context(), event, isDryRunFromContext(r)); err != nil {
			writeError(w, "Failed to handle match-recorded event", err)
			return
		}
		w.Write([]byte("OK"))
	}
}

// decodeForm reads a match form from a JSON body or from form values.
func decodeForm(r *http.Request) (match.Form, error) {
	var form match.Form
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&form)
		return form, err
	}
	if err := r.ParseForm(); err != nil {
		return form, err
	}
	form = match.Form{
		Date:         r.FormValue("date"),
		Team1Player1: r.FormValue("team1_player1"),
		Team1Player2: r.FormValue("team1_player2"),
		Team2Player1: r.FormValue("team2_player1"),
		Team2Player2: r.FormValue("team2_player2"),
		Set1Team1:    r.FormValue("set1_team1"),
		Set1Team2:    r.FormValue("set1_team2"),
		Set2Team1:    r.FormValue("set2_team1"),
		Set2Team2:    r.FormValue("set2_team2"),
		Set3Team1:    r.FormValue("set3_team1"),
		Set3Team2:    r.FormValue("set3_team2"),
	}
	return form, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode JSON response", "error", err)
	}
}

// writeError maps domain errors to a status code and logs server errors.
func writeError(w http.ResponseWriter, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error(msg, "error", err)
		http.Error(w, msg, status)
		return
	}
	log.Warn(msg, "error", err)
	http.Error(w, fmt.Sprintf("%s: %v", msg, err), status)
}

func statusFor(err error) int {
	var parseErr *csv.ParseError
	switch {
	case errors.Is(err, club.ErrCorruptMatch):
		return http.StatusInternalServerError
	case errors.Is(err, match.ErrInvalidScore),
		errors.Is(err, match.ErrMissingPlayer),
		errors.Is(err, match.ErrDuplicatePlayer),
		errors.Is(err, match.ErrInvalidDate),
		errors.Is(err, match.ErrInvalidWinner),
		errors.Is(err, csvio.ErrMissingColumn),
		errors.Is(err, processor.ErrInvalidDays),
		errors.As(err, &parseErr):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrPlayerNotFound),
		errors.Is(err, club.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, processor.ErrSyncDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
