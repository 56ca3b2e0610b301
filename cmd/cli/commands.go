package main

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	syncDays   int
	exportFile string
	historyFor string
)

func init() {
	syncCmd.Flags().IntVar(&syncDays, "days", 1, "How many days back to fetch Playtomic matches")
	exportCmd.Flags().StringVarP(&exportFile, "out", "o", "", "Write the CSV to this file instead of stdout")
	eloCmd.Flags().StringVar(&historyFor, "history", "", "Show the rating history of this player")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(eloCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/health", nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the skill leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/api/leaderboard", nil)
	},
}

var eloCmd = &cobra.Command{
	Use:   "elo",
	Short: "Show Elo ratings, or one player's rating history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyFor != "" {
			return performGetRequest(cmd.OutOrStdout(), "/api/elo/history", url.Values{"player": {historyFor}})
		}
		return performGetRequest(cmd.OutOrStdout(), "/api/elo", nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per player win/loss statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/api/stats", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/metrics", nil)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the match history as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(host + "/export")
		if err != nil {
			return fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("export failed with status %d", resp.StatusCode)
		}

		out := cmd.OutOrStdout()
		if exportFile != "" {
			f, err := os.Create(exportFile)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		_, err = io.Copy(out, resp.Body)
		return err
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Replace the match history with a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("csv_file", filepath.Base(args[0]))
		if err != nil {
			return err
		}
		if _, err := part.Write(data); err != nil {
			return err
		}
		if err := mw.Close(); err != nil {
			return err
		}
		return performPostRequest(cmd.OutOrStdout(), "/import", nil, mw.FormDataContentType(), &body)
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch recent matches from Playtomic",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest(cmd.OutOrStdout(), "/sync", url.Values{"days": {strconv.Itoa(syncDays)}}, "", nil)
	},
}

func endpointURL(endpoint string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	if dryRun {
		query.Set("dry_run", "true")
	}
	u := host + endpoint
	if encoded := query.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

func performGetRequest(w io.Writer, endpoint string, query url.Values) error {
	u := endpointURL(endpoint, query)
	fmt.Fprintf(w, "Making request to %s\n", u)

	resp, err := http.Get(u)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	return printResponse(w, resp)
}

func performPostRequest(w io.Writer, endpoint string, query url.Values, contentType string, body io.Reader) error {
	u := endpointURL(endpoint, query)
	fmt.Fprintf(w, "Making request to %s\n", u)

	resp, err := http.Post(u, contentType, body)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	return printResponse(w, resp)
}

func printResponse(w io.Writer, resp *http.Response) error {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Fprintf(w, "Status Code: %d\n", resp.StatusCode)
	fmt.Fprintln(w, "Response Body:")
	fmt.Fprintln(w, string(body))
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return nil
}
