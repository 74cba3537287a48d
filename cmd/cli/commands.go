package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	recordA      string
	recordB      string
	recordWinner string
	recordGroup  string
	recordStatus string
	fetchDays    int
)

func init() {
	recordCmd.Flags().StringVar(&recordA, "a", "", "Player id of the first side")
	recordCmd.Flags().StringVar(&recordB, "b", "", "Player id of the second side")
	recordCmd.Flags().StringVar(&recordWinner, "winner", "", "Player id of the winner, empty for no winner")
	recordCmd.Flags().StringVar(&recordGroup, "group", "", "Group the match was played in")
	recordCmd.Flags().StringVar(&recordStatus, "status", "FINISHED", "Match status")
	_ = recordCmd.MarkFlagRequired("a")
	_ = recordCmd.MarkFlagRequired("b")
	_ = recordCmd.MarkFlagRequired("group")

	fetchCmd.Flags().IntVar(&fetchDays, "days", 1, "Import matches played in the last N days")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(ladderCmd)
	rootCmd.AddCommand(rankingCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(transitionsCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/health", nil)
	},
}

var ladderCmd = &cobra.Command{
	Use:   "ladder",
	Short: "Show the rankings of every group",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/api/v1/rankings/all", nil)
	},
}

var rankingCmd = &cobra.Command{
	Use:   "ranking <groupID>",
	Short: "Show the ranking of a single group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/api/v1/rankings/group/"+url.PathEscape(args[0]), nil)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <playerID>",
	Short: "Show the promotions and demotions of a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/api/v1/players/"+url.PathEscape(args[0])+"/history", nil)
	},
}

var transitionsCmd = &cobra.Command{
	Use:   "transitions [groupID]",
	Short: "Run the ladder transitions for every group, or a single one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return performRequest("POST", "/api/v1/groups/"+url.PathEscape(args[0])+"/process-transition", nil)
		}
		return performRequest("POST", "/api/v1/groups/process-transitions", nil)
	},
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a match result",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("POST", "/api/v1/games", map[string]string{
			"player1_id": recordA,
			"player2_id": recordB,
			"winner_id":  recordWinner,
			"group_id":   recordGroup,
			"status":     recordStatus,
		})
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Import finished singles matches from Playtomic",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("POST", "/fetch?days="+strconv.Itoa(fetchDays), nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest("GET", "/metrics", nil)
	},
}

func performRequest(method, endpoint string, payload any) error {
	target, err := url.Parse(host + endpoint)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if dryRun {
		q := target.Query()
		q.Set("dry_run", "true")
		target.RawQuery = q.Encode()
	}
	fmt.Printf("Making request to %s\n", target)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, target.String(), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
