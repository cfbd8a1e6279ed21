// Assessrec - Hybrid Assessment Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/assessrec

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/assessrec/internal/recommend"
	"github.com/tomtom215/assessrec/internal/validation"
)

const healthTimeout = 5 * time.Second

// newRootCmd builds the command tree. Running the root without a
// subcommand serves the API.
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "server",
		Short:         "Hybrid assessment recommendation service",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	root.AddCommand(
		newServeCmd(&configPath),
		newRecommendCmd(&configPath),
		newStatsCmd(&configPath),
		newHealthCmd(&configPath),
	)
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API under the supervisor tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

// --- recommend ---

func newRecommendCmd(configPath *string) *cobra.Command {
	var (
		criteria recommend.Criteria
		userID   string
		topK     int
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Score the catalog for one set of criteria and print the result as JSON",
		Long: `Score the catalog offline against the configured store and print the
validated result as JSON.

Examples:
  server recommend --role Developer --query "python coding test"
  server recommend --level Entry-Level --goal "hiring" --top-k 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if criteria.IsEmpty() {
				return fmt.Errorf("at least one of --role, --level, --industry, --goal or --query is required")
			}
			if err := validation.GetValidator().Var(criteria.Role, "assessment_role"); err != nil {
				return fmt.Errorf("unknown role %q, want one of %s", criteria.Role, strings.Join(validation.ValidRoles, ", "))
			}
			if topK < 1 || topK > 50 {
				return fmt.Errorf("--top-k must be between 1 and 50, got %d", topK)
			}

			ctx := cmd.Context()
			c, err := openComponents(ctx, *configPath)
			if err != nil {
				return err
			}
			defer c.Close()

			result := c.engine.Validate(ctx, &recommend.Request{
				UserID:   userID,
				Criteria: criteria,
				TopK:     topK,
			})
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	f := cmd.Flags()
	f.StringVar(&criteria.Role, "role", "", "job role (Developer, Manager, Analyst, Sales, Support, Executive)")
	f.StringVar(&criteria.Level, "level", "", "job level")
	f.StringVar(&criteria.Industry, "industry", "", "industry")
	f.StringVar(&criteria.Goal, "goal", "", "assessment goal")
	f.StringVar(&criteria.Query, "query", "", "free-text query")
	f.StringVar(&userID, "user", "", "user id for personalized scoring")
	f.IntVar(&topK, "top-k", 10, "number of results (1-50)")
	return cmd
}

// --- stats ---

type statsOutput struct {
	Driver       string               `json:"driver"`
	BreakerState string               `json:"breaker_state"`
	Healthy      bool                 `json:"healthy"`
	Statistics   recommend.Statistics `json:"statistics"`
	Insights     recommend.Insights   `json:"insights"`
}

func newStatsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print persisted statistics and engine insights as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			c, err := openComponents(ctx, *configPath)
			if err != nil {
				return err
			}
			defer c.Close()

			// Restored interactions schedule recomputes; run them so the
			// insights reflect the persisted state.
			if err := c.engine.RunPending(ctx); err != nil {
				return fmt.Errorf("recompute: %w", err)
			}

			healthy, stats, err := c.engine.StoreHealth(ctx)
			if err != nil {
				return fmt.Errorf("read statistics: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), &statsOutput{
				Driver:       c.store.Driver(),
				BreakerState: c.store.BreakerState(),
				Healthy:      healthy,
				Statistics:   stats,
				Insights:     c.engine.GetInsights(),
			})
		},
	}
}

// --- health ---

func newHealthCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the configured store, or a running server with --addr",
		Long: `Without --addr, open the configured store, verify it and print its
statistics. With --addr, query that server's /health endpoint instead.
Exits non-zero when unhealthy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
			defer cancel()

			if addr != "" {
				return checkHealth(ctx, http.DefaultClient, addr, cmd.OutOrStdout())
			}
			return checkStoreHealth(ctx, *configPath, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "base URL of a running server, e.g. http://127.0.0.1:5000")
	return cmd
}

type storeHealthOutput struct {
	Status       string               `json:"status"`
	Driver       string               `json:"driver"`
	BreakerState string               `json:"breaker_state"`
	Statistics   recommend.Statistics `json:"statistics"`
}

// checkStoreHealth verifies the configured store and fails when it is unhealthy.
func checkStoreHealth(ctx context.Context, configPath string, out io.Writer) error {
	c, err := openComponents(ctx, configPath)
	if err != nil {
		return err
	}
	defer c.Close()

	healthy, stats, err := c.engine.StoreHealth(ctx)
	if err != nil {
		return fmt.Errorf("read statistics: %w", err)
	}

	res := &storeHealthOutput{
		Status:       "healthy",
		Driver:       c.store.Driver(),
		BreakerState: c.store.BreakerState(),
		Statistics:   stats,
	}
	if !healthy {
		res.Status = "unhealthy"
	}
	if err := writeJSON(out, res); err != nil {
		return err
	}
	if !healthy {
		return fmt.Errorf("store %s is unhealthy", res.Driver)
	}
	return nil
}

// checkHealth prints the /health body and fails unless the server is healthy.
func checkHealth(ctx context.Context, client *http.Client, baseURL string, out io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("query health: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("read health response: %w", err)
	}
	if _, err := fmt.Fprintln(out, string(body)); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server unhealthy: HTTP %d", resp.StatusCode)
	}
	return nil
}

func openComponents(ctx context.Context, configPath string) (*components, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return bootstrap(ctx, cfg)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
