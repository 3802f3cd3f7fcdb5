package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kkyungseo/support-project-radar/internal/config"
	"github.com/kkyungseo/support-project-radar/internal/seen"
)

var flagSeenOlderThan string

var seenCmd = &cobra.Command{
	Use:   "seen",
	Short: "Inspect and maintain the seen-item store",
}

var seenStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show seen-store statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.Seen.Driver != "sqlite" {
			return fmt.Errorf("stats supports the sqlite driver only (configured: %s)", cfg.Seen.Driver)
		}

		dbPath := cfg.SeenDBPath()
		store, err := seen.OpenSQLite(dbPath)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		count, size, err := store.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		fmt.Printf("Store: %s\n", dbPath)
		fmt.Printf("Records: %d\n", count)
		fmt.Printf("Size: %s\n", formatBytes(size))
		return nil
	},
}

var seenPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old seen records",
	Long: `Delete seen records first seen longer ago than the given age. Pruned
identities become eligible for notification again, so keep the age well
beyond any realistic announcement lifetime.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.Seen.Driver != "sqlite" {
			return fmt.Errorf("prune supports the sqlite driver only (configured: %s)", cfg.Seen.Driver)
		}

		age, err := parseAge(flagSeenOlderThan)
		if err != nil {
			return fmt.Errorf("invalid --older-than value: %w", err)
		}

		store, err := seen.OpenSQLite(cfg.SeenDBPath())
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		deleted, err := store.Prune(age)
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}

		if deleted == 0 {
			fmt.Println("Nothing to prune.")
		} else {
			fmt.Printf("Pruned %d record(s) older than %s.\n", deleted, flagSeenOlderThan)
		}
		return nil
	},
}

func init() {
	seenPruneCmd.Flags().StringVar(&flagSeenOlderThan, "older-than", "365d", "prune records older than this age (e.g. 365d, 720h)")
	seenCmd.AddCommand(seenStatsCmd)
	seenCmd.AddCommand(seenPruneCmd)
}

// parseAge parses a duration with day support ("90d") on top of the
// standard time.ParseDuration syntax.
func parseAge(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || days <= 0 {
			return 0, fmt.Errorf("invalid day count %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive")
	}
	return d, nil
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
