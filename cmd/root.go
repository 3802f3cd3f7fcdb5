package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kkyungseo/support-project-radar/internal/config"
	"github.com/kkyungseo/support-project-radar/internal/notify"
	"github.com/kkyungseo/support-project-radar/internal/pipeline"
	"github.com/kkyungseo/support-project-radar/internal/report"
	"github.com/kkyungseo/support-project-radar/internal/seen"
	"github.com/kkyungseo/support-project-radar/internal/window"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig   string
	flagSources  string
	flagPublish  bool
	flagDryRun   bool
	flagToday    string
	flagLookback int
	flagMaxItems int
)

var rootCmd = &cobra.Command{
	Use:   "radar",
	Short: "Harvest and triage startup support-program announcements",
	Long: `radar fetches government and startup support-program announcements from
the configured sources, drops anything already seen, keeps items whose
application window is still open and whose text matches the keyword rules,
writes a JSON run report, and publishes a digest.

Without --publish the digest goes to the terminal and nothing is sent.`,
	SilenceUsage: true,
	RunE:         runPipeline,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().StringVar(&flagSources, "sources", "", `comma-separated source names to run (e.g. "kstartup,knowhow"); empty means all enabled`)
	rootCmd.Flags().BoolVar(&flagPublish, "publish", false, "actually publish the digest (default is dry-run to the console)")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "force dry-run even if --publish is set")
	rootCmd.Flags().StringVar(&flagToday, "today", "", "override the reference date (YYYY-MM-DD), useful for testing")
	rootCmd.Flags().IntVar(&flagLookback, "lookback", 0, "override lookback window in days")
	rootCmd.Flags().IntVar(&flagMaxItems, "max-items", 0, "hard cap on items processed after normalize")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(seenCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("radar %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	sources := cfg.SelectSources(splitList(flagSources))
	if len(sources) == 0 {
		return fmt.Errorf("no enabled sources selected")
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening seen store: %w", err)
	}
	defer store.Close()

	lookback := cfg.LookbackDays
	if flagLookback > 0 {
		lookback = flagLookback
	}
	maxItems := cfg.MaxItems
	if flagMaxItems > 0 {
		maxItems = flagMaxItems
	}

	orch, err := pipeline.New(sources, store, cfg.Rules, lookback, maxItems)
	if err != nil {
		return err
	}
	if flagToday != "" {
		today, err := window.ParseDate(flagToday)
		if err != nil {
			return fmt.Errorf("invalid --today value: %w", err)
		}
		orch.Now = func() time.Time { return today }
	}

	publish := flagPublish && !flagDryRun
	log.Printf("starting run: sources=%s lookback=%dd mode=%s",
		sourceNames(sources), lookback, mode(publish))

	res, err := orch.Run(ctx)
	if err != nil {
		return err
	}

	path, err := report.Write(cfg.ReportDir(), res)
	if err != nil {
		return err
	}
	log.Printf("report written: %s (%d item(s))", path, res.TotalCount)

	notifier := pickNotifier(cfg, publish)
	if err := notifier.Publish(ctx, res); err != nil {
		// Best-effort: the report already holds the result.
		log.Printf("publish failed: %v", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (seen.Store, error) {
	switch cfg.Seen.Driver {
	case "postgres":
		return seen.OpenPostgres(ctx, cfg.Seen.DSN)
	default:
		return seen.OpenSQLite(cfg.SeenDBPath())
	}
}

func pickNotifier(cfg *config.Config, publish bool) notify.Notifier {
	if publish {
		if url := cfg.WebhookURL(); url != "" {
			return notify.NewSlack(url, cfg.NotifyMaxItems())
		}
		log.Printf("webhook not configured, falling back to console output")
	}
	return notify.NewConsole(os.Stdout, cfg.NotifyMaxItems())
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func sourceNames(sources []config.Source) string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
	}
	return strings.Join(names, ",")
}

func mode(publish bool) string {
	if publish {
		return "publish"
	}
	return "dry-run"
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
