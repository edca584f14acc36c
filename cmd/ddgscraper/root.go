package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ddgscraper/pkg/config"
	"ddgscraper/pkg/logger"
	"ddgscraper/pkg/scraper"
	"ddgscraper/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	quiet      bool

	// Scrape flags
	queries         []string
	amount          int
	outputDir       string
	downloadTimeout int
	skipFailedPages bool
)

// rootCmd scrapes DuckDuckGo images for every query
var rootCmd = &cobra.Command{
	Use:   "ddgscraper --query <query>... [flags]",
	Short: "Bulk download DuckDuckGo image search results",
	Long: `ddgscraper downloads the image results of one or more DuckDuckGo searches.

Every run empties the output directory first, then stores the images of each
query under <outdir>/<query>/ as <index>_<YYYYMMDD>_<HHMMSS>.<jpg|png>.
Only JPEG and PNG responses are kept.`,
	Example: `  # First 1000 results for one query
  ddgscraper --query "red panda"

  # Several queries, 250 results each, into ./out
  ddgscraper --query cats dogs --amount 250 --outdir ./out

  # Keep going when a results page comes back with an error status
  ddgscraper -q cats --skip-failed-pages`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	// every query word arrives through --query, see expandQueryArgs
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if quiet {
			ui.SetQuietMode(true)
		}
	},
	RunE: runScrape,
	// errors are printed by runScrape
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	rootCmd.SetArgs(expandQueryArgs(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("SCRAPE FAILED", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is .ddgscraper.yaml or ~/.config/ddgscraper/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress banner and progress bars")

	rootCmd.Flags().StringArrayVarP(&queries, "query", "q", nil, "search query, repeatable; extra words after the flag are queries too")
	rootCmd.MarkFlagRequired("query")
	rootCmd.Flags().IntVar(&amount, "amount", 1000, "number of results to request per query")
	rootCmd.Flags().StringVar(&outputDir, "outdir", "./images", "output directory, wiped at startup")
	rootCmd.Flags().IntVar(&downloadTimeout, "download-timeout", 120, "per image download timeout in seconds")
	rootCmd.Flags().BoolVar(&skipFailedPages, "skip-failed-pages", false, "skip results pages that return a non-200 status instead of aborting")

	rootCmd.SetVersionTemplate(`ddgscraper {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func runScrape(cmd *cobra.Command, args []string) error {
	all := collectQueries(queries)
	if len(all) == 0 {
		return fmt.Errorf("at least one --query is required")
	}

	cfg, err := config.Load(configFile, changedFlags(cmd))
	if err != nil {
		return err
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	startUI(cfg)

	logger.WithField("version", version).WithFields(map[string]interface{}{
		"queries": all,
		"amount":  cfg.Download.Amount,
		"outdir":  cfg.Output.BaseDirectory,
	}).Info("DuckDuckGo scraper starting")

	for _, q := range all {
		ui.PrintInfo("Target query", q)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := scraper.New(cfg, logger.GetLogger())
	if err := s.Run(ctx, all); err != nil {
		logger.WithError(err).Error("Scrape failed")
		return err
	}

	logger.Info("Scrape completed successfully")
	ui.PrintSuccess("[SCRAPE COMPLETED]")
	return nil
}

// startUI applies the resolved quiet setting, then prints the banner
func startUI(cfg *config.Config) {
	ui.SetQuietMode(cfg.UI.Quiet)
	ui.PrintBanner()
}

// expandQueryArgs rewrites "--query a b c" into "--query a --query b --query c"
// so trailing query words never reach cobra as positional args or subcommand
// names. Expansion stops at the next flag or at "--".
func expandQueryArgs(args []string) []string {
	out := make([]string, 0, len(args))
	inQuery := false

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--":
			return append(out, args[i:]...)
		case arg == "--query" || arg == "-q":
			out = append(out, arg)
			if i+1 < len(args) {
				i++
				out = append(out, args[i])
			}
			inQuery = true
		case strings.HasPrefix(arg, "--query=") || strings.HasPrefix(arg, "-q="):
			out = append(out, arg)
			inQuery = true
		case strings.HasPrefix(arg, "-"):
			out = append(out, arg)
			inQuery = false
		case inQuery:
			out = append(out, "--query", arg)
		default:
			out = append(out, arg)
		}
	}
	return out
}

// collectQueries trims the --query values and drops blanks
func collectQueries(flagValues []string) []string {
	var out []string
	for _, q := range flagValues {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	return out
}

// changedFlags returns overrides only for flags the user actually set, so
// defaults never mask the config file or environment
func changedFlags(cmd *cobra.Command) config.Flags {
	var flags config.Flags
	f := cmd.Flags()

	if f.Changed("amount") {
		v := amount
		flags.Amount = &v
	}
	if f.Changed("outdir") {
		v := outputDir
		flags.OutputDir = &v
	}
	if f.Changed("download-timeout") {
		v := time.Duration(downloadTimeout) * time.Second
		flags.DownloadTimeout = &v
	}
	if f.Changed("skip-failed-pages") {
		v := skipFailedPages
		flags.SkipFailedPages = &v
	}
	if f.Changed("quiet") {
		v := quiet
		flags.Quiet = &v
	}
	if f.Changed("log-level") {
		v := logLevel
		flags.LogLevel = &v
	}
	return flags
}
