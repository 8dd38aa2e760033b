package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/contest-radar/internal/config"
	"github.com/pfrederiksen/contest-radar/internal/contest"
	"github.com/pfrederiksen/contest-radar/internal/logger"
	"github.com/pfrederiksen/contest-radar/internal/platform"
	"github.com/pfrederiksen/contest-radar/internal/radar"
	"github.com/pfrederiksen/contest-radar/internal/render"
	"github.com/pfrederiksen/contest-radar/internal/scraper"
	"github.com/pfrederiksen/contest-radar/internal/server"
	"github.com/pfrederiksen/contest-radar/internal/timezone"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "dev"

var (
	flagConfig   string
	flagFormat   string
	flagAddr     string
	flagTimezone string
	flagVerbose  bool

	// cfg is loaded once per invocation by the root PersistentPreRunE
	cfg *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contest-radar",
		Short: "Show the next upcoming contest on each competitive programming platform",
		Long: `A CLI tool and dashboard showing the next upcoming contest on Codeforces,
AtCoder, LeetCode, CodeChef and GeeksforGeeks, with start times in one display timezone.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath, "Path to YAML config file")
	cmd.PersistentFlags().StringVar(&flagTimezone, "timezone", "", "Display timezone (IANA name), overrides display_timezone")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(newShowCmd(), newServeCmd(), newVersionCmd())

	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Fetch and print the next contest on each platform",
		Args:  cobra.NoArgs,
		RunE:  runShow,
	}
	cmd.Flags().StringVar(&flagFormat, "format", string(render.FormatTerminal),
		"Output format: markdown, terminal, text, json, html or ics")
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the contest dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address, overrides server.addr")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "contest-radar %s\n", Version)
		},
	}
}

// setup loads configuration, applies flag overrides and installs the logger
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("timezone") {
		loaded.DisplayTimezone = flagTimezone
	}
	if flagVerbose {
		loaded.LogLevel = string(logger.LevelDebug)
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level, err := logger.ParseLevel(loaded.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	cfg = loaded
	return nil
}

// newRadar builds the five platform adapters from cfg
func newRadar(cfg *config.Config) (*radar.Radar, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	selectors, err := cfg.Selectors()
	if err != nil {
		return nil, err
	}
	baseURLs, err := cfg.BaseURLs()
	if err != nil {
		return nil, err
	}

	for _, p := range contest.Platforms() {
		if contest.Unreliable(p) && cfg.SelectionName(p) == contest.SelectFirst {
			logger.Debug("Upstream order may not be chronological; first entry is used", logger.Fields{
				"platform":  string(p),
				"selection": contest.SelectFirst,
			})
		}
	}

	client := scraper.New(
		scraper.WithTimeout(timeout),
		scraper.WithUserAgent(cfg.UserAgent),
	)
	adapters := platform.Defaults(platform.Options{
		Client:     client,
		Normalizer: timezone.New(loc),
		Selectors:  selectors,
		BaseURLs:   baseURLs,
	})

	return radar.New(adapters), nil
}

// runShow collects once and writes the report to stdout
func runShow(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	r, err := newRadar(cfg)
	if err != nil {
		return err
	}

	report := r.Collect(cmd.Context())
	logDurations(report)

	if err := writeReport(cmd.OutOrStdout(), report, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// runServe serves the dashboard until interrupted
func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Addr
	if flagAddr != "" {
		addr = flagAddr
	}

	r, err := newRadar(cfg)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(r, newRenderer())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx, addr); err != nil {
		return fmt.Errorf("serving dashboard: %w", err)
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
