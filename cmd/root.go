package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cineparadis/config"
	"github.com/s0up4200/cineparadis/detail"
	"github.com/s0up4200/cineparadis/filter"
	"github.com/s0up4200/cineparadis/images"
	"github.com/s0up4200/cineparadis/metrics"
	"github.com/s0up4200/cineparadis/tmdb"
)

var (
	cfgFile    string
	cfg        *config.Config
	logger     zerolog.Logger
	tmdbClient *tmdb.Client
	filters    *filter.Manager
	imgBuilder *images.Builder
	recorder   *metrics.Recorder

	version   = "dev"
	buildTime = "unknown"

	// Command flags
	filterExpr string
	preset     string
	tabIndex   int
	jsonOutput bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cineparadis",
	Short: "Browse TMDB movie and TV show details from the terminal or over HTTP",
	Long: `cineparadis fetches a movie or TV show from The Movie Database together
with its videos, images, credits, recommendations and keywords, and presents
it as a tabbed detail page: Top Cast, Details, Photos, Videos and More Like This.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// SetVersion records build information shown by --version
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(serveCmd)
}

// initializeApp loads the configuration and builds the shared clients
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	opts := []tmdb.Option{
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithTimeout(cfg.TMDB.Timeout),
	}
	if cfg.TMDB.RateLimit > 0 {
		opts = append(opts, tmdb.WithRateLimit(cfg.TMDB.RateLimit, cfg.TMDB.RateBurst))
	}
	tmdbClient, err = tmdb.NewClient(cfg.TMDB.APIKey, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	filters = filter.NewManager()
	if err := filters.RegisterPresets(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	imgBuilder = images.NewBuilder(cfg.Images.BaseURL, images.Placeholders{
		Poster:    cfg.Images.Poster,
		Landscape: cfg.Images.Landscape,
		NoPicture: cfg.Images.NoPicture,
	})
	recorder = metrics.NewRecorder()

	logger.Debug().
		Str("base_url", cfg.TMDB.BaseURL).
		Str("language", cfg.TMDB.Language).
		Int("presets", len(cfg.Filter.Presets)).
		Msg("Initialized")

	return nil
}

// newCoordinator builds a coordinator wired to the shared client
func newCoordinator() *detail.Coordinator {
	return detail.NewCoordinator(tmdbClient, logger,
		detail.WithTimeout(cfg.TMDB.FetchTimeout),
		detail.WithRecorder(recorder),
		detail.WithSite(siteInfo()),
		detail.WithImages(imgBuilder),
	)
}

func siteInfo() detail.SiteInfo {
	return detail.SiteInfo{Name: cfg.Site.Name, BaseURL: cfg.Site.BaseURL}
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Colors only make sense on a terminal
	noColor := !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
