package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/justchokingaround/marquee/internal/catalog"
	"github.com/justchokingaround/marquee/internal/clipboard"
	"github.com/justchokingaround/marquee/internal/config"
	"github.com/justchokingaround/marquee/internal/database"
	"github.com/justchokingaround/marquee/internal/history"
	"github.com/justchokingaround/marquee/internal/tui"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "none"
	date    = "unknown"
	// Global flags
	cfgFile   string
	logLevel  string
	noColor   bool
	debugMode bool

	// Global config and logger
	cfg    *config.Config
	v      *viper.Viper
	logger *slog.Logger
)

var errNoToken = errors.New("no TMDB token configured: set TMDB_TOKEN or add tmdb.token to the config file (marquee config init)")

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Search The Movie Database from your terminal",
	Long: `marquee is a TUI for searching The Movie Database (TMDB).

Type a title, browse the results as cards, page through them and open any
movie for its details. Recent searches are kept locally.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for config init command
		if cmd.Name() == "init" && cmd.Parent().Name() == "config" {
			return nil
		}

		if err := config.InitializeDirs(); err != nil {
			return fmt.Errorf("failed to initialize directories: %w", err)
		}

		var err error
		cfg, v, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlagOverrides(cfg)

		logger, err = config.InitLogger(&cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if cfg.History.Enabled {
			if err := database.Init(&cfg.Database); err != nil {
				// History is optional; searching still works without it
				logger.Warn("recent searches disabled", "error", err)
			}
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			return
		}
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.HasToken() {
			return errNoToken
		}

		logger.Info("marquee starting...", "version", version)

		app := tui.NewApp(cfg, newSearcher(cfg), historyService(cfg), clipboard.NewService(logger, cfg.Advanced.ClipboardCommand), logger)
		watchConfig(app)

		return tui.Start(app)
	},
}

// applyFlagOverrides lets command line flags win over the config file
func applyFlagOverrides(c *config.Config) {
	if debugMode {
		c.Advanced.Debug = true
		if logLevel == "" {
			c.Logging.Level = "debug"
		}
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if noColor {
		c.Logging.Color = false
	}
}

func newSearcher(c *config.Config) *catalog.Client {
	return catalog.NewClient(catalog.ConfigFrom(c.TMDB, c.Advanced.Debug), catalog.StaticToken(c.TMDB.Token), logger)
}

// historyService returns nil when history is off or the database failed to open
func historyService(c *config.Config) *history.Service {
	if !c.History.Enabled || database.DB == nil {
		return nil
	}
	return history.NewService(database.DB, c.History.Limit)
}

// watchConfig hands edited config files to the running TUI
func watchConfig(app *tui.App) {
	if v.ConfigFileUsed() == "" {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		logger.Info("Config file changed", "name", e.Name)

		next, err := config.Reload(v)
		if err != nil {
			logger.Error("Failed to reload config", "error", err)
			return
		}
		applyFlagOverrides(next)

		app.Notify(tui.ConfigReloadedMsg{Config: next, Searcher: newSearcher(next)})
		logger.Info("Config reloaded")
	})
	v.WatchConfig()
}

// versionCmd displays version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("marquee version %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
	},
}

// configCmd handles configuration operations
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := cfgFile
		if configPath == "" {
			configPath = filepath.Join(config.GetConfigDir(), "config.yaml")
		}

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s", configPath)
		}

		if err := config.SaveDefaultConfig(configPath); err != nil {
			return fmt.Errorf("failed to save default configuration: %w", err)
		}

		fmt.Printf("Default configuration generated successfully at: %s\n", configPath)
		fmt.Printf("Set tmdb.token in it (or export TMDB_TOKEN) before searching.\n")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Path()
		if path == "" {
			path = "(defaults)"
		}
		token := "not set"
		if cfg.HasToken() {
			token = "set"
		}

		fmt.Printf("Config file: %s\n", path)
		fmt.Printf("TMDB API: %s\n", cfg.TMDB.BaseURL)
		fmt.Printf("TMDB token: %s\n", token)
		fmt.Printf("Language: %s\n", cfg.TMDB.Language)
		fmt.Printf("Log level: %s\n", cfg.Logging.Level)
		fmt.Printf("History: %t (limit %d)\n", cfg.History.Enabled, cfg.History.Limit)
		fmt.Printf("Database: %s\n", cfg.Database.Path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Display configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		switch {
		case cfgFile != "":
			fmt.Println(cfgFile)
		case cfg != nil && cfg.Path() != "":
			fmt.Println(cfg.Path())
		default:
			fmt.Println(config.GetConfigDir())
		}
	},
}

// searchCmd runs a single search and prints the page
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for movies without starting the TUI",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		page, _ := cmd.Flags().GetInt("page")

		if !cfg.HasToken() {
			return errNoToken
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.TMDB.Timeout+5*time.Second)
		defer cancel()

		logger.Info("searching", "query", query, "page", page)

		result, err := newSearcher(cfg).Search(ctx, query, page)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if hist := historyService(cfg); hist != nil {
			if err := hist.Record(query); err != nil {
				logger.Warn("failed to record search", "query", query, "error", err)
			}
		}

		if len(result.Results) == 0 {
			fmt.Println("No movies found")
			return nil
		}

		fmt.Printf("Found %s results (page %d of %d):\n\n",
			humanize.Comma(int64(result.TotalResults)), result.Page, result.TotalPages)
		for i, movie := range result.Results {
			if year := movie.Year(); year > 0 {
				fmt.Printf("%d. %s (%d)\n", i+1, movie.Title, year)
			} else {
				fmt.Printf("%d. %s\n", i+1, movie.Title)
			}
			if movie.VoteCount > 0 {
				fmt.Printf("   Rating: %.1f/10 (%s votes)\n", movie.VoteAverage, humanize.Comma(int64(movie.VoteCount)))
			}
			if genres := movie.Genres(); len(genres) > 0 {
				fmt.Printf("   Genres: %s\n", strings.Join(genres, ", "))
			}
			fmt.Printf("   %s\n\n", movie.TMDBURL())
		}

		return nil
	},
}

// historyCmd lists or clears recent searches
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		clearAll, _ := cmd.Flags().GetBool("clear")

		hist := historyService(cfg)
		if hist == nil {
			return fmt.Errorf("recent searches are disabled")
		}

		if clearAll {
			n, err := hist.Clear()
			if err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Printf("Removed %d recent searches\n", n)
			return nil
		}

		entries, err := hist.Recent(limit)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No recent searches")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("%-40s %3dx  %s\n", e.Query, e.Count, humanize.Time(e.LastSearchedAt))
		}
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/marquee/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug mode (verbose HTTP logging)")

	searchCmd.Flags().IntP("page", "p", 1, "result page to fetch")
	historyCmd.Flags().IntP("limit", "n", 0, "number of entries to show (default: history.limit)")
	historyCmd.Flags().Bool("clear", false, "delete all recent searches")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(historyCmd)
}
