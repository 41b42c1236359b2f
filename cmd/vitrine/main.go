package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vitrine/cmd/vitrine/gallery"
	"vitrine/cmd/vitrine/ui"
	"vitrine/internal/catalog"
	"vitrine/internal/config"
	"vitrine/internal/feed"
	"vitrine/internal/logging"
)

const version = "0.1.0"

var (
	// Global flags
	verbose  bool
	cfgPath  string
	feedFile string
	watch    bool

	// JSON output for the catalog command
	catalogJSON bool

	// Logger for non-interactive commands
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vitrine",
	Short: "vitrine - a study catalog and lead wizard in your terminal",
	Long: `vitrine renders a catalog of market studies from a CSV feed and walks
a visitor from a study card through onboarding to a booking or a
full-study request.

Run without arguments to open the interactive gallery.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI)
		if cmd.Use == "vitrine" && cmd.CalledAs() == "vitrine" {
			return nil
		}

		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGallery()
	},
}

// catalogCmd prints the loaded catalog without the TUI.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Load the study feed and print the catalog",
	Long: `Fetches the configured feed once, builds the catalog, and prints it.
A broken or missing feed prints an empty catalog; diagnostics go to the log.`,
	RunE: runCatalog,
}

// initCmd writes a starter configuration file.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	RunE:  runInit,
}

// versionCmd prints the version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the vitrine version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("vitrine " + version)
	},
}

func init() {
	cobra.OnInitialize(loadDotEnv)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default ~/.vitrine/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&feedFile, "feed-file", "f", "", "Read the study feed from a local CSV file instead of the configured URL")
	rootCmd.PersistentFlags().BoolVar(&watch, "watch", false, "Reload the gallery when the feed file changes (requires --feed-file)")

	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "Emit the catalog as JSON")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv picks up a local .env before flags and config resolve.
// Missing files are fine.
func loadDotEnv() {
	_ = godotenv.Load()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// configPath resolves the active config file location.
func configPath() string {
	if cfgPath != "" {
		return cfgPath
	}
	return config.DefaultPath()
}

// loadConfig loads and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// feedSource picks where studies come from: an explicit local file, the
// configured URL, or nothing at all. It also reports which path to
// watch, when watching applies.
func feedSource(cfg *config.Config) (feed.Source, string, error) {
	if feedFile != "" {
		watchPath := ""
		if watch {
			watchPath = feedFile
		}
		return feed.FileSource{Path: feedFile}, watchPath, nil
	}
	if watch {
		return nil, "", fmt.Errorf("--watch requires --feed-file")
	}
	if cfg.Feed.URL != "" {
		return feed.NewHTTPSource(cfg.Feed.URL), "", nil
	}
	return nil, "", nil
}

// logFilePath resolves the gallery log destination. Relative names land
// next to the config file.
func logFilePath(cfg *config.Config) string {
	f := cfg.Logging.File
	if f == "" {
		return ""
	}
	if filepath.IsAbs(f) {
		return f
	}
	return filepath.Join(filepath.Dir(configPath()), f)
}

// runGallery starts the interactive TUI. Its diagnostics go to a file,
// never to the terminal the gallery is drawing on.
func runGallery() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logging.NewFileLogger(cfg.Logging.Level, logFilePath(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	src, watchPath, err := feedSource(cfg)
	if err != nil {
		return err
	}

	loader := catalog.NewLoader(src, log)
	return gallery.Launch(cfg, loader, watchPath, log)
}

// runCatalog loads the feed once and prints the catalog.
func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src, _, err := feedSource(cfg)
	if err != nil {
		return err
	}

	loader := catalog.NewLoader(src, logger)
	cat := loader.Load(cmd.Context())

	if catalogJSON {
		out, err := json.MarshalIndent(cat.All(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	if cat.Len() == 0 {
		fmt.Println("No studies available.")
		return nil
	}

	table := ui.NewTable("Studies", "ID", "Tag", "Title", "Date", "Preview")
	table.MaxCellWidth = 48
	for _, s := range cat.All() {
		table.AddRow(s.ID, s.Tag, s.Title, s.Date, s.Preview())
	}
	fmt.Print(table.View(ui.NewStyles(ui.ThemeFromName(cfg.UI.Theme))))
	return nil
}

// runInit writes the default config, refusing to clobber an existing one.
func runInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	fmt.Println("Set feed.url to your spreadsheet CSV export to fill the gallery.")
	return nil
}
