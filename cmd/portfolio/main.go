package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Aravind-Sathesh/portfolio/internal/config"
	"github.com/Aravind-Sathesh/portfolio/internal/content"
	"github.com/Aravind-Sathesh/portfolio/internal/logging"
	"github.com/Aravind-Sathesh/portfolio/internal/server"
	"github.com/Aravind-Sathesh/portfolio/internal/site"
)

var (
	// Global flags
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site with an animated dot-field background",
	Long: `Serves the portfolio pages and the background dot field.

Run without a subcommand to start the web server. The preview and term
subcommands run the same dot field in a desktop window or a terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd, previewCmd, termCmd)
}

func runServe(ctx context.Context) error {
	gin.SetMode(cfg.GinMode)

	store, err := content.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Fixtures != "" {
		fx, err := content.ReadFixtures(cfg.Fixtures)
		if err != nil {
			return err
		}
		loaded, err := store.LoadFixtures(ctx, fx)
		if err != nil {
			return err
		}
		if loaded {
			logger.Info("Loaded fixtures", zap.String("file", cfg.Fixtures))
		}
	}

	profile, err := site.LoadProfile(cfg.SiteFile)
	if err != nil {
		return err
	}
	icons, err := site.LoadIcons(filepath.Join(cfg.StaticDir, "icons"), "/static/icons")
	if err != nil {
		return err
	}

	srv, err := server.New(server.Options{
		Source:             store,
		Profile:            profile,
		Icons:              icons,
		Logger:             logger,
		TemplatesDir:       cfg.TemplatesDir,
		StaticDir:          cfg.StaticDir,
		ImagesDir:          cfg.ImagesDir,
		DotsFPS:            cfg.Dots.FPS,
		RegenerateOnResize: cfg.Dots.RegenerateOnResize,
	})
	if err != nil {
		return err
	}
	return srv.Run(ctx, cfg.Addr())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
