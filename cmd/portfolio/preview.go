package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Aravind-Sathesh/portfolio/internal/dots/ebitenhost"
	"github.com/Aravind-Sathesh/portfolio/internal/dots/termhost"
)

var (
	previewWidth  int
	previewHeight int
	previewDark   bool
)

// previewCmd opens the dot field in a desktop window
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the background in a desktop window",
	Long: `Opens a resizable window running the dot field.

Keys: t toggles the theme, q or Esc closes the window.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dark := darkTheme(cfg.Dots.Theme, previewDark, cmd.Flags().Changed("dark"))
		logger.Info("Opening preview", zap.Int("width", previewWidth), zap.Int("height", previewHeight), zap.Bool("dark", dark))
		return ebitenhost.Run(ebitenhost.Options{
			Width:              previewWidth,
			Height:             previewHeight,
			Dark:               dark,
			FPS:                cfg.Dots.FPS,
			RegenerateOnResize: cfg.Dots.RegenerateOnResize,
		})
	},
}

// termCmd renders the dot field in the terminal
var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Show the background in the terminal",
	Long: `Takes over the terminal and draws the dot field with one cell per
8×16 pixel block.

Keys: t toggles the theme, q, Esc or Ctrl-C quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return termhost.Run(cmd.Context(), termhost.Options{
			Dark:               darkTheme(cfg.Dots.Theme, previewDark, cmd.Flags().Changed("dark")),
			FPS:                cfg.Dots.FPS,
			RegenerateOnResize: cfg.Dots.RegenerateOnResize,
		})
	},
}

func init() {
	previewCmd.Flags().IntVar(&previewWidth, "width", 1280, "Window width")
	previewCmd.Flags().IntVar(&previewHeight, "height", 720, "Window height")
	for _, c := range []*cobra.Command{previewCmd, termCmd} {
		c.Flags().BoolVar(&previewDark, "dark", false, "Start in the dark theme")
	}
}

// darkTheme picks the starting theme. An explicit --dark wins over
// DOTS_THEME; with neither, hosts start light.
func darkTheme(configured string, flag, flagSet bool) bool {
	if flagSet {
		return flag
	}
	return configured == "dark"
}
