package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dinoblast/internal/config"
	"github.com/vovakirdan/dinoblast/internal/core"
	"github.com/vovakirdan/dinoblast/internal/platform/tui"
	"github.com/vovakirdan/dinoblast/internal/storage"
)

var (
	flagDifficulty string
	flagDaily      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play DinoBlast",
	Long: `Start playing. Without --difficulty or --daily a menu picks the mode.

Controls:
  Left/Right, A/D      - Move paddle
  Shift+Arrow, Z/X     - Dash
  Space                - Launch egg
  P                    - Pause
  R                    - Restart (after the run ends)
  Esc/B                - Back to menu (paused or after the run ends)
  Ctrl+S               - Save a text screenshot
  Q/Ctrl+C             - Quit

Difficulty options:
  easy   - 5 hearts, slower eggs and bullets
  normal - 3 hearts
  hard   - 2 hearts, faster march and bullets

With --verbose the simulation log is written to ~/.dinoblast/play.log.

Examples:
  dinoblast play
  dinoblast play --difficulty easy
  dinoblast play --daily
  dinoblast play --config ./tuning.yaml --waves ./waves.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagDaily, "daily", false, "Play today's daily challenge")
}

func runPlay(_ *cobra.Command, _ []string) error {
	var start *tui.Selection
	switch {
	case flagDaily:
		start = &tui.Selection{ModeID: tui.ModeDaily, Difficulty: config.DifficultyNormal}
	case flagDifficulty != "":
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		start = &tui.Selection{ModeID: tui.ModeCampaign, Difficulty: preset}
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// The terminal belongs to Bubble Tea, so logs go to a file or nowhere
	logOut := io.Discard
	if flagVerbose {
		f, err := openPlayLog()
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, "dinoblast")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(tui.SessionOptions{
		Store:   store,
		Config:  cfg,
		Factory: tui.NewGameFactory(store, logger),
		Start:   start,
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

func openPlayLog() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".dinoblast")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return os.OpenFile(filepath.Join(dir, "play.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
