package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinoblast/internal/games/dinoblast"
	"github.com/vovakirdan/dinoblast/internal/registry"
	"github.com/vovakirdan/dinoblast/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs",
	Long: `Display the top runs for a mode (dinoblast or dinoblast_daily),
the best score and wave, and today's daily challenge best.

Examples:
  dinoblast scores
  dinoblast scores dinoblast_daily --limit 20
  dinoblast scores dinoblast --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every stored run for the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := "dinoblast"
	if len(args) > 0 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q (want dinoblast or dinoblast_daily)", mode)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(mode); err != nil {
			return err
		}
		fmt.Printf("Cleared all %s runs.\n", mode)
		return nil
	}

	runs, err := store.TopRuns(mode, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Top Runs - %s\n", mode)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dinoblast play' to set the first high score!")
	} else {
		fmt.Printf("  %-4s  %-8s  %-4s  %-5s  %-6s  %-3s  %s\n", "Rank", "Score", "Wave", "Kills", "Diff", "Won", "Date")
		fmt.Printf("  %-4s  %-8s  %-4s  %-5s  %-6s  %-3s  %s\n", "----", "-----", "----", "-----", "----", "---", "----")
		for i, r := range runs {
			date := r.CreatedAt.Format("2006-01-02 15:04")
			if r.Date != "" {
				date = r.Date
			}
			won := ""
			if r.Won {
				won = "yes"
			}
			fmt.Printf("  %-4d  %-8d  %-4d  %-5d  %-6s  %-3s  %s\n", i+1, r.Score, r.Wave, r.Kills, r.Difficulty, won, date)
		}

		fmt.Println()
		highScore, err := store.HighScore(mode)
		if err != nil {
			return err
		}
		highWave, err := store.HighWave(mode)
		if err != nil {
			return err
		}
		fmt.Printf("Best: %d  (furthest wave %d)\n", highScore, highWave)
	}

	today := dinoblast.Today(time.Now())
	best, ok, err := store.DailyBest(today)
	if err != nil {
		return err
	}
	if ok {
		fmt.Printf("Daily %s: %d\n", today, best)
	} else {
		fmt.Printf("Daily %s: not played yet\n", today)
	}

	kills, err := store.TotalKills()
	if err != nil {
		return err
	}
	games, err := store.TotalGames()
	if err != nil {
		return err
	}
	fmt.Printf("Lifetime: %d dinos over %d runs\n", kills, games)
	return nil
}
