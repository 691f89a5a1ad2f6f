package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinoblast/internal/config"
	"github.com/vovakirdan/dinoblast/internal/core"
	"github.com/vovakirdan/dinoblast/internal/games/dinoblast"
	"github.com/vovakirdan/dinoblast/internal/storage"
)

var (
	flagTicks        int
	flagSimDiff      string
	flagSimDaily     string
	flagSnapshotPath string
	flagRecord       bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless game with an autopilot paddle",
	Long: `Run the simulation without a terminal UI. The autopilot tracks the
lowest egg, launches held eggs and dashes when it falls behind.

The same seed, difficulty and wave file always produce the same run, so
the printed state hash can be compared across machines.

Examples:
  dinoblast sim --seed 42
  dinoblast sim --seed 7 --ticks 20000 --difficulty hard
  dinoblast sim --daily 2026-10-19 --snapshot daily.msgpack
  dinoblast sim --seed 42 --record`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 36000, "Maximum ticks to simulate")
	simCmd.Flags().StringVar(&flagSimDiff, "difficulty", "normal", "Difficulty preset: easy, normal, hard")
	simCmd.Flags().StringVar(&flagSimDaily, "daily", "", "Run the daily challenge for a date (YYYY-MM-DD)")
	simCmd.Flags().StringVar(&flagSnapshotPath, "snapshot", "", "Write the final state as msgpack to this file")
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Store the finished run in the runs database")
}

func runSim(_ *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "dinoblast-sim")

	preset, err := config.ParsePreset(flagSimDiff)
	if err != nil {
		return err
	}
	tuning, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	waves, err := config.LoadWaves(flagWaves)
	if err != nil {
		return err
	}

	opts := []dinoblast.Option{
		dinoblast.WithConfig(tuning),
		dinoblast.WithWaves(waves),
		dinoblast.WithDifficulty(preset),
		dinoblast.WithLogger(logger),
	}
	if flagRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, dinoblast.WithSink(store))
	}

	var g *dinoblast.Game
	if flagSimDaily != "" {
		if _, err := time.Parse(time.DateOnly, flagSimDaily); err != nil {
			return fmt.Errorf("invalid --daily date %q: %w", flagSimDaily, err)
		}
		g = dinoblast.NewDaily(append(opts, dinoblast.WithDate(flagSimDaily))...)
	} else {
		g = dinoblast.New(opts...)
	}

	rc := core.DefaultConfig()
	rc.TickRate = flagFPS
	rc.Seed = flagSeed
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	g.Reset(rc)

	ap := dinoblast.NewAutopilot()
	ticks := 0
	for ticks < flagTicks && !g.State().GameOver {
		g.Step(ap.Input(g))
		ticks++
	}

	snap := g.Snapshot()
	printSimResult(g, ticks, snap.Hash())

	if flagSnapshotPath != "" {
		data, err := snap.MarshalBinary()
		if err != nil {
			return err
		}
		if err := os.WriteFile(flagSnapshotPath, data, 0o644); err != nil {
			return fmt.Errorf("cannot write snapshot: %w", err)
		}
		logger.Info("snapshot written", "path", flagSnapshotPath, "bytes", len(data))
	}
	return nil
}

func printSimResult(g *dinoblast.Game, ticks int, hash uint64) {
	res := g.Result()
	outcome := "IN PROGRESS"
	switch g.Phase() {
	case dinoblast.PhaseWon:
		outcome = "WON"
	case dinoblast.PhaseLost:
		outcome = "LOST"
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Mode:\t%s\n", res.Mode)
	if res.Date != "" {
		fmt.Fprintf(w, "Date:\t%s\n", res.Date)
	}
	fmt.Fprintf(w, "Seed:\t%d\n", res.Seed)
	fmt.Fprintf(w, "Difficulty:\t%s\n", res.Difficulty)
	fmt.Fprintf(w, "Ticks:\t%d\n", ticks)
	fmt.Fprintf(w, "Outcome:\t%s\n", outcome)
	fmt.Fprintf(w, "Score:\t%d\n", res.Score)
	fmt.Fprintf(w, "Wave:\t%d\n", res.Wave)
	fmt.Fprintf(w, "Hearts:\t%d\n", g.Hearts())
	fmt.Fprintln(w)

	s := res.Stats
	fmt.Fprintf(w, "Dinos killed:\t%d\n", s.DinosKilled)
	fmt.Fprintf(w, "Chain kills:\t%d\n", s.ChainKills)
	fmt.Fprintf(w, "Waves cleared:\t%d\n", s.WavesCleared)
	fmt.Fprintf(w, "Bosses defeated:\t%d\n", s.BossesDefeated)
	fmt.Fprintf(w, "Max combo:\t%d\n", s.MaxCombo)
	fmt.Fprintf(w, "Drops collected:\t%d\n", s.DropsCollected)
	fmt.Fprintf(w, "Bullets reflected:\t%d\n", s.BulletsReflected)
	fmt.Fprintf(w, "Shots absorbed:\t%d\n", s.ShotsAbsorbed)
	fmt.Fprintf(w, "Bumper hits:\t%d\n", s.BumperHits)
	fmt.Fprintf(w, "Vortex hits:\t%d\n", s.VortexHits)
	fmt.Fprintf(w, "Wormhole travels:\t%d\n", s.WormholeTravels)
	fmt.Fprintf(w, "Eggs lost:\t%d\n", s.EggsLost)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "State hash:\t%016x\n", hash)
	w.Flush()
}
