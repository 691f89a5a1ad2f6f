// dinoblast defends Earth from a marching dinosaur herd in the terminal.
//
// Usage:
//
//	dinoblast play           - Play, picking mode and difficulty in a menu
//	dinoblast sim            - Run a headless game with an autopilot paddle
//	dinoblast waves          - List and validate wave definitions
//	dinoblast scores [mode]  - Show the best runs
//	dinoblast serve          - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--db <path>       - Set database path (default: ~/.dinoblast/runs.db)
//	--config <path>   - Tuning YAML
//	--waves <path>    - Wave definition YAML
//	--verbose         - Debug logging
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinoblast/internal/games/dinoblast"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagWaves   string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dinoblast",
	Short: "DinoBlast - breakout meets pinball against a dinosaur invasion",
	Long: `DinoBlast is a terminal arcade game. Bounce eggs off your paddle to
break a marching dinosaur formation before it reaches Earth.

Available commands:
  play     - Play in the terminal
  sim      - Headless autopilot run
  waves    - List and validate wave definitions
  scores   - View the best runs
  serve    - Start SSH server for remote play

Examples:
  dinoblast play
  dinoblast play --difficulty hard
  dinoblast play --daily
  dinoblast sim --seed 42 --ticks 6000 --snapshot run.msgpack
  dinoblast serve --ssh :2222`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		dinoblast.SetConfigPath(flagConfig)
		dinoblast.SetWavesPath(flagWaves)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dinoblast/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagWaves, "waves", "", "Path to wave definition YAML")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(wavesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the command logger. --verbose enables debug output.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
