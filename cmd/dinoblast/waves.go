package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinoblast/internal/config"
)

var wavesCmd = &cobra.Command{
	Use:   "waves",
	Short: "List and validate wave definitions",
	Long: `Shows every wave in the active wave file (--waves, then
~/.dinoblast/configs/waves.yaml, ./configs/waves.yaml, then the built-in set)
and checks it for structural problems.

Exits with status 1 when the wave set is invalid.`,
	Args: cobra.NoArgs,
	RunE: runWaves,
}

func runWaves(_ *cobra.Command, _ []string) error {
	waves, err := config.LoadWaves(flagWaves)
	if err != nil {
		return err
	}
	if len(waves.Waves) == 0 {
		fmt.Println("No waves defined.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tName\tKind\tDinos\tMarch\tObstacles")
	fmt.Fprintln(w, "-\t----\t----\t-----\t-----\t---------")
	for _, wave := range waves.Waves {
		cells, cols, layoutErr := config.ParseLayout(wave.Layout)
		kind := fmt.Sprintf("grid %dx%d", len(wave.Layout), cols)
		if wave.IsBoss() {
			kind = fmt.Sprintf("boss %q hp %d", wave.Boss.Name, wave.Boss.HP)
		}
		dinos := fmt.Sprintf("%d", len(cells))
		if layoutErr != nil {
			dinos = "?"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.0f\t%s\n",
			wave.Number, wave.Name, kind, dinos, wave.MarchSpeed, obstacleSummary(wave.Obstacles))
	}
	w.Flush()
	fmt.Println()

	if err := waves.Validate(); err != nil {
		fmt.Println("Problems:")
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Printf("  %s\n", line)
		}
		return errors.New("invalid wave set")
	}
	fmt.Printf("%d waves OK (final wave %d)\n", len(waves.Waves), waves.FinalWave())
	return nil
}

// obstacleSummary counts obstacles by kind, e.g. "bumper x2, vortex".
func obstacleSummary(obs []config.ObstacleDef) string {
	if len(obs) == 0 {
		return "-"
	}
	counts := make(map[string]int)
	var order []string
	for _, o := range obs {
		if counts[o.Kind] == 0 {
			order = append(order, o.Kind)
		}
		counts[o.Kind]++
	}
	parts := make([]string, len(order))
	for i, kind := range order {
		parts[i] = kind
		if counts[kind] > 1 {
			parts[i] = fmt.Sprintf("%s x%d", kind, counts[kind])
		}
	}
	return strings.Join(parts, ", ")
}
