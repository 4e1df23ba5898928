// curvedump evaluates the difficulty scripts for a range of levels and
// writes the result as YAML, for tuning scripts/difficulty.lua.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gwarsgo/gwars/internal/game"
	"github.com/gwarsgo/gwars/internal/scripting"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Level struct {
	Level     uint64  `yaml:"level"`
	UfoSpeed  float64 `yaml:"ufo_speed"`
	WaveSize  int     `yaml:"wave_size"`
	KillScore uint64  `yaml:"kill_score"`
	WaveValue uint64  `yaml:"wave_value"` // score for clearing the wave
}

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: curvedump <scripts dir> <levels> [output.yaml]")
		os.Exit(1)
	}
	levels, err := strconv.ParseUint(os.Args[2], 10, 64)
	if err != nil || levels == 0 {
		fmt.Fprintf(os.Stderr, "invalid level count %q\n", os.Args[2])
		os.Exit(1)
	}

	engine, err := scripting.NewEngine(os.Args[1], zap.NewNop())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer engine.Close()

	var out io.Writer = os.Stdout
	if len(os.Args) > 3 {
		f, err := os.Create(os.Args[3])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := write(out, curves(engine, levels)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(os.Args) > 3 {
		fmt.Printf("Wrote %d levels to %s\n", levels, os.Args[3])
	}
}

func curves(d game.Difficulty, levels uint64) []Level {
	out := make([]Level, 0, levels)
	for l := uint64(1); l <= levels; l++ {
		size := d.WaveSize(l)
		score := d.KillScore(l)
		out = append(out, Level{
			Level:     l,
			UfoSpeed:  d.UfoSpeed(l),
			WaveSize:  size,
			KillScore: score,
			WaveValue: score * uint64(size),
		})
	}
	return out
}

func write(w io.Writer, levels []Level) error {
	fmt.Fprintf(w, "# Difficulty curves, %d levels\n", len(levels))
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(levels); err != nil {
		return fmt.Errorf("encode curves: %w", err)
	}
	return enc.Close()
}
