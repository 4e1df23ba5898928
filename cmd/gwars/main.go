package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gwarsgo/gwars/internal/audio"
	"github.com/gwarsgo/gwars/internal/config"
	"github.com/gwarsgo/gwars/internal/core/event"
	"github.com/gwarsgo/gwars/internal/data"
	"github.com/gwarsgo/gwars/internal/game"
	"github.com/gwarsgo/gwars/internal/platform"
	"github.com/gwarsgo/gwars/internal/scripting"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ──

func printBanner() {
	fmt.Println()
	fmt.Println("\033[35;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[35;1m  │\033[0m              gwars  v0.1.0                \033[35;1m│\033[0m")
	fmt.Println("\033[35;1m  │\033[0m       geometry wars in your terminal      \033[35;1m│\033[0m")
	fmt.Println("\033[35;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	num := fmt.Sprintf("%d", count)
	dots := max(42-len(label)-len(num), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dots), num)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printWarn(msg string) {
	fmt.Printf("  \033[33m!\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main ──

func run() error {
	// 1. Config and logger
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 2. Game data
	printSection("Data")
	tuning, err := data.LoadGameData(cfg.Game.DataFile)
	if err != nil {
		return fmt.Errorf("game data: %w", err)
	}
	printOK("tuning " + cfg.Game.DataFile)

	models := game.LoadModels(cfg.Game.AssetDir, tuning, log)
	printStat("models", models.Count())

	// 3. Scripts
	engine, err := scripting.NewEngine(cfg.Game.ScriptDir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	for _, fn := range []string{"ufo_speed", "wave_size", "kill_score"} {
		if engine.HasFunction(fn) {
			printOK("lua " + fn)
		} else {
			printWarn("lua " + fn + " missing, using built-in curve")
		}
	}
	fmt.Println()

	// 4. Audio
	printSection("Audio")
	sound := audio.NewManager(cfg.Audio, log)
	switch err := sound.Start(); {
	case err != nil:
		log.Warn("audio disabled", zap.Error(err))
		printWarn("no audio device, playing silent")
	case sound.Started():
		printOK(fmt.Sprintf("speaker %d Hz", cfg.Audio.SampleRate))
	default:
		printOK("audio off")
	}
	fmt.Println()

	// 5. Layer, terminal and loop
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	layer := game.NewLayer(event.NewDispatcher(), game.Deps{
		Tuning:     tuning,
		Models:     models,
		Difficulty: engine,
		Rand:       rand.New(rand.NewSource(seed)),
	}, log)

	printSection("Ready")
	printReady(fmt.Sprintf("%dx%d pixels at %d fps", cfg.Display.Width, cfg.Display.Height, cfg.Display.FrameRate))
	printReady("arrows/WASD move, space or mouse fires, q quits")
	fmt.Println()

	term, err := platform.NewTerminal(nil, cfg.Display.Mouse, log)
	if err != nil {
		sound.Close()
		return fmt.Errorf("terminal: %w", err)
	}
	app := platform.NewApp(platform.Options{
		Display:  cfg.Display,
		Lang:     cfg.Game.ScoreLang,
		Layer:    layer,
		Terminal: term,
		Audio:    sound,
		Log:      log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("game started", zap.Int64("seed", seed))
	runErr := app.Run(ctx)
	app.Close()
	if runErr != nil {
		return fmt.Errorf("game loop: %w", runErr)
	}

	fmt.Println(app.Summary())
	return nil
}

// newLogger writes to cfg.File: the terminal belongs to the game while it
// runs.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
