// Command binsort runs the sorting game in a window.
package main

import (
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/binsort/config"
	"github.com/plus3/binsort/ecs"
	"github.com/plus3/binsort/game"
	"github.com/plus3/binsort/game/debugui"
	debugui_ebiten "github.com/plus3/binsort/game/debugui/ebiten"
)

type Config struct {
	TuningPath string `env:"BINSORT_TUNING"`
	Seed       uint64 `env:"BINSORT_SEED"`
	DebugUI    bool   `env:"BINSORT_DEBUG_UI"`
	LogLevel   string `env:"BINSORT_LOG_LEVEL" envDefault:"info"`
}

func main() {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.ParseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	tuning, err := game.LoadTuning(cfg.TuningPath)
	if err != nil {
		logger.Error("load tuning", "path", cfg.TuningPath, "err", err)
		os.Exit(1)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(os.Getpid())
	}
	opts := game.Options{
		Tuning: &tuning,
		Seed:   seed,
		Logger: logger,
		OnEmptied: func(bin ecs.EntityId, count int) {
			logger.Info("bin emptied", "bin", bin, "count", count)
		},
	}
	if cfg.DebugUI {
		opts.Register = debugui.Register
	}

	scene, err := game.NewScene(opts)
	if err != nil {
		logger.Error("build scene", "err", err)
		os.Exit(1)
	}

	w, h := int(tuning.Screen.Width), int(tuning.Screen.Height)
	g := &Game{scene: scene, width: w, height: h}
	if cfg.DebugUI {
		g.backend = debugui_ebiten.NewBackend("binsort", w, h)
		g.input = debugui.Install(scene)
	} else {
		ebiten.SetWindowSize(w, h)
		ebiten.SetWindowTitle("binsort")
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Info("starting", "seed", seed, "debug_ui", cfg.DebugUI)
	if err := ebiten.RunGame(g); err != nil {
		logger.Error("game stopped", "err", err)
		os.Exit(1)
	}
}
