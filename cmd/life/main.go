//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	"gpulife/internal/app"
	"gpulife/internal/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	if err := cfg.Parse(flag.CommandLine, os.Args[1:]); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	log := cfg.NewLogger(os.Stderr)
	life.SetLogger(log)

	game, err := app.New(cfg, log)
	if err != nil {
		log.Error("create game", "err", err)
		os.Exit(1)
	}
	defer game.Close()

	ebiten.SetWindowTitle("Pixels of Life")
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("run", "err", err)
		game.Close()
		os.Exit(1)
	}
}
