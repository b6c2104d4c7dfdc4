// ChessRules - a two-player chess board built with Ebitengine
package main

import (
	"flag"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/hailam/chessrules/internal/session"
	"github.com/hailam/chessrules/internal/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	dataDir  = flag.String("data", "", "directory for the game database (default: platform data directory)")
	logLevel = flag.String("log-level", "info", "log level: debug, info, warn, error")
	fresh    = flag.Bool("fresh", false, "discard any unfinished game instead of offering to resume it")
)

func main() {
	flag.Parse()

	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		log.WithError(err).Fatal("invalid -log-level")
	}
	logger := &log.Logger{Handler: cli.New(os.Stderr), Level: level}

	sess := session.Open(*dataDir, logger)
	if *fresh && sess.Pending() != nil {
		sess.NewGame()
	}

	game := ui.NewGame(sess, logger)
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("ChessRules")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		logger.WithError(err).Error("run")
		game.Close()
		os.Exit(1)
	}
}
