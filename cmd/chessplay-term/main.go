// Command chessplay-term plays a two-player game in the terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"
	"github.com/gdamore/tcell/v2"
	"github.com/hailam/chessrules/internal/session"
	"github.com/hailam/chessrules/internal/storage"
	"github.com/hailam/chessrules/internal/tui"
)

var (
	dataDir  = flag.String("data", "", "directory for the game database (default: platform data directory)")
	logLevel = flag.String("log-level", "info", "log level: debug, info, warn, error")
	logFile  = flag.String("log-file", "", "log file (default: chessrules.log in the data directory)")
	fresh    = flag.Bool("fresh", false, "discard any unfinished game instead of offering to resume it")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "chessplay-term:", err)
		os.Exit(1)
	}
}

func run() error {
	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		return fmt.Errorf("invalid -log-level: %w", err)
	}

	path := *logFile
	if path == "" {
		if path, err = storage.GetLogPath(); err != nil {
			return fmt.Errorf("log path: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	// The terminal belongs to the board, so logs only go to the file.
	logger := &log.Logger{Handler: text.New(f), Level: level}

	sess := session.Open(*dataDir, logger)
	defer sess.Close()
	if *fresh && sess.Pending() != nil {
		sess.NewGame()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	logger.Info("terminal session started")
	return tui.New(screen, sess, logger).Run()
}
