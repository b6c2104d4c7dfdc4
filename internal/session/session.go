// Package session ties a game to persistent storage: it restores an
// unfinished game, saves after every move and records results.
package session

import (
	"time"

	"github.com/apex/log"
	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

// Session is a game plus the player's stored preferences and statistics.
// The store may be nil, in which case nothing is persisted.
type Session struct {
	Game  *game.Game
	Prefs *storage.UserPreferences
	Stats *storage.GameStats

	store   *storage.Storage
	log     log.Interface
	pending *storage.SavedGame
	started time.Time
}

// New loads preferences, statistics and any saved game from store.
func New(store *storage.Storage, logger log.Interface) *Session {
	if logger == nil {
		logger = log.Log
	}
	s := &Session{
		Game:    game.New(game.WithLogger(logger)),
		Prefs:   storage.DefaultPreferences(),
		Stats:   storage.NewGameStats(),
		store:   store,
		log:     logger,
		started: time.Now(),
	}
	if store == nil {
		return s
	}

	if prefs, err := store.LoadPreferences(); err != nil {
		logger.WithError(err).Warn("load preferences")
	} else {
		s.Prefs = prefs
	}
	s.reloadStats()

	saved, err := store.LoadGame()
	if err != nil {
		logger.WithError(err).Warn("load saved game")
	}
	if saved != nil && len(saved.Moves) > 0 {
		s.pending = saved
	}
	return s
}

// Open opens the store in dir, or the platform data directory when dir is
// empty, and loads a session from it. If the store cannot be opened the
// session runs without persistence.
func Open(dir string, logger log.Interface) *Session {
	if logger == nil {
		logger = log.Log
	}
	var (
		store *storage.Storage
		err   error
	)
	if dir == "" {
		store, err = storage.Open(logger)
	} else {
		store, err = storage.NewStorage(dir, logger)
	}
	if err != nil {
		logger.WithError(err).Warn("storage unavailable, nothing will be saved")
		store = nil
	}
	return New(store, logger)
}

// Pending returns the saved game waiting to be resumed or discarded.
func (s *Session) Pending() *storage.SavedGame {
	return s.pending
}

// Resume replays the pending game. If a saved move no longer replays, the
// game is kept up to the last good move and the error is returned.
func (s *Session) Resume() error {
	saved := s.pending
	s.pending = nil
	if saved == nil {
		return nil
	}

	moves := make([]game.Move, 0, len(saved.Moves))
	for _, str := range saved.Moves {
		m, err := game.ParseMove(str)
		if err != nil {
			s.log.WithError(err).Warn("saved game truncated")
			break
		}
		moves = append(moves, m)
	}

	s.started = time.Now()
	err := s.Game.Replay(moves)
	if err != nil {
		s.log.WithError(err).Warn("saved game truncated")
	}
	s.log.WithField("plies", s.Game.MoveCount()).Info("game resumed")
	s.persist()
	return err
}

// NewGame starts over. A game in progress, or a pending saved game, is
// recorded as abandoned.
func (s *Session) NewGame() {
	if !s.abandonPending() && s.Game.MoveCount() > 0 && !s.Game.GameOver() {
		s.record(storage.GameResult{
			Plies:    s.Game.MoveCount(),
			Duration: time.Since(s.started),
		})
	}

	s.Game.Reset()
	s.started = time.Now()
	if s.store != nil {
		if err := s.store.ClearGame(); err != nil {
			s.log.WithError(err).Warn("clear saved game")
		}
	}
}

// abandonPending records the pending saved game as abandoned and forgets
// it. It reports whether there was one.
func (s *Session) abandonPending() bool {
	if s.pending == nil {
		return false
	}
	s.record(storage.GameResult{
		Plies:    len(s.pending.Moves),
		Duration: time.Since(s.started),
	})
	s.log.WithField("plies", len(s.pending.Moves)).Info("saved game abandoned")
	s.pending = nil
	return true
}

// Move requests a move. A nil chooser promotes to a queen.
// On success the game is saved, or recorded and cleared if it just ended.
// A pending saved game that was never resumed is recorded as abandoned.
func (s *Session) Move(from, to board.Square, chooser board.PromotionChooser) (board.MoveInfo, error) {
	if chooser == nil {
		chooser = board.AutoQueen
	}
	if err := s.Game.RequestMoveWith(from, to, chooser); err != nil {
		return board.MoveInfo{}, err
	}
	info, _ := s.Game.LastMove()
	if s.abandonPending() {
		s.started = time.Now()
	}

	if s.Game.GameOver() {
		winner, _ := s.Game.Winner()
		s.record(storage.GameResult{
			Finished: true,
			Winner:   winner,
			Plies:    s.Game.MoveCount(),
			Duration: time.Since(s.started),
		})
	}
	s.persist()
	return info, nil
}

// MoveStrings returns the history in the saved "e2e4" form.
func (s *Session) MoveStrings() []string {
	moves := s.Game.Moves()
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

// persist saves the game in progress, or removes the save once it is over.
func (s *Session) persist() {
	if s.store == nil {
		return
	}
	var err error
	if s.Game.GameOver() || s.Game.MoveCount() == 0 {
		err = s.store.ClearGame()
	} else {
		err = s.store.SaveGame(s.MoveStrings())
	}
	if err != nil {
		s.log.WithError(err).Warn("save game")
	}
}

func (s *Session) record(result storage.GameResult) {
	if s.store == nil {
		return
	}
	if err := s.store.RecordGame(result); err != nil {
		s.log.WithError(err).Warn("record game")
		return
	}
	s.reloadStats()
}

func (s *Session) reloadStats() {
	stats, err := s.store.LoadStats()
	if err != nil {
		s.log.WithError(err).Warn("load stats")
		return
	}
	s.Stats = stats
}

// SavePreferences replaces and stores the preferences.
func (s *Session) SavePreferences(prefs *storage.UserPreferences) {
	s.Prefs = prefs
	if s.store == nil {
		return
	}
	if err := s.store.SavePreferences(prefs); err != nil {
		s.log.WithError(err).Warn("save preferences")
	}
}

// Close closes the store. The game in progress has already been saved.
func (s *Session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
