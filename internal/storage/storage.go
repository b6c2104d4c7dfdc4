package storage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/apex/log"
	"github.com/dgraph-io/badger/v4"
	"github.com/hailam/chessrules/internal/board"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keySavedGame   = "saved_game"
)

// UserPreferences stores user settings
type UserPreferences struct {
	Username       string    `json:"username"`
	SoundEnabled   bool      `json:"sound_enabled"`
	FlipBoard      bool      `json:"flip_board"`
	AutoQueen      bool      `json:"auto_queen"`
	ShowLegalMoves bool      `json:"show_legal_moves"`
	LastPlayed     time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:       "Player",
		SoundEnabled:   true,
		ShowLegalMoves: true,
		LastPlayed:     time.Now(),
	}
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed   int           `json:"games_played"`
	WhiteWins     int           `json:"white_wins"`
	BlackWins     int           `json:"black_wins"`
	Abandoned     int           `json:"abandoned"`
	LongestGame   int           `json:"longest_game"` // in plies
	TotalPlayTime time.Duration `json:"total_play_time"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{}
}

// GameResult describes a finished or abandoned game.
type GameResult struct {
	Finished bool
	Winner   board.Color
	Plies    int
	Duration time.Duration
}

// SavedGame is an unfinished game that can be resumed by replaying Moves
// from the standard starting position.
type SavedGame struct {
	Moves   []string  `json:"moves"`
	SavedAt time.Time `json:"saved_at"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	log log.Interface
}

// Open opens the database in the platform data directory.
func Open(logger log.Interface) (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return NewStorage(dbDir, logger)
}

// NewStorage opens (creating if needed) a database in dir.
func NewStorage(dir string, logger log.Interface) (*Storage, error) {
	if logger == nil {
		logger = log.Log
	}
	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logger})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	logger.WithField("dir", dir).Debug("storage opened")
	return &Storage{db: db, log: logger}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	_, err := s.get(keyPreferences, prefs)
	return prefs, err
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	_, err := s.get(keyStats, stats)
	return stats, err
}

// RecordGame records a completed game and updates statistics
func (s *Storage) RecordGame(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlayTime += result.Duration
	if result.Plies > stats.LongestGame {
		stats.LongestGame = result.Plies
	}

	switch {
	case !result.Finished:
		stats.Abandoned++
	case result.Winner == board.White:
		stats.WhiteWins++
	default:
		stats.BlackWins++
	}

	s.log.WithFields(log.Fields{
		"finished": result.Finished,
		"winner":   result.Winner,
		"plies":    result.Plies,
	}).Debug("game recorded")
	return s.SaveStats(stats)
}

// SaveGame stores the moves of the game in progress, replacing any
// previously saved game.
func (s *Storage) SaveGame(moves []string) error {
	return s.put(keySavedGame, &SavedGame{Moves: moves, SavedAt: time.Now()})
}

// LoadGame returns the saved game, or nil if there is none.
func (s *Storage) LoadGame() (*SavedGame, error) {
	saved := &SavedGame{}
	found, err := s.get(keySavedGame, saved)
	if err != nil || !found {
		return nil, err
	}
	return saved, nil
}

// ClearGame removes the saved game.
func (s *Storage) ClearGame() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keySavedGame))
	})
}

// put stores v as JSON under key.
func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the JSON stored under key into v, leaving v untouched when
// the key is missing.
func (s *Storage) get(key string, v any) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return found, err
}

// WhiteWinRate returns the share of finished games won by White (0-100)
func (s *GameStats) WhiteWinRate() float64 {
	finished := s.WhiteWins + s.BlackWins
	if finished == 0 {
		return 0
	}
	return float64(s.WhiteWins) / float64(finished) * 100
}

// badgerLogger routes badger's log output through apex/log. Badger's info
// chatter is demoted to debug.
type badgerLogger struct {
	log.Interface
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Interface.Warnf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.Interface.Debugf(format, args...)
}
