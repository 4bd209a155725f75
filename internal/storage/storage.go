// Package storage provides persistent storage for saved games and aggregate
// game statistics, backed by BadgerDB.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyStats   = "stats"
	gamePrefix = "game:"
)

// SavedGame is a persisted game: the starting position plus the coordinate
// move list needed to replay it.
type SavedGame struct {
	Name     string    `json:"name"`
	StartFEN string    `json:"start_fen"`
	Moves    []string  `json:"moves"`
	Result   string    `json:"result"`
	SavedAt  time.Time `json:"saved_at"`
}

// GameResult describes a finished game for statistics bookkeeping.
type GameResult struct {
	Winner      string // "white", "black" or "" for draws and unfinished games
	Termination string // classification name, e.g. "checkmate"
	Plies       int
}

// GameStats stores aggregate statistics over recorded games.
type GameStats struct {
	GamesPlayed   int            `json:"games_played"`
	WhiteWins     int            `json:"white_wins"`
	BlackWins     int            `json:"black_wins"`
	Draws         int            `json:"draws"`
	ByTermination map[string]int `json:"by_termination"`
	LongestPlies  int            `json:"longest_plies"`
}

// NewGameStats returns empty game statistics.
func NewGameStats() *GameStats {
	return &GameStats{
		ByTermination: make(map[string]int),
	}
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens the database in the given directory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame persists a game under its name, overwriting any previous save.
func (s *Storage) SaveGame(g *SavedGame) error {
	if g.Name == "" {
		return fmt.Errorf("saved game needs a name")
	}
	g.SavedAt = time.Now()

	data, err := json.Marshal(g)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(gamePrefix+g.Name), data)
	})
}

// LoadGame loads a saved game by name.
func (s *Storage) LoadGame(name string) (*SavedGame, error) {
	var g SavedGame

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(gamePrefix + name))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("no saved game named %q", name)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &g)
		})
	})
	if err != nil {
		return nil, err
	}

	return &g, nil
}

// ListGames returns the names of all saved games.
func (s *Storage) ListGames() ([]string, error) {
	var names []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			names = append(names, string(key[len(prefix):]))
		}
		return nil
	})

	return names, err
}

// DeleteGame removes a saved game by name.
func (s *Storage) DeleteGame(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(gamePrefix + name))
	})
}

// SaveStats saves game statistics.
func (s *Storage) SaveStats(stats *GameStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads game statistics, returning empty stats if none recorded.
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// RecordGame records a completed game and updates statistics.
func (s *Storage) RecordGame(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	switch result.Winner {
	case "white":
		stats.WhiteWins++
	case "black":
		stats.BlackWins++
	default:
		stats.Draws++
	}
	if result.Termination != "" {
		if stats.ByTermination == nil {
			stats.ByTermination = make(map[string]int)
		}
		stats.ByTermination[result.Termination]++
	}
	if result.Plies > stats.LongestPlies {
		stats.LongestPlies = result.Plies
	}

	return s.SaveStats(stats)
}

// DrawRate returns the share of recorded games that were drawn (0-100).
func (s *GameStats) DrawRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Draws) / float64(s.GamesPlayed) * 100
}
