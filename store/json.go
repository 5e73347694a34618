package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/etnz/stockledger"
	"go.uber.org/zap"
)

// JSONFile keeps the trades in memory and rewrites the whole file after each
// addition.
type JSONFile struct {
	path   string
	trades []stockledger.Trade
	log    *zap.Logger
}

// OpenJSONFile loads the ledger file at path. A missing file is an empty
// ledger, a malformed one is an error.
func OpenJSONFile(path string, log *zap.Logger) (*JSONFile, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &JSONFile{path: path, log: log.With(zap.String("path", path))}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the ledger file path.
func (s *JSONFile) Path() string { return s.path }

func (s *JSONFile) load() error {
	file, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("ledger file does not exist, starting with an empty ledger")
		s.trades = []stockledger.Trade{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("error opening ledger file %q: %w", s.path, err)
	}
	defer file.Close()

	trades, err := stockledger.DecodeTrades(file)
	if err != nil {
		return fmt.Errorf("error loading ledger file %q: %w", s.path, err)
	}
	s.trades = trades
	s.log.Debug("ledger loaded", zap.Int("trades", len(trades)))
	return nil
}

// rename replaces the ledger file with the freshly written one.
var rename = os.Rename

// save writes the ledger to a temporary file in the same directory, then
// renames it over the ledger file, so that a failed write leaves the previous
// ledger in place.
func (s *JSONFile) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory for ledger %q: %w", s.path, err)
	}

	file, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", s.path, err)
	}
	tmp := file.Name()
	defer os.Remove(tmp) // no-op once renamed

	if err := stockledger.EncodeTrades(file, s.trades); err != nil {
		file.Close()
		return fmt.Errorf("error writing ledger file %q: %w", s.path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing ledger file %q: %w", s.path, err)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		return fmt.Errorf("error writing ledger file %q: %w", s.path, err)
	}
	if err := rename(tmp, s.path); err != nil {
		return fmt.Errorf("error replacing ledger file %q: %w", s.path, err)
	}
	s.log.Debug("ledger saved", zap.Int("trades", len(s.trades)))
	return nil
}

// Add appends t and rewrites the file. When the file cannot be written the
// trade is not kept in memory either.
func (s *JSONFile) Add(t stockledger.Trade) error {
	s.trades = append(s.trades, t)
	if err := s.save(); err != nil {
		s.trades = s.trades[:len(s.trades)-1]
		return err
	}
	return nil
}

// List returns a copy of all trades in insertion order.
func (s *JSONFile) List() ([]stockledger.Trade, error) {
	return slices.Clone(s.trades), nil
}

// Close is a no-op, the file is closed after every write.
func (s *JSONFile) Close() error { return nil }
