package store

import (
	"database/sql"
	"fmt"

	"github.com/etnz/stockledger"
	"github.com/etnz/stockledger/date"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Schema of the trades table. Amounts are stored as decimal text to keep
// them exact; the id keeps the insertion order.
const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	ticker TEXT NOT NULL,
	type TEXT NOT NULL,
	price TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	fee TEXT NOT NULL
);
`

// SQLiteStore keeps trades in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger
}

// OpenSQLite opens, and creates if needed, the database at path.
func OpenSQLite(path string, log *zap.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database %q: %w", path, err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating schema in %q: %w", path, err)
	}

	return &SQLiteStore{db: db, log: log.With(zap.String("path", path))}, nil
}

// Add inserts t after all the existing trades.
func (s *SQLiteStore) Add(t stockledger.Trade) error {
	_, err := s.db.Exec(`
		INSERT INTO trades
		(date, ticker, type, price, quantity, fee)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.Date().String(), t.Ticker(), t.Side().String(),
		t.Price().Decimal().String(), int64(t.Quantity()), t.Fee().Decimal().String(),
	)
	if err != nil {
		return fmt.Errorf("error inserting trade: %w", err)
	}
	s.log.Debug("trade inserted", zap.String("ticker", t.Ticker()))
	return nil
}

// List returns all trades in insertion order. A row that does not hold a
// valid trade fails the whole listing.
func (s *SQLiteStore) List() ([]stockledger.Trade, error) {
	rows, err := s.db.Query(`SELECT id, date, ticker, type, price, quantity, fee FROM trades ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing trades: %w", err)
	}
	defer rows.Close()

	trades := []stockledger.Trade{}
	for rows.Next() {
		var (
			id, quantity    int64
			on, ticker, typ string
			price, fee      string
		)
		if err := rows.Scan(&id, &on, &ticker, &typ, &price, &quantity, &fee); err != nil {
			return nil, fmt.Errorf("error reading trade: %w", err)
		}
		t, err := scanTrade(on, ticker, typ, price, quantity, fee)
		if err != nil {
			return nil, fmt.Errorf("trade id %d: %w", id, err)
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error listing trades: %w", err)
	}
	return trades, nil
}

func scanTrade(on, ticker, typ, price string, quantity int64, fee string) (stockledger.Trade, error) {
	day, err := date.Parse(on)
	if err != nil {
		return stockledger.Trade{}, err
	}
	side, err := stockledger.ParseSide(typ)
	if err != nil {
		return stockledger.Trade{}, err
	}
	p, err := stockledger.ParseMoney(price, "")
	if err != nil {
		return stockledger.Trade{}, fmt.Errorf("invalid price %q: %w", price, err)
	}
	f, err := stockledger.ParseMoney(fee, "")
	if err != nil {
		return stockledger.Trade{}, fmt.Errorf("invalid fee %q: %w", fee, err)
	}
	t := stockledger.NewTrade(day, ticker, side, p, stockledger.Quantity(quantity), f)
	if err := t.Validate(); err != nil {
		return stockledger.Trade{}, err
	}
	return t, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
