package stockledger

import (
	"fmt"

	"go.uber.org/zap"
)

// Repository is an ordered, append only, collection of trades.
type Repository interface {
	// Add appends t and persists the collection.
	Add(t Trade) error
	// List returns a copy of all trades in insertion order.
	List() ([]Trade, error)
}

// Service answers the questions of the front end. Every query reads the full
// trade list from the repository and recomputes its result from scratch.
type Service struct {
	repo Repository
	calc RealizedCalculator
	log  *zap.Logger
}

// NewService creates a Service. A nil calc uses AverageCost and a nil log
// discards logs.
func NewService(repo Repository, calc RealizedCalculator, log *zap.Logger) *Service {
	if calc == nil {
		calc = AverageCost{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, calc: calc, log: log}
}

// AddTrade records t.
func (s *Service) AddTrade(t Trade) error {
	if err := s.repo.Add(t); err != nil {
		return fmt.Errorf("could not add trade: %w", err)
	}
	s.log.Debug("trade added",
		zap.Stringer("date", t.Date()),
		zap.String("ticker", t.Ticker()),
		zap.Stringer("type", t.Side()),
		zap.Int64("quantity", int64(t.Quantity())),
		zap.Stringer("price", t.Price()),
		zap.Stringer("fee", t.Fee()),
	)
	return nil
}

// Trades returns all recorded trades in insertion order.
func (s *Service) Trades() ([]Trade, error) {
	trades, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("could not list trades: %w", err)
	}
	return trades, nil
}

// Positions returns the current position of every ticker ever traded.
func (s *Service) Positions() (Positions, error) {
	trades, err := s.Trades()
	if err != nil {
		return nil, err
	}
	return NewPositions(trades), nil
}

// Gains returns the realized gains of every ticker and their total.
func (s *Service) Gains() (*GainsReport, error) {
	trades, err := s.Trades()
	if err != nil {
		return nil, err
	}
	report, err := NewGainsReport(s.calc, trades)
	if err != nil {
		return nil, fmt.Errorf("could not compute realized gains: %w", err)
	}
	return report, nil
}

// RealizedPL returns the realized gains summed over all tickers.
func (s *Service) RealizedPL() (Money, error) {
	report, err := s.Gains()
	if err != nil {
		return Money{}, err
	}
	return report.Total, nil
}

// RealizedPLByTicker returns the realized gains of a single ticker. A ticker
// never traded has zero gains.
func (s *Service) RealizedPLByTicker(ticker string) (Money, error) {
	trades, err := s.Trades()
	if err != nil {
		return Money{}, err
	}
	realized, err := s.calc.Realized(trades, NormalizeTicker(ticker))
	if err != nil {
		return Money{}, fmt.Errorf("could not compute realized gains: %w", err)
	}
	return realized, nil
}
