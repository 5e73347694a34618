package stockledger

import (
	"errors"
	"slices"
	"testing"
)

// memRepository is an in memory Repository.
type memRepository struct {
	trades []Trade
	err    error
}

func (r *memRepository) Add(t Trade) error {
	if r.err != nil {
		return r.err
	}
	r.trades = append(r.trades, t)
	return nil
}

func (r *memRepository) List() ([]Trade, error) {
	if r.err != nil {
		return nil, r.err
	}
	return slices.Clone(r.trades), nil
}

func TestService(t *testing.T) {
	svc := NewService(&memRepository{}, nil, nil)

	for _, tr := range []Trade{
		buy("2025-01-10", "AAPL", 10, 100, 0),
		buy("2025-01-11", "GOOG", 5, 200, 0),
		sell("2025-02-10", "AAPL", 4, 150, 0),
		sell("2025-02-11", "GOOG", 5, 190, 0),
	} {
		if err := svc.AddTrade(tr); err != nil {
			t.Fatalf("AddTrade() error = %v", err)
		}
	}

	t.Run("positions", func(t *testing.T) {
		positions, err := svc.Positions()
		if err != nil {
			t.Fatalf("Positions() error = %v", err)
		}
		if got := positions.Tickers(); !slices.Equal(got, []string{"AAPL", "GOOG"}) {
			t.Errorf("Tickers() = %v", got)
		}
		if got := positions["AAPL"].Quantity; got != 6 {
			t.Errorf("AAPL quantity = %d, want 6", got)
		}
		if got := positions["GOOG"].Quantity; got != 0 {
			t.Errorf("GOOG quantity = %d, want 0", got)
		}
	})

	t.Run("realized total", func(t *testing.T) {
		got, err := svc.RealizedPL()
		if err != nil {
			t.Fatalf("RealizedPL() error = %v", err)
		}
		if want := NO(150); !got.Equal(want) { // 200 - 50
			t.Errorf("RealizedPL() = %v, want %v", got, want)
		}
	})

	t.Run("realized by ticker", func(t *testing.T) {
		got, err := svc.RealizedPLByTicker("aapl")
		if err != nil {
			t.Fatalf("RealizedPLByTicker() error = %v", err)
		}
		if want := NO(200); !got.Equal(want) {
			t.Errorf("RealizedPLByTicker(aapl) = %v, want %v", got, want)
		}
	})

	t.Run("unknown ticker", func(t *testing.T) {
		got, err := svc.RealizedPLByTicker("TSLA")
		if err != nil {
			t.Fatalf("RealizedPLByTicker() error = %v", err)
		}
		if !got.IsZero() {
			t.Errorf("RealizedPLByTicker(TSLA) = %v, want 0", got)
		}
	})
}

func TestService_Empty(t *testing.T) {
	svc := NewService(&memRepository{}, AverageCost{}, nil)

	positions, err := svc.Positions()
	if err != nil {
		t.Fatalf("Positions() error = %v", err)
	}
	if len(positions) != 0 {
		t.Errorf("Positions() = %v, want empty", positions)
	}

	total, err := svc.RealizedPL()
	if err != nil {
		t.Fatalf("RealizedPL() error = %v", err)
	}
	if !total.IsZero() {
		t.Errorf("RealizedPL() = %v, want 0", total)
	}
}

func TestService_NoCostBasis(t *testing.T) {
	repo := &memRepository{trades: []Trade{sell("2025-01-10", "AAPL", 1, 100, 0)}}
	svc := NewService(repo, nil, nil)

	if _, err := svc.RealizedPL(); !errors.Is(err, ErrNoCostBasis) {
		t.Errorf("RealizedPL() error = %v, want ErrNoCostBasis", err)
	}
	if _, err := svc.RealizedPLByTicker("AAPL"); !errors.Is(err, ErrNoCostBasis) {
		t.Errorf("RealizedPLByTicker() error = %v, want ErrNoCostBasis", err)
	}
	// positions do not need a cost basis.
	if _, err := svc.Positions(); err != nil {
		t.Errorf("Positions() error = %v", err)
	}
}

func TestService_RepositoryErrors(t *testing.T) {
	errDisk := errors.New("disk is full")
	svc := NewService(&memRepository{err: errDisk}, nil, nil)

	if err := svc.AddTrade(buy("2025-01-10", "AAPL", 1, 1, 0)); !errors.Is(err, errDisk) {
		t.Errorf("AddTrade() error = %v, want %v", err, errDisk)
	}
	if _, err := svc.Positions(); !errors.Is(err, errDisk) {
		t.Errorf("Positions() error = %v, want %v", err, errDisk)
	}
	if _, err := svc.RealizedPL(); !errors.Is(err, errDisk) {
		t.Errorf("RealizedPL() error = %v, want %v", err, errDisk)
	}
}
