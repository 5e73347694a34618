package stockledger

import (
	"errors"
	"testing"
)

func TestAverageCost_Realized(t *testing.T) {
	testCases := []struct {
		name   string
		trades []Trade
		ticker string
		want   Money
	}{
		{
			name:   "empty ledger",
			ticker: "AAPL",
			want:   NO(0),
		},
		{
			name: "full sell",
			trades: []Trade{
				buy("2025-01-10", "AAPL", 10, 100, 0),
				sell("2025-02-10", "AAPL", 10, 120, 0),
			},
			ticker: "AAPL",
			want:   NO(200),
		},
		{
			name: "partial sell",
			trades: []Trade{
				buy("2025-01-10", "AAPL", 10, 100, 0),
				sell("2025-02-10", "AAPL", 4, 150, 0),
			},
			ticker: "AAPL",
			want:   NO(200), // (150-100)*4
		},
		{
			name: "average is kept by partial sells",
			trades: []Trade{
				buy("2025-01-10", "AAPL", 10, 100, 0),
				sell("2025-02-10", "AAPL", 4, 150, 0),
				sell("2025-03-10", "AAPL", 6, 100, 0),
			},
			ticker: "AAPL",
			want:   NO(200), // last sell happens at the average price
		},
		{
			name: "average across buys",
			trades: []Trade{
				buy("2025-01-10", "AAPL", 10, 100, 0),
				buy("2025-01-20", "AAPL", 10, 200, 0),
				sell("2025-02-10", "AAPL", 5, 180, 0),
			},
			ticker: "AAPL",
			want:   NO(150), // (180-150)*5
		},
		{
			name: "fees on both sides",
			trades: []Trade{
				buy("2025-01-10", "AAPL", 10, 100, 10), // average 101
				sell("2025-02-10", "AAPL", 10, 120, 5),
			},
			ticker: "AAPL",
			want:   NO(185), // (120-101)*10 - 5
		},
		{
			name: "loss",
			trades: []Trade{
				buy("2025-01-10", "AAPL", 10, 100, 0),
				sell("2025-02-10", "AAPL", 10, 90, 1),
			},
			ticker: "AAPL",
			want:   NO(-101),
		},
		{
			name: "other tickers are ignored",
			trades: []Trade{
				buy("2025-01-10", "AAPL", 10, 100, 0),
				sell("2025-01-11", "GOOG", 10, 1, 0), // would fail if replayed
				sell("2025-02-10", "AAPL", 10, 120, 0),
			},
			ticker: "AAPL",
			want:   NO(200),
		},
		{
			name: "list order wins over dates",
			trades: []Trade{
				buy("2025-03-10", "AAPL", 10, 100, 0),
				sell("2025-01-10", "AAPL", 10, 120, 0),
			},
			ticker: "AAPL",
			want:   NO(200),
		},
		{
			name: "buys after an oversell",
			trades: []Trade{
				buy("2025-01-10", "AAPL", 5, 100, 0),
				sell("2025-01-11", "AAPL", 10, 110, 0), // held -5
				buy("2025-01-12", "AAPL", 10, 120, 0),  // (100*-5 + 1200)/5 = 140
				sell("2025-01-13", "AAPL", 5, 150, 0),
			},
			ticker: "AAPL",
			want:   NO(150), // 100 + (150-140)*5
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AverageCost{}.Realized(tc.trades, tc.ticker)
			if err != nil {
				t.Fatalf("Realized() error = %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("Realized() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAverageCost_NoCostBasis(t *testing.T) {
	testCases := []struct {
		name   string
		trades []Trade
	}{
		{
			name: "sell before any buy",
			trades: []Trade{
				sell("2025-01-10", "AAPL", 10, 120, 0),
				buy("2025-01-11", "AAPL", 10, 100, 0),
			},
		},
		{
			name: "sell after a buy of another ticker",
			trades: []Trade{
				buy("2025-01-10", "GOOG", 10, 100, 0),
				sell("2025-01-11", "AAPL", 10, 120, 0),
			},
		},
		{
			name: "buy back to zero units",
			trades: []Trade{
				buy("2025-01-10", "AAPL", 5, 100, 0),
				sell("2025-01-11", "AAPL", 10, 110, 0),
				buy("2025-01-12", "AAPL", 5, 90, 0), // held 0
				sell("2025-01-13", "AAPL", 1, 100, 0),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := AverageCost{}.Realized(tc.trades, "AAPL")
			if !errors.Is(err, ErrNoCostBasis) {
				t.Errorf("Realized() error = %v, want ErrNoCostBasis", err)
			}
		})
	}
}

func TestAverageCost_FeesReduceGains(t *testing.T) {
	realized := func(buyFee, sellFee float64) Money {
		t.Helper()
		got, err := AverageCost{}.Realized([]Trade{
			buy("2025-01-10", "AAPL", 10, 100, buyFee),
			sell("2025-02-10", "AAPL", 7, 130, sellFee),
		}, "AAPL")
		if err != nil {
			t.Fatalf("Realized() error = %v", err)
		}
		return got
	}

	base := realized(0, 0)
	for _, fee := range []float64{0.01, 1, 9.99, 250} {
		if got := realized(0, fee); !got.LessThan(base) {
			t.Errorf("sell fee %v: Realized() = %v, want less than %v", fee, got, base)
		}
		if got := realized(fee, 0); !got.LessThan(base) {
			t.Errorf("buy fee %v: Realized() = %v, want less than %v", fee, got, base)
		}
	}
}

func TestNewGainsReport(t *testing.T) {
	trades := []Trade{
		buy("2025-01-10", "MSFT", 10, 100, 0),
		buy("2025-01-10", "AAPL", 10, 100, 0),
		sell("2025-02-10", "MSFT", 10, 90, 0),
		sell("2025-02-10", "AAPL", 5, 120, 0),
		buy("2025-02-11", "GOOG", 1, 10, 0),
	}

	report, err := NewGainsReport(AverageCost{}, trades)
	if err != nil {
		t.Fatalf("NewGainsReport() error = %v", err)
	}

	want := []TickerGains{
		{Ticker: "AAPL", Realized: NO(100)},
		{Ticker: "GOOG", Realized: NO(0)},
		{Ticker: "MSFT", Realized: NO(-100)},
	}
	if len(report.Tickers) != len(want) {
		t.Fatalf("got %d tickers, want %d: %v", len(report.Tickers), len(want), report.Tickers)
	}
	for i, w := range want {
		got := report.Tickers[i]
		if got.Ticker != w.Ticker || !got.Realized.Equal(w.Realized) {
			t.Errorf("Tickers[%d] = %v, want %v", i, got, w)
		}
	}
	if !report.Total.Equal(NO(0)) {
		t.Errorf("Total = %v, want 0", report.Total)
	}
}

func TestNewGainsReport_Empty(t *testing.T) {
	report, err := NewGainsReport(AverageCost{}, nil)
	if err != nil {
		t.Fatalf("NewGainsReport() error = %v", err)
	}
	if len(report.Tickers) != 0 {
		t.Errorf("Tickers = %v, want none", report.Tickers)
	}
	if !report.Total.IsZero() {
		t.Errorf("Total = %v, want 0", report.Total)
	}
}

func TestNewGainsReport_NoCostBasis(t *testing.T) {
	trades := []Trade{
		buy("2025-01-10", "AAPL", 10, 100, 0),
		sell("2025-01-11", "TSLA", 1, 100, 0),
	}
	if _, err := NewGainsReport(AverageCost{}, trades); !errors.Is(err, ErrNoCostBasis) {
		t.Errorf("NewGainsReport() error = %v, want ErrNoCostBasis", err)
	}
}
