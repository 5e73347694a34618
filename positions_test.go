package stockledger

import (
	"slices"
	"testing"
)

func TestNewPositions(t *testing.T) {
	testCases := []struct {
		name   string
		trades []Trade
		ticker string
		want   Position
	}{
		{
			name: "single buy",
			trades: []Trade{
				buy("2025-01-10", "AAPL", 10, 100, 0),
			},
			ticker: "AAPL",
			want:   Position{Quantity: 10, AveragePrice: NO(100), TotalCost: NO(1000)},
		},
		{
			name: "buys with fees",
			trades: []Trade{
				buy("2025-01-10", "AAPL", 3, 10, 1),
				buy("2025-01-11", "AAPL", 7, 20, 2),
			},
			ticker: "AAPL",
			want:   Position{Quantity: 10, AveragePrice: NO(17.3), TotalCost: NO(173)},
		},
		{
			name: "sell leaves total cost",
			trades: []Trade{
				buy("2025-01-10", "AAPL", 10, 100, 0),
				sell("2025-02-10", "AAPL", 5, 150, 3),
			},
			ticker: "AAPL",
			want:   Position{Quantity: 5, AveragePrice: NO(200), TotalCost: NO(1000)},
		},
		{
			name: "closed position",
			trades: []Trade{
				buy("2025-01-10", "AAPL", 10, 100, 0),
				sell("2025-02-10", "AAPL", 10, 120, 0),
			},
			ticker: "AAPL",
			want:   Position{Quantity: 0, AveragePrice: NO(0), TotalCost: NO(1000)},
		},
		{
			name: "short position",
			trades: []Trade{
				sell("2025-02-10", "AAPL", 4, 120, 0),
			},
			ticker: "AAPL",
			want:   Position{Quantity: -4, AveragePrice: NO(0), TotalCost: NO(0)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NewPositions(tc.trades)[tc.ticker]
			if !ok {
				t.Fatalf("no position for %s", tc.ticker)
			}
			if got.Quantity != tc.want.Quantity {
				t.Errorf("Quantity = %d, want %d", got.Quantity, tc.want.Quantity)
			}
			if !got.TotalCost.Equal(tc.want.TotalCost) {
				t.Errorf("TotalCost = %v, want %v", got.TotalCost, tc.want.TotalCost)
			}
			if !got.AveragePrice.Equal(tc.want.AveragePrice) {
				t.Errorf("AveragePrice = %v, want %v", got.AveragePrice, tc.want.AveragePrice)
			}
		})
	}
}

func TestNewPositions_OnlyBuys(t *testing.T) {
	trades := []Trade{
		buy("2025-01-10", "AAPL", 3, 101.25, 0.5),
		buy("2025-01-11", "GOOG", 8, 99.1, 0),
		buy("2025-01-12", "AAPL", 9, 97.75, 1.25),
		buy("2025-01-13", "GOOG", 2, 103, 4),
		buy("2025-01-14", "AAPL", 1, 120, 0),
	}
	for ticker, p := range NewPositions(trades).All() {
		if want := p.TotalCost.Div(p.Quantity); !p.AveragePrice.Equal(want) {
			t.Errorf("%s: AveragePrice = %v, want TotalCost/Quantity = %v", ticker, p.AveragePrice, want)
		}
	}
}

func TestNewPositions_Empty(t *testing.T) {
	if got := NewPositions(nil); len(got) != 0 {
		t.Errorf("NewPositions(nil) = %v, want empty", got)
	}
}

func TestPositions_All(t *testing.T) {
	positions := NewPositions([]Trade{
		buy("2025-01-10", "MSFT", 1, 1, 0),
		buy("2025-01-10", "AAPL", 1, 1, 0),
		buy("2025-01-10", "GOOG", 1, 1, 0),
	})

	var got []string
	for ticker := range positions.All() {
		got = append(got, ticker)
	}
	if want := []string{"AAPL", "GOOG", "MSFT"}; !slices.Equal(got, want) {
		t.Errorf("All() order = %v, want %v", got, want)
	}
}
