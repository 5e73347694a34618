package stockledger

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNoCostBasis is returned when a sell happens while the ticker has no
// average buy price, typically because no buy precedes it.
var ErrNoCostBasis = errors.New("no cost basis")

// RealizedCalculator computes the realized gains of a ticker from the full
// trade list.
type RealizedCalculator interface {
	Realized(trades []Trade, ticker string) (Money, error)
}

// costBasis is the running average buy price of a ticker.
// The zero value holds no basis.
type costBasis struct {
	average Money
	valid   bool
}

// AverageCost computes realized gains with the average cost basis method.
//
// Each buy moves the average buy price to (average*held + cost)/(held+bought).
// Each sell realizes (price - average)*sold - fee and keeps the average.
type AverageCost struct{}

// Realized replays the trades of ticker in list order.
func (AverageCost) Realized(trades []Trade, ticker string) (Money, error) {
	realized := M(0, "")
	var basis costBasis
	var held Quantity

	for i, t := range trades {
		if t.Ticker() != ticker {
			continue
		}
		switch t.Side() {
		case Buy:
			totalCost := basis.average.Mul(held).Add(t.Cost())
			held += t.Quantity()
			if held.IsZero() {
				// an average over zero units is undefined.
				basis = costBasis{}
				continue
			}
			basis = costBasis{average: totalCost.Div(held), valid: true}
		case Sell:
			if !basis.valid {
				return Money{}, fmt.Errorf("%w for %s: trade #%d on %s sells %d units without a prior average buy price", ErrNoCostBasis, ticker, i, t.Date(), t.Quantity())
			}
			gain := t.Price().Sub(basis.average).Mul(t.Quantity()).Sub(t.Fee())
			realized = realized.Add(gain)
			held -= t.Quantity()
		}
	}
	return realized, nil
}

// TickerGains holds the realized gains of a single ticker.
type TickerGains struct {
	Ticker   string
	Realized Money
}

// GainsReport contains the realized gains of every ticker in the ledger.
type GainsReport struct {
	Tickers []TickerGains // sorted by ticker
	Total   Money
}

// Tickers returns the distinct tickers of trades in lexicographic order.
func Tickers(trades []Trade) []string {
	seen := make(map[string]struct{})
	for _, t := range trades {
		seen[t.Ticker()] = struct{}{}
	}
	tickers := make([]string, 0, len(seen))
	for ticker := range seen {
		tickers = append(tickers, ticker)
	}
	slices.Sort(tickers)
	return tickers
}

// NewGainsReport computes the realized gains of every ticker in trades. The
// first ticker that fails aborts the report.
func NewGainsReport(calc RealizedCalculator, trades []Trade) (*GainsReport, error) {
	report := &GainsReport{
		Tickers: []TickerGains{},
		Total:   M(0, ""),
	}
	for _, ticker := range Tickers(trades) {
		realized, err := calc.Realized(trades, ticker)
		if err != nil {
			return nil, err
		}
		report.Tickers = append(report.Tickers, TickerGains{Ticker: ticker, Realized: realized})
		report.Total = report.Total.Add(realized)
	}
	return report, nil
}
