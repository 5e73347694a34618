// Package renderer turns ledger reports into markdown.
//
// All amounts are displayed in the currency passed by the caller; an empty
// currency prints plain numbers with two decimals.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/stockledger"
)

// PositionsMarkdown renders the positions of every ticker. Open positions come
// first, then short ones (more sold than bought), then closed ones.
func PositionsMarkdown(positions stockledger.Positions, currency string) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Positions\n\n")

	if len(positions) == 0 {
		fmt.Fprintln(&b, "No trades recorded.")
		return b.String()
	}

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "| Ticker | Quantity | Average Price | Total Cost |")
		fmt.Fprintln(w, "|:---|---:|---:|---:|")
		found := false
		for ticker, p := range positions.All() {
			if !p.Quantity.IsPositive() {
				continue
			}
			found = true
			fmt.Fprintf(w, "| %s | %d | %s | %s |\n",
				ticker,
				p.Quantity,
				p.AveragePrice.In(currency),
				p.TotalCost.In(currency),
			)
		}
		return found
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "\n## Short\n\n")
		fmt.Fprintln(w, "| Ticker | Quantity | Total Cost |")
		fmt.Fprintln(w, "|:---|---:|---:|")
		found := false
		for ticker, p := range positions.All() {
			if p.Quantity >= 0 {
				continue
			}
			found = true
			fmt.Fprintf(w, "| %s | %d | %s |\n", ticker, p.Quantity, p.TotalCost.In(currency))
		}
		return found
	})

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "\n## Closed\n\n")
		fmt.Fprintln(w, "| Ticker | Total Cost |")
		fmt.Fprintln(w, "|:---|---:|")
		found := false
		for ticker, p := range positions.All() {
			if !p.Quantity.IsZero() {
				continue
			}
			found = true
			fmt.Fprintf(w, "| %s | %s |\n", ticker, p.TotalCost.In(currency))
		}
		return found
	})

	return b.String()
}

// GainsMarkdown renders the realized gains per ticker and their total.
func GainsMarkdown(report *stockledger.GainsReport, currency string) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Realized Gains\n\n")
	fmt.Fprintln(&b, "| Ticker | Realized |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, g := range report.Tickers {
		fmt.Fprintf(&b, "| %s | %s |\n", g.Ticker, g.Realized.In(currency).SignedString())
	}
	fmt.Fprintf(&b, "| **%s** | **%s** |\n", "Total", report.Total.In(currency).SignedString())
	return b.String()
}

// TickerGainsMarkdown renders the realized gains of a single ticker.
func TickerGainsMarkdown(ticker string, realized stockledger.Money, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Realized Gains for %s\n\n", ticker)
	fmt.Fprintf(&b, "Realized: **%s**\n", realized.In(currency).SignedString())
	return b.String()
}

// Trades renders a list of trades as a table, numbered by their position in
// the ledger.
func Trades(trades []stockledger.Trade, currency string) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Trades\n\n")
	if len(trades) == 0 {
		fmt.Fprintln(&b, "No trades recorded.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Date | Type | Ticker | Quantity | Price | Fee | Amount |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|")
	for _, t := range trades {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %s | %s |\n",
			t.Date(),
			t.Side(),
			t.Ticker(),
			t.Quantity(),
			t.Price().In(currency),
			t.Fee().In(currency),
			t.Amount().In(currency),
		)
	}
	return b.String()
}
