package stockledger

import (
	"iter"
	"maps"
	"slices"
)

// Position summarizes the holding of a ticker.
type Position struct {
	Quantity     Quantity
	AveragePrice Money // zero when Quantity is not positive
	TotalCost    Money
}

// Positions maps tickers to their position.
type Positions map[string]Position

// NewPositions replays trades in order and returns the resulting positions.
//
// A buy adds its quantity and its cost (fee included) to the position. A sell
// removes its quantity but keeps the total cost.
func NewPositions(trades []Trade) Positions {
	positions := make(Positions)
	for _, t := range trades {
		p, ok := positions[t.Ticker()]
		if !ok {
			p = Position{Quantity: 0, TotalCost: M(0, "")}
		}
		switch t.Side() {
		case Buy:
			p.Quantity += t.Quantity()
			p.TotalCost = p.TotalCost.Add(t.Cost())
		case Sell:
			p.Quantity -= t.Quantity()
		}
		positions[t.Ticker()] = p
	}

	for ticker, p := range positions {
		if p.Quantity.IsPositive() {
			p.AveragePrice = p.TotalCost.Div(p.Quantity)
		} else {
			p.AveragePrice = M(0, "")
		}
		positions[ticker] = p
	}
	return positions
}

// Tickers returns the tickers in lexicographic order.
func (p Positions) Tickers() []string { return slices.Sorted(maps.Keys(p)) }

// All iterates over positions in ticker order.
func (p Positions) All() iter.Seq2[string, Position] {
	return func(yield func(string, Position) bool) {
		for _, ticker := range p.Tickers() {
			if !yield(ticker, p[ticker]) {
				return
			}
		}
	}
}
