package stockledger

import "github.com/shopspring/decimal"

// Quantity is a number of units of a security. Trades only ever deal whole
// units.
type Quantity int64

func (q Quantity) IsZero() bool     { return q == 0 }
func (q Quantity) IsPositive() bool { return q > 0 }

func (q Quantity) decimal() decimal.Decimal { return decimal.NewFromInt(int64(q)) }
