package stockledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/stockledger/date"
)

// Side tells whether a trade buys or sells units.
type Side int

const (
	Buy Side = iota + 1
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "unknown"
	}
}

// ParseSide parses "BUY" or "SELL", in any case.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown trade type %q want BUY or SELL", s)
	}
}

// NormalizeTicker returns the canonical, upper case, form of a ticker.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Trade records a single buy or sell of a security.
//
// A Trade is immutable once created.
type Trade struct {
	on       date.Date
	ticker   string
	side     Side
	price    Money // per unit
	quantity Quantity
	fee      Money
}

// NewTrade creates a new Trade. The ticker is normalized with NormalizeTicker.
func NewTrade(on date.Date, ticker string, side Side, price Money, quantity Quantity, fee Money) Trade {
	return Trade{
		on:       on,
		ticker:   NormalizeTicker(ticker),
		side:     side,
		price:    price,
		quantity: quantity,
		fee:      fee,
	}
}

// NewBuy creates a new Buy trade.
func NewBuy(on date.Date, ticker string, quantity Quantity, price, fee Money) Trade {
	return NewTrade(on, ticker, Buy, price, quantity, fee)
}

// NewSell creates a new Sell trade.
func NewSell(on date.Date, ticker string, quantity Quantity, price, fee Money) Trade {
	return NewTrade(on, ticker, Sell, price, quantity, fee)
}

func (t Trade) Date() date.Date    { return t.on }
func (t Trade) Ticker() string     { return t.ticker }
func (t Trade) Side() Side         { return t.side }
func (t Trade) Price() Money       { return t.price }
func (t Trade) Quantity() Quantity { return t.quantity }
func (t Trade) Fee() Money         { return t.fee }

// Amount is the gross value of the trade, price times quantity, fee excluded.
func (t Trade) Amount() Money { return t.price.Mul(t.quantity) }

// Cost is what a buy adds to the cost basis: amount plus fee.
func (t Trade) Cost() Money { return t.Amount().Add(t.fee) }

// Equal reports whether t and u record the same trade.
func (t Trade) Equal(u Trade) bool {
	return t.on == u.on &&
		t.ticker == u.ticker &&
		t.side == u.side &&
		t.price.Equal(u.price) &&
		t.quantity == u.quantity &&
		t.fee.Equal(u.fee)
}

func (t Trade) String() string {
	return fmt.Sprintf("%s %s %d %s @ %s fee %s", t.on, t.side, t.quantity, t.ticker, t.price, t.fee)
}

// Validate checks the trade fields and returns all the failures at once.
func (t Trade) Validate() error {
	var errs []error
	if t.on.IsZero() {
		errs = append(errs, errors.New("date is missing"))
	}
	if t.ticker == "" {
		errs = append(errs, errors.New("ticker is missing"))
	}
	if t.side != Buy && t.side != Sell {
		errs = append(errs, fmt.Errorf("invalid trade type %d", t.side))
	}
	if t.price.IsNegative() {
		errs = append(errs, fmt.Errorf("price must be non-negative, got %s", t.price))
	}
	if !t.quantity.IsPositive() {
		errs = append(errs, fmt.Errorf("quantity must be positive, got %d", t.quantity))
	}
	if t.fee.IsNegative() {
		errs = append(errs, fmt.Errorf("fee must be non-negative, got %s", t.fee))
	}
	return errors.Join(errs...)
}
