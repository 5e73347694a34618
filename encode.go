package stockledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/etnz/stockledger/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// MarshalJSON writes the trade with its fields in the ledger file order.
func (t Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", t.on)
	w.Append("ticker", t.ticker)
	w.Append("type", t.side.String())
	w.Append("price", t.price.value)
	w.Append("quantity", t.quantity)
	w.Append("fee", t.fee.value)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Trade.
// A missing fee reads as zero.
func (t *Trade) UnmarshalJSON(data []byte) error {
	var temp struct {
		Date     date.Date       `json:"date"`
		Ticker   string          `json:"ticker"`
		Type     string          `json:"type"`
		Price    decimal.Decimal `json:"price"`
		Quantity Quantity        `json:"quantity"`
		Fee      decimal.Decimal `json:"fee"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	side, err := ParseSide(temp.Type)
	if err != nil {
		return err
	}
	*t = NewTrade(temp.Date, temp.Ticker, side, M(temp.Price, ""), temp.Quantity, M(temp.Fee, ""))
	return nil
}

// EncodeTrades writes trades as an indented JSON array, the ledger file
// format.
func EncodeTrades(w io.Writer, trades []Trade) error {
	if trades == nil {
		trades = []Trade{}
	}
	data, err := json.MarshalIndent(trades, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode trades: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// DecodeTrades reads a ledger file. Every entry must be a valid trade, the
// first invalid one fails the whole decoding. An empty input is an empty
// ledger. Anything but white space after the list is an error.
func DecodeTrades(r io.Reader) ([]Trade, error) {
	dec := json.NewDecoder(r)
	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return []Trade{}, nil
		}
		return nil, fmt.Errorf("could not decode trade list: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not decode trade list: trailing data after offset %d", dec.InputOffset())
	}

	trades := make([]Trade, 0, len(raw))
	for i, item := range raw {
		var t Trade
		if err := json.Unmarshal(item, &t); err != nil {
			return nil, fmt.Errorf("trade #%d %s: %w", i, item, err)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("trade #%d is invalid: %w", i, err)
		}
		trades = append(trades, t)
	}
	return trades, nil
}
