package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/stockledger"
	"github.com/etnz/stockledger/date"
	"github.com/google/subcommands"
)

// tradeCmd records a buy or a sell, depending on side.
type tradeCmd struct {
	side     stockledger.Side
	date     string
	ticker   string
	quantity int64
	price    string
	fee      string
}

func (c *tradeCmd) Name() string { return strings.ToLower(c.side.String()) }
func (c *tradeCmd) Synopsis() string {
	if c.side == stockledger.Sell {
		return "record a sale of shares"
	}
	return "record a purchase of shares"
}
func (c *tradeCmd) Usage() string {
	return fmt.Sprintf(`stl %s -t <ticker> -q <quantity> -p <price> [-d <date>] [-f <fee>]

  Appends a %s trade to the ledger.
`, c.Name(), c.side)
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Trade date (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Ticker symbol")
	f.Int64Var(&c.quantity, "q", 0, "Number of shares")
	f.StringVar(&c.price, "p", "", "Price per share")
	f.StringVar(&c.fee, "f", "0", "Transaction fee")
}

// trade builds the trade described by the flags.
func (c *tradeCmd) trade() (stockledger.Trade, error) {
	on, err := date.Parse(c.date)
	if err != nil {
		return stockledger.Trade{}, fmt.Errorf("invalid date: %w", err)
	}
	if c.price == "" {
		return stockledger.Trade{}, fmt.Errorf("price is missing")
	}
	price, err := stockledger.ParseMoney(c.price, "")
	if err != nil {
		return stockledger.Trade{}, fmt.Errorf("invalid price: %w", err)
	}
	fee, err := stockledger.ParseMoney(c.fee, "")
	if err != nil {
		return stockledger.Trade{}, fmt.Errorf("invalid fee: %w", err)
	}
	t := stockledger.NewTrade(on, c.ticker, c.side, price, stockledger.Quantity(c.quantity), fee)
	if err := t.Validate(); err != nil {
		return stockledger.Trade{}, err
	}
	return t, nil
}

func (c *tradeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := c.trade()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		f.Usage()
		return subcommands.ExitUsageError
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.svc.AddTrade(t); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Recorded %s\n", t)
	return subcommands.ExitSuccess
}
