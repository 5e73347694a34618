package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockledger"
	"github.com/etnz/stockledger/date"
	"github.com/etnz/stockledger/renderer"
	"github.com/google/subcommands"
)

type positionsCmd struct{}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "show the quantity held and the cost of every ticker" }
func (*positionsCmd) Usage() string {
	return `stl positions

  Shows, for every ticker ever traded, the quantity held, the total cost and
  the average price.
`
}

func (*positionsCmd) SetFlags(f *flag.FlagSet) {}

func (*positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	positions, err := a.svc.Positions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.PositionsMarkdown(positions, a.cfg.Currency))
	return subcommands.ExitSuccess
}

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	ticker string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "show realized gains, average cost basis" }
func (*gainsCmd) Usage() string {
	return `stl gains [-t <ticker>]

  Shows the realized gains of every ticker and their total, or of a single
  ticker with -t.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Only report on this ticker")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if c.ticker != "" {
		realized, err := a.svc.RealizedPLByTicker(c.ticker)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.TickerGainsMarkdown(stockledger.NormalizeTicker(c.ticker), realized, a.cfg.Currency))
		return subcommands.ExitSuccess
	}

	report, err := a.svc.Gains()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.GainsMarkdown(report, a.cfg.Currency))
	return subcommands.ExitSuccess
}

type txCmd struct {
	start  string
	end    string
	ticker string
	head   int
	tail   int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the trades in the ledger" }
func (*txCmd) Usage() string {
	return `stl tx [-s <start_date>] [-d <end_date>] [-t <ticker>] [-head <n> | -tail <n>]

  Lists trades in ledger order, with options for filtering and limiting the output.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Only list trades on or after this date")
	f.StringVar(&c.end, "d", "", "Only list trades on or before this date")
	f.StringVar(&c.ticker, "t", "", "Only list trades of this ticker")
	f.IntVar(&c.head, "head", 0, "Show only the first N trades")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N trades")
}

// filter returns the trades selected by the flags.
func (c *txCmd) filter(trades []stockledger.Trade) ([]stockledger.Trade, error) {
	var r date.Range
	var err error
	if c.start != "" {
		if r.From, err = date.Parse(c.start); err != nil {
			return nil, fmt.Errorf("invalid start date: %w", err)
		}
	}
	if c.end != "" {
		if r.To, err = date.Parse(c.end); err != nil {
			return nil, fmt.Errorf("invalid end date: %w", err)
		}
	}
	ticker := stockledger.NormalizeTicker(c.ticker)

	var selected []stockledger.Trade
	for _, t := range trades {
		if ticker != "" && t.Ticker() != ticker {
			continue
		}
		if !r.Contains(t.Date()) {
			continue
		}
		selected = append(selected, t)
	}

	if c.head > 0 && len(selected) > c.head {
		selected = selected[:c.head]
	}
	if c.tail > 0 && len(selected) > c.tail {
		selected = selected[len(selected)-c.tail:]
	}
	return selected, nil
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	trades, err := a.svc.Trades()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	selected, err := c.filter(trades)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	printMarkdown(renderer.Trades(selected, a.cfg.Currency))
	return subcommands.ExitSuccess
}
