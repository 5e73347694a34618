package cmd

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/stockledger"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression over the ledger" }
func (*queryCmd) Usage() string {
	return `stl query <jsonpath>

  Evaluates the JSONPath expression on the JSON form of the ledger, and prints
  the result as JSON.

Usage Examples:
# All AAPL trades.
$ stl query '$[?(@.ticker == "AAPL")]'

# Price of the last trade.
$ stl query '$[-1:].price'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

// queryTrades evaluates expr over the trades encoded as in the ledger file.
func queryTrades(trades []stockledger.Trade, expr string) (any, error) {
	var buf bytes.Buffer
	if err := stockledger.EncodeTrades(&buf, trades); err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		return nil, err
	}
	v, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", expr, err)
	}
	return v, nil
}

func (*queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
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
	v, err := queryTrades(trades, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, string(out))
	return subcommands.ExitSuccess
}

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the trades as CSV" }
func (*exportCmd) Usage() string {
	return `stl export [-o <file.csv>]

  Writes the trades, in ledger order, as CSV. Without -o the CSV is printed.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file")
}

// writeCSV writes one header line then one line per trade.
func writeCSV(w io.Writer, trades []stockledger.Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "ticker", "type", "price", "quantity", "fee"}); err != nil {
		return err
	}
	for _, t := range trades {
		err := cw.Write([]string{
			t.Date().String(),
			t.Ticker(),
			t.Side().String(),
			t.Price().Decimal().String(),
			strconv.FormatInt(int64(t.Quantity()), 10),
			t.Fee().Decimal().String(),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if c.output == "" {
		if err := writeCSV(stdout, trades); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	out, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	if err := writeCSV(out, trades); err != nil {
		out.Close()
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	a.log.Info("trades exported", zap.String("path", c.output), zap.Int("count", len(trades)))
	fmt.Fprintf(stdout, "Exported %d trades to %s\n", len(trades), c.output)
	return subcommands.ExitSuccess
}
