package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/stockledger"
	"github.com/etnz/stockledger/date"
	"github.com/google/subcommands"
)

type menuCmd struct{}

func (*menuCmd) Name() string     { return "menu" }
func (*menuCmd) Synopsis() string { return "interactive menu to add trades and view reports" }
func (*menuCmd) Usage() string {
	return `stl menu

  Starts an interactive menu reading choices from the standard input.
`
}

func (*menuCmd) SetFlags(f *flag.FlagSet) {}

func (*menuCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := runMenu(os.Stdin, stdout, a.svc, a.cfg.Currency); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// errEndOfInput is returned by ask when the input is exhausted.
var errEndOfInput = errors.New("end of input")

type menu struct {
	in       *bufio.Scanner
	out      io.Writer
	svc      *stockledger.Service
	currency string
}

// runMenu runs the menu loop until the user exits or in is exhausted.
//
// Invalid answers and failed operations are reported on out and the loop goes
// on.
func runMenu(in io.Reader, out io.Writer, svc *stockledger.Service, currency string) error {
	m := &menu{in: bufio.NewScanner(in), out: out, svc: svc, currency: currency}
	for {
		fmt.Fprintln(m.out)
		fmt.Fprintln(m.out, "=== StockLedger ===")
		fmt.Fprintln(m.out, "1. Add trade")
		fmt.Fprintln(m.out, "2. View positions")
		fmt.Fprintln(m.out, "3. View realized P/L")
		fmt.Fprintln(m.out, "4. View realized P/L by ticker")
		fmt.Fprintln(m.out, "0. Exit")

		choice, err := m.ask("Select: ")
		if err != nil {
			return m.end(err)
		}

		switch choice {
		case "1":
			err = m.addTrade()
		case "2":
			err = m.viewPositions()
		case "3":
			err = m.viewTotal()
		case "4":
			err = m.viewTicker()
		case "0":
			fmt.Fprintln(m.out, "Bye!")
			return nil
		default:
			fmt.Fprintf(m.out, "Unknown choice %q\n", choice)
			continue
		}

		if errors.Is(err, errEndOfInput) {
			return m.end(err)
		}
		if err != nil {
			fmt.Fprintf(m.out, "Error: %v\n", err)
		}
	}
}

// end converts the end of the input into a clean exit.
func (m *menu) end(err error) error {
	if errors.Is(err, errEndOfInput) {
		fmt.Fprintln(m.out)
		return m.in.Err()
	}
	return err
}

// ask prints prompt and reads one line.
func (m *menu) ask(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		return "", errEndOfInput
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *menu) addTrade() error {
	answer, err := m.ask("Date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	on, err := date.Parse(answer)
	if err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}

	ticker, err := m.ask("Ticker: ")
	if err != nil {
		return err
	}

	if answer, err = m.ask("Type (BUY/SELL): "); err != nil {
		return err
	}
	side, err := stockledger.ParseSide(answer)
	if err != nil {
		return err
	}

	if answer, err = m.ask("Price: "); err != nil {
		return err
	}
	price, err := stockledger.ParseMoney(answer, "")
	if err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}

	if answer, err = m.ask("Quantity: "); err != nil {
		return err
	}
	quantity, err := strconv.ParseInt(answer, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid quantity: %w", err)
	}

	if answer, err = m.ask("Fee (0 for none): "); err != nil {
		return err
	}
	if answer == "" {
		answer = "0"
	}
	fee, err := stockledger.ParseMoney(answer, "")
	if err != nil {
		return fmt.Errorf("invalid fee: %w", err)
	}

	t := stockledger.NewTrade(on, ticker, side, price, stockledger.Quantity(quantity), fee)
	if err := t.Validate(); err != nil {
		return err
	}
	if err := m.svc.AddTrade(t); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Trade added.")
	return nil
}

func (m *menu) viewPositions() error {
	positions, err := m.svc.Positions()
	if err != nil {
		return err
	}
	if len(positions) == 0 {
		fmt.Fprintln(m.out, "No trades recorded.")
		return nil
	}
	for ticker, p := range positions.All() {
		fmt.Fprintf(m.out, "\n[%s]\n", ticker)
		fmt.Fprintf(m.out, "Quantity: %d\n", p.Quantity)
		fmt.Fprintf(m.out, "Average Price: %s\n", p.AveragePrice.In(m.currency))
		fmt.Fprintf(m.out, "Total Cost: %s\n", p.TotalCost.In(m.currency))
	}
	return nil
}

func (m *menu) viewTotal() error {
	total, err := m.svc.RealizedPL()
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Total Realized P/L: %s\n", total.In(m.currency))
	return nil
}

func (m *menu) viewTicker() error {
	ticker, err := m.ask("Ticker: ")
	if err != nil {
		return err
	}
	ticker = stockledger.NormalizeTicker(ticker)
	realized, err := m.svc.RealizedPLByTicker(ticker)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "%s Realized P/L: %s\n", ticker, realized.In(m.currency))
	return nil
}
