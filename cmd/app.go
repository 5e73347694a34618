// Package cmd implements the stl subcommands.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/stockledger"
	"github.com/etnz/stockledger/config"
	"github.com/etnz/stockledger/logger"
	"github.com/etnz/stockledger/store"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", ".stl.yaml", "Path to the configuration file")
	ledgerFile = flag.String("l", "", "Path to the ledger file, overrides the configuration")
	verbose    = flag.Bool("v", false, "Print debug logs")
	plain      = flag.Bool("plain", false, "Print reports as raw markdown")
)

// stdout receives the reports.
var stdout io.Writer = os.Stdout

// Commands lists every stl subcommand.
var Commands = []subcommands.Command{
	&tradeCmd{side: stockledger.Buy},
	&tradeCmd{side: stockledger.Sell},
	&positionsCmd{},
	&gainsCmd{},
	&txCmd{},
	&queryCmd{},
	&exportCmd{},
	&menuCmd{},
	&topicCmd{},
}

// Register the subcommands, grouped for the help message.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		group := "reports"
		switch cmd.Name() {
		case "buy", "sell", "menu":
			group = "trades"
		case "query", "export":
			group = "ledger"
		case "topic":
			group = "help"
		}
		c.Register(cmd, group)
	}
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
}

// app is what a subcommand needs to answer: the configuration, the opened
// store and the service on top of it.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	store store.Store
	svc   *stockledger.Service
}

// openApp loads the configuration and opens the ledger.
func openApp() (*app, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *ledgerFile != "" {
		cfg.LedgerFile = *ledgerFile
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	s, err := store.Open(cfg.Store, cfg.LedgerFile, log)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger %q: %w", cfg.LedgerFile, err)
	}
	return &app{
		cfg:   cfg,
		log:   log,
		store: s,
		svc:   stockledger.NewService(s, nil, log),
	}, nil
}

// Close releases the store.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("could not close the ledger", zap.Error(err))
	}
	_ = a.log.Sync()
}

// printMarkdown renders md for the terminal, unless -plain is set.
func printMarkdown(md string) {
	if *plain {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
