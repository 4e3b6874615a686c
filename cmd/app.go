// Package cmd implements the CLI application to rebalance a portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/rebalance"
	"github.com/etnz/rebalance/yahoo"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")

	c.Register(&sessionCmd{}, "rebalance")
	c.Register(&planCmd{}, "rebalance")

	c.Register(&quoteCmd{}, "prices")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	currency    = flag.String("c", "USD", "Currency code used to display money amounts")
	sources     = flag.String("source", "yahoo", "Comma separated list of price sources to try in order: yahoo, eodhd, tradegate, none, or the name of an rbl-price-<name> extension")
	eodhdAPIKey = flag.String("eodhd-api-key", "", "EODHD API key to use for fetching prices from EODHD.com.\n If missing it will read for the environment variable \""+rebalance.EODHDAPIKeyEnv+"\". You can get one at https://eodhd.com/")
	Verbose     = flag.Bool("v", false, "verbose logging")
)

// SetupLogging configures the global logger, it must be called after the
// flags are parsed.
func SetupLogging() {
	level := zerolog.WarnLevel
	if *Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Logger()
}

// eodhdKey returns the EODHD API key from the flag or the environment.
func eodhdKey() string {
	// If the flag is not set, we try to read it from the environment variable.
	if *eodhdAPIKey == "" {
		*eodhdAPIKey = os.Getenv(rebalance.EODHDAPIKeyEnv)
	}
	return *eodhdAPIKey
}

// PriceSource returns the price sources selected by the -source flag.
func PriceSource() (rebalance.PriceSource, error) {
	return newPriceSource(*sources)
}

func newPriceSource(names string) (rebalance.PriceSource, error) {
	var srcs rebalance.Sources
	for _, name := range strings.Split(names, ",") {
		switch name = strings.TrimSpace(name); name {
		case "", "none":
		case "yahoo":
			srcs = append(srcs, yahoo.New(log.Logger))
		case "eodhd":
			src, err := rebalance.NewEODHD(eodhdKey())
			if err != nil {
				return nil, err
			}
			srcs = append(srcs, src)
		case "tradegate":
			srcs = append(srcs, rebalance.NewTradegate())
		default:
			src, err := newExternalSource(name)
			if err != nil {
				return nil, fmt.Errorf("unknown price source %q: %w", name, err)
			}
			srcs = append(srcs, src)
		}
	}
	if len(srcs) == 0 {
		return rebalance.NoPrices, nil
	}
	return srcs, nil
}

// printMarkdown renders markdown on a terminal, and prints it raw otherwise.
func printMarkdown(md string) {
	if !isTerminal(os.Stdout) {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		log.Warn().Err(err).Msg("cannot render markdown")
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
