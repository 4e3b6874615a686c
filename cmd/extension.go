package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/etnz/rebalance"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	EnvCurrency = "RBL_CURRENCY"
	EnvSource   = "RBL_SOURCE"
	EnvVerbose  = "RBL_VERBOSE"
)

// extensionEnv returns the environment passed to extensions: the current
// environment plus the global flags.
func extensionEnv() []string {
	env := os.Environ()
	env = append(env, EnvCurrency+"="+*currency)
	env = append(env, EnvSource+"="+*sources)
	env = append(env, EnvVerbose+"="+strconv.FormatBool(*Verbose))
	return env
}

// RunExtension attempts to find and execute an external rbl-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "rbl-" + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Debug().Err(err).Str("command", externalCmdName).Msg("external command not found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv()

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		// If it's not an ExitError or we can't get the status, report a generic error
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1 // Indicate that an attempt was made, but it failed
	}
	return true, 0
}

// externalSource is a PriceSource backed by an rbl-price-<name> executable.
//
// The executable reads a JSON list of tickers on stdin and writes a JSON
// object of prices by ticker on stdout. Missing tickers are unavailable.
type externalSource struct {
	name string
	path string
}

func newExternalSource(name string) (*externalSource, error) {
	path, err := exec.LookPath("rbl-price-" + name)
	if err != nil {
		return nil, err
	}
	return &externalSource{name: name, path: path}, nil
}

func (e *externalSource) Price(ctx context.Context, ticker string) (decimal.Decimal, error) {
	req, err := json.Marshal([]string{ticker})
	if err != nil {
		return decimal.Zero, err
	}
	cmd := exec.CommandContext(ctx, e.path)
	cmd.Stdin = bytes.NewReader(req)
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv()
	out, err := cmd.Output()
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w for %q: %s: %w", rebalance.ErrPriceUnavailable, ticker, e.name, err)
	}

	var prices map[string]decimal.Decimal
	if err := json.Unmarshal(out, &prices); err != nil {
		return decimal.Zero, fmt.Errorf("%w for %q: %s: invalid response: %w", rebalance.ErrPriceUnavailable, ticker, e.name, err)
	}
	return rebalance.StaticPrices(prices).Price(ctx, ticker)
}
