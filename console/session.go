// Package console implements the interactive session that collects a
// portfolio from a terminal, and prints the rebalance instructions.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/rebalance"
	"github.com/etnz/rebalance/renderer"
	"github.com/rs/zerolog/log"
)

// ErrInputClosed is returned when the input ends before the session is complete.
var ErrInputClosed = errors.New("input closed")

// Sentinel ticker to end the list of holdings.
const endOfHoldings = "x"

// Session prompts for the portfolio, computes and prints the allocation and
// rebalance instructions.
//
// Invalid input is reported and prompted again, without limit.
type Session struct {
	in       *bufio.Scanner
	out      io.Writer
	prices   rebalance.PriceSource
	currency string
}

// NewSession returns a session reading answers from in and writing to out.
// Prices are looked up in prices, and entered manually if unavailable.
func NewSession(in io.Reader, out io.Writer, prices rebalance.PriceSource, currency string) *Session {
	if prices == nil {
		prices = rebalance.NoPrices
	}
	return &Session{in: bufio.NewScanner(in), out: out, prices: prices, currency: currency}
}

// Run executes the whole session.
//
// A target that does not add up to 100% ends the session without
// instructions, it is not an error.
func (s *Session) Run(ctx context.Context) error {
	snapshot, err := s.Collect(ctx)
	if err != nil {
		return err
	}

	renderer.SummaryText(s.out, snapshot)
	allocation, err := rebalance.CurrentAllocation(snapshot)
	if errors.Is(err, rebalance.ErrZeroPortfolioValue) {
		renderer.NoAssetsText(s.out)
		return nil
	}
	if err != nil {
		return err
	}
	renderer.AllocationText(s.out, allocation)

	ok, err := s.readYesNo("Do you want to rebalance? (y/n): ")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "No rebalance performed. Exiting.")
		return nil
	}

	target, err := s.CollectTarget(snapshot)
	if err != nil {
		return err
	}
	plan, err := rebalance.Rebalance(snapshot, target)
	var sumErr *rebalance.AllocationSumError
	if errors.As(err, &sumErr) {
		renderer.AllocationSumText(s.out, sumErr)
		return nil
	}
	if err != nil {
		return err
	}
	renderer.PlanText(s.out, plan)
	fmt.Fprintln(s.out, "\nRebalance complete (instructions above).")
	return nil
}

// Collect prompts for the cash and the holdings.
func (s *Session) Collect(ctx context.Context) (*rebalance.Snapshot, error) {
	cash, err := s.readNonNegative("Enter the amount of cash in portfolio (0 if none): ", "Error: enter a non-negative number (float)")
	if err != nil {
		return nil, err
	}

	var holdings []rebalance.Holding
	for {
		h, done, err := s.readHolding(ctx)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		holdings = append(holdings, h)
	}
	return rebalance.NewSnapshot(cash, holdings...)
}

// readHolding prompts for one holding. It returns done when the user enters
// the end of holdings sentinel.
func (s *Session) readHolding(ctx context.Context) (h rebalance.Holding, done bool, err error) {
	var ticker string
	for {
		ticker, err = s.readLine("Enter ticker for stock, or x when finished entering stocks: ")
		if err != nil {
			return h, false, err
		}
		ticker = strings.TrimSpace(ticker)
		if strings.EqualFold(ticker, endOfHoldings) {
			return h, true, nil
		}
		// validate the ticker alone before asking for more.
		if _, err := rebalance.NewHolding(ticker, rebalance.Q(1), rebalance.M(0, s.currency)); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}
		break
	}

	quantity, err := s.readPositiveInt("Enter Quantity: ")
	if err != nil {
		return h, false, err
	}

	var price rebalance.Money
	if p, err := s.prices.Price(ctx, ticker); err != nil {
		log.Debug().Err(err).Str("ticker", ticker).Msg("falling back to manual price")
		fmt.Fprintf(s.out, "Could not find or fetch price for '%s'.\n", ticker)
		price, err = s.readNonNegative("Please enter the price (per share) manually: ", "Error: enter a non-negative number (float)")
		if err != nil {
			return h, false, err
		}
	} else {
		price = rebalance.M(p, s.currency)
		fmt.Fprintf(s.out, "Fetched price for %s: approximately %v per share.\n", ticker, price)
	}

	h, err = rebalance.NewHolding(ticker, quantity, price)
	return h, false, err
}

// CollectTarget prompts for the desired percentage of each distinct ticker,
// then of the cash.
func (s *Session) CollectTarget(snapshot *rebalance.Snapshot) (rebalance.Target, error) {
	fmt.Fprintln(s.out, "Please enter desired allocation percentages for each stock and cash.")
	fmt.Fprintln(s.out, "The total across all stocks + cash must sum to 100.")
	fmt.Fprintln(s.out)

	target := make(rebalance.Target)
	labels := make([]string, 0, snapshot.Len()+1)
	for label := range snapshot.Labels() {
		labels = append(labels, label)
	}
	labels = append(labels, rebalance.CashLabel)

	for _, label := range labels {
		p, err := s.readPercent(fmt.Sprintf("Desired allocation for %s (0-100): ", label))
		if err != nil {
			return nil, err
		}
		target[label] = p
	}
	return target, nil
}

// readLine prompts and returns the next line of input.
func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		fmt.Fprintln(s.out)
		return "", ErrInputClosed
	}
	return s.in.Text(), nil
}

// retry prompts until parse accepts the input.
func retry[T any](s *Session, prompt, errMsg string, parse func(string) (T, error)) (T, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(line)
		if err != nil {
			log.Debug().Err(err).Msg("invalid input")
			fmt.Fprintln(s.out, errMsg)
			continue
		}
		return v, nil
	}
}

func (s *Session) readNonNegative(prompt, errMsg string) (rebalance.Money, error) {
	d, err := retry(s, prompt, errMsg, ParseNonNegative)
	return rebalance.M(d, s.currency), err
}

func (s *Session) readPositiveInt(prompt string) (rebalance.Quantity, error) {
	return retry(s, prompt, "Error: enter a positive integer", ParsePositiveInt)
}

func (s *Session) readPercent(prompt string) (rebalance.Percent, error) {
	return retry(s, prompt, "Error: Please enter a valid percentage between 0 and 100.", ParsePercent)
}

func (s *Session) readYesNo(prompt string) (bool, error) {
	return retry(s, prompt, "Error: enter y or n", ParseYesNo)
}
