package cmd

import (
	"github.com/etnz/rebalance/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion returns the completion tree of the rbl command.
func completion() *complete.Command {
	topics, _ := docs.AllTopics()
	topics = append(topics, "*")
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"c":             predict.Set{"USD", "EUR", "GBP", "CHF", "JPY"},
			"source":        predict.Set{"yahoo", "eodhd", "tradegate", "none"},
			"eodhd-api-key": predict.Something,
			"v":             predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"session": {},
			"plan": {
				Flags: map[string]complete.Predictor{
					"cash":   predict.Something,
					"t":      predict.Something,
					"format": predict.Set{"md", "text"},
				},
				Args: predict.Something,
			},
			"quote": {Args: predict.Something},
			"topic": {Args: predict.Set(topics)},
			"help":  {},
			"flags": {},
		},
	}
}

// Complete answers a shell completion request and exits, if the program was
// invoked by the shell for completion. Otherwise it does nothing.
//
// Install with: COMP_INSTALL=1 rbl
func Complete(name string) {
	completion().Complete(name)
}
