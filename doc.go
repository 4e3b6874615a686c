// Package rebalance computes how to rebalance a stock portfolio toward a
// target allocation.
//
// A portfolio Snapshot is made of cash and Holdings (ticker, whole number of
// shares, price per share). From it:
//   - CurrentAllocation derives each holding value and its percentage of the
//     total, as well as the percentage of cash.
//   - Target.ValidateFor checks a desired allocation: one percentage per
//     ticker plus one for the cash, each within [0,100], adding up to 100.
//   - Rebalance converts the target percentages into whole-share buy and sell
//     instructions, and reports the cash shortfall or surplus left by rounding.
//
// All computations are exact decimal arithmetic and have no side effects.
//
// Prices are obtained through the PriceSource interface. The package provides
// sources for EODHD and Tradegate, the yahoo sub-package provides one for Yahoo
// Finance.
//
// This package serves as the foundational logic for the `rbl` command-line
// tool.
package rebalance
