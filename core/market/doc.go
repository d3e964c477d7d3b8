// Package market simulates the ERCOT spot price signal.
//
// Prices are a pure function of the clock: a piecewise-linear daily curve
// (BasePrice) plus a pseudo-gaussian perturbation (Noise) whose seed is
// derived from the calendar minute (Seed). Nothing is cached or stored, so
// any number of goroutines may call into the package concurrently.
package market
