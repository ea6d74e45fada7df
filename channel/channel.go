// Package channel models the ways an exact Clifford+T synthesis can realize
// an approximate Z rotation: directly as a unitary, as a measure-and-correct
// (repeat-until-success) circuit, or as a probabilistic mixture of two
// channels. Every variant reports its expected T cost and its diamond-norm
// distance to the ideal rotation Rz(2*theta).
package channel

import (
	"errors"
	"math/big"

	"cliffordt-synth/mathcfg"
)

var (
	// ErrPrecondition is returned when a mixture factory is called with
	// channels that do not bracket the target angle from below and above.
	ErrPrecondition = errors.New("channel: precondition violated")
	// ErrUnsupportedCombination is returned when a probabilistic channel
	// mixes two channels of different kinds, for which no closed-form
	// distance is known.
	ErrUnsupportedCombination = errors.New("channel: unsupported channel combination")
)

// Channel is the closed set {Unitary, Projective, Probabilistic}. Distances
// and costs are evaluated at the precision of the supplied config; the
// algebraic content of a channel never depends on it.
type Channel interface {
	// ExpectedNumTs returns the expected number of T gates consumed by one
	// application of the channel.
	ExpectedNumTs(cfg mathcfg.Config) *big.Float
	// DiamondNormDistanceToRz returns the diamond norm distance between the
	// channel and the ideal rotation Rz(2*theta).
	DiamondNormDistanceToRz(theta *big.Float, cfg mathcfg.Config) (*big.Float, error)
}

func newFloat(cfg mathcfg.Config) *big.Float {
	return new(big.Float).SetPrec(cfg.Prec())
}

// clampNonNegative zeroes tiny negative values produced by rounding before
// they reach a square root.
func clampNonNegative(x *big.Float) *big.Float {
	if x.Sign() < 0 {
		return x.SetInt64(0)
	}
	return x
}
