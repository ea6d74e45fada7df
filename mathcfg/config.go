// Package mathcfg defines the numeric-precision context consumed at the
// boundary of the synthesis engine. Exact ring arithmetic never touches a
// Config; it is used only when an angle, radius or distance is finally
// evaluated as a real number.
package mathcfg

import (
	"fmt"
	"math"
	"math/big"

	"cliffordt-synth/internal/bigmath"
)

// Config supplies the transcendental functions and constants needed when an
// exact ring value is turned into a real-valued angle or distance. All
// methods operate on big floats carrying the config's precision.
type Config interface {
	Name() string
	Prec() uint
	Sqrt2() *big.Float
	Pi() *big.Float
	// Sqrt requires x >= 0.
	Sqrt(x *big.Float) *big.Float
	Sin(x *big.Float) *big.Float
	Cos(x *big.Float) *big.Float
	Atan2(y, x *big.Float) *big.Float
	// Tolerance is the comparison slack appropriate for the precision.
	Tolerance() float64
}

// Float64 returns the default config backed by the standard math package.
// Results carry 53 bits of precision.
func Float64() Config { return float64Config{} }

// WithPrec returns a config backed by arbitrary-precision arithmetic with the
// given mantissa precision in bits.
func WithPrec(prec uint) Config {
	if prec < 53 {
		prec = 53
	}
	return bigConfig{prec: prec}
}

type float64Config struct{}

func (float64Config) Name() string { return "float64" }

func (float64Config) Prec() uint { return 53 }

func (float64Config) Sqrt2() *big.Float {
	return big.NewFloat(math.Sqrt2)
}

func (float64Config) Pi() *big.Float {
	return big.NewFloat(math.Pi)
}

func (float64Config) Sqrt(x *big.Float) *big.Float {
	return new(big.Float).SetPrec(53).Sqrt(x)
}

func (float64Config) Sin(x *big.Float) *big.Float {
	f, _ := x.Float64()
	return big.NewFloat(math.Sin(f))
}

func (float64Config) Cos(x *big.Float) *big.Float {
	f, _ := x.Float64()
	return big.NewFloat(math.Cos(f))
}

func (float64Config) Atan2(y, x *big.Float) *big.Float {
	fy, _ := y.Float64()
	fx, _ := x.Float64()
	return big.NewFloat(math.Atan2(fy, fx))
}

func (float64Config) Tolerance() float64 { return 1e-9 }

type bigConfig struct {
	prec uint
}

func (c bigConfig) Name() string { return fmt.Sprintf("bigfloat_%d", c.prec) }

func (c bigConfig) Prec() uint { return c.prec }

func (c bigConfig) Sqrt2() *big.Float {
	return bigmath.Sqrt2(c.prec)
}

func (c bigConfig) Pi() *big.Float {
	return bigmath.Pi(c.prec)
}

func (c bigConfig) Sqrt(x *big.Float) *big.Float {
	return new(big.Float).SetPrec(c.prec).Sqrt(x)
}

func (c bigConfig) Sin(x *big.Float) *big.Float {
	return bigmath.Sin(x, c.prec)
}

func (c bigConfig) Cos(x *big.Float) *big.Float {
	return bigmath.Cos(x, c.prec)
}

func (c bigConfig) Atan2(y, x *big.Float) *big.Float {
	return bigmath.Atan2(y, x, c.prec)
}

func (c bigConfig) Tolerance() float64 {
	t := math.Pow(2, -float64(c.prec)/2)
	if t < 1e-30 {
		return 1e-30
	}
	return t
}
