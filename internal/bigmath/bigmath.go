// Package bigmath implements elementary transcendental functions over
// math/big floats at a caller-selected precision. It is self-contained and
// provides pi, sqrt(2), sine, cosine and the two-argument arctangent used by
// the synthesis boundary when exact ring values are finally turned into
// angles and radii.
package bigmath

import (
	"math/big"
	"sync"
)

// guardBits is the extra working precision carried through intermediate
// computations before the final rounding.
const guardBits = 64

var (
	piMu    sync.Mutex
	piCache = map[uint]*big.Float{}
)

// Pi returns pi rounded to prec bits.
func Pi(prec uint) *big.Float {
	piMu.Lock()
	defer piMu.Unlock()
	if v, ok := piCache[prec]; ok {
		return new(big.Float).Copy(v)
	}
	v := round(computePi(prec+guardBits), prec)
	piCache[prec] = v
	return new(big.Float).Copy(v)
}

// Sqrt2 returns sqrt(2) rounded to prec bits.
func Sqrt2(prec uint) *big.Float {
	two := new(big.Float).SetPrec(prec).SetInt64(2)
	return two.Sqrt(two)
}

// Sin returns sin(x) rounded to prec bits.
func Sin(x *big.Float, prec uint) *big.Float {
	wp := prec + guardBits
	r := reduceAngle(x, wp)
	return round(sinReduced(r, wp), prec)
}

// Cos returns cos(x) rounded to prec bits.
func Cos(x *big.Float, prec uint) *big.Float {
	wp := prec + guardBits
	halfPi := computePiAt(wp)
	halfPi.Quo(halfPi, big.NewFloat(2))
	shifted := new(big.Float).SetPrec(wp).Add(x, halfPi)
	r := reduceAngle(shifted, wp)
	return round(sinReduced(r, wp), prec)
}

// Atan returns arctan(x) rounded to prec bits.
func Atan(x *big.Float, prec uint) *big.Float {
	wp := prec + guardBits
	if x.Sign() == 0 {
		return new(big.Float).SetPrec(prec)
	}
	ax := new(big.Float).SetPrec(wp).Abs(x)
	one := new(big.Float).SetPrec(wp).SetInt64(1)
	var res *big.Float
	if ax.Cmp(one) > 0 {
		// arctan(x) = pi/2 - arctan(1/x) for x > 0.
		inv := new(big.Float).SetPrec(wp).Quo(one, ax)
		res = computePiAt(wp)
		res.Quo(res, big.NewFloat(2))
		res.Sub(res, atanPos(inv, wp))
	} else {
		res = atanPos(ax, wp)
	}
	if x.Sign() < 0 {
		res.Neg(res)
	}
	return round(res, prec)
}

// Atan2 returns the angle of the point (x, y) in (-pi, pi], rounded to prec
// bits. Atan2(0, 0) is defined as 0.
func Atan2(y, x *big.Float, prec uint) *big.Float {
	wp := prec + guardBits
	if x.Sign() == 0 {
		if y.Sign() == 0 {
			return new(big.Float).SetPrec(prec)
		}
		res := computePiAt(wp)
		res.Quo(res, big.NewFloat(2))
		if y.Sign() < 0 {
			res.Neg(res)
		}
		return round(res, prec)
	}
	q := new(big.Float).SetPrec(wp).Quo(y, x)
	a := Atan(q, wp)
	if x.Sign() > 0 {
		return round(a, prec)
	}
	pi := computePiAt(wp)
	if y.Sign() >= 0 {
		a.Add(a, pi)
	} else {
		a.Sub(a, pi)
	}
	return round(a, prec)
}

// computePiAt returns pi at wp working bits, serving from the cache when the
// exact precision was already computed.
func computePiAt(wp uint) *big.Float {
	piMu.Lock()
	v, ok := piCache[wp]
	piMu.Unlock()
	if ok {
		return new(big.Float).Copy(v)
	}
	return computePi(wp)
}

// computePi evaluates Machin's formula pi = 16*arctan(1/5) - 4*arctan(1/239).
func computePi(wp uint) *big.Float {
	one := new(big.Float).SetPrec(wp).SetInt64(1)
	inv5 := new(big.Float).SetPrec(wp).Quo(one, big.NewFloat(5))
	inv239 := new(big.Float).SetPrec(wp).Quo(one, big.NewFloat(239))
	a5 := atanTaylor(inv5, wp)
	a239 := atanTaylor(inv239, wp)
	a5.Mul(a5, big.NewFloat(16))
	a239.Mul(a239, big.NewFloat(4))
	return a5.Sub(a5, a239)
}

// atanPos computes arctan(x) for 0 < x <= 1 by halving the argument with
// arctan(x) = 2*arctan(x / (1 + sqrt(1 + x^2))) until the Taylor series
// converges quickly.
func atanPos(x *big.Float, wp uint) *big.Float {
	one := new(big.Float).SetPrec(wp).SetInt64(1)
	quarter := new(big.Float).SetPrec(wp).SetFloat64(0.25)
	y := new(big.Float).SetPrec(wp).Set(x)
	halvings := 0
	for y.Cmp(quarter) > 0 {
		t := new(big.Float).SetPrec(wp).Mul(y, y)
		t.Add(t, one)
		t.Sqrt(t)
		t.Add(t, one)
		y.Quo(y, t)
		halvings++
	}
	r := atanTaylor(y, wp)
	if r.Sign() != 0 && halvings > 0 {
		mant := new(big.Float).SetPrec(wp)
		exp := r.MantExp(mant)
		r.SetMantExp(mant, exp+halvings)
	}
	return r
}

// atanTaylor sums arctan(x) = x - x^3/3 + x^5/5 - ... for |x| < 1/2.
func atanTaylor(x *big.Float, wp uint) *big.Float {
	sum := new(big.Float).SetPrec(wp).Set(x)
	term := new(big.Float).SetPrec(wp).Set(x)
	negX2 := new(big.Float).SetPrec(wp).Mul(x, x)
	negX2.Neg(negX2)
	t := new(big.Float).SetPrec(wp)
	for k := 1; ; k++ {
		term.Mul(term, negX2)
		t.Quo(term, new(big.Float).SetPrec(wp).SetInt64(int64(2*k+1)))
		sum.Add(sum, t)
		if negligible(t, sum, wp) {
			return sum
		}
	}
}

// reduceAngle maps x into [-pi/2, pi/2] modulo the symmetries of sine,
// returning r such that sin(x) = sin(r).
func reduceAngle(x *big.Float, wp uint) *big.Float {
	pi := computePiAt(wp)
	twoPi := new(big.Float).SetPrec(wp).Add(pi, pi)
	r := new(big.Float).SetPrec(wp).Set(x)
	q := new(big.Float).SetPrec(wp).Quo(r, twoPi)
	qi, _ := q.Int(nil)
	if qi.Sign() != 0 {
		k := new(big.Float).SetPrec(wp).SetInt(qi)
		k.Mul(k, twoPi)
		r.Sub(r, k)
	}
	if r.Cmp(pi) > 0 {
		r.Sub(r, twoPi)
	}
	negPi := new(big.Float).SetPrec(wp).Neg(pi)
	if r.Cmp(negPi) < 0 {
		r.Add(r, twoPi)
	}
	halfPi := new(big.Float).SetPrec(wp).Quo(pi, big.NewFloat(2))
	negHalfPi := new(big.Float).SetPrec(wp).Neg(halfPi)
	if r.Cmp(halfPi) > 0 {
		r.Sub(pi, r)
		return r
	}
	if r.Cmp(negHalfPi) < 0 {
		// sin(r) = sin(-pi - r) for r < -pi/2: -pi - r lands in [-pi/2, 0].
		res := new(big.Float).SetPrec(wp).Neg(pi)
		res.Sub(res, r)
		return res
	}
	return r
}

// sinReduced sums the sine Taylor series for |r| <= pi/2.
func sinReduced(r *big.Float, wp uint) *big.Float {
	if r.Sign() == 0 {
		return new(big.Float).SetPrec(wp)
	}
	sum := new(big.Float).SetPrec(wp).Set(r)
	term := new(big.Float).SetPrec(wp).Set(r)
	negR2 := new(big.Float).SetPrec(wp).Mul(r, r)
	negR2.Neg(negR2)
	t := new(big.Float).SetPrec(wp)
	for k := 1; ; k++ {
		term.Mul(term, negR2)
		term.Quo(term, new(big.Float).SetPrec(wp).SetInt64(int64(2*k*(2*k+1))))
		t.Set(term)
		sum.Add(sum, t)
		if negligible(t, sum, wp) {
			return sum
		}
	}
}

// negligible reports whether adding t can no longer change sum at wp bits.
func negligible(t, sum *big.Float, wp uint) bool {
	if t.Sign() == 0 {
		return true
	}
	if sum.Sign() == 0 {
		return false
	}
	return t.MantExp(nil) < sum.MantExp(nil)-int(wp)-4
}

// round returns x rounded to prec bits.
func round(x *big.Float, prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).Set(x)
}
