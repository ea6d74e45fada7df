// Package zw implements exact arithmetic in the cyclotomic ring Z[w] where
// w = e^{i*pi/4}. Elements carry four arbitrary-precision integer
// coordinates in the power basis {1, w, w^2, w^3}; w^4 = -1 closes the
// multiplication. All operations allocate fresh values; an Int is never
// mutated after construction.
package zw

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"cliffordt-synth/mathcfg"
	"cliffordt-synth/rings/zsqrt2"
)

// ErrNotDivisible is returned when an exact division is requested and the
// divisor does not divide the dividend.
var ErrNotDivisible = errors.New("zw: not divisible")

// Int is an element sum_i C[i]*w^i of Z[w]. The coordinate array is treated
// as immutable; use the arithmetic methods instead of mutating it.
type Int struct {
	C [4]*big.Int
}

// New returns the element a0 + a1*w + a2*w^2 + a3*w^3.
func New(a0, a1, a2, a3 int64) Int {
	return Int{C: [4]*big.Int{big.NewInt(a0), big.NewInt(a1), big.NewInt(a2), big.NewInt(a3)}}
}

// FromBig returns the element with the given coordinates, copying them.
func FromBig(c [4]*big.Int) Int {
	var out Int
	for i := range c {
		out.C[i] = new(big.Int).Set(c[i])
	}
	return out
}

// Ring constants. J is the imaginary unit w^2; Sqrt2 is w - w^3;
// LambdaKliuchnikov is the scaling unit 2 + sqrt(2).
var (
	Zero                       = New(0, 0, 0, 0)
	One                        = New(1, 0, 0, 0)
	Omega                      = New(0, 1, 0, 0)
	J                          = New(0, 0, 1, 0)
	Sqrt2                      = New(0, 1, 0, -1)
	LambdaKliuchnikov          = New(2, 1, 0, -1)
	LambdaKliuchnikovSqrt2Conj = New(2, -1, 0, 1)
)

// Add returns x + y.
func (x Int) Add(y Int) Int {
	var out Int
	for i := range out.C {
		out.C[i] = new(big.Int).Add(x.C[i], y.C[i])
	}
	return out
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	var out Int
	for i := range out.C {
		out.C[i] = new(big.Int).Sub(x.C[i], y.C[i])
	}
	return out
}

// Neg returns -x.
func (x Int) Neg() Int {
	var out Int
	for i := range out.C {
		out.C[i] = new(big.Int).Neg(x.C[i])
	}
	return out
}

// Mul returns x * y, reducing with w^4 = -1.
func (x Int) Mul(y Int) Int {
	var out Int
	for i := range out.C {
		out.C[i] = new(big.Int)
	}
	t := new(big.Int)
	for i := 0; i < 4; i++ {
		if x.C[i].Sign() == 0 {
			continue
		}
		for j := 0; j < 4; j++ {
			if y.C[j].Sign() == 0 {
				continue
			}
			t.Mul(x.C[i], y.C[j])
			if i+j >= 4 {
				out.C[(i+j)&3].Sub(out.C[(i+j)&3], t)
			} else {
				out.C[i+j].Add(out.C[i+j], t)
			}
		}
	}
	return out
}

// MulInt returns x * k.
func (x Int) MulInt(k int64) Int {
	kk := big.NewInt(k)
	var out Int
	for i := range out.C {
		out.C[i] = new(big.Int).Mul(x.C[i], kk)
	}
	return out
}

// Pow returns x^p by binary exponentiation.
func (x Int) Pow(p uint) Int {
	y := One
	cur := x
	for p > 0 {
		if p&1 == 1 {
			y = y.Mul(cur)
		}
		p >>= 1
		if p > 0 {
			cur = cur.Mul(cur)
		}
	}
	return y
}

// Conj returns the complex conjugate.
func (x Int) Conj() Int {
	return Int{C: [4]*big.Int{
		new(big.Int).Set(x.C[0]),
		new(big.Int).Neg(x.C[3]),
		new(big.Int).Neg(x.C[2]),
		new(big.Int).Neg(x.C[1]),
	}}
}

// Sqrt2Conj returns the sqrt2-conjugate, the automorphism sending w to -w.
func (x Int) Sqrt2Conj() Int {
	return Int{C: [4]*big.Int{
		new(big.Int).Set(x.C[0]),
		new(big.Int).Neg(x.C[1]),
		new(big.Int).Set(x.C[2]),
		new(big.Int).Neg(x.C[3]),
	}}
}

// FromPair constructs the element a + i*b (+ w when includeW is set) from
// its Z[sqrt(2)] real and imaginary parts.
func FromPair(a, b zsqrt2.Int, includeW bool) Int {
	w := int64(0)
	if includeW {
		w = 1
	}
	c1 := new(big.Int).Add(a.B, b.B)
	c1.Add(c1, big.NewInt(w))
	return Int{C: [4]*big.Int{
		new(big.Int).Set(a.A),
		c1,
		new(big.Int).Set(b.A),
		new(big.Int).Sub(b.B, a.B),
	}}
}

// ToZSqrt2 writes the element as alpha + beta*i or alpha + beta*i + w with
// alpha, beta in Z[sqrt(2)], returning alpha, beta and whether the extra w
// term is present. The conversion is always exact.
func (x Int) ToZSqrt2() (re, im zsqrt2.Int, w bool) {
	m0, m1, m2, m3 := x.C[0], x.C[1], x.C[2], x.C[3]
	sum := new(big.Int).Add(m1, m3)
	r := new(big.Int).Mod(sum, bigTwo)
	diff := new(big.Int).Sub(m1, m3)
	diff.Sub(diff, r)
	sumR := new(big.Int).Sub(sum, r)
	re = zsqrt2.Int{A: new(big.Int).Set(m0), B: diff.Quo(diff, bigTwo)}
	im = zsqrt2.Int{A: new(big.Int).Set(m2), B: sumR.Quo(sumR, bigTwo)}
	return re, im, r.Sign() != 0
}

// Norm returns the rational norm N(x) = x * conj(x) * s2conj(x) * conj(s2conj(x)),
// a non-negative integer. A residual w component indicates memory corruption
// and panics.
func (x Int) Norm() *big.Int {
	res := x.Mul(x.Conj())
	s := x.Sqrt2Conj()
	res = res.Mul(s.Mul(s.Conj()))
	for i := 1; i < 4; i++ {
		if res.C[i].Sign() != 0 {
			panic("zw: norm has residual omega components")
		}
	}
	if res.C[0].Sign() < 0 {
		panic("zw: negative norm")
	}
	return new(big.Int).Set(res.C[0])
}

// Div returns the floor division x / y computed through the conjugates. The
// result is exact whenever y divides x; use IsDivisibleBy to test first.
func (x Int) Div(y Int) Int {
	s := y.Sqrt2Conj()
	z := x.Mul(y.Conj()).Mul(s.Mul(s.Conj()))
	norm := y.Norm()
	var out Int
	for i := range out.C {
		out.C[i] = floorDiv(z.C[i], norm)
	}
	return out
}

// IsDivisibleBy reports whether y exactly divides x.
func (x Int) IsDivisibleBy(y Int) bool {
	s := y.Sqrt2Conj()
	z := x.Mul(y.Conj()).Mul(s.Mul(s.Conj()))
	norm := y.Norm()
	if norm.Sign() == 0 {
		return false
	}
	m := new(big.Int)
	for i := range z.C {
		if m.Mod(z.C[i], norm).Sign() != 0 {
			return false
		}
	}
	return true
}

// Gcd returns a greatest common divisor of x and y by the euclidean
// algorithm, nudging the trial quotient to force the norm to decrease.
func (x Int) Gcd(y Int) Int {
	if x.IsZero() && y.IsZero() {
		return One
	}
	a, b := x, y
	for {
		if a.Norm().Cmp(b.Norm()) > 0 {
			a, b = b, a
		}
		if a.IsZero() {
			break
		}
		c := b.Div(a)
		bestNorm, best := b.Norm(), b
		for mask := 0; mask < 16; mask++ {
			r := c.Add(New(int64(mask&1), int64(mask>>1&1), int64(mask>>2&1), int64(mask>>3&1)))
			nb := b.Sub(r.Mul(a))
			if n := nb.Norm(); n.Cmp(bestNorm) < 0 {
				bestNorm, best = n, nb
			}
		}
		if bestNorm.Cmp(b.Norm()) >= 0 {
			panic("zw: gcd step failed to reduce the norm")
		}
		b = best
	}
	return b
}

// Equal reports whether x and y are the same ring element.
func (x Int) Equal(y Int) bool {
	for i := range x.C {
		if x.C[i].Cmp(y.C[i]) != 0 {
			return false
		}
	}
	return true
}

// IsZero reports whether x is the additive identity.
func (x Int) IsZero() bool {
	for i := range x.C {
		if x.C[i].Sign() != 0 {
			return false
		}
	}
	return true
}

// Value evaluates the element as a complex number at the config's precision,
// returning the real and imaginary parts:
// re = a0 + (a1 - a3)/sqrt(2), im = a2 + (a1 + a3)/sqrt(2).
func (x Int) Value(cfg mathcfg.Config) (re, im *big.Float) {
	prec := cfg.Prec()
	sqrt2 := cfg.Sqrt2()
	re = new(big.Float).SetPrec(prec).SetInt(x.C[0])
	d := new(big.Float).SetPrec(prec).SetInt(new(big.Int).Sub(x.C[1], x.C[3]))
	d.Quo(d, sqrt2)
	re.Add(re, d)
	im = new(big.Float).SetPrec(prec).SetInt(x.C[2])
	s := new(big.Float).SetPrec(prec).SetInt(new(big.Int).Add(x.C[1], x.C[3]))
	s.Quo(s, sqrt2)
	im.Add(im, s)
	return re, im
}

// Arg returns the angle of the complex number representing the element. The
// precision of the result depends on the provided config.
func (x Int) Arg(cfg mathcfg.Config) *big.Float {
	re, im := x.Value(cfg)
	return cfg.Atan2(im, re)
}

// Mag returns the magnitude of the complex number representing the element.
func (x Int) Mag(cfg mathcfg.Config) *big.Float {
	re, im := x.Value(cfg)
	re.Mul(re, re)
	im.Mul(im, im)
	re.Add(re, im)
	return cfg.Sqrt(re)
}

// Polar returns the magnitude and angle of the element.
func (x Int) Polar(cfg mathcfg.Config) (r, phi *big.Float) {
	return x.Mag(cfg), x.Arg(cfg)
}

// Complex128 returns the float64-precision complex value of the element.
func (x Int) Complex128() complex128 {
	re, im := x.Value(mathcfg.Float64())
	fr, _ := re.Float64()
	fi, _ := im.Float64()
	return complex(fr, fi)
}

// Key returns a canonical string usable as a map key.
func (x Int) Key() string {
	var sb strings.Builder
	for i := range x.C {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(x.C[i].String())
	}
	return sb.String()
}

func (x Int) String() string {
	return fmt.Sprintf("(%v,%v,%v,%v)", x.C[0], x.C[1], x.C[2], x.C[3])
}

var bigTwo = big.NewInt(2)

// floorDiv returns floor(x/y), matching floored-division semantics for
// either sign of the divisor.
func floorDiv(x, y *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(x, y, new(big.Int))
	if r.Sign() != 0 && (r.Sign() < 0) != (y.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
	}
	return q
}
