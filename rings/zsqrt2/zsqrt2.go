// Package zsqrt2 implements exact arithmetic in the real quadratic ring
// Z[sqrt(2)]. Elements are pairs of arbitrary-precision integers (a, b)
// representing a + b*sqrt(2). All operations allocate fresh values; an Int
// is never mutated after construction.
package zsqrt2

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"cliffordt-synth/mathcfg"
)

// ErrNotDivisible is returned when an exact division is requested and the
// divisor does not divide the dividend.
var ErrNotDivisible = errors.New("zsqrt2: not divisible")

// Int is an element a + b*sqrt(2) of Z[sqrt(2)]. The fields are treated as
// immutable; use the arithmetic methods instead of mutating them.
type Int struct {
	A *big.Int
	B *big.Int
}

// New returns the element a + b*sqrt(2).
func New(a, b int64) Int {
	return Int{A: big.NewInt(a), B: big.NewInt(b)}
}

// FromBig returns the element a + b*sqrt(2), copying both integers.
func FromBig(a, b *big.Int) Int {
	return Int{A: new(big.Int).Set(a), B: new(big.Int).Set(b)}
}

// Ring constants. Lambda is the fundamental unit 1 + sqrt(2);
// LambdaKliuchnikov is the scaling unit 2 + sqrt(2) used by the Clifford+T
// determinant bookkeeping.
var (
	Zero                  = New(0, 0)
	One                   = New(1, 0)
	Two                   = New(2, 0)
	Sqrt2                 = New(0, 1)
	Lambda                = New(1, 1)
	LambdaInv             = New(-1, 1)
	LambdaKliuchnikov     = New(2, 1)
	LambdaKliuchnikovConj = New(2, -1)
)

// Add returns x + y.
func (x Int) Add(y Int) Int {
	return Int{A: new(big.Int).Add(x.A, y.A), B: new(big.Int).Add(x.B, y.B)}
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	return Int{A: new(big.Int).Sub(x.A, y.A), B: new(big.Int).Sub(x.B, y.B)}
}

// Neg returns -x.
func (x Int) Neg() Int {
	return Int{A: new(big.Int).Neg(x.A), B: new(big.Int).Neg(x.B)}
}

// Mul returns x * y.
func (x Int) Mul(y Int) Int {
	// (a + b*s)(c + d*s) = ac + 2bd + (ad + bc)s with s^2 = 2.
	ac := new(big.Int).Mul(x.A, y.A)
	bd := new(big.Int).Mul(x.B, y.B)
	ad := new(big.Int).Mul(x.A, y.B)
	bc := new(big.Int).Mul(x.B, y.A)
	a := ac.Add(ac, bd.Lsh(bd, 1))
	return Int{A: a, B: ad.Add(ad, bc)}
}

// MulInt returns x * k.
func (x Int) MulInt(k int64) Int {
	kk := big.NewInt(k)
	return Int{A: new(big.Int).Mul(x.A, kk), B: new(big.Int).Mul(x.B, kk)}
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

// Conj returns the sqrt2-conjugate a - b*sqrt(2).
func (x Int) Conj() Int {
	return Int{A: new(big.Int).Set(x.A), B: new(big.Int).Neg(x.B)}
}

// Norm returns |a^2 - 2b^2|, the absolute field norm.
func (x Int) Norm() *big.Int {
	a2 := new(big.Int).Mul(x.A, x.A)
	b2 := new(big.Int).Mul(x.B, x.B)
	a2.Sub(a2, b2.Lsh(b2, 1))
	return a2.Abs(a2)
}

// Div returns the floor division x / y computed through the conjugate. The
// result is exact whenever y divides x; use IsDivisibleBy to test first.
func (x Int) Div(y Int) Int {
	res := x.Mul(y.Conj())
	// signed norm, matching the sign convention of the conjugate product.
	norm := new(big.Int).Mul(y.A, y.A)
	b2 := new(big.Int).Mul(y.B, y.B)
	norm.Sub(norm, b2.Lsh(b2, 1))
	return Int{A: floorDiv(res.A, norm), B: floorDiv(res.B, norm)}
}

// IsDivisibleBy reports whether y exactly divides x. It is cheap enough for
// hot loops: two multiplications and two remainders.
func (x Int) IsDivisibleBy(y Int) bool {
	res := x.Mul(y.Conj())
	norm := y.Norm()
	if norm.Sign() == 0 {
		return false
	}
	m := new(big.Int)
	if m.Mod(res.A, norm).Sign() != 0 {
		return false
	}
	return m.Mod(res.B, norm).Sign() == 0
}

// DivideBySqrt2 divides the element by sqrt(2). The division is exact only
// when the integer part is even; otherwise ErrNotDivisible is returned.
func (x Int) DivideBySqrt2() (Int, error) {
	if new(big.Int).Mod(x.A, bigTwo).Sign() != 0 {
		return Int{}, fmt.Errorf("zsqrt2: dividing %v by sqrt(2): %w", x, ErrNotDivisible)
	}
	// a is even so the quotient is exact for either sign.
	half := new(big.Int).Quo(x.A, bigTwo)
	return Int{A: new(big.Int).Set(x.B), B: half}, nil
}

// Equal reports whether x and y are the same ring element.
func (x Int) Equal(y Int) bool {
	return x.A.Cmp(y.A) == 0 && x.B.Cmp(y.B) == 0
}

// IsZero reports whether x is the additive identity.
func (x Int) IsZero() bool {
	return x.A.Sign() == 0 && x.B.Sign() == 0
}

// Cmp compares the real values of x and y using only integer arithmetic,
// returning -1, 0 or +1.
func (x Int) Cmp(y Int) int {
	if x.Equal(y) {
		return 0
	}
	if x.B.Cmp(y.B) == 0 {
		return x.A.Cmp(y.A)
	}
	// x < y iff (x.A - y.A) ? -(x.B - y.B)*sqrt(2); square both sides,
	// tracking signs, to stay in the integers.
	da := new(big.Int).Sub(x.A, y.A)
	db := new(big.Int).Sub(y.B, x.B)
	da2 := new(big.Int).Mul(da, da)
	db2 := new(big.Int).Mul(db, db)
	db2.Lsh(db2, 1)
	var less bool
	switch {
	case db.Sign() < 0:
		// f = da/db with db < 0: x < y iff f^2 > 2 and da < 0.
		less = da.Sign() < 0 && da2.Cmp(db2) > 0
	case da.Sign() < 0:
		less = true
	default:
		less = da2.Cmp(db2) < 0
	}
	if less {
		return -1
	}
	return 1
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
		for da := int64(0); da < 2; da++ {
			for db := int64(0); db < 2; db++ {
				r := c.Add(New(da, db))
				nb := b.Sub(r.Mul(a))
				if n := nb.Norm(); n.Cmp(bestNorm) < 0 {
					bestNorm, best = n, nb
				}
			}
		}
		if bestNorm.Cmp(b.Norm()) >= 0 {
			panic("zsqrt2: gcd step failed to reduce the norm")
		}
		b = best
	}
	return b
}

// Value evaluates a + b*sqrt(2) as a real number at the config's precision.
func (x Int) Value(cfg mathcfg.Config) *big.Float {
	prec := cfg.Prec()
	v := new(big.Float).SetPrec(prec).SetInt(x.A)
	bs := new(big.Float).SetPrec(prec).SetInt(x.B)
	bs.Mul(bs, cfg.Sqrt2())
	return v.Add(v, bs)
}

// Float64 returns the float64 value of the element.
func (x Int) Float64() float64 {
	f, _ := x.Value(mathcfg.Float64()).Float64()
	return f
}

// Key returns a canonical string usable as a map key.
func (x Int) Key() string {
	return x.A.String() + "|" + x.B.String()
}

func (x Int) String() string {
	return fmt.Sprintf("%v+%v√2", x.A, x.B)
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

type radiusKey struct {
	elem string
	n    int
	cfg  string
}

var (
	radiusMu    sync.Mutex
	radius2Memo = map[radiusKey]*big.Float{}
	radiusMemo  = map[radiusKey]*big.Float{}
)

// Radius2AtN returns the real value of 2*x^n at the config's precision. The
// result is memoized process-wide; the memo key includes the config name so
// different precisions never alias.
func Radius2AtN(x Int, n int, cfg mathcfg.Config) *big.Float {
	k := radiusKey{elem: x.Key(), n: n, cfg: cfg.Name()}
	radiusMu.Lock()
	v, ok := radius2Memo[k]
	radiusMu.Unlock()
	if ok {
		return new(big.Float).Copy(v)
	}
	v = x.Pow(uint(n)).MulInt(2).Value(cfg)
	radiusMu.Lock()
	radius2Memo[k] = v
	radiusMu.Unlock()
	return new(big.Float).Copy(v)
}

// RadiusAtN returns sqrt(Radius2AtN(x, n)), memoized like Radius2AtN.
func RadiusAtN(x Int, n int, cfg mathcfg.Config) *big.Float {
	k := radiusKey{elem: x.Key(), n: n, cfg: cfg.Name()}
	radiusMu.Lock()
	v, ok := radiusMemo[k]
	radiusMu.Unlock()
	if ok {
		return new(big.Float).Copy(v)
	}
	v = cfg.Sqrt(Radius2AtN(x, n, cfg))
	radiusMu.Lock()
	radiusMemo[k] = v
	radiusMu.Unlock()
	return new(big.Float).Copy(v)
}
