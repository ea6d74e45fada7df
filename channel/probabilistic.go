package channel

import (
	"fmt"
	"math/big"

	"cliffordt-synth/mathcfg"
	"cliffordt-synth/rings/zsqrt2"
)

// Probabilistic applies C1 with the given probability and C2 otherwise. The
// factories solve for the probability that makes the expected rotation match
// a target angle when the two children bracket it from below and above.
type Probabilistic struct {
	C1          Channel
	C2          Channel
	probability *big.Float
}

// NewProbabilistic builds a mixture, clamping the probability into [0, 1].
// The clamp is silent: factory callers that already validated bracketing can
// only produce in-range probabilities up to rounding, and the clamp absorbs
// that rounding.
func NewProbabilistic(c1, c2 Channel, probability *big.Float) Probabilistic {
	p := new(big.Float).SetPrec(probability.Prec()).Set(probability)
	if p.Sign() < 0 {
		p.SetInt64(0)
	} else if p.Cmp(big.NewFloat(1)) > 0 {
		p.SetInt64(1)
	}
	return Probabilistic{C1: c1, C2: c2, probability: p}
}

// Probability returns the mixing probability of C1.
func (p Probabilistic) Probability() *big.Float {
	return new(big.Float).Copy(p.probability)
}

// ExpectedNumTs is the probability-weighted expected count of the children.
func (p Probabilistic) ExpectedNumTs(cfg mathcfg.Config) *big.Float {
	w1 := newFloat(cfg).Set(p.probability)
	w2 := newFloat(cfg).SetInt64(1)
	w2.Sub(w2, p.probability)
	out := w1.Mul(w1, p.C1.ExpectedNumTs(cfg))
	return out.Add(out, w2.Mul(w2, p.C2.ExpectedNumTs(cfg)))
}

// DiamondNormDistanceToRz has closed forms for two pairings only: two
// unitaries mix linearly, and two projective channels mix their incoherent
// per-branch errors. Any other combination returns
// ErrUnsupportedCombination.
func (p Probabilistic) DiamondNormDistanceToRz(theta *big.Float, cfg mathcfg.Config) (*big.Float, error) {
	w1 := newFloat(cfg).Set(p.probability)
	w2 := newFloat(cfg).SetInt64(1)
	w2.Sub(w2, p.probability)

	u1, ok1 := p.C1.(Unitary)
	u2, ok2 := p.C2.(Unitary)
	if ok1 && ok2 {
		d1, err := u1.DiamondNormDistanceToRz(theta, cfg)
		if err != nil {
			return nil, err
		}
		d2, err := u2.DiamondNormDistanceToRz(theta, cfg)
		if err != nil {
			return nil, err
		}
		out := d1.Mul(d1, w1)
		return out.Add(out, d2.Mul(d2, w2)), nil
	}

	under, ok1 := p.C1.(Projective)
	over, ok2 := p.C2.(Projective)
	if ok1 && ok2 {
		underErr, err := projectiveMixtureErr(under, theta, cfg)
		if err != nil {
			return nil, err
		}
		overErr, err := projectiveMixtureErr(over, theta, cfg)
		if err != nil {
			return nil, err
		}
		out := underErr.Mul(underErr, w1)
		return out.Add(out, overErr.Mul(overErr, w2)), nil
	}

	return nil, fmt.Errorf("channel: mixing %T with %T: %w", p.C1, p.C2, ErrUnsupportedCombination)
}

// projectiveMixtureErr is the incoherent error contribution of one projective
// branch inside a mixture: q*2*sin^2(delta) on success plus the correction's
// distance on failure.
func projectiveMixtureErr(c Projective, theta *big.Float, cfg mathcfg.Config) (*big.Float, error) {
	q := c.SuccessProbability(cfg)
	delta := c.RotationAngle(cfg)
	delta.Sub(delta, theta)
	s := cfg.Sin(delta)
	s.Mul(s, s)
	s.Mul(s, big.NewFloat(2))
	s.Mul(s, q)

	residual := newFloat(cfg).Sub(theta, c.FailureAngle(cfg))
	corr, err := c.Correction.DiamondNormDistanceToRz(residual, cfg)
	if err != nil {
		return nil, err
	}
	fail := newFloat(cfg).SetInt64(1)
	fail.Sub(fail, q)
	return s.Add(s, corr.Mul(corr, fail)), nil
}

// FromUnitaryChannels solves for the probability mixing u1 and u2 so the
// expected rotation equals targetTheta: with t_i = r_i^2*sin(2*delta_i), the
// probability is t2/(t2-t1). The two terms must not share a sign: one channel
// has to under-rotate and the other to over-rotate the target. When both
// terms vanish within the config tolerance the channels already match the
// target and the probability degenerates to 1.
func FromUnitaryChannels(u1, u2 Unitary, targetTheta *big.Float, cfg mathcfg.Config) (Probabilistic, error) {
	t1 := unitaryMixtureTerm(u1, targetTheta, cfg)
	t2 := unitaryMixtureTerm(u2, targetTheta, cfg)

	s1 := signWithTolerance(t1, cfg)
	s2 := signWithTolerance(t2, cfg)
	if s1 == 0 && s2 == 0 {
		return NewProbabilistic(u1, u2, newFloat(cfg).SetInt64(1)), nil
	}
	if s1*s2 > 0 {
		return Probabilistic{}, fmt.Errorf("channel: angular error terms %v and %v do not bracket the target: %w", t1, t2, ErrPrecondition)
	}
	prob := newFloat(cfg).Sub(t2, t1)
	prob.Quo(t2, prob)
	return NewProbabilistic(u1, u2, prob), nil
}

func unitaryMixtureTerm(u Unitary, targetTheta *big.Float, cfg mathcfg.Config) *big.Float {
	r, phi := u.P.Polar(cfg)
	r.Quo(r, zsqrt2.RadiusAtN(zsqrt2.LambdaKliuchnikov, u.N, cfg))
	r.Mul(r, r)
	delta := phi.Sub(phi, targetTheta)
	delta.Mul(delta, big.NewFloat(2))
	return r.Mul(r, cfg.Sin(delta))
}

// FromProjectiveChannels is the projective analogue: with
// t_i = q_i*sin(2*(rot_i-theta)), it requires t1 <= 0 <= t2 and mixes with
// probability t2/(t2-t1); both terms vanishing degenerates to probability 1.
func FromProjectiveChannels(under, over Projective, targetTheta *big.Float, cfg mathcfg.Config) (Probabilistic, error) {
	t1 := projectiveMixtureTerm(under, targetTheta, cfg)
	t2 := projectiveMixtureTerm(over, targetTheta, cfg)

	s1 := signWithTolerance(t1, cfg)
	s2 := signWithTolerance(t2, cfg)
	if s1 > 0 || s2 < 0 {
		return Probabilistic{}, fmt.Errorf("channel: want term1 <= 0 <= term2, got %v and %v: %w", t1, t2, ErrPrecondition)
	}
	if s1 == 0 && s2 == 0 {
		return NewProbabilistic(under, over, newFloat(cfg).SetInt64(1)), nil
	}
	prob := newFloat(cfg).Sub(t2, t1)
	prob.Quo(t2, prob)
	return NewProbabilistic(under, over, prob), nil
}

func projectiveMixtureTerm(c Projective, targetTheta *big.Float, cfg mathcfg.Config) *big.Float {
	delta := c.RotationAngle(cfg)
	delta.Sub(delta, targetTheta)
	delta.Mul(delta, big.NewFloat(2))
	t := c.SuccessProbability(cfg)
	return t.Mul(t, cfg.Sin(delta))
}

// signWithTolerance treats magnitudes at or below the config tolerance as
// zero.
func signWithTolerance(x *big.Float, cfg mathcfg.Config) int {
	abs := new(big.Float).Abs(x)
	if abs.Cmp(big.NewFloat(cfg.Tolerance())) <= 0 {
		return 0
	}
	return x.Sign()
}
