package channel

import (
	"math/big"

	"cliffordt-synth/mathcfg"
	"cliffordt-synth/rings/zsqrt2"
	"cliffordt-synth/rings/zw"
)

// Projective models a repeat-until-success construction: apply Rotation on an
// ancilla, measure, and run Correction only on the failure outcome. The
// correction may itself be any channel, so these compose into trees.
type Projective struct {
	Rotation   Unitary
	Correction Channel
}

// SuccessProbability returns the probability of the zero measurement outcome,
// 1 - (|q|/radius)^2.
func (p Projective) SuccessProbability(cfg mathcfg.Config) *big.Float {
	v := p.Rotation.Q.Mag(cfg)
	v.Quo(v, zsqrt2.RadiusAtN(zsqrt2.LambdaKliuchnikov, p.Rotation.N, cfg))
	out := newFloat(cfg).SetInt64(1)
	v.Mul(v, v)
	return out.Sub(out, v)
}

// RotationAngle returns the angle applied on measurement success.
func (p Projective) RotationAngle(cfg mathcfg.Config) *big.Float {
	return p.Rotation.RotationAngle(cfg)
}

// FailureAngle returns the angle applied on measurement failure, before the
// correction runs.
func (p Projective) FailureAngle(cfg mathcfg.Config) *big.Float {
	return p.Rotation.FailureAngle(cfg)
}

// ExpectedNumTs is the rotation's T count plus the failure probability times
// the correction's expected count.
func (p Projective) ExpectedNumTs(cfg mathcfg.Config) *big.Float {
	re, im := p.Rotation.Q.Value(cfg)
	failProb := re.Mul(re, re)
	failProb.Add(failProb, im.Mul(im, im))
	failProb.Quo(failProb, zsqrt2.Radius2AtN(zsqrt2.LambdaKliuchnikov, p.Rotation.N, cfg))

	out := p.Rotation.ExpectedNumTs(cfg)
	return out.Add(out, failProb.Mul(failProb, p.Correction.ExpectedNumTs(cfg)))
}

// successDistance is the distance on the zero outcome: 2*|sin(arg(p)-theta)|.
func successDistance(p zw.Int, theta *big.Float, cfg mathcfg.Config) *big.Float {
	argU := p.Arg(cfg)
	argU.Sub(argU, theta)
	d := cfg.Sin(argU)
	d.Abs(d)
	return d.Mul(d, big.NewFloat(2))
}

// DiamondNormDistanceToRz mixes the success-branch distance with the
// correction's distance to the residual angle theta - failureAngle, weighted
// by the measurement probabilities.
func (p Projective) DiamondNormDistanceToRz(theta *big.Float, cfg mathcfg.Config) (*big.Float, error) {
	succ := p.SuccessProbability(cfg)
	onSuccess := successDistance(p.Rotation.P, theta, cfg)

	residual := newFloat(cfg).Sub(theta, p.FailureAngle(cfg))
	onFailure, err := p.Correction.DiamondNormDistanceToRz(residual, cfg)
	if err != nil {
		return nil, err
	}

	fail := newFloat(cfg).SetInt64(1)
	fail.Sub(fail, succ)
	out := onSuccess.Mul(onSuccess, succ)
	return out.Add(out, onFailure.Mul(onFailure, fail)), nil
}
