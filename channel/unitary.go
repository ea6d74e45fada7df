package channel

import (
	"math/big"
	"strings"

	"cliffordt-synth/mathcfg"
	"cliffordt-synth/rings/zsqrt2"
	"cliffordt-synth/rings/zw"
	"cliffordt-synth/su2"
)

// Unitary wraps the left column (p, q) of an exactly synthesizable scaled
// matrix together with its T count. When Twirl is set the unitary is applied
// under Pauli twirling, which converts the coherent error into an incoherent
// one and changes the distance formula.
type Unitary struct {
	P     zw.Int
	Q     zw.Int
	N     int
	Twirl bool
}

// NewUnitaryFromSequence builds the channel realized by a gate sequence in
// circuit order. The T count is the number of T tokens in the sequence.
func NewUnitaryFromSequence(seq []string, twirl bool) (Unitary, error) {
	u, err := su2.FromSequence(seq)
	if err != nil {
		return Unitary{}, err
	}
	n := 0
	for _, g := range seq {
		if strings.HasPrefix(g, "T") {
			n++
		}
	}
	return Unitary{P: u.Entry(0, 0), Q: u.Entry(1, 0), N: n, Twirl: twirl}, nil
}

// ToMatrix reconstructs the full scaled matrix, picking the phase of q that
// makes the pair valid.
func (u Unitary) ToMatrix() (su2.SU2CliffordT, error) {
	return su2.FromPair(u.P, u.Q, true)
}

// ExpectedNumTs is exactly N: a unitary channel always runs its whole
// sequence.
func (u Unitary) ExpectedNumTs(cfg mathcfg.Config) *big.Float {
	return newFloat(cfg).SetInt64(int64(u.N))
}

// RotationAngle returns the angle applied by the diagonal part of the
// channel.
func (u Unitary) RotationAngle(cfg mathcfg.Config) *big.Float {
	return u.P.Arg(cfg)
}

// FailureAngle returns the angle applied by the antidiagonal part of the
// channel.
func (u Unitary) FailureAngle(cfg mathcfg.Config) *big.Float {
	return u.Q.Arg(cfg)
}

// DiamondNormDistanceToRz evaluates the closed-form distance: with
// r = Re[(p/radius)*e^(-i*theta)], the distance is 2*(1-r^2) when twirled and
// 2*sqrt(1-r^2) otherwise.
func (u Unitary) DiamondNormDistanceToRz(theta *big.Float, cfg mathcfg.Config) (*big.Float, error) {
	re, im := u.P.Value(cfg)
	radius := zsqrt2.RadiusAtN(zsqrt2.LambdaKliuchnikov, u.N, cfg)
	re.Quo(re, radius)
	im.Quo(im, radius)

	// Re[u * e^(-i*theta)] = Re(u)*cos(theta) + Im(u)*sin(theta).
	cos := cfg.Cos(theta)
	sin := cfg.Sin(theta)
	r := newFloat(cfg).Mul(re, cos)
	r.Add(r, im.Mul(im, sin))

	rs := newFloat(cfg).Mul(r, r)
	d := newFloat(cfg).SetInt64(1)
	d.Sub(d, rs)
	clampNonNegative(d)
	if u.Twirl {
		return d.Mul(d, big.NewFloat(2)), nil
	}
	d = cfg.Sqrt(d)
	return d.Mul(d, big.NewFloat(2)), nil
}
