package su2

import (
	"fmt"

	"cliffordt-synth/rings/zw"
)

// GateNames is the fixed gate vocabulary, in canonical order. "I" through "Z"
// are Clifford; the three T gates are pi/8 rotations about the Pauli axes.
var GateNames = []string{"I", "H", "S", "X", "Y", "Z", "Tx", "Ty", "Tz"}

// The named gate constants. Each carries the scale convention
// sqrt(2*(2+sqrt(2))^n) so that all entries stay in Z[w].
var (
	Identity SU2CliffordT
	HGate    SU2CliffordT
	SGate    SU2CliffordT
	XGate    SU2CliffordT
	YGate    SU2CliffordT
	ZGate    SU2CliffordT
	TxGate   SU2CliffordT
	TyGate   SU2CliffordT
	TzGate   SU2CliffordT
)

var (
	gateByName map[string]SU2CliffordT

	// tGates lists the reduction candidates tried, in order, when one T gate
	// is stripped during decomposition.
	tGateNames = []string{"Tx", "Ty", "Tz"}

	// parametricBases spans the parametric form: a matrix with coefficients
	// (a, b, c, d) is a*B0 + b*B1 + c*B2 + d*B3.
	parametricBases [4][2][2]zw.Int
)

type rawMatrix = [2][2]zw.Int

func rawAdd(x, y rawMatrix) rawMatrix {
	var out rawMatrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = x[i][j].Add(y[i][j])
		}
	}
	return out
}

func rawSub(x, y rawMatrix) rawMatrix {
	var out rawMatrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = x[i][j].Sub(y[i][j])
		}
	}
	return out
}

func rawScale(x rawMatrix, k zw.Int) rawMatrix {
	var out rawMatrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = x[i][j].Mul(k)
		}
	}
	return out
}

func init() {
	rawI := rawMatrix{{zw.One, zw.Zero}, {zw.Zero, zw.One}}
	rawX := rawMatrix{{zw.Zero, zw.One}, {zw.One, zw.Zero}}
	rawY := rawMatrix{{zw.Zero, zw.J.Neg()}, {zw.J, zw.Zero}}
	rawZ := rawMatrix{{zw.One, zw.Zero}, {zw.Zero, zw.One.Neg()}}

	// Identity is sqrt(2)*I; its annotation is the empty sequence.
	Identity = SU2CliffordT{m: rawScale(rawI, zw.Sqrt2), n: 0, gates: []string{}, hasGates: true}

	// H is j*[[1, 1], [1, -1]].
	HGate = SU2CliffordT{
		m:        rawScale(rawMatrix{{zw.One, zw.One}, {zw.One, zw.One.Neg()}}, zw.J),
		n:        0,
		gates:    []string{"H"},
		hasGates: true,
	}

	// S is sqrt(2)*conj(w)*diag(1, j); the global phase keeps the entries in
	// the ring.
	sPhase := zw.Sqrt2.Mul(zw.Omega.Conj())
	SGate = SU2CliffordT{
		m:        rawMatrix{{sPhase, zw.Zero}, {zw.Zero, sPhase.Mul(zw.J)}},
		n:        0,
		gates:    []string{"S"},
		hasGates: true,
	}

	// Z, X and Y are derived from S and H; the derivations drop the gate
	// annotation, so the Pauli constants carry none.
	ZGate = SGate.Neg().Mul(SGate)
	XGate = HGate.Mul(ZGate).Mul(HGate.Adjoint())
	YGate = ZGate.Mul(XGate)

	// A T rotation about Pauli P is (sqrt(2)+1)*I - j*P at this scale.
	tDiag := rawAdd(rawScale(rawI, zw.Sqrt2), rawI)
	TxGate = SU2CliffordT{m: rawSub(tDiag, rawScale(rawX, zw.J)), n: 1, gates: []string{"Tx"}, hasGates: true}
	TyGate = SU2CliffordT{m: rawSub(tDiag, rawScale(rawY, zw.J)), n: 1, gates: []string{"Ty"}, hasGates: true}
	TzGate = SU2CliffordT{m: rawSub(tDiag, rawScale(rawZ, zw.J)), n: 1, gates: []string{"Tz"}, hasGates: true}

	gateByName = map[string]SU2CliffordT{
		"I":  Identity,
		"H":  HGate,
		"S":  SGate,
		"X":  XGate,
		"Y":  YGate,
		"Z":  ZGate,
		"Tx": TxGate,
		"Ty": TyGate,
		"Tz": TzGate,
	}

	parametricBases = [4]rawMatrix{
		rawScale(rawI, zw.Sqrt2),
		rawAdd(rawI, rawScale(rawX, zw.J)),
		rawAdd(rawI, rawScale(rawY, zw.J)),
		{
			{zw.Omega, zw.Omega},
			{zw.Omega.Conj().Neg(), zw.Omega.Conj()},
		},
	}
}

// GateByName resolves a gate token to its matrix constant.
func GateByName(name string) (SU2CliffordT, error) {
	g, ok := gateByName[name]
	if !ok {
		return SU2CliffordT{}, fmt.Errorf("su2: gate %q: %w", name, ErrUnknownGate)
	}
	return g, nil
}

func mustGate(name string) SU2CliffordT {
	g, err := GateByName(name)
	if err != nil {
		panic(err)
	}
	return g
}

// FromSequence synthesizes the matrix of a gate sequence given in circuit
// order: the first token acts first.
func FromSequence(seq []string) (SU2CliffordT, error) {
	u := Identity
	for _, name := range seq {
		g, err := GateByName(name)
		if err != nil {
			return SU2CliffordT{}, err
		}
		u = g.Mul(u)
	}
	return u, nil
}
