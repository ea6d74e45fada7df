package su2

import (
	"errors"
	"math"
	"math/cmplx"
	"strings"
	"testing"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"

	"cliffordt-synth/rings/zsqrt2"
	"cliffordt-synth/rings/zw"
)

func toCDense(u SU2CliffordT) *mat.CDense {
	c := u.Complex128s()
	return mat.NewCDense(2, 2, []complex128{c[0][0], c[0][1], c[1][0], c[1][1]})
}

func countTs(seq []string) int {
	n := 0
	for _, g := range seq {
		if strings.HasPrefix(g, "T") {
			n++
		}
	}
	return n
}

func TestGateUnitarity(t *testing.T) {
	for _, name := range GateNames {
		g := mustGate(name)
		scale := complex(2*math.Pow(2+math.Sqrt2, float64(g.NumTs())), 0)
		m := toCDense(g)
		prod := mat.NewCDense(2, 2, nil)
		cblas128.Gemm(blas.NoTrans, blas.ConjTrans, 1, m.RawCMatrix(), m.RawCMatrix(), 0, prod.RawCMatrix())
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				want := complex(0, 0)
				if i == j {
					want = scale
				}
				if got := prod.At(i, j); cmplx.Abs(got-want) > 1e-9 {
					t.Fatalf("%s·%s† entry (%d,%d) = %v, want %v", name, name, i, j, got, want)
				}
			}
		}
	}
}

func TestTGateValues(t *testing.T) {
	sqrt2 := math.Sqrt2
	id := [2][2]complex128{{1, 0}, {0, 1}}
	paulis := map[string][2][2]complex128{
		"Tx": {{0, 1}, {1, 0}},
		"Ty": {{0, complex(0, -1)}, {complex(0, 1), 0}},
		"Tz": {{1, 0}, {0, -1}},
	}
	// T about P is (I + (I - j*P)/sqrt(2)) / sqrt(2+sqrt(2)) as a plain
	// unitary; the exact gate carries an extra sqrt(2)*sqrt(2+sqrt(2)).
	scale := complex(sqrt2*math.Sqrt(2+sqrt2), 0)
	for name, pauli := range paulis {
		g := mustGate(name)
		got := g.Complex128s()
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				want := (id[i][j] + (id[i][j]-complex(0, 1)*pauli[i][j])/complex(sqrt2, 0)) /
					complex(math.Sqrt(2+sqrt2), 0) * scale
				if cmplx.Abs(got[i][j]-want) > 1e-9 {
					t.Fatalf("%s entry (%d,%d) = %v, want %v", name, i, j, got[i][j], want)
				}
			}
		}
	}
}

func TestMulTracksDeterminantAndTCount(t *testing.T) {
	seqs := [][]string{
		{"H", "S", "H"},
		{"Tx"},
		{"H", "S", "Tx", "Ty"},
		{"X", "Y", "Z", "Tz", "H"},
		{"Tz", "Tx", "Tz", "S", "Ty", "H", "Tx"},
	}
	for _, seq := range seqs {
		u, err := FromSequence(seq)
		if err != nil {
			t.Fatalf("FromSequence(%v): %v", seq, err)
		}
		k := countTs(seq)
		if u.NumTs() != k {
			t.Fatalf("%v: NumTs = %d, want %d", seq, u.NumTs(), k)
		}
		want := zsqrt2.Two.Mul(zsqrt2.LambdaKliuchnikov.Pow(uint(k)))
		if got := u.Det(); !got.Equal(want) {
			t.Fatalf("%v: det = %v, want %v", seq, got, want)
		}

		// Cross-check the exact product against complex128 linear algebra,
		// dividing by sqrt(2) at every composition step like Mul does.
		acc := toCDense(Identity)
		for _, name := range seq {
			next := mat.NewCDense(2, 2, nil)
			cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, toCDense(mustGate(name)).RawCMatrix(), acc.RawCMatrix(), 0, next.RawCMatrix())
			for i := 0; i < 2; i++ {
				for j := 0; j < 2; j++ {
					next.Set(i, j, next.At(i, j)/complex(math.Sqrt2, 0))
				}
			}
			acc = next
		}
		got := toCDense(u)
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				if cmplx.Abs(got.At(i, j)-acc.At(i, j)) > 1e-6 {
					t.Fatalf("%v: numeric mismatch at (%d,%d): %v vs %v", seq, i, j, got.At(i, j), acc.At(i, j))
				}
			}
		}
	}
}

func TestAdjointComposition(t *testing.T) {
	seqs := [][]string{
		{"Tx", "Ty", "Tz"},
		{"Tz", "Tz", "Tx"},
		{"Ty", "Tx", "Ty"},
	}
	want := Identity.ScalarMul(zw.LambdaKliuchnikov.Pow(3))
	for _, seq := range seqs {
		u, err := FromSequence(seq)
		if err != nil {
			t.Fatalf("FromSequence(%v): %v", seq, err)
		}
		if got := u.Mul(u.Adjoint()); !got.Equal(want) {
			t.Fatalf("%v: u·u† = %v, want λ³-scaled identity", seq, got)
		}
		if got := u.Adjoint().Adjoint(); !got.Equal(u) {
			t.Fatalf("%v: adjoint is not an involution", seq)
		}
	}
}

func TestParametricFormRoundTrip(t *testing.T) {
	seqs := [][]string{
		{"H"},
		{"S", "H"},
		{"Tx"},
		{"H", "S", "Tx", "Ty"},
		{"Tz", "Tx", "S", "Ty", "H"},
		{"X", "Tz", "Y", "Tx", "Z"},
	}
	for _, seq := range seqs {
		u, err := FromSequence(seq)
		if err != nil {
			t.Fatalf("FromSequence(%v): %v", seq, err)
		}
		pf, err := u.ParametricForm()
		if err != nil {
			t.Fatalf("%v: ParametricForm: %v", seq, err)
		}
		if got := FromParametricForm(pf); !got.Equal(u) {
			t.Fatalf("%v: FromParametricForm(ParametricForm(u)) = %v, want %v", seq, got, u)
		}
	}
}

func TestToSequenceRoundTrip(t *testing.T) {
	seqs := [][]string{
		{"H", "S", "H"},
		{"Tx"},
		{"S", "S", "S", "S"},
		{"H", "S", "Tx", "Ty"},
		{"X", "Y", "Z", "Tz", "H"},
		{"Tz", "Tx", "Tz", "S", "Ty", "H", "Tx"},
		{"I", "H", "Tz", "Tz", "S", "H", "Ty", "Tx", "Z"},
	}
	for _, seq := range seqs {
		u, err := FromSequence(seq)
		if err != nil {
			t.Fatalf("FromSequence(%v): %v", seq, err)
		}
		out, err := u.ToSequence()
		if err != nil {
			t.Fatalf("%v: ToSequence: %v", seq, err)
		}
		if got := countTs(out); got != u.NumTs() {
			t.Fatalf("%v: decomposition uses %d T gates, want %d", seq, got, u.NumTs())
		}
		back, err := FromSequence(out)
		if err != nil {
			t.Fatalf("%v: re-synthesizing %v: %v", seq, out, err)
		}
		if !back.Equal(u) && !back.Equal(u.Neg()) {
			t.Fatalf("%v: round trip through %v changed the matrix", seq, out)
		}
	}
}

func TestCliffordOnlyDecomposition(t *testing.T) {
	u, err := FromSequence([]string{"H", "S", "H"})
	if err != nil {
		t.Fatalf("FromSequence: %v", err)
	}
	out, err := u.ToSequence()
	if err != nil {
		t.Fatalf("ToSequence: %v", err)
	}
	if countTs(out) != 0 {
		t.Fatalf("H,S,H decomposed with T gates: %v", out)
	}
	back, err := FromSequence(out)
	if err != nil {
		t.Fatalf("FromSequence(%v): %v", out, err)
	}
	if !back.Equal(u) && !back.Equal(u.Neg()) {
		t.Fatalf("Clifford round trip changed the matrix")
	}
}

func TestTxTimesAdjointScalesDownToIdentity(t *testing.T) {
	prod := TxGate.Mul(TxGate.Adjoint())
	if prod.NumTs() != 2 {
		t.Fatalf("Tx·Tx† NumTs = %d, want 2", prod.NumTs())
	}
	reduced, ok := prod.ScaleDown()
	if !ok {
		t.Fatal("Tx·Tx† must be divisible by the scaling unit")
	}
	if !reduced.Equal(Identity) {
		t.Fatalf("Tx·Tx† scaled down = %v, want identity", reduced)
	}
	if reduced.NumTs() != 0 {
		t.Fatalf("reduced NumTs = %d, want 0", reduced.NumTs())
	}
}

func TestFromPair(t *testing.T) {
	u, err := FromSequence([]string{"H", "S", "Tx"})
	if err != nil {
		t.Fatalf("FromSequence: %v", err)
	}
	got, err := FromPair(u.Entry(0, 0), u.Entry(1, 0), false)
	if err != nil {
		t.Fatalf("FromPair on a valid column: %v", err)
	}
	if !got.Equal(u) {
		t.Fatalf("FromPair rebuilt %v, want %v", got, u)
	}

	// With phase search the dephased column must come back valid.
	dephased, err := FromPair(u.Entry(0, 0), u.Entry(1, 0).Mul(zw.Omega.Pow(3)), true)
	if err != nil {
		t.Fatalf("FromPair with phase search: %v", err)
	}
	if !dephased.IsValid() {
		t.Fatal("phase search returned an invalid matrix")
	}
	if !dephased.Entry(0, 0).Equal(u.Entry(0, 0)) {
		t.Fatal("phase search changed the diagonal entry")
	}

	if _, err := FromPair(zw.One, zw.Sqrt2, true); !errors.Is(err, ErrInvalidConstruction) {
		t.Fatalf("FromPair on an unnormalizable pair: err = %v, want ErrInvalidConstruction", err)
	}
}

func TestToSequenceRejectsInvalidMatrix(t *testing.T) {
	bad := fromPairRaw(zw.One, zw.Sqrt2)
	if bad.IsValid() {
		t.Fatal("fixture matrix should be invalid")
	}
	if _, err := bad.ToSequence(); !errors.Is(err, ErrInvalidMatrix) {
		t.Fatalf("ToSequence on invalid matrix: err = %v, want ErrInvalidMatrix", err)
	}
}

func TestUnknownGate(t *testing.T) {
	if _, err := FromSequence([]string{"H", "Q"}); !errors.Is(err, ErrUnknownGate) {
		t.Fatalf("FromSequence with bad token: err = %v, want ErrUnknownGate", err)
	}
}

func TestEqualIgnoresAnnotation(t *testing.T) {
	u, err := FromSequence([]string{"H", "S"})
	if err != nil {
		t.Fatalf("FromSequence: %v", err)
	}
	rebuilt, err := FromPair(u.Entry(0, 0), u.Entry(1, 0), false)
	if err != nil {
		t.Fatalf("FromPair: %v", err)
	}
	if !u.Equal(rebuilt) || u.Key() != rebuilt.Key() {
		t.Fatal("annotation leaked into Equal or Key")
	}
	if _, ok := u.Gates(); !ok {
		t.Fatal("composed matrix lost its annotation")
	}
	if _, ok := rebuilt.Gates(); ok {
		t.Fatal("reconstructed matrix should carry no annotation")
	}
	if _, ok := u.Neg().Gates(); ok {
		t.Fatal("negation should drop the annotation")
	}
}
