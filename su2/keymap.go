package su2

import (
	"sync"

	"cliffordt-synth/rings/zsqrt2"
)

var (
	keyMapOnce  sync.Once
	keyMapTable map[[4]int]string
)

// keyMap maps the mod-2 parity vector of a matrix's parametric form to the T
// gate whose removal shrinks the determinant. The table is derived rather
// than hard-coded: for each parity class a representative is built from the
// parametric form and every T gate is tried; the gate leaving the smallest
// determinant after scale-down wins. Parity classes with no reducing gate do
// not occur for valid matrices and are simply absent.
func keyMap() map[[4]int]string {
	keyMapOnce.Do(func() {
		tbl := make(map[[4]int]string)
		for vec := 0; vec < 16; vec++ {
			bits := [4]int{vec & 1, vec >> 1 & 1, vec >> 2 & 1, vec >> 3 & 1}
			var pf [4]zsqrt2.Int
			for i := range pf {
				if vec == 0 {
					// The all-even class needs a nonzero representative.
					pf[i] = zsqrt2.Two
				} else {
					pf[i] = zsqrt2.New(int64(bits[i]), 0)
				}
			}
			g := FromParametricForm(pf)
			bestDet := g.Det()
			bestName := ""
			for _, name := range tGateNames {
				t := mustGate(name)
				ng, ok := t.Adjoint().Mul(g).ScaleDown()
				if !ok {
					continue
				}
				if d := ng.Det(); d.Cmp(bestDet) < 0 {
					bestDet, bestName = d, name
				}
			}
			if bestName == "" {
				continue
			}
			tbl[bits] = bestName
		}
		keyMapTable = tbl
	})
	return keyMapTable
}
