package su2

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/crypto/sha3"
)

// cliffordCount is the order of the single-qubit Clifford group modulo global
// phase and sign.
const cliffordCount = 24

// CliffordTable holds the 24 Clifford elements, each annotated with a gate
// sequence over {S, H} that synthesizes it, together with a lookup index over
// the canonical matrix keys.
type CliffordTable struct {
	elems []SU2CliffordT
	index map[string][]string
}

var (
	cliffordsOnce sync.Once
	cliffordTable *CliffordTable
)

// Cliffords returns the process-wide Clifford table, generating it on first
// use. Generation walks the closure of {S, H} from the identity, deduplicating
// elements up to global sign.
func Cliffords() *CliffordTable {
	cliffordsOnce.Do(func() {
		cliffordTable = generateCliffords()
	})
	return cliffordTable
}

// WarmTables forces generation of the derived tables (the Clifford table and
// the parity key map) so later decompositions never pay the first-use cost.
func WarmTables() {
	Cliffords()
	keyMap()
}

func generateCliffords() *CliffordTable {
	stack := []SU2CliffordT{Identity}
	seen := map[string]bool{Identity.Key(): true}
	elems := make([]SU2CliffordT, 0, cliffordCount)
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		elems = append(elems, c)
		if len(elems) > cliffordCount {
			panic(fmt.Sprintf("su2: clifford closure exceeded %d elements", cliffordCount))
		}
		for _, g := range []SU2CliffordT{SGate, HGate} {
			nc := c.Mul(g)
			if seen[nc.Key()] || seen[nc.Neg().Key()] {
				continue
			}
			seen[nc.Key()] = true
			stack = append(stack, nc)
		}
	}
	if len(elems) != cliffordCount {
		panic(fmt.Sprintf("su2: clifford closure stopped at %d of %d elements", len(elems), cliffordCount))
	}
	index := make(map[string][]string, cliffordCount)
	for _, c := range elems {
		g, ok := c.Gates()
		if !ok {
			panic("su2: generated clifford lost its gate annotation")
		}
		index[c.Key()] = g
	}
	return &CliffordTable{elems: elems, index: index}
}

// Lookup returns a gate sequence synthesizing u when u is one of the 24 table
// elements (exact sign included).
func (t *CliffordTable) Lookup(u SU2CliffordT) ([]string, bool) {
	g, ok := t.index[u.Key()]
	if !ok {
		return nil, false
	}
	return append([]string(nil), g...), true
}

// Elements returns a copy of the table contents.
func (t *CliffordTable) Elements() []SU2CliffordT {
	return append([]SU2CliffordT(nil), t.elems...)
}

// Fingerprint returns a stable SHAKE-256 digest over the sorted canonical
// keys of the table, usable to pin the table contents in tests and reports.
func (t *CliffordTable) Fingerprint() []byte {
	keys := make([]string, 0, len(t.elems))
	for _, c := range t.elems {
		keys = append(keys, c.Key())
	}
	sort.Strings(keys)
	h := sha3.NewShake256()
	h.Write([]byte(strings.Join(keys, "\n")))
	out := make([]byte, 16)
	h.Read(out)
	return out
}
