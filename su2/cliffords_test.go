package su2

import (
	"bytes"
	"testing"
)

func TestCliffordTableSize(t *testing.T) {
	tbl := Cliffords()
	elems := tbl.Elements()
	if len(elems) != cliffordCount {
		t.Fatalf("table has %d elements, want %d", len(elems), cliffordCount)
	}
	seen := make(map[string]bool, 2*len(elems))
	for _, c := range elems {
		if seen[c.Key()] || seen[c.Neg().Key()] {
			t.Fatalf("duplicate element (up to sign): %v", c)
		}
		seen[c.Key()] = true
		if c.NumTs() != 0 {
			t.Fatalf("clifford with nonzero T count: %v", c)
		}
	}
}

func TestCliffordSequencesResynthesize(t *testing.T) {
	for _, c := range Cliffords().Elements() {
		seq, ok := Cliffords().Lookup(c)
		if !ok {
			t.Fatalf("element missing from its own table: %v", c)
		}
		for _, g := range seq {
			if g != "S" && g != "H" {
				t.Fatalf("clifford sequence uses non-generator gate %q", g)
			}
		}
		got, err := FromSequence(seq)
		if err != nil {
			t.Fatalf("FromSequence(%v): %v", seq, err)
		}
		if !got.Equal(c) {
			t.Fatalf("sequence %v rebuilt %v, want %v", seq, got, c)
		}
	}
}

func TestCliffordLookupMiss(t *testing.T) {
	if _, ok := Cliffords().Lookup(TxGate); ok {
		t.Fatal("Tx must not be in the Clifford table")
	}
}

func TestCliffordFingerprintStable(t *testing.T) {
	a := Cliffords().Fingerprint()
	b := Cliffords().Fingerprint()
	if len(a) != 16 {
		t.Fatalf("fingerprint length %d, want 16", len(a))
	}
	if !bytes.Equal(a, b) {
		t.Fatal("fingerprint is not deterministic")
	}
}
