package su2

import "testing"

// The derived table must match the case analysis: only seven parity classes
// admit a determinant-reducing T gate, and ties resolve in the order
// Tx < Ty < Tz.
func TestKeyMapDerivation(t *testing.T) {
	want := map[[4]int]string{
		{0, 0, 0, 0}: "Tx",
		{0, 0, 1, 0}: "Tz",
		{0, 1, 0, 0}: "Ty",
		{0, 1, 1, 0}: "Tx",
		{1, 0, 1, 0}: "Tx",
		{1, 1, 0, 0}: "Tx",
		{1, 1, 1, 0}: "Tz",
	}
	got := keyMap()
	if len(got) != len(want) {
		t.Fatalf("key map has %d entries, want %d: %v", len(got), len(want), got)
	}
	for key, gate := range want {
		if got[key] != gate {
			t.Fatalf("key %v maps to %q, want %q", key, got[key], gate)
		}
	}
}

func TestKeyMapCoversDecompositions(t *testing.T) {
	seqs := [][]string{
		{"Tx"}, {"Ty"}, {"Tz"},
		{"H", "Tx", "S", "Ty"},
		{"Tz", "Tz", "Tx", "Ty"},
	}
	for _, seq := range seqs {
		u, err := FromSequence(seq)
		if err != nil {
			t.Fatalf("FromSequence(%v): %v", seq, err)
		}
		if u.NumTs() == 0 {
			continue
		}
		key, err := u.parityKey()
		if err != nil {
			t.Fatalf("%v: parityKey: %v", seq, err)
		}
		if _, ok := keyMap()[key]; !ok {
			t.Fatalf("%v: parity key %v has no reduction gate", seq, key)
		}
	}
}
