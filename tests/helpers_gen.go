package tests

import (
	"testing"

	"github.com/tuneinsight/lattigo/v4/utils"

	"cliffordt-synth/su2"
)

// newPRNG returns a keyed PRNG so failing draws reproduce across runs.
func newPRNG(t *testing.T, seed string) utils.PRNG {
	t.Helper()
	prng, err := utils.NewKeyedPRNG([]byte(seed))
	if err != nil {
		t.Fatalf("NewKeyedPRNG: %v", err)
	}
	return prng
}

// randSequence draws a gate sequence of length n over the full vocabulary.
func randSequence(t *testing.T, prng utils.PRNG, n int) []string {
	t.Helper()
	buf := make([]byte, n)
	if _, err := prng.Read(buf); err != nil {
		t.Fatalf("prng read: %v", err)
	}
	seq := make([]string, n)
	for i, b := range buf {
		seq[i] = su2.GateNames[int(b)%len(su2.GateNames)]
	}
	return seq
}

// randTSequence draws a sequence over the T gates only, so the T count equals
// the length.
func randTSequence(t *testing.T, prng utils.PRNG, n int) []string {
	t.Helper()
	names := []string{"Tx", "Ty", "Tz"}
	buf := make([]byte, n)
	if _, err := prng.Read(buf); err != nil {
		t.Fatalf("prng read: %v", err)
	}
	seq := make([]string, n)
	for i, b := range buf {
		seq[i] = names[int(b)%len(names)]
	}
	return seq
}
