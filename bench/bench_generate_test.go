package bench

import (
	"math/big"
	"testing"

	"cliffordt-synth/channel"
	"cliffordt-synth/mathcfg"
	"cliffordt-synth/su2"
)

func BenchmarkGenerateRotations(b *testing.B) {
	su2.WarmTables()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		levels := su2.GenerateRotations(4)
		if len(levels) != 5 {
			b.Fatalf("got %d levels", len(levels))
		}
	}
}

func BenchmarkCliffordLookup(b *testing.B) {
	tbl := su2.Cliffords()
	elems := tbl.Elements()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := tbl.Lookup(elems[i%len(elems)]); !ok {
			b.Fatal("lookup miss")
		}
	}
}

func BenchmarkChannelDistance(b *testing.B) {
	seq := benchSequence(b, "chan-dist", 24)
	u, err := channel.NewUnitaryFromSequence(seq, false)
	if err != nil {
		b.Fatal(err)
	}
	cfg := mathcfg.Float64()
	theta := big.NewFloat(0.7351)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := u.DiamondNormDistanceToRz(theta, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkChannelDistanceHighPrecision(b *testing.B) {
	seq := benchSequence(b, "chan-dist", 24)
	u, err := channel.NewUnitaryFromSequence(seq, false)
	if err != nil {
		b.Fatal(err)
	}
	cfg := mathcfg.WithPrec(256)
	theta := big.NewFloat(0.7351)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := u.DiamondNormDistanceToRz(theta, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
