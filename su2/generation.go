package su2

import "iter"

// GenerateOption customizes rotation enumeration.
type GenerateOption func(*generateConfig)

type generateConfig struct {
	progress func(tCount, levelSize int)
}

// WithProgress installs a callback invoked once per completed level with the
// T count and the number of new rotations found at that count.
func WithProgress(fn func(tCount, levelSize int)) GenerateOption {
	return func(c *generateConfig) { c.progress = fn }
}

// GenerateRotationsIter enumerates all distinct Clifford+T rotations level by
// level: the sequence yields (t, rotations) where rotations is every element
// reachable with exactly t T gates and no fewer. Level 0 is the 24 Cliffords;
// level t+1 extends level t by one T gate on the right, deduplicating up to
// global sign across all levels. The sequence is infinite; the caller stops
// it by breaking out of the range loop.
func GenerateRotationsIter(opts ...GenerateOption) iter.Seq2[int, []SU2CliffordT] {
	var cfg generateConfig
	for _, o := range opts {
		o(&cfg)
	}
	return func(yield func(int, []SU2CliffordT) bool) {
		frontier := Cliffords().Elements()
		seen := make(map[string]bool, 4*len(frontier))
		for _, c := range frontier {
			seen[c.Key()] = true
		}
		tGates := []SU2CliffordT{TxGate, TyGate, TzGate}
		for t := 0; ; t++ {
			if cfg.progress != nil {
				cfg.progress(t, len(frontier))
			}
			if !yield(t, frontier) {
				return
			}
			next := make([]SU2CliffordT, 0, 2*len(frontier))
			for _, r := range frontier {
				for _, g := range tGates {
					nr := r.Mul(g)
					if seen[nr.Key()] || seen[nr.Neg().Key()] {
						continue
					}
					seen[nr.Key()] = true
					next = append(next, nr)
				}
			}
			frontier = next
		}
	}
}

// GenerateRotations collects every rotation with at most maxTs T gates,
// returned as one slice per T count.
func GenerateRotations(maxTs int, opts ...GenerateOption) [][]SU2CliffordT {
	levels := make([][]SU2CliffordT, 0, maxTs+1)
	for t, rots := range GenerateRotationsIter(opts...) {
		levels = append(levels, rots)
		if t >= maxTs {
			break
		}
	}
	return levels
}
