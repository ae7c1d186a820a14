package services

// seededRand is a deterministic pseudo-random source. The seed string is
// folded into a 32-bit signed hash (h = h*31 + codeunit, wrapping), which
// becomes the state of a linear-congruential generator. The hash scheme
// and the LCG constants are load-bearing: static generation and cache
// revalidation depend on byte-identical regeneration, so the same seed
// must produce the same draw sequence across processes and builds.
type seededRand struct {
	state int64
}

func newSeededRand(seed string) *seededRand {
	var h int32
	for _, r := range seed {
		h = h*31 + int32(r)
	}
	return &seededRand{state: int64(h)}
}

// next returns the next value in [0, 1)
func (r *seededRand) next() float64 {
	r.state = (r.state*1103515245 + 12345) & 0x7fffffff
	return float64(r.state) / float64(0x7fffffff)
}

// pick selects one element using the next draw
func pick[T any](items []T, r *seededRand) T {
	i := int(r.next() * float64(len(items)))
	if i >= len(items) {
		i = len(items) - 1
	}
	return items[i]
}
