package fractal

// subdivide expands seed through levels rounds of a fixed-fanout rule.
//
// Two index-addressed buffers are preallocated to the final element count
// (fanout^levels). Each round reads level k from one buffer and writes level
// k+1 into the other at index i*fanout, so a parent level is never mutated
// while its children are produced and no per-level allocation happens.
// split must fill exactly len(children) == fanout slots.
func subdivide[T any](seed T, levels, fanout int, split func(parent T, children []T)) []T {
	total := pow(fanout, levels)
	cur := make([]T, 1, total)
	cur[0] = seed
	next := make([]T, 0, total)

	for l := 0; l < levels; l++ {
		next = next[:len(cur)*fanout]
		for i := range cur {
			split(cur[i], next[i*fanout:(i+1)*fanout:(i+1)*fanout])
		}
		cur, next = next, cur[:0]
	}
	return cur
}

// pow returns base^exp for small non-negative exponents.
func pow(base, exp int) int {
	n := 1
	for i := 0; i < exp; i++ {
		n *= base
	}
	return n
}
