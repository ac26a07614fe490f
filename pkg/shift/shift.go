package shift

// Shift returns a copy of s where the element at source has been moved next to
// the element at target. When insertBefore is true the moved element lands
// directly before the target element, otherwise directly after it.
//
// If either index is outside [0, len(s)) or source == target, s is returned
// unchanged.
func Shift[S ~[]E, E any](s S, source, target int, insertBefore bool) S {
	if !valid(len(s), source, target) {
		return s
	}

	lo, hi := source, target
	if lo > hi {
		lo, hi = hi, lo
	}

	first, second := s[target], s[source]
	if insertBefore {
		first, second = s[source], s[target]
	}

	out := make(S, 0, len(s))
	out = append(out, s[:lo]...)
	if source < target {
		out = append(out, s[lo+1:hi]...)
	}
	out = append(out, first, second)
	if source > target {
		out = append(out, s[lo+1:hi]...)
	}
	out = append(out, s[hi+1:]...)
	return out
}

// Permutation returns Shift applied to the identity ordering 0..n-1.
// Element k of the result is the original index of whatever lands at k.
func Permutation(n, source, target int, insertBefore bool) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return Shift(idx, source, target, insertBefore)
}

// Move reports the index the source element occupies after the shift.
// It returns source when the shift is a no-op.
func Move(n, source, target int, insertBefore bool) int {
	if !valid(n, source, target) {
		return source
	}
	switch {
	case source < target && insertBefore:
		return target - 1
	case source < target:
		return target
	case insertBefore:
		return target
	default:
		return target + 1
	}
}

func valid(n, source, target int) bool {
	if source < 0 || source >= n || target < 0 || target >= n {
		return false
	}
	return source != target
}
