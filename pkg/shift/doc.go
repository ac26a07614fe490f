// Package shift implements the list permutation used by sortable containers.
//
// Shift relocates one element of a slice so that it sits directly before or
// after another element. Every other element keeps its relative order and the
// input slice is never modified.
//
//	shift.Shift([]int{0, 1, 2, 3, 4}, 0, 3, false) // [1 2 3 0 4]
//	shift.Shift([]int{0, 1, 2, 3, 4}, 0, 3, true)  // [1 2 0 3 4]
//	shift.Shift([]int{0, 1, 2, 3, 4}, 3, 0, true)  // [3 0 1 2 4]
//
// Out-of-range or equal indices are not errors: the input is returned as is.
package shift
