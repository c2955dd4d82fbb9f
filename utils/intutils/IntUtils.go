// Package intutils provides utilities for working with ints
package intutils

// Min calculates and returns the minimum integer in a list
func Min(ints ...int) int {
	min := ints[0]
	for _, val := range ints {
		if val < min {
			min = val
		}
	}
	return min
}

// Abs returns the absolute value of an int
func Abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
