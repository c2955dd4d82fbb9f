// Package floatutils provides utilities for working with floats
package floatutils

// MaxSlice returns the maximum value in a non-empty slice and the
// indices of every element equal to it, in increasing order
func MaxSlice(values []float64) (max float64, indices []int) {
	max, indices = values[0], []int{0}

	for i, value := range values[1:] {
		if value > max {
			max = value
			indices = []int{i + 1}
		} else if value == max {
			indices = append(indices, i+1)
		}
	}
	return
}
