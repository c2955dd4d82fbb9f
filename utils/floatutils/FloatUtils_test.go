package floatutils

import (
	"reflect"
	"testing"
)

func TestMaxSlice(t *testing.T) {
	tests := []struct {
		values  []float64
		max     float64
		indices []int
	}{
		{[]float64{1}, 1, []int{0}},
		{[]float64{0, 0, 0}, 0, []int{0, 1, 2}},
		{[]float64{3, 1, 3}, 3, []int{0, 2}},
		{[]float64{-1, 2, 0, 2}, 2, []int{1, 3}},
	}

	for _, test := range tests {
		max, indices := MaxSlice(test.values)
		if max != test.max || !reflect.DeepEqual(indices, test.indices) {
			t.Errorf("MaxSlice(%v) = (%v, %v), want (%v, %v)", test.values,
				max, indices, test.max, test.indices)
		}
	}
}
