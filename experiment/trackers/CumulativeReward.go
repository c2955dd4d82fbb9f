package trackers

import (
	"fmt"

	ts "github.com/samuelfneumann/tabular/timestep"
)

// CumulativeReward tracks the running sum of rewards over all tracked
// timesteps, regardless of episode boundaries. After n calls to Track,
// Data()[i] is the sum of the rewards of the first i+1 timesteps.
type CumulativeReward struct {
	data     []float64
	filename string
}

// NewCumulativeReward returns a new CumulativeReward Tracker which
// saves its data at filename. The capacity is a hint of the number of
// timesteps that will be tracked.
func NewCumulativeReward(filename string, capacity int) *CumulativeReward {
	return &CumulativeReward{
		data:     make([]float64, 0, capacity),
		filename: filename,
	}
}

// Track adds the reward of t to the running sum
func (c *CumulativeReward) Track(t ts.TimeStep) {
	total := t.Reward
	if n := len(c.data); n > 0 {
		total += c.data[n-1]
	}
	c.data = append(c.data, total)
}

// Data returns the tracked running sums. The returned slice is shared.
func (c *CumulativeReward) Data() []float64 {
	return c.data
}

// Save saves the data tracked by the CumulativeReward Tracker to disk
func (c *CumulativeReward) Save() error {
	if err := save(c.filename, c.data); err != nil {
		return fmt.Errorf("save: %v", err)
	}
	return nil
}
