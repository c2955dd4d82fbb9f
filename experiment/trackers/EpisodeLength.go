package trackers

import (
	"fmt"

	"github.com/samuelfneumann/tabular/timestep"
)

// EpisodeLength tracks and saves the lengths of episodes in an
// experiment, measured in timesteps between Last timesteps. In a
// continuing task such as the shortcut maze, this is the number of
// steps the agent took to reach the goal each time.
//
// Note that an episode must finish for this Tracker to save its data.
// If the last episode in an experiment does not finish, that episode's
// length will not be saved.
type EpisodeLength struct {
	lastEnd        int
	episodeLengths []float64
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength Tracker which will save
// its data at the specified location filename
func NewEpisodeLength(filename string) *EpisodeLength {
	return &EpisodeLength{filename: filename}
}

// Track caches the episode length if t is the last timestep of an
// episode. Timesteps must be numbered by the experiment.
func (e *EpisodeLength) Track(t timestep.TimeStep) {
	if t.Last() {
		e.episodeLengths = append(e.episodeLengths,
			float64(t.Number-e.lastEnd))
		e.lastEnd = t.Number
	}
}

// Data returns the tracked episode lengths. The returned slice is
// shared.
func (e *EpisodeLength) Data() []float64 {
	return e.episodeLengths
}

// Save saves the data tracked by the EpisodeLength Tracker to disk.
func (e *EpisodeLength) Save() error {
	if err := save(e.filename, e.episodeLengths); err != nil {
		return fmt.Errorf("save: %v", err)
	}
	return nil
}
