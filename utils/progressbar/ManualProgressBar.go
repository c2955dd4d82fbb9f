// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// ManualProgressBar implements progress bar functionality that must
// be manually managed. That is, the Display() function must be called
// whenever an updated progress bar should be written.
//
// The bar is written as a single line to an io.Writer. Writing to a
// github.com/gosuri/uilive Writer redraws the bar in place.
type ManualProgressBar struct {
	width           float64
	maxProgress     float64
	currentProgress float64
	label           string
	out             io.Writer
	startTime       time.Time

	mu sync.Mutex // Guards currentProgress
}

// NewManualProgressBar returns a new ManualProgressBar which reaches
// 100% after max calls to Increment
func NewManualProgressBar(label string, width, max int,
	out io.Writer) *ManualProgressBar {
	return &ManualProgressBar{
		width:       float64(width),
		maxProgress: float64(max),
		label:       label,
		out:         out,
		startTime:   time.Now(),
	}
}

// Increment increments the interal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ManualProgressBar) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// String returns the current progress bar
func (p *ManualProgressBar) String() string {
	p.mu.Lock()
	fraction := 1.0
	if p.maxProgress > 0 {
		fraction = p.currentProgress / p.maxProgress
	}
	p.mu.Unlock()

	var bar strings.Builder
	bar.WriteString(p.label)
	bar.WriteString(" |")

	currentProg := fraction * p.width
	for i := 0.0; i < currentProg; i++ {
		bar.WriteString("█")
	}
	for i := currentProg; i < p.width; i++ {
		bar.WriteString(" ")
	}
	fmt.Fprintf(&bar, "| [%.2f%% | elapsed: %v]", fraction*100,
		time.Since(p.startTime).Truncate(time.Second))

	return bar.String()
}

// Display writes the progress bar to its writer
func (p *ManualProgressBar) Display() error {
	_, err := fmt.Fprintln(p.out, p.String())
	return err
}
