package progressbar

import (
	"bytes"
	"strings"
	"testing"
)

func TestManualProgressBar(t *testing.T) {
	var out bytes.Buffer
	p := NewManualProgressBar("runs", 10, 4, &out)

	for i := 0; i < 6; i++ {
		p.Increment()
	}
	if err := p.Display(); err != nil {
		t.Fatal(err)
	}

	line := out.String()
	if !strings.HasPrefix(line, "runs |") {
		t.Errorf("bar %q does not start with its label", line)
	}
	if !strings.Contains(line, "100.00%") {
		t.Errorf("bar %q should be complete and capped at 100%%", line)
	}
	if strings.Count(line, "█") != 10 {
		t.Errorf("bar %q should be full", line)
	}
}
