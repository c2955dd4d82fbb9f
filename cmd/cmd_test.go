package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestShortcutCommand(t *testing.T) {
	dir := t.TempDir()

	root := RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{
		"shortcut",
		"--no-progress",
		"--log-level", "error",
		"--output-dir", dir,
		"--agents", "QLearning,DynaQ+V2",
		"--runs", "2",
		"--steps", "200",
	})

	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"QLearning", "DynaQ+V2"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("output %q does not report %v", out.String(), name)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "shortcut_maze.html")); err != nil {
		t.Errorf("no chart written: %v", err)
	}
}

func TestShortcutCommandUnknownAgent(t *testing.T) {
	root := RootCommand()
	root.SetArgs([]string{"shortcut", "--no-progress", "--log-level",
		"error", "--output-dir", t.TempDir(), "--agents", "sarsa"})

	if err := root.Execute(); err == nil {
		t.Error("expected an error for an unknown agent")
	}
}

func TestMeanEpisodes(t *testing.T) {
	mean := meanEpisodes([][]float64{{4, 2, 6}, {2, 4}})
	if !floats.Equal(mean, []float64{3, 3}) {
		t.Errorf("mean = %v, want [3 3]", mean)
	}
	if meanEpisodes(nil) != nil {
		t.Error("mean of no runs should be nil")
	}
}
