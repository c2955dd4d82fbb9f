package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	log, err := New("debug", JSON, path)
	if err != nil {
		t.Fatal(err)
	}
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", log.GetLevel())
	}

	log.WithField("run", 3).Debug("run finished")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"run":3`) {
		t.Errorf("log file %q does not hold the entry", data)
	}
}

func TestClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	log, err := New("info", Text, path)
	if err != nil {
		t.Fatal(err)
	}
	log.Info("before close")

	file, ok := log.Out.(*os.File)
	if !ok {
		t.Fatalf("output is %T, want *os.File", log.Out)
	}
	if err := Close(log); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := file.Close(); err == nil {
		t.Error("log file was left open")
	}

	log.Info("after close")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "before close") ||
		strings.Contains(string(data), "after close") {
		t.Errorf("log file holds %q", data)
	}

	stderr, err := New("info", Text, "stderr")
	if err != nil {
		t.Fatal(err)
	}
	if err := Close(stderr); err != nil || stderr.Out != os.Stderr {
		t.Errorf("closing a stderr logger: err = %v, out = %v", err,
			stderr.Out)
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New("loud", Text, "stderr"); err == nil {
		t.Error("expected an error for an unknown level")
	}
	if _, err := New("info", "xml", "stderr"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Error("OrDiscard(nil) returned nil")
	}

	l := logrus.New()
	if OrDiscard(l) != logrus.FieldLogger(l) {
		t.Error("OrDiscard replaced a non-nil logger")
	}
}
