// Package logger constructs the logrus loggers used throughout the module
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Formats that a logger can write in
const (
	JSON string = "json"
	Text string = "text"
)

// New returns a new logger writing at level in the given format to out.
// An out of "stdout" or "stderr" writes to the respective stream, and
// any other value is treated as a file path to append to.
func New(level, format, out string) (*logrus.Logger, error) {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}
	log.SetLevel(lvl)

	switch format {
	case JSON:
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	case Text:
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	default:
		return nil, fmt.Errorf("new: no such log format %q", format)
	}

	switch out {
	case "stdout":
		log.SetOutput(os.Stdout)
	case "stderr", "":
		log.SetOutput(os.Stderr)
	default:
		file, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_APPEND,
			0o666)
		if err != nil {
			return nil, fmt.Errorf("new: could not open log file: %v", err)
		}
		log.SetOutput(file)
	}

	return log, nil
}

// Close closes the file that log writes to and discards anything
// logged afterwards. Loggers writing to stdout or stderr are left alone.
func Close(log *logrus.Logger) error {
	if log.Out == os.Stdout || log.Out == os.Stderr {
		return nil
	}
	closer, ok := log.Out.(io.Closer)
	if !ok {
		return nil
	}

	log.SetOutput(io.Discard)
	if err := closer.Close(); err != nil {
		return fmt.Errorf("close: %v", err)
	}
	return nil
}

// Discard returns a logger that drops everything written to it
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// OrDiscard returns l, or a discarding logger if l is nil
func OrDiscard(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return Discard()
	}
	return l
}
