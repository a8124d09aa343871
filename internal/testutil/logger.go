package testutil

import (
	"io"

	"github.com/zagzy8776/realssa-news-agg/internal/logging"
)

// NullLogger returns a logger that discards its output
func NullLogger() *logging.Logger {
	l := logging.New(logging.LevelError)
	l.SetOutput(io.Discard)
	return l
}
