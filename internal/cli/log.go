package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger that stamps each line with HH:MM:SS.cc.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logElapsed logs msg at info level with the time since start appended,
// rounded to the millisecond: "Built 3 cells (12ms)".
func logElapsed(l *log.Logger, start time.Time, msg string) {
	l.Info(msg, "took", time.Since(start).Round(time.Millisecond))
}
