package scheduler

import (
	"fmt"

	"github.com/zagzy8776/realssa-news-agg/internal/logging"
)

// cronLogger adapts cron's key/value logger to logging.Logger. Cron's info
// chatter goes to debug.
type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, kvFields(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := kvFields(keysAndValues)
	if err != nil {
		fields["error"] = err.Error()
	}
	l.logger.Error("cron: "+msg, fields)
}

func kvFields(keysAndValues []interface{}) logging.Fields {
	fields := logging.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
