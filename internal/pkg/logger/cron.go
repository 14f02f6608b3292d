package logger

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// CronAdapter exposes a Logger as a cron.Logger so that cron's job wrappers
// (Recover, SkipIfStillRunning) report through the application log.
func CronAdapter(l Logger) cron.Logger {
	return cronLogger{log: l}
}

type cronLogger struct {
	log Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Debug(formatKV("cron: "+msg, keysAndValues))
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.log.Error(formatKV("cron: "+msg, keysAndValues), err)
}

func formatKV(msg string, kv []interface{}) string {
	if len(kv) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i < len(kv); i += 2 {
		if i+1 < len(kv) {
			fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
		} else {
			fmt.Fprintf(&b, " %v", kv[i])
		}
	}
	return b.String()
}
