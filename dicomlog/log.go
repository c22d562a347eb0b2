package dicomlog

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// level sets log verbosity. The larger the value, the more verbose.  Setting it
// to -1 disables logging completely.
var level = int32(0)

// SetLevel sets log verbosity. The larger the value, the more verbose. Setting
// it to -1 disables logging completely. Thread safe.
func SetLevel(l int) {
	atomic.StoreInt32(&level, int32(l))
}

// Level returns the current log level. The larger the value, the more verbose.
// Thread safe.
func Level() int {
	return int(atomic.LoadInt32(&level))
}

// Vprintf is shorthand for "if level >= Level { logrus.Debugf(...) }".
func Vprintf(l int, format string, args ...interface{}) {
	if Level() >= l {
		logrus.Debugf(format, args...)
	}
}

// Configure maps a level name ("debug", "info", "warn", "error", "fatal",
// "none") or a numeric verbosity ("0".."5") onto the logrus level and the
// decoder verbosity.
func Configure(name string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug", "5":
		logrus.SetLevel(logrus.DebugLevel)
		SetLevel(2)
	case "info", "", "4":
		logrus.SetLevel(logrus.InfoLevel)
		SetLevel(0)
	case "warn", "warning", "3":
		logrus.SetLevel(logrus.WarnLevel)
		SetLevel(0)
	case "error", "2":
		logrus.SetLevel(logrus.ErrorLevel)
		SetLevel(0)
	case "fatal", "1":
		logrus.SetLevel(logrus.FatalLevel)
		SetLevel(-1)
	case "none", "disabled", "0":
		logrus.SetLevel(logrus.PanicLevel)
		SetLevel(-1)
	default:
		return fmt.Errorf("dicomlog: unknown log level %q", name)
	}
	return nil
}
