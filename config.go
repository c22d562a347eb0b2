package dicom

import (
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/odincare/dcmview/dicomlog"
	"github.com/sirupsen/logrus"
)

// Config is the process-wide configuration, read once from the environment.
type Config struct {
	// LogLevel is one of "debug", "info", "warn", "error", "fatal", "none"
	// (DCMVIEW_LOGLEVEL).
	LogLevel string
	// Workers bounds concurrent file decodes in ReadFiles (DCMVIEW_WORKERS).
	Workers int
	// Strict enables ReadOptions.Strict for file-level reads (DCMVIEW_STRICTMODE).
	Strict bool
	// MaxFileSize rejects larger files before reading them; 0 disables the
	// check (DCMVIEW_MAXFILESIZE, bytes).
	MaxFileSize int64

	set bool
}

var (
	configMu sync.Mutex
	config   Config
)

func intFromEnvDefault(key string, def int) int {
	if s, ok := os.LookupEnv(key); ok {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
		logrus.Warnf("dicom: ignoring invalid %s=%q", key, s)
	}
	return def
}

func boolFromEnvDefault(key string, def bool) bool {
	if s, ok := os.LookupEnv(key); ok {
		if v, err := strconv.ParseBool(s); err == nil {
			return v
		}
		logrus.Warnf("dicom: ignoring invalid %s=%q", key, s)
	}
	return def
}

func strFromEnvDefault(key string, def string) string {
	if s, ok := os.LookupEnv(key); ok {
		return s
	}
	return def
}

// GetConfig returns the application configuration.
// Will set from environment if not already set.
func GetConfig() Config {
	configMu.Lock()
	defer configMu.Unlock()
	if !config.set {
		config.LogLevel = strings.ToLower(strFromEnvDefault("DCMVIEW_LOGLEVEL", "info"))
		config.Workers = intFromEnvDefault("DCMVIEW_WORKERS", runtime.NumCPU())
		config.Strict = boolFromEnvDefault("DCMVIEW_STRICTMODE", false)
		config.MaxFileSize = int64(intFromEnvDefault("DCMVIEW_MAXFILESIZE", 0))
		if err := dicomlog.Configure(config.LogLevel); err != nil {
			logrus.Warnf("dicom: %v, using info", err)
			config.LogLevel = "info"
			_ = dicomlog.Configure(config.LogLevel)
		}
		if config.Workers < 1 {
			config.Workers = 1
		}
		config.set = true
	}
	return config
}

// OverrideConfig overrides the configuration parsed from environment with the one provided
func OverrideConfig(newconfig Config) {
	configMu.Lock()
	defer configMu.Unlock()
	newconfig.set = true // to prevent being reverted with subsequent calls to `GetConfig`
	if newconfig.Workers < 1 {
		newconfig.Workers = 1
	}
	if err := dicomlog.Configure(newconfig.LogLevel); err != nil {
		logrus.Warnf("dicom: %v, using info", err)
		newconfig.LogLevel = "info"
		_ = dicomlog.Configure(newconfig.LogLevel)
	}
	config = newconfig
}

// resetConfig makes the next GetConfig read the environment again.
func resetConfig() {
	configMu.Lock()
	config = Config{}
	configMu.Unlock()
}
