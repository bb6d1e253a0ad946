package machart

import (
	"os"
	"strconv"

	"github.com/raykavin/machart/pkg/logger"
	"github.com/raykavin/machart/pkg/logger/zerolog"
)

const (
	defaultLogLevel      = "info"
	defaultLogTimeFormat = "2006-01-02 15:04:05"
	defaultLogColored    = "true"
	defaultLogJSON       = "false"
)

// Environment variable names
const (
	envLogLevel      = "MACHART_LOG_LEVEL"
	envLogTimeFormat = "MACHART_LOG_TIME_FORMAT"
	envLogColor      = "MACHART_LOG_COLOR"
	envLogJSON       = "MACHART_LOG_JSON"
)

// DefaultLog is the process wide logger, configured from MACHART_LOG_* variables.
var DefaultLog logger.Logger

func init() {
	log, err := logFromEnv()
	if err != nil {
		panic(err)
	}
	DefaultLog = log
}

func logFromEnv() (logger.Logger, error) {
	colored, err := parseBoolEnv(envLogColor, defaultLogColored)
	if err != nil {
		return nil, err
	}

	json, err := parseBoolEnv(envLogJSON, defaultLogJSON)
	if err != nil {
		return nil, err
	}

	return zerolog.New(zerolog.Config{
		Level:      getEnvWithDefault(envLogLevel, defaultLogLevel),
		TimeFormat: getEnvWithDefault(envLogTimeFormat, defaultLogTimeFormat),
		Colored:    colored,
		JSON:       json,
		Output:     os.Stderr,
	})
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key, defaultValue string) (bool, error) {
	return strconv.ParseBool(getEnvWithDefault(key, defaultValue))
}
