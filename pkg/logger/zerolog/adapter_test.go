package zerolog

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/raykavin/machart/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json output with fields", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New(Config{Level: "debug", JSON: true, Output: &buf})
		require.NoError(t, err)

		log.WithField("scenario", "golden").Info("frame built")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "info", entry["level"])
		assert.Equal(t, "golden", entry["scenario"])
		assert.Equal(t, "frame built", entry["message"])
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New(Config{Level: "warn", JSON: true, Output: &buf})
		require.NoError(t, err)

		log.Debug("hidden")
		log.Info("hidden")
		assert.Zero(t, buf.Len())

		log.WithError(errors.New("boom")).Error("visible")
		assert.Contains(t, buf.String(), "boom")
		assert.Equal(t, logger.WarnLevel, log.GetLevel())
	})

	t.Run("set level", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New(Config{Level: "error", JSON: true, Output: &buf})
		require.NoError(t, err)

		log.SetLevel(logger.DebugLevel)
		log.Debugf("sma(%d)", 20)
		assert.Contains(t, buf.String(), "sma(20)")
	})

	t.Run("console output", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New(Config{Level: "info", Output: &buf})
		require.NoError(t, err)

		log.Info("console")
		assert.Contains(t, buf.String(), "console")
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New(Config{Level: "loud"})
		require.Error(t, err)
	})
}
