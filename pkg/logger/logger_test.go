package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Abastecimiento-api/pkg/logger"
)

func TestNew_JSONConServicioYNivel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Service: "abastecimiento-api", Out: &buf})

	l.Info().Msg("descartado")
	l.Warn().Str("topic", "morning_briefing").Msg("narrativa no disponible")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1, "info no debe emitirse con nivel warn")

	var evt map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &evt))
	assert.Equal(t, "warn", evt["level"])
	assert.Equal(t, "abastecimiento-api", evt["service"])
	assert.Equal(t, "morning_briefing", evt["topic"])
}

func TestNew_RedirigeLoggerGlobal(t *testing.T) {
	var buf bytes.Buffer
	logger.New(logger.Config{Env: "production", Level: "nivel-desconocido", Out: &buf})

	log.Info().Msg("desde el global")
	assert.Contains(t, buf.String(), "desde el global", "nivel desconocido equivale a info")
}
