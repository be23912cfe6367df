package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-planta/pkg/logger"
)

func TestNew_CampoServiceEnCadaEvento(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "info", Service: "inventario-planta"})

	var buf bytes.Buffer
	zl := l.Zerolog().Output(&buf)
	zl.Info().Str("op", "check-in").Msg("hola")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "inventario-planta", event["service"])
	assert.Equal(t, "check-in", event["op"])
	assert.Equal(t, "info", event["level"])
	assert.Contains(t, event, "time")
}

func TestNew_RespetaElNivel(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "warn", Service: "inventario-planta"})

	var buf bytes.Buffer
	zl := l.Zerolog().Output(&buf)
	zl.Info().Msg("filtrado")
	assert.Zero(t, buf.Len(), "info queda por debajo del nivel warn")

	zl.Warn().Msg("visible")
	assert.NotZero(t, buf.Len())
}

func TestNew_NivelInvalidoCaeEnInfo(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "no-es-un-nivel"})

	var buf bytes.Buffer
	zl := l.Zerolog().Output(&buf)
	zl.Debug().Msg("filtrado")
	assert.Zero(t, buf.Len())
	zl.Info().Msg("visible")
	assert.NotZero(t, buf.Len())
}
