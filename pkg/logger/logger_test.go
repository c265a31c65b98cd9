package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovida/farm-ledger/pkg/logger"
)

// Fuera de development la salida es JSON y cada línea lleva el campo service.
func TestNew_ProduccionEmiteJSONConServicio(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Service: "farm-ledger", Out: &buf})

	log.Info().Str("batch_id", "b-1").Msg("lote creado")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "farm-ledger", line["service"])
	assert.Equal(t, "lote creado", line["message"])
	assert.Equal(t, "b-1", line["batch_id"])
}

// El nivel configurado suprime los eventos por debajo de él.
func TestNew_NivelInfoSuprimeDebug(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Service: "farm-ledger", Out: &buf})

	log.Debug().Msg("ruido")
	assert.Empty(t, buf.String(), "debug no debe emitirse con nivel info")

	log.Warn().Msg("alerta")
	assert.Contains(t, buf.String(), "alerta")
}

// Un nivel desconocido cae en info, no en silencio total.
func TestNew_NivelDesconocidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "verboso", Service: "farm-ledger", Out: &buf})

	log.Info().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}
