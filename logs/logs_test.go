package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, "info", "json")

	logger.Debug("escondido")
	logger.Info("chamado inserido", slog.String("nm_chamado", "20250001"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "chamado inserido", entry["msg"])
	assert.Equal(t, "20250001", entry["nm_chamado"])
	assert.Equal(t, "chamados", entry["service"])
}

func TestGormLoggerSQLEntry(t *testing.T) {
	var buf bytes.Buffer
	g := GormLogger{Logger: newWithWriter(&buf, "debug", "text")}

	g.Print("sql", "store/chamados.go:70", 3*time.Millisecond, "SELECT * FROM chamados", []interface{}{}, int64(2))
	assert.Contains(t, buf.String(), "SELECT * FROM chamados")
	assert.Contains(t, buf.String(), "rows=2")

	buf.Reset()
	g.Print("log", "conexão reaberta")
	assert.Contains(t, buf.String(), "conexão reaberta")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}
