package logs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"chamados/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New monta o logger da aplicação: stdout + arquivo rotacionado em LogPath.
func New(cfg config.Configuration) *slog.Logger {
	writers := []io.Writer{os.Stdout}
	if cfg.LogPath != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		})
	}
	return newWithWriter(io.MultiWriter(writers...), cfg.LogLevel, cfg.LogFormat)
}

func newWithWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var h slog.Handler
	if strings.EqualFold(format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With(slog.String("service", "chamados"))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GormLogger adapta o slog para a interface de log do gorm (Print(v ...interface{})).
type GormLogger struct {
	Logger *slog.Logger
}

func (g GormLogger) Print(v ...interface{}) {
	if g.Logger == nil || len(v) == 0 {
		return
	}
	// formato do gorm: [tipo, origem, duração?, sql, vars, linhas]
	if kind, ok := v[0].(string); ok && kind == "sql" && len(v) >= 6 {
		g.Logger.Debug("sql",
			slog.Any("source", v[1]),
			slog.Any("duration", v[2]),
			slog.String("query", fmt.Sprint(v[3])),
			slog.Any("rows", v[5]),
		)
		return
	}
	g.Logger.Debug("gorm", slog.String("entry", fmt.Sprint(v...)))
}
