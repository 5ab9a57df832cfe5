package log

import (
	"io"
	"os"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

var (
	mu sync.RWMutex
	zl = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

func init() {
	zerolog.TimestampFieldName = "ts"
	zerolog.ErrorFieldName = "err"
}

// Setup points the application logger at w. Development gets the console
// writer, everything else one JSON object per line.
func Setup(env, level string, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	if env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	mu.Lock()
	zl = zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
	mu.Unlock()
}

// SetOutput swaps the sink keeping JSON output; tests use it to capture entries.
func SetOutput(w io.Writer) {
	mu.Lock()
	zl = zerolog.New(w).With().Timestamp().Logger()
	mu.Unlock()
}

// Writer exposes the current sink for middleware that writes its own lines.
func Writer() io.Writer {
	return logWriter{}
}

type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	mu.RLock()
	l := zl
	mu.RUnlock()
	l.Log().Str("level", "info").Str("action", "http.access").Msg(string(trimNL(p)))
	return len(p), nil
}

func trimNL(p []byte) []byte {
	for len(p) > 0 && (p[len(p)-1] == '\n' || p[len(p)-1] == '\r') {
		p = p[:len(p)-1]
	}
	return p
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func write(level zerolog.Level, lvlName string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	mu.RLock()
	l := zl
	mu.RUnlock()

	if level < l.GetLevel() {
		return
	}
	e := l.Log().Str("level", lvlName).Str("action", action)
	if c != nil {
		e = e.Str("ip", c.IP()).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode())
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e = e.Str("req_id", rid)
		}
		if aid, ok := c.Locals("admin_id").(int64); ok && aid > 0 {
			e = e.Int64("admin_id", aid)
		}
	}
	if err != nil {
		e = e.Err(err)
	}
	if len(fields) > 0 {
		e = e.Interface("fields", fields)
	}
	e.Send()
}

// Plain logs outside of a request (startup, provisioning).
func Plain(action string, fields map[string]any) { write(zerolog.InfoLevel, "info", nil, action, nil, fields) }

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zerolog.InfoLevel, "info", c, action, nil, fields)
}
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(zerolog.InfoLevel, "audit", c, action, nil, fields)
}
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zerolog.WarnLevel, "warn", c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zerolog.ErrorLevel, "error", c, action, err, fields)
}
func Fatal(action string, err error) {
	write(zerolog.ErrorLevel, "fatal", nil, action, err, nil)
	os.Exit(1)
}
