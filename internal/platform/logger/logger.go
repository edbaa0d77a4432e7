// Package logger wraps a zap SugaredLogger with key/value redaction so
// connection strings and credentials never reach the log sink.
package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	SugaredLogger *zap.SugaredLogger
	redact        bool
	hashSalt      string
}

// New builds a logger for mode ("prod"/"production" or anything else for
// development). LOG_LEVEL overrides the default debug level,
// LOG_REDACTION_ENABLED=false turns redaction off and LOG_HASH_SALT salts
// hashed identifiers.
func New(mode string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(os.Getenv("LOG_LEVEL")))
	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{
		SugaredLogger: zapLogger.Sugar(),
		redact:        redactionEnabled(os.Getenv("LOG_REDACTION_ENABLED")),
		hashSalt:      strings.TrimSpace(os.Getenv("LOG_HASH_SALT")),
	}, nil
}

// FromZap wraps an existing zap logger. Redaction is on.
func FromZap(z *zap.Logger) *Logger {
	return &Logger{SugaredLogger: z.Sugar(), redact: true}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return FromZap(zap.NewNop())
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Debugw(msg, l.sanitizeKVs(keysAndValues)...)
}
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Infow(msg, l.sanitizeKVs(keysAndValues)...)
}
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Warnw(msg, l.sanitizeKVs(keysAndValues)...)
}
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Errorw(msg, l.sanitizeKVs(keysAndValues)...)
}
func (l *Logger) Fatal(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Fatalw(msg, l.sanitizeKVs(keysAndValues)...)
}
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{
		SugaredLogger: l.SugaredLogger.With(l.sanitizeKVs(keysAndValues)...),
		redact:        l.redact,
		hashSalt:      l.hashSalt,
	}
}

func parseLevel(raw string) zapcore.Level {
	lvl := zap.DebugLevel
	if raw = strings.TrimSpace(raw); raw != "" {
		if err := lvl.Set(raw); err != nil {
			return zap.DebugLevel
		}
	}
	return lvl
}

func redactionEnabled(raw string) bool {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

func (l *Logger) sanitizeKVs(kv []interface{}) []interface{} {
	if len(kv) == 0 || !l.redact {
		return kv
	}
	out := make([]interface{}, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key := toString(kv[i])
		out = append(out, key, l.sanitizeValue(strings.ToLower(key), kv[i+1]))
	}
	return out
}

func (l *Logger) sanitizeValue(key string, val interface{}) interface{} {
	switch {
	case isRedactKey(key):
		return "[REDACTED]"
	case isHashKey(key):
		return l.hashValue(val)
	}
	if m, ok := val.(map[string]interface{}); ok {
		out := make(map[string]interface{}, len(m))
		for k, v := range m {
			out[k] = l.sanitizeValue(strings.ToLower(k), v)
		}
		return out
	}
	if s, ok := val.(string); ok && looksLikeDSN(s) {
		return "[REDACTED]"
	}
	return val
}

func isRedactKey(key string) bool {
	for _, marker := range []string{"password", "secret", "token", "authorization", "dsn", "cookie"} {
		if strings.Contains(key, marker) {
			return true
		}
	}
	return false
}

// Author ids identify people; they are logged as salted hashes.
func isHashKey(key string) bool {
	return strings.Contains(key, "author_id")
}

func (l *Logger) hashValue(val interface{}) string {
	raw := toString(val)
	if raw == "" {
		return ""
	}
	h := sha256.New()
	_, _ = h.Write([]byte(l.hashSalt))
	_, _ = h.Write([]byte(raw))
	return "hash:" + hex.EncodeToString(h.Sum(nil))[:12]
}

// looksLikeDSN catches connection strings with inline credentials, in URL
// form or key=value form.
func looksLikeDSN(s string) bool {
	if strings.Contains(s, "://") && strings.Contains(s, "@") {
		return true
	}
	return strings.Contains(s, "password=")
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
