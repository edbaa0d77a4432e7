// Package envutil reads typed values from the process environment. Every
// getter falls back to def when the variable is unset, blank or unparsable.
package envutil

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func String(name, def string) string {
	if v, ok := lookup(name); ok {
		return v
	}
	return def
}

func Int(name string, def int) int {
	v, ok := lookup(name)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func Float(name string, def float64) float64 {
	v, ok := lookup(name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// Bool understands strconv.ParseBool values plus yes/no and on/off.
func Bool(name string, def bool) bool {
	v, ok := lookup(name)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Duration accepts Go duration syntax ("90s", "5m") or a bare number of
// seconds.
func Duration(name string, def time.Duration) time.Duration {
	v, ok := lookup(name)
	if !ok {
		return def
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// List splits a comma-separated value, dropping blank entries.
func List(name string, def []string) []string {
	v, ok := lookup(name)
	if !ok {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
