// Package logfields holds the canonical slog attribute names used by md2site.
package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyEvent      = "event"
	KeySection    = "section"
	KeyFile       = "file"
	KeyEngine     = "engine"
	KeyPages      = "pages"
	KeySkipped    = "skipped"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func Path(p string) slog.Attr      { return slog.String(KeyPath, p) }
func Event(op string) slog.Attr    { return slog.String(KeyEvent, op) }
func Section(key string) slog.Attr { return slog.String(KeySection, key) }
func File(name string) slog.Attr   { return slog.String(KeyFile, name) }
func Engine(name string) slog.Attr { return slog.String(KeyEngine, name) }
func Pages(n int) slog.Attr        { return slog.Int(KeyPages, n) }
func Skipped(n int) slog.Attr      { return slog.Int(KeySkipped, n) }

// Duration reports d in fractional milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
