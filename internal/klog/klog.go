// Package klog is a thin, tagged wrapper around github.com/rs/zerolog,
// generalizing gosv's inline fmt.Printf("[gosv] ...") tag convention
// (main.go, cgroup.go) into a small reusable type so every package in
// this module logs through the same tag-and-writer convention — and
// through the same structured logger the rest of the pack reaches for
// (joeycumines-go-utilpkg's logiface-zerolog/logiface-logrus adapters) —
// instead of each hand-rolling its own prefix over fmt.
package klog

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Logger writes tagged, leveled lines via a zerolog.Logger. The mutex
// guards swapping the underlying zerolog.Logger value itself (SetOutput,
// SetDebug); the swapped-in zerolog.Logger is safe for concurrent use by
// the CPU goroutines calling Debugf once configuration settles.
type Logger struct {
	mu  sync.Mutex
	z   zerolog.Logger
	tag string
}

// New returns a Logger that tags every line with component=tag.
func New(tag string) *Logger {
	z := zerolog.New(os.Stderr).With().Timestamp().Str("component", tag).Logger()
	return &Logger{z: z, tag: tag}
}

// SetOutput redirects the logger, mainly for tests that want to capture
// output instead of writing to stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.z = l.z.Output(w)
}

// SetDebug toggles whether Debugf lines are actually emitted.
func (l *Logger) SetDebug(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lvl := zerolog.InfoLevel
	if on {
		lvl = zerolog.DebugLevel
	}
	l.z = l.z.Level(lvl)
}

func (l *Logger) logger() zerolog.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.z
}

func (l *Logger) Infof(format string, args ...any) {
	l.logger().Info().Msgf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.logger().Error().Msgf(format, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.logger().Debug().Msgf(format, args...)
}
