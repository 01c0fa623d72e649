// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

// Package log provides the small leveled-logging facade the parser uses to
// report recoverable conditions (anomalies, skipped TREs, malformed fields)
// without aborting a parse. It is deliberately minimal: a Logger is anything
// that can accept a level and a flat slice of key/value pairs, and Helper
// layers the printf-style convenience methods callers actually reach for.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is a logging severity.
type Level int

// Recognized levels, lowest to highest severity.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the minimal sink every log destination implements.
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

// stdLogger writes level-prefixed, timestamped lines to an io.Writer.
type stdLogger struct {
	mu  sync.Mutex
	out io.Writer
}

// NewStdLogger returns a Logger that writes to w.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{out: w}
}

func (s *stdLogger) Log(level Level, keyvals ...interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := time.Now().Format(time.RFC3339)
	_, err := fmt.Fprintf(s.out, "%s %-5s %s\n", ts, level, joinPairs(keyvals))
	return err
}

func joinPairs(keyvals []interface{}) string {
	if len(keyvals) == 0 {
		return ""
	}
	out := ""
	for i := 0; i < len(keyvals); i += 2 {
		if i > 0 {
			out += " "
		}
		if i+1 < len(keyvals) {
			out += fmt.Sprintf("%v=%v", keyvals[i], keyvals[i+1])
		} else {
			out += fmt.Sprintf("%v", keyvals[i])
		}
	}
	return out
}

// filter wraps a Logger and drops any record below its configured level.
type filter struct {
	next Logger
	min  Level
}

// FilterOption configures a filter built by NewFilter.
type FilterOption func(*filter)

// FilterLevel sets the minimum level the filter lets through.
func FilterLevel(l Level) FilterOption {
	return func(f *filter) { f.min = l }
}

// NewFilter wraps next, applying opts to decide what passes through.
func NewFilter(next Logger, opts ...FilterOption) Logger {
	f := &filter{next: next, min: LevelInfo}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filter) Log(level Level, keyvals ...interface{}) error {
	if level < f.min {
		return nil
	}
	return f.next.Log(level, keyvals...)
}

// Helper layers printf-style convenience methods over a Logger.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

// Debugf logs at LevelDebug.
func (h *Helper) Debugf(format string, args ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	_ = h.logger.Log(LevelDebug, "msg", fmt.Sprintf(format, args...))
}

// Infof logs at LevelInfo.
func (h *Helper) Infof(format string, args ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	_ = h.logger.Log(LevelInfo, "msg", fmt.Sprintf(format, args...))
}

// Warnf logs at LevelWarn.
func (h *Helper) Warnf(format string, args ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	_ = h.logger.Log(LevelWarn, "msg", fmt.Sprintf(format, args...))
}

// Errorf logs at LevelError.
func (h *Helper) Errorf(format string, args ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	_ = h.logger.Log(LevelError, "msg", fmt.Sprintf(format, args...))
}

// Default returns a Helper writing to stderr at LevelWarn and above, the
// same default saferwall/pe.New falls back to when no *Options.Logger is
// supplied.
func Default() *Helper {
	return NewHelper(NewFilter(NewStdLogger(os.Stderr), FilterLevel(LevelWarn)))
}
