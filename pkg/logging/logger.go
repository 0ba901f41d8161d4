// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"fmt"
	"io"
	"maps"
	"os"
	"sync"
	"time"
)

var _ Logger = (*DefaultLogger)(nil)

// LoggerOptions configures NewLogger.
type LoggerOptions struct {
	Level LogLevel
	// Format picks a built-in formatter when Formatter is nil.
	Format    LogFormat
	Formatter Formatter
	// Output defaults to os.Stderr.
	Output io.Writer
	// TimeFormat is passed to the built-in formatter. Empty omits the
	// timestamp from text output.
	TimeFormat string
}

// DefaultLoggerOptions returns info level text output on stderr.
func DefaultLoggerOptions() LoggerOptions {
	return LoggerOptions{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// sink is shared by a DefaultLogger and every logger derived from it
// with WithField, so their writes do not interleave.
type sink struct {
	mu        sync.Mutex
	out       io.Writer
	formatter Formatter
}

// DefaultLogger is the built-in Logger.
type DefaultLogger struct {
	sink   *sink
	level  LogLevel
	fields map[string]any
	now    func() time.Time
}

// NewLogger builds a DefaultLogger from opts.
func NewLogger(opts LoggerOptions) *DefaultLogger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	formatter := opts.Formatter
	if formatter == nil {
		switch opts.Format {
		case FormatJSON:
			formatter = &JSONFormatter{TimeFormat: opts.TimeFormat}
		default:
			formatter = &TextFormatter{TimeFormat: opts.TimeFormat}
		}
	}
	return &DefaultLogger{
		sink:  &sink{out: out, formatter: formatter},
		level: opts.Level,
		now:   time.Now,
	}
}

func (l *DefaultLogger) GetLevel() LogLevel { return l.level }

func (l *DefaultLogger) Enabled(level LogLevel) bool {
	return level >= l.level && level < LevelSilent
}

func (l *DefaultLogger) WithField(key string, value any) Logger {
	return l.WithFields(map[string]any{key: value})
}

func (l *DefaultLogger) WithFields(fields map[string]any) Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(merged, l.fields)
	maps.Copy(merged, fields)
	return &DefaultLogger{
		sink:   l.sink,
		level:  l.level,
		fields: merged,
		now:    l.now,
	}
}

func (l *DefaultLogger) Debug(format string, args ...any) { l.log(LevelDebug, format, args) }
func (l *DefaultLogger) Info(format string, args ...any)  { l.log(LevelInfo, format, args) }
func (l *DefaultLogger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args) }
func (l *DefaultLogger) Error(format string, args ...any) { l.log(LevelError, format, args) }

func (l *DefaultLogger) log(level LogLevel, format string, args []any) {
	if !l.Enabled(level) {
		return
	}

	entry := LogEntry{
		Timestamp: l.now(),
		Level:     level,
		Message:   fmt.Sprintf(format, args...),
		Fields:    l.fields,
	}

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	data, err := l.sink.formatter.Format(entry)
	if err != nil {
		fmt.Fprintf(l.sink.out, "logging error: %v\n", err)
		return
	}
	_, _ = l.sink.out.Write(data)
}
