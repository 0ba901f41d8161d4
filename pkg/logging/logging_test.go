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
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

func newBufferLogger(level LogLevel, format LogFormat) (*DefaultLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(LoggerOptions{Level: level, Format: format, Output: &buf})
	l.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l, &buf
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" INFO ", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"Error", LevelError, false},
		{"off", LevelSilent, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseLogFormat(t *testing.T) {
	for in, want := range map[string]LogFormat{"text": FormatText, "plain": FormatText, "JSON": FormatJSON} {
		got, err := ParseLogFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseLogFormat(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseLogFormat("xml"); err == nil {
		t.Error("ParseLogFormat(\"xml\") error = nil")
	}
}

func TestLevelStrings(t *testing.T) {
	if got := LogLevel(42).String(); got != "LogLevel(42)" {
		t.Errorf("String() = %q, want %q", got, "LogLevel(42)")
	}
	if got := LogFormat(9).String(); got != "LogFormat(9)" {
		t.Errorf("String() = %q, want %q", got, "LogFormat(9)")
	}
	for level, name := range levelNames {
		parsed, err := ParseLogLevel(level.String())
		if err != nil || parsed != level {
			t.Errorf("ParseLogLevel(%q) = %v, %v, want %v", name, parsed, err, level)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(LevelWarn, FormatText)

	l.Debug("debug")
	l.Info("info")
	l.Warn("warn %d", 1)
	l.Error("error %s", "two")

	want := "WARN  warn 1\nERROR error two\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestSilent(t *testing.T) {
	l, buf := newBufferLogger(LevelSilent, FormatText)
	l.Error("dropped")
	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
	if l.Enabled(LevelSilent) {
		t.Error("Enabled(LevelSilent) = true")
	}
}

func TestTextFormatter_Fields(t *testing.T) {
	l, buf := newBufferLogger(LevelDebug, FormatText)

	l.WithFields(map[string]any{"path": "a b.bin", "algorithm": "sha256", "bytes": 42}).Info("hashed")

	want := `INFO  hashed algorithm=sha256 bytes=42 path="a b.bin"` + "\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestTextFormatter_Time(t *testing.T) {
	f := &TextFormatter{TimeFormat: time.RFC3339}
	got, err := f.Format(LogEntry{
		Timestamp: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:     LevelDebug,
		Message:   "m",
	})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if want := "2025-01-02T03:04:05Z DEBUG m\n"; string(got) != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestWithField_DoesNotModifyParent(t *testing.T) {
	l, buf := newBufferLogger(LevelInfo, FormatText)

	child := l.WithField("file", "x")
	child.WithField("shard", 1).Info("grandchild")
	l.Info("parent")
	child.Info("child")

	want := "INFO  grandchild file=x shard=1\nINFO  parent\nINFO  child file=x\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestJSONFormatter(t *testing.T) {
	l, buf := newBufferLogger(LevelInfo, FormatJSON)
	l.WithField("algorithm", "md5").Info("done in %dms", 3)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v; output %q", err, buf.String())
	}
	if got["level"] != "info" || got["msg"] != "done in 3ms" || got["time"] != "2025-01-02T03:04:05Z" {
		t.Errorf("entry = %v", got)
	}
	fields, _ := got["fields"].(map[string]any)
	if fields["algorithm"] != "md5" {
		t.Errorf("fields = %v, want algorithm=md5", got["fields"])
	}
}

func TestJSONFormatter_UnencodableField(t *testing.T) {
	f := &JSONFormatter{}
	out, err := f.Format(LogEntry{Level: LevelWarn, Message: "m", Fields: map[string]any{"ch": make(chan int)}})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(string(out), `"msg":"m"`) || !strings.Contains(string(out), `"error"`) {
		t.Errorf("Format() = %q, want message and error field", out)
	}
}

func TestDefaults(t *testing.T) {
	opts := DefaultLoggerOptions()
	if opts.Output != os.Stderr || opts.Level != LevelInfo || opts.Format != FormatText {
		t.Errorf("DefaultLoggerOptions() = %+v", opts)
	}

	if EnsureLogger(nil) == nil {
		t.Fatal("EnsureLogger(nil) = nil")
	}
	l := Discard()
	if EnsureLogger(l) != l {
		t.Error("EnsureLogger(l) did not return l")
	}
	if l.Enabled(LevelError) {
		t.Error("Discard().Enabled(LevelError) = true")
	}
}

func TestConcurrentWrites(t *testing.T) {
	l, buf := newBufferLogger(LevelInfo, FormatText)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.WithField("worker", i).Info("line")
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("got %d lines, want 20", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "INFO  line worker=") {
			t.Errorf("interleaved line %q", line)
		}
	}
}
