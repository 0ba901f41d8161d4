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

package tracing

import (
	"context"
	"errors"
	"testing"
)

type recordingSpan struct {
	name  string
	attrs map[string]any
	err   error
	ended bool
}

func (s *recordingSpan) SetAttribute(key string, value any) { s.attrs[key] = value }
func (s *recordingSpan) RecordError(err error)              { s.err = err }
func (s *recordingSpan) End()                               { s.ended = true }

type recordingTracer struct {
	spans []*recordingSpan
}

func (r *recordingTracer) Start(ctx context.Context, name string) (context.Context, Span) {
	s := &recordingSpan{name: name, attrs: map[string]any{}}
	r.spans = append(r.spans, s)
	return ctx, s
}

func TestRun_Noop(t *testing.T) {
	SetTracer(nil)
	if Enabled() {
		t.Fatal("Enabled() = true with no tracer")
	}

	called := false
	err := Run(context.Background(), "op", map[string]any{"k": 1}, func(context.Context) error {
		called = true
		return nil
	})
	if err != nil || !called {
		t.Errorf("Run() = %v, called %v", err, called)
	}
}

func TestRun_RecordsSpan(t *testing.T) {
	rec := &recordingTracer{}
	SetTracer(rec)
	t.Cleanup(func() { SetTracer(nil) })

	if !Enabled() {
		t.Fatal("Enabled() = false with a tracer installed")
	}

	want := errors.New("boom")
	err := Run(context.Background(), "hashkit.sum", map[string]any{"hashkit.algorithm": "md5"}, func(context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("Run() error = %v, want %v", err, want)
	}

	if len(rec.spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(rec.spans))
	}
	s := rec.spans[0]
	if s.name != "hashkit.sum" || !s.ended || s.attrs["hashkit.algorithm"] != "md5" || !errors.Is(s.err, want) {
		t.Errorf("span = %+v", s)
	}
}

func TestNoopTracer(t *testing.T) {
	ctx := context.Background()
	got, span := NoopTracer{}.Start(ctx, "x")
	if got != ctx {
		t.Error("Start() changed the context")
	}
	span.SetAttribute("a", 1)
	span.RecordError(errors.New("e"))
	span.End()
}

func TestInitFromEnv_Disabled(t *testing.T) {
	t.Setenv("OTEL_TRACES_EXPORTER", "none")
	if err := InitFromEnv(context.Background()); err != nil {
		t.Fatalf("InitFromEnv() error = %v", err)
	}
	if err := Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
