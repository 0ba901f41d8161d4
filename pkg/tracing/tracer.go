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

// Package tracing wraps hashkit operations in spans. The default build
// uses a no-op tracer. Built with -tags=otel, InitFromEnv configures an
// OpenTelemetry OTLP/HTTP exporter from the standard OTEL_* variables.
package tracing

import (
	"context"
	"sync/atomic"
)

// Span is one timed operation.
type Span interface {
	SetAttribute(key string, value any)
	// RecordError marks the span as failed.
	RecordError(err error)
	End()
}

// Tracer starts spans.
type Tracer interface {
	Start(ctx context.Context, name string) (context.Context, Span)
}

type tracerHolder struct{ Tracer }

var global atomic.Pointer[tracerHolder]

func init() {
	global.Store(&tracerHolder{NoopTracer{}})
}

// SetTracer replaces the global tracer. nil restores the no-op tracer.
func SetTracer(t Tracer) {
	if t == nil {
		t = NoopTracer{}
	}
	global.Store(&tracerHolder{t})
}

// GetTracer returns the global tracer. It is never nil.
func GetTracer() Tracer {
	return global.Load().Tracer
}

// Start starts a span on the global tracer.
func Start(ctx context.Context, name string) (context.Context, Span) {
	return GetTracer().Start(ctx, name)
}

// Enabled reports whether a real tracer is installed.
func Enabled() bool {
	_, noop := GetTracer().(NoopTracer)
	return !noop
}

// Run calls fn inside a span named name carrying attrs. An error returned
// by fn is recorded on the span and passed through. With no tracer
// installed fn is called directly.
func Run(ctx context.Context, name string, attrs map[string]any, fn func(context.Context) error) error {
	if !Enabled() {
		return fn(ctx)
	}
	ctx, span := Start(ctx, name)
	defer span.End()
	for k, v := range attrs {
		span.SetAttribute(k, v)
	}
	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

// NoopSpan discards everything.
type NoopSpan struct{}

func (NoopSpan) SetAttribute(string, any) {}
func (NoopSpan) RecordError(error)        {}
func (NoopSpan) End()                     {}

// NoopTracer returns ctx unchanged and a NoopSpan.
type NoopTracer struct{}

func (NoopTracer) Start(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, NoopSpan{}
}
