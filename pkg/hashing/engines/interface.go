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

// Package hashengines selects digest algorithms at runtime and defines the
// engine interfaces the file and manifest layers are written against.
//
// Algorithm is the closed set of algorithms built into this module. The
// registry maps canonical names to StreamingHashEngine factories so callers
// configured by name (flags, sum files) can create engines without knowing
// the concrete implementation.
package hashengines

import (
	"hash"

	"github.com/sigstore/hashkit/pkg/hashing/digests"
)

// HashEngine computes a digest and describes the algorithm that produced it.
type HashEngine interface {
	// Compute finalizes the computation and returns the digest.
	Compute() (digests.Digest, error)

	// DigestName returns the algorithm name recorded in the digest.
	// It must include every parameter that influences the output,
	// e.g. "sha256-sharded-1024" for digests over 1024-byte shards.
	DigestName() string

	// DigestSize returns the size in bytes of digests produced by Compute.
	DigestSize() int
}

// Streaming feeds data to an engine incrementally.
type Streaming interface {
	// Update appends data to the message. It fails only when the message
	// would exceed the algorithm's maximum length.
	Update(data []byte) error

	// Reset starts a new message seeded with data, which may be nil.
	Reset(data []byte) error
}

// StreamingHashEngine is a HashEngine that accepts incremental input.
type StreamingHashEngine interface {
	HashEngine
	Streaming
}

// Hasher is a single streaming computation of one built-in algorithm.
//
// Besides hash.Hash it exposes the error-returning Update, the one-shot
// Finalize which also resets the computation, and the absorbed length.
type Hasher interface {
	hash.Hash
	Update(data []byte) error
	Finalize() []byte
	Len() uint64
}
