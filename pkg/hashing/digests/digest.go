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

// Package digests provides the immutable Digest value produced by every
// hash engine, together with its hex rendering.
package digests

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// Digest is a computed digest tagged with the name of the algorithm that
// produced it.
//
// Its fields are unexported and every accessor copies, so a Digest can be
// shared freely between goroutines.
type Digest struct {
	algorithm string
	value     []byte
}

// NewDigest returns a Digest holding a copy of value.
func NewDigest(algorithm string, value []byte) Digest {
	return Digest{
		algorithm: algorithm,
		value:     bytes.Clone(value),
	}
}

// FromHex decodes a lowercase or uppercase hex string into a Digest.
func FromHex(algorithm, s string) (Digest, error) {
	value, err := hex.DecodeString(s)
	if err != nil {
		return Digest{}, fmt.Errorf("invalid %s digest %q: %w", algorithm, s, err)
	}
	return Digest{algorithm: algorithm, value: value}, nil
}

// Parse decodes the "algorithm:hex" form produced by String.
func Parse(s string) (Digest, error) {
	algorithm, value, ok := strings.Cut(s, ":")
	if !ok || algorithm == "" {
		return Digest{}, fmt.Errorf("invalid digest %q: want algorithm:hex", s)
	}
	return FromHex(algorithm, value)
}

// Algorithm returns the algorithm name.
//
// The name may carry parameters, e.g. "sha256-sharded-1024" for a digest
// computed over 1024-byte shards.
func (d Digest) Algorithm() string {
	return d.algorithm
}

// Value returns a copy of the raw digest bytes.
func (d Digest) Value() []byte {
	return bytes.Clone(d.value)
}

// Hex returns the digest as lowercase hex, two characters per byte, with
// no separators or prefix.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.value)
}

// Size returns the length of the digest in bytes.
func (d Digest) Size() int {
	return len(d.value)
}

// IsZero reports whether d is the zero Digest.
func (d Digest) IsZero() bool {
	return d.algorithm == "" && len(d.value) == 0
}

// String returns "algorithm:hex".
func (d Digest) String() string {
	return d.algorithm + ":" + d.Hex()
}

// Equal reports whether d and other have the same algorithm and value.
func (d Digest) Equal(other Digest) bool {
	return d.algorithm == other.algorithm && bytes.Equal(d.value, other.value)
}
