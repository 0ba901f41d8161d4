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

// Package memory provides StreamingHashEngine implementations over
// in-memory data and registers the built-in algorithms by name.
package memory

import (
	"fmt"
	"hash"

	"github.com/sigstore/hashkit/pkg/hashing/digests"
	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
)

var _ hashengines.StreamingHashEngine = (*GenericHashEngine)(nil)

// HashFactoryFunc creates a new hash.Hash.
type HashFactoryFunc func() (hash.Hash, error)

// GenericHashEngine adapts any hash.Hash to StreamingHashEngine.
type GenericHashEngine struct {
	name    string
	size    int
	factory HashFactoryFunc
	h       hash.Hash
}

// NewGenericHashEngine creates an engine named name whose digests are size
// bytes long. initialData, if any, is written immediately.
func NewGenericHashEngine(name string, size int, factory HashFactoryFunc, initialData []byte) (*GenericHashEngine, error) {
	if factory == nil {
		return nil, fmt.Errorf("hash factory for %q cannot be nil", name)
	}
	e := &GenericHashEngine{
		name:    name,
		size:    size,
		factory: factory,
	}
	if err := e.Reset(initialData); err != nil {
		return nil, err
	}
	return e, nil
}

// Update appends data to the message.
func (e *GenericHashEngine) Update(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if _, err := e.h.Write(data); err != nil {
		return fmt.Errorf("%s: %w", e.name, err)
	}
	return nil
}

// Reset discards the current message and starts a new one seeded with data.
func (e *GenericHashEngine) Reset(data []byte) error {
	h, err := e.factory()
	if err != nil {
		return fmt.Errorf("failed to create %s hasher: %w", e.name, err)
	}
	e.h = h
	return e.Update(data)
}

// Compute returns the digest of the data written so far. The running
// computation is left untouched.
func (e *GenericHashEngine) Compute() (digests.Digest, error) {
	return digests.NewDigest(e.name, e.h.Sum(nil)), nil
}

// DigestName returns the algorithm name.
func (e *GenericHashEngine) DigestName() string {
	return e.name
}

// DigestSize returns the digest size in bytes.
func (e *GenericHashEngine) DigestSize() int {
	return e.size
}
