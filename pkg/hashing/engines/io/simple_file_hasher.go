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

package io

import (
	"context"
	"fmt"
	"os"

	"github.com/sigstore/hashkit/pkg/hashing/digests"
	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
)

var _ FileHasher = (*SimpleFileHasher)(nil)

// SimpleFileHasher hashes a whole file by streaming it into an inner
// StreamingHashEngine. Memory use is bounded by the chunk size.
type SimpleFileHasher struct {
	filePath           string
	contentHasher      hashengines.StreamingHashEngine
	chunkSize          int
	digestNameOverride string
}

// NewSimpleFileHasher constructs a SimpleFileHasher.
//
//   - filePath: file to hash
//   - contentHasher: engine the contents are streamed into
//   - chunkSize: read buffer size; 0 selects DefaultChunkSize
//   - digestNameOverride: if non-empty, replaces the engine's name in the digest
func NewSimpleFileHasher(
	filePath string,
	contentHasher hashengines.StreamingHashEngine,
	chunkSize int,
	digestNameOverride string,
) (*SimpleFileHasher, error) {
	if chunkSize < 0 {
		return nil, fmt.Errorf("chunk size must be non-negative, got %d", chunkSize)
	}
	if filePath == "" {
		return nil, fmt.Errorf("file path must be non-empty")
	}
	if contentHasher == nil {
		return nil, fmt.Errorf("content hasher must not be nil")
	}

	return &SimpleFileHasher{
		filePath:           filePath,
		contentHasher:      contentHasher,
		chunkSize:          chunkSize,
		digestNameOverride: digestNameOverride,
	}, nil
}

// SetFile changes the file hashed by the next Compute call.
func (h *SimpleFileHasher) SetFile(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("file path must be non-empty")
	}
	h.filePath = filePath
	return nil
}

// DigestName returns the override or the inner engine's name.
func (h *SimpleFileHasher) DigestName() string {
	if h.digestNameOverride != "" {
		return h.digestNameOverride
	}
	return h.contentHasher.DigestName()
}

// DigestSize is delegated to the inner engine.
func (h *SimpleFileHasher) DigestSize() int {
	return h.contentHasher.DigestSize()
}

// Compute hashes the file.
func (h *SimpleFileHasher) Compute() (digests.Digest, error) {
	return h.ComputeContext(context.Background())
}

// ComputeContext hashes the file, stopping early if ctx is cancelled.
func (h *SimpleFileHasher) ComputeContext(ctx context.Context) (digests.Digest, error) {
	if err := h.contentHasher.Reset(nil); err != nil {
		return digests.Digest{}, err
	}

	f, err := os.Open(h.filePath)
	if err != nil {
		return digests.Digest{}, fmt.Errorf("open file %q: %w", h.filePath, err)
	}
	//nolint:errcheck
	defer f.Close()

	if _, err := HashReader(ctx, f, h.contentHasher, h.chunkSize); err != nil {
		return digests.Digest{}, fmt.Errorf("read file %q: %w", h.filePath, err)
	}

	d, err := h.contentHasher.Compute()
	if err != nil {
		return digests.Digest{}, fmt.Errorf("compute digest: %w", err)
	}
	return digests.NewDigest(h.DigestName(), d.Value()), nil
}
