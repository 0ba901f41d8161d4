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
	"io"
	"os"

	"github.com/sigstore/hashkit/pkg/hashing/digests"
	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
)

var _ FileHasher = (*ShardedFileHasher)(nil)

// ShardedFileHasher hashes the [start, end) section of a file.
//
// Independent shards of one file can be hashed in parallel, each with its
// own ShardedFileHasher.
type ShardedFileHasher struct {
	*SimpleFileHasher

	start     int64
	end       int64
	shardSize int64
}

// NewShardedFileHasher constructs a ShardedFileHasher. end-start must not
// exceed shardSize. The remaining parameters are as for NewSimpleFileHasher.
func NewShardedFileHasher(
	filePath string,
	contentHasher hashengines.StreamingHashEngine,
	start, end int64,
	chunkSize int,
	shardSize int64,
	digestNameOverride string,
) (*ShardedFileHasher, error) {
	if shardSize <= 0 {
		return nil, fmt.Errorf("shard size must be strictly positive, got %d", shardSize)
	}

	base, err := NewSimpleFileHasher(filePath, contentHasher, chunkSize, digestNameOverride)
	if err != nil {
		return nil, err
	}

	h := &ShardedFileHasher{
		SimpleFileHasher: base,
		shardSize:        shardSize,
	}
	if err := h.SetShard(start, end); err != nil {
		return nil, err
	}
	return h, nil
}

// SetShard moves the hasher to a new [start, end) section.
func (h *ShardedFileHasher) SetShard(start, end int64) error {
	if start < 0 {
		return fmt.Errorf("file start offset must be non-negative, got %d", start)
	}
	if end <= start {
		return fmt.Errorf("file end offset must be strictly greater than start, got start=%d, end=%d", start, end)
	}
	if end-start > h.shardSize {
		return fmt.Errorf("must not read more than shardSize=%d, got %d", h.shardSize, end-start)
	}

	h.start = start
	h.end = end
	return nil
}

// ShardSize returns the configured maximum shard length.
func (h *ShardedFileHasher) ShardSize() int64 {
	return h.shardSize
}

// DigestName returns the override or "<inner>-sharded-<shardSize>".
func (h *ShardedFileHasher) DigestName() string {
	if h.digestNameOverride != "" {
		return h.digestNameOverride
	}
	return fmt.Sprintf("%s-sharded-%d", h.contentHasher.DigestName(), h.shardSize)
}

// Compute hashes the shard.
func (h *ShardedFileHasher) Compute() (digests.Digest, error) {
	return h.ComputeContext(context.Background())
}

// ComputeContext hashes the shard, stopping early if ctx is cancelled.
// A shard extending past the end of the file is an error.
func (h *ShardedFileHasher) ComputeContext(ctx context.Context) (digests.Digest, error) {
	if err := h.contentHasher.Reset(nil); err != nil {
		return digests.Digest{}, err
	}

	f, err := os.Open(h.filePath)
	if err != nil {
		return digests.Digest{}, fmt.Errorf("open file %q: %w", h.filePath, err)
	}
	//nolint:errcheck
	defer f.Close()

	length := h.end - h.start
	section := io.NewSectionReader(f, h.start, length)
	n, err := HashReader(ctx, section, h.contentHasher, h.chunkSize)
	if err != nil {
		return digests.Digest{}, fmt.Errorf("read shard %d-%d of %q: %w", h.start, h.end, h.filePath, err)
	}
	if n != length {
		return digests.Digest{}, fmt.Errorf("short shard %d-%d of %q: read %d bytes", h.start, h.end, h.filePath, n)
	}

	d, err := h.contentHasher.Compute()
	if err != nil {
		return digests.Digest{}, fmt.Errorf("compute shard digest: %w", err)
	}
	return digests.NewDigest(h.DigestName(), d.Value()), nil
}
