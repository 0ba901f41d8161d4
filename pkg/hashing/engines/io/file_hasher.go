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

// Package io streams files and readers into hash engines.
package io

import (
	"context"

	"github.com/sigstore/hashkit/pkg/hashing/digests"
	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
)

// FileHasher is a HashEngine whose input is a file on disk.
type FileHasher interface {
	hashengines.HashEngine

	// ComputeContext is Compute with cancellation between chunks.
	ComputeContext(ctx context.Context) (digests.Digest, error)
}

// FileHasherFactory creates a FileHasher for a whole file.
type FileHasherFactory func(path string) (FileHasher, error)

// ShardedFileHasherFactory creates a FileHasher for the [start, end) section
// of a file.
type ShardedFileHasherFactory func(path string, start, end int64) (FileHasher, error)
