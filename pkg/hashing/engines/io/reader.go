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
	"errors"
	"fmt"
	"io"

	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
)

// DefaultChunkSize is the read buffer size used when none is configured.
const DefaultChunkSize = 1 << 20

// HashReader streams r into engine in chunkSize pieces until EOF and
// returns the number of bytes absorbed. A chunkSize of 0 selects
// DefaultChunkSize. ctx is checked before every read.
func HashReader(ctx context.Context, r io.Reader, engine hashengines.Streaming, chunkSize int) (int64, error) {
	if chunkSize < 0 {
		return 0, fmt.Errorf("chunk size must be non-negative, got %d", chunkSize)
	}
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}

	buf := make([]byte, chunkSize)
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := r.Read(buf)
		if n > 0 {
			if uerr := engine.Update(buf[:n]); uerr != nil {
				return total, uerr
			}
			total += int64(n)
		}
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}
