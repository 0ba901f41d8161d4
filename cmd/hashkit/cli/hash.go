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

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sigstore/hashkit/pkg/hashing/digests"
	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
	hashio "github.com/sigstore/hashkit/pkg/hashing/engines/io"
	"github.com/sigstore/hashkit/pkg/hashing/engines/memory"
	"github.com/sigstore/hashkit/pkg/utils"
)

func hashStream(ctx context.Context, r io.Reader, alg hashengines.Algorithm, chunkSize int) (digests.Digest, error) {
	engine, err := memory.New(alg, nil)
	if err != nil {
		return digests.Digest{}, err
	}
	if _, err := hashio.HashReader(ctx, r, engine, chunkSize); err != nil {
		return digests.Digest{}, err
	}
	return engine.Compute()
}

func hashFile(ctx context.Context, path string, alg hashengines.Algorithm, chunkSize int) (digests.Digest, error) {
	engine, err := memory.New(alg, nil)
	if err != nil {
		return digests.Digest{}, err
	}
	hasher, err := hashio.NewSimpleFileHasher(path, engine, chunkSize, "")
	if err != nil {
		return digests.Digest{}, err
	}
	return hasher.ComputeContext(ctx)
}

// readInput reads path, or stdin for "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == utils.StdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read standard input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
