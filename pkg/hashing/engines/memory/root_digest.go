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

package memory

import (
	"fmt"

	"github.com/sigstore/hashkit/pkg/hashing/digests"
	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
)

// ComputeRootDigest folds digestList into one digest by hashing the raw
// bytes of each digest, in order, with alg.
//
// Example:
//
//	root, err := memory.ComputeRootDigest(hashengines.SHA256, []digests.Digest{d1, d2})
func ComputeRootDigest(alg hashengines.Algorithm, digestList []digests.Digest) (digests.Digest, error) {
	hasher, err := New(alg, nil)
	if err != nil {
		return digests.Digest{}, fmt.Errorf("failed to create root hasher: %w", err)
	}

	for _, d := range digestList {
		if err := hasher.Update(d.Value()); err != nil {
			return digests.Digest{}, fmt.Errorf("failed to hash %s: %w", d, err)
		}
	}

	root, err := hasher.Compute()
	if err != nil {
		return digests.Digest{}, fmt.Errorf("failed to compute root digest: %w", err)
	}
	return root, nil
}
