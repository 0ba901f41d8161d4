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
	"hash"

	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
)

func init() {
	for _, alg := range hashengines.Algorithms() {
		hashengines.MustRegister(alg.String(), func() (hashengines.StreamingHashEngine, error) {
			return New(alg, nil)
		})
	}
}

// New creates an engine for one of the built-in algorithms, named by its
// canonical name, e.g. "sha256".
func New(alg hashengines.Algorithm, initialData []byte) (*GenericHashEngine, error) {
	return NewGenericHashEngine(
		alg.String(),
		alg.Size(),
		func() (hash.Hash, error) {
			h, err := alg.New()
			if err != nil {
				return nil, err
			}
			return h, nil
		},
		initialData,
	)
}
