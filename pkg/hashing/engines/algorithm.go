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

package hashengines

import (
	"fmt"
	"strings"

	"github.com/sigstore/hashkit/pkg/hashing/md4"
	"github.com/sigstore/hashkit/pkg/hashing/md5"
	"github.com/sigstore/hashkit/pkg/hashing/sha1"
	"github.com/sigstore/hashkit/pkg/hashing/sha256"
	"github.com/sigstore/hashkit/pkg/hashing/sha512"
)

// Algorithm identifies one of the built-in digest algorithms.
type Algorithm int

const (
	MD4 Algorithm = iota + 1
	MD5
	SHA1
	SHA224
	SHA256
	SHA384
	SHA512
)

type algorithmInfo struct {
	name      string
	size      int
	blockSize int
	newHasher func() Hasher
}

var algorithms = map[Algorithm]algorithmInfo{
	MD4:    {"md4", md4.Size, md4.BlockSize, func() Hasher { return md4.New() }},
	MD5:    {"md5", md5.Size, md5.BlockSize, func() Hasher { return md5.New() }},
	SHA1:   {"sha1", sha1.Size, sha1.BlockSize, func() Hasher { return sha1.New() }},
	SHA224: {"sha224", sha256.Size224, sha256.BlockSize, func() Hasher { return sha256.New224() }},
	SHA256: {"sha256", sha256.Size, sha256.BlockSize, func() Hasher { return sha256.New() }},
	SHA384: {"sha384", sha512.Size384, sha512.BlockSize, func() Hasher { return sha512.New384() }},
	SHA512: {"sha512", sha512.Size, sha512.BlockSize, func() Hasher { return sha512.New() }},
}

// Algorithms returns every built-in algorithm in declaration order.
func Algorithms() []Algorithm {
	return []Algorithm{MD4, MD5, SHA1, SHA224, SHA256, SHA384, SHA512}
}

// Valid reports whether a is a built-in algorithm.
func (a Algorithm) Valid() bool {
	_, ok := algorithms[a]
	return ok
}

// String returns the canonical lowercase name, e.g. "sha256".
func (a Algorithm) String() string {
	if info, ok := algorithms[a]; ok {
		return info.name
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Size returns the digest size in bytes, or 0 for an invalid algorithm.
func (a Algorithm) Size() int {
	return algorithms[a].size
}

// BlockSize returns the compression block size in bytes, or 0 for an
// invalid algorithm.
func (a Algorithm) BlockSize() int {
	return algorithms[a].blockSize
}

// New starts a new computation.
func (a Algorithm) New() (Hasher, error) {
	info, ok := algorithms[a]
	if !ok {
		return nil, fmt.Errorf("unknown hash algorithm %s", a)
	}
	return info.newHasher(), nil
}

// ParseAlgorithm returns the algorithm named s. Matching ignores case and
// dashes, so "SHA-256" and "sha256" are equivalent.
func ParseAlgorithm(s string) (Algorithm, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	for _, a := range Algorithms() {
		if algorithms[a].name == norm {
			return a, nil
		}
	}
	names := make([]string, 0, len(algorithms))
	for _, a := range Algorithms() {
		names = append(names, a.String())
	}
	return 0, fmt.Errorf("unknown hash algorithm %q (supported: %s)", s, strings.Join(names, ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("unknown hash algorithm %s", a)
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
