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

// Package sha1 implements the SHA-1 digest algorithm as defined in FIPS 180-4.
package sha1

import (
	"encoding/binary"

	"github.com/sigstore/hashkit/pkg/hashing/bitops"
	"github.com/sigstore/hashkit/pkg/hashing/blockhash"
)

const (
	// Size is the size of a SHA-1 digest in bytes.
	Size = 20
	// BlockSize is the block size of SHA-1 in bytes.
	BlockSize = 64
)

var iv = [5]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476, 0xc3d2e1f0}

const (
	k0 = 0x5a827999
	k1 = 0x6ed9eba1
	k2 = 0x8f1bbcdc
	k3 = 0xca62c1d6
)

type state struct {
	h [5]uint32
}

func (s *state) Reset() { s.h = iv }

func (s *state) Process(block []byte) {
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 80; i++ {
		w[i] = bitops.RotateLeft(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, d, e := s.h[0], s.h[1], s.h[2], s.h[3], s.h[4]
	for t := 0; t < 80; t++ {
		var f, k uint32
		switch {
		case t < 20:
			f, k = b&c|^b&d, k0
		case t < 40:
			f, k = b^c^d, k1
		case t < 60:
			f, k = b&c|b&d|c&d, k2
		default:
			f, k = b^c^d, k3
		}
		tmp := bitops.RotateLeft(a, 5) + f + e + w[t] + k
		a, b, c, d, e = tmp, a, bitops.RotateLeft(b, 30), c, d
	}

	s.h[0] += a
	s.h[1] += b
	s.h[2] += c
	s.h[3] += d
	s.h[4] += e
}

func (s *state) SetMsgSize(block []byte, bits uint64) {
	binary.BigEndian.PutUint64(block[len(block)-8:], bits)
}

func (s *state) Digest() []byte {
	out := make([]byte, 0, Size)
	for _, v := range s.h {
		out = binary.BigEndian.AppendUint32(out, v)
	}
	return out
}

func (s *state) BlockSize() int  { return BlockSize }
func (s *state) LengthSize() int { return 8 }
func (s *state) Size() int       { return Size }

// Digest is a streaming SHA-1 computation.
type Digest = blockhash.Engine[state, *state]

// New returns a new SHA-1 computation.
func New() *Digest {
	return blockhash.New[state]()
}

// Sum returns the SHA-1 digest of data.
func Sum(data []byte) [Size]byte {
	d := New()
	// No slice reaches blockhash.MaxMessageLength, so Write cannot fail.
	_, _ = d.Write(data)
	return [Size]byte(d.Finalize())
}
