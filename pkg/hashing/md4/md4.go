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

// Package md4 implements the MD4 digest algorithm as defined in RFC 1320.
//
// MD4 is cryptographically broken and is provided for interoperability only.
package md4

import (
	"encoding/binary"

	"github.com/sigstore/hashkit/pkg/hashing/bitops"
	"github.com/sigstore/hashkit/pkg/hashing/blockhash"
)

const (
	// Size is the size of an MD4 digest in bytes.
	Size = 16
	// BlockSize is the block size of MD4 in bytes.
	BlockSize = 64
)

var iv = [4]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476}

var roundConstants = [3]uint32{0, 0x5a827999, 0x6ed9eba1}

// Message word order for each round.
var wordIndex = [3][16]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{0, 4, 8, 12, 1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15},
	{0, 8, 4, 12, 2, 10, 6, 14, 1, 9, 5, 13, 3, 11, 7, 15},
}

// Shift amounts cycle every four steps within a round.
var shifts = [3][4]uint{
	{3, 7, 11, 19},
	{3, 5, 9, 13},
	{3, 9, 11, 15},
}

type state struct {
	h [4]uint32
}

func (s *state) Reset() { s.h = iv }

func (s *state) Process(block []byte) {
	var x [16]uint32
	for i := range x {
		x[i] = binary.LittleEndian.Uint32(block[i*4:])
	}

	a, b, c, d := s.h[0], s.h[1], s.h[2], s.h[3]
	for r := 0; r < 3; r++ {
		for i := 0; i < 16; i++ {
			var f uint32
			switch r {
			case 0:
				f = b&c | ^b&d
			case 1:
				f = b&c | b&d | c&d
			default:
				f = b ^ c ^ d
			}
			a = bitops.RotateLeft(a+f+x[wordIndex[r][i]]+roundConstants[r], shifts[r][i%4])
			a, b, c, d = d, a, b, c
		}
	}

	s.h[0] += a
	s.h[1] += b
	s.h[2] += c
	s.h[3] += d
}

func (s *state) SetMsgSize(block []byte, bits uint64) {
	binary.LittleEndian.PutUint64(block[len(block)-8:], bits)
}

func (s *state) Digest() []byte {
	out := make([]byte, Size)
	for i, v := range s.h {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	return out
}

func (s *state) BlockSize() int  { return BlockSize }
func (s *state) LengthSize() int { return 8 }
func (s *state) Size() int       { return Size }

// Digest is a streaming MD4 computation.
type Digest = blockhash.Engine[state, *state]

// New returns a new MD4 computation.
func New() *Digest {
	return blockhash.New[state]()
}

// Sum returns the MD4 digest of data.
func Sum(data []byte) [Size]byte {
	d := New()
	// No slice reaches blockhash.MaxMessageLength, so Write cannot fail.
	_, _ = d.Write(data)
	var out [Size]byte
	copy(out[:], d.Finalize())
	return out
}
