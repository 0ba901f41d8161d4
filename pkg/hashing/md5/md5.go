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

// Package md5 implements the MD5 digest algorithm as defined in RFC 1321.
//
// MD5 is cryptographically broken and should not be used for secure
// applications.
package md5

import (
	"encoding/binary"

	"github.com/sigstore/hashkit/pkg/hashing/bitops"
	"github.com/sigstore/hashkit/pkg/hashing/blockhash"
)

const (
	// Size is the size of an MD5 digest in bytes.
	Size = 16
	// BlockSize is the block size of MD5 in bytes.
	BlockSize = 64
)

var iv = [4]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476}

// k[i] is floor(2^32 * |sin(i+1)|).
var k = [64]uint32{
	0xd76aa478, 0xe8c7b756, 0x242070db, 0xc1bdceee,
	0xf57c0faf, 0x4787c62a, 0xa8304613, 0xfd469501,
	0x698098d8, 0x8b44f7af, 0xffff5bb1, 0x895cd7be,
	0x6b901122, 0xfd987193, 0xa679438e, 0x49b40821,
	0xf61e2562, 0xc040b340, 0x265e5a51, 0xe9b6c7aa,
	0xd62f105d, 0x02441453, 0xd8a1e681, 0xe7d3fbc8,
	0x21e1cde6, 0xc33707d6, 0xf4d50d87, 0x455a14ed,
	0xa9e3e905, 0xfcefa3f8, 0x676f02d9, 0x8d2a4c8a,
	0xfffa3942, 0x8771f681, 0x6d9d6122, 0xfde5380c,
	0xa4beea44, 0x4bdecfa9, 0xf6bb4b60, 0xbebfbc70,
	0x289b7ec6, 0xeaa127fa, 0xd4ef3085, 0x04881d05,
	0xd9d4d039, 0xe6db99e5, 0x1fa27cf8, 0xc4ac5665,
	0xf4292244, 0x432aff97, 0xab9423a7, 0xfc93a039,
	0x655b59c3, 0x8f0ccc92, 0xffeff47d, 0x85845dd1,
	0x6fa87e4f, 0xfe2ce6e0, 0xa3014314, 0x4e0811a1,
	0xf7537e82, 0xbd3af235, 0x2ad7d2bb, 0xeb86d391,
}

var shifts = [4][4]uint{
	{7, 12, 17, 22},
	{5, 9, 14, 20},
	{4, 11, 16, 23},
	{6, 10, 15, 21},
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
	for t := 0; t < 64; t++ {
		var f uint32
		var g int
		switch round := t / 16; round {
		case 0:
			f = b&c | ^b&d
			g = t
		case 1:
			f = b&d | c&^d
			g = (5*t + 1) % 16
		case 2:
			f = b ^ c ^ d
			g = (3*t + 5) % 16
		default:
			f = c ^ (b | ^d)
			g = (7 * t) % 16
		}
		a = b + bitops.RotateLeft(a+f+k[t]+x[g], shifts[t/16][t%4])
		a, b, c, d = d, a, b, c
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
	out := make([]byte, 0, Size)
	for _, v := range s.h {
		out = binary.LittleEndian.AppendUint32(out, v)
	}
	return out
}

func (s *state) BlockSize() int  { return BlockSize }
func (s *state) LengthSize() int { return 8 }
func (s *state) Size() int       { return Size }

// Digest is a streaming MD5 computation.
type Digest = blockhash.Engine[state, *state]

// New returns a new MD5 computation.
func New() *Digest {
	return blockhash.New[state]()
}

// Sum returns the MD5 digest of data.
func Sum(data []byte) [Size]byte {
	d := New()
	// No slice reaches blockhash.MaxMessageLength, so Write cannot fail.
	_, _ = d.Write(data)
	return [Size]byte(d.Finalize())
}
