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

// Package sha256 implements the SHA-224 and SHA-256 digest algorithms as
// defined in FIPS 180-4.
//
// Both share one 32-bit compression core. SHA-224 differs only in its
// initialization vector and in truncating the serialized state to 28 bytes.
package sha256

import (
	"encoding/binary"

	"github.com/sigstore/hashkit/pkg/hashing/bitops"
	"github.com/sigstore/hashkit/pkg/hashing/blockhash"
)

const (
	// Size is the size of a SHA-256 digest in bytes.
	Size = 32
	// Size224 is the size of a SHA-224 digest in bytes.
	Size224 = 28
	// BlockSize is the block size of SHA-256 and SHA-224 in bytes.
	BlockSize = 64
)

var (
	iv256 = [8]uint32{
		0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
		0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
	}
	iv224 = [8]uint32{
		0xc1059ed8, 0x367cd507, 0x3070dd17, 0xf70e5939,
		0xffc00b31, 0x68581511, 0x64f98fa7, 0xbefa4fa4,
	}
)

var k = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

func ch(x, y, z uint32) uint32  { return x&y ^ ^x&z }
func maj(x, y, z uint32) uint32 { return x&y ^ x&z ^ y&z }

func ep0(x uint32) uint32 {
	return bitops.RotateRight(x, 2) ^ bitops.RotateRight(x, 13) ^ bitops.RotateRight(x, 22)
}

func ep1(x uint32) uint32 {
	return bitops.RotateRight(x, 6) ^ bitops.RotateRight(x, 11) ^ bitops.RotateRight(x, 25)
}

func sig0(x uint32) uint32 {
	return bitops.RotateRight(x, 7) ^ bitops.RotateRight(x, 18) ^ x>>3
}

func sig1(x uint32) uint32 {
	return bitops.RotateRight(x, 17) ^ bitops.RotateRight(x, 19) ^ x>>10
}

// core is the compression state shared by SHA-256 and SHA-224.
type core struct {
	h [8]uint32
}

func (c *core) Process(block []byte) {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 64; i++ {
		w[i] = sig1(w[i-2]) + w[i-7] + sig0(w[i-15]) + w[i-16]
	}

	a, b, cc, d, e, f, g, h := c.h[0], c.h[1], c.h[2], c.h[3], c.h[4], c.h[5], c.h[6], c.h[7]
	for i := 0; i < 64; i++ {
		t1 := h + ep1(e) + ch(e, f, g) + k[i] + w[i]
		t2 := ep0(a) + maj(a, b, cc)
		h, g, f, e = g, f, e, d+t1
		d, cc, b, a = cc, b, a, t1+t2
	}

	c.h[0] += a
	c.h[1] += b
	c.h[2] += cc
	c.h[3] += d
	c.h[4] += e
	c.h[5] += f
	c.h[6] += g
	c.h[7] += h
}

func (c *core) SetMsgSize(block []byte, bits uint64) {
	binary.BigEndian.PutUint64(block[len(block)-8:], bits)
}

// shaped serializes the full chaining state big-endian.
func (c *core) shaped() []byte {
	out := make([]byte, 0, Size)
	for _, v := range c.h {
		out = binary.BigEndian.AppendUint32(out, v)
	}
	return out
}

func (c *core) BlockSize() int  { return BlockSize }
func (c *core) LengthSize() int { return 8 }

type state256 struct{ core }

func (s *state256) Reset()         { s.h = iv256 }
func (s *state256) Digest() []byte { return s.shaped() }
func (s *state256) Size() int      { return Size }

type state224 struct{ core }

func (s *state224) Reset()         { s.h = iv224 }
func (s *state224) Digest() []byte { return s.shaped()[:Size224] }
func (s *state224) Size() int      { return Size224 }

// Digest is a streaming SHA-256 computation.
type Digest = blockhash.Engine[state256, *state256]

// Digest224 is a streaming SHA-224 computation.
type Digest224 = blockhash.Engine[state224, *state224]

// New returns a new SHA-256 computation.
func New() *Digest {
	return blockhash.New[state256]()
}

// New224 returns a new SHA-224 computation.
func New224() *Digest224 {
	return blockhash.New[state224]()
}

// Sum256 returns the SHA-256 digest of data.
func Sum256(data []byte) [Size]byte {
	d := New()
	// No slice reaches blockhash.MaxMessageLength, so Write cannot fail.
	_, _ = d.Write(data)
	return [Size]byte(d.Finalize())
}

// Sum224 returns the SHA-224 digest of data.
func Sum224(data []byte) [Size224]byte {
	d := New224()
	// No slice reaches blockhash.MaxMessageLength, so Write cannot fail.
	_, _ = d.Write(data)
	return [Size224]byte(d.Finalize())
}
