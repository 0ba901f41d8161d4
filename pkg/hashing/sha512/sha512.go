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

// Package sha512 implements the SHA-384 and SHA-512 digest algorithms as
// defined in FIPS 180-4.
package sha512

import (
	"encoding/binary"

	"github.com/sigstore/hashkit/pkg/hashing/bitops"
	"github.com/sigstore/hashkit/pkg/hashing/blockhash"
)

const (
	// Size is the size of a SHA-512 digest in bytes.
	Size = 64
	// Size384 is the size of a SHA-384 digest in bytes.
	Size384 = 48
	// BlockSize is the block size of SHA-512 and SHA-384 in bytes.
	BlockSize = 128
)

// The message length is a 128-bit field. Lengths never exceed
// blockhash.MaxMessageLength, so only its low 64 bits are ever set.
const lengthSize = 16

var (
	iv512 = [8]uint64{
		0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
		0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
	}
	iv384 = [8]uint64{
		0xcbbb9d5dc1059ed8, 0x629a292a367cd507, 0x9159015a3070dd17, 0x152fecd8f70e5939,
		0x67332667ffc00b31, 0x8eb44a8768581511, 0xdb0c2e0d64f98fa7, 0x47b5481dbefa4fa4,
	}
)

var k = [80]uint64{
	0x428a2f98d728ae22, 0x7137449123ef65cd, 0xb5c0fbcfec4d3b2f, 0xe9b5dba58189dbbc,
	0x3956c25bf348b538, 0x59f111f1b605d019, 0x923f82a4af194f9b, 0xab1c5ed5da6d8118,
	0xd807aa98a3030242, 0x12835b0145706fbe, 0x243185be4ee4b28c, 0x550c7dc3d5ffb4e2,
	0x72be5d74f27b896f, 0x80deb1fe3b1696b1, 0x9bdc06a725c71235, 0xc19bf174cf692694,
	0xe49b69c19ef14ad2, 0xefbe4786384f25e3, 0x0fc19dc68b8cd5b5, 0x240ca1cc77ac9c65,
	0x2de92c6f592b0275, 0x4a7484aa6ea6e483, 0x5cb0a9dcbd41fbd4, 0x76f988da831153b5,
	0x983e5152ee66dfab, 0xa831c66d2db43210, 0xb00327c898fb213f, 0xbf597fc7beef0ee4,
	0xc6e00bf33da88fc2, 0xd5a79147930aa725, 0x06ca6351e003826f, 0x142929670a0e6e70,
	0x27b70a8546d22ffc, 0x2e1b21385c26c926, 0x4d2c6dfc5ac42aed, 0x53380d139d95b3df,
	0x650a73548baf63de, 0x766a0abb3c77b2a8, 0x81c2c92e47edaee6, 0x92722c851482353b,
	0xa2bfe8a14cf10364, 0xa81a664bbc423001, 0xc24b8b70d0f89791, 0xc76c51a30654be30,
	0xd192e819d6ef5218, 0xd69906245565a910, 0xf40e35855771202a, 0x106aa07032bbd1b8,
	0x19a4c116b8d2d0c8, 0x1e376c085141ab53, 0x2748774cdf8eeb99, 0x34b0bcb5e19b48a8,
	0x391c0cb3c5c95a63, 0x4ed8aa4ae3418acb, 0x5b9cca4f7763e373, 0x682e6ff3d6b2b8a3,
	0x748f82ee5defb2fc, 0x78a5636f43172f60, 0x84c87814a1f0ab72, 0x8cc702081a6439ec,
	0x90befffa23631e28, 0xa4506cebde82bde9, 0xbef9a3f7b2c67915, 0xc67178f2e372532b,
	0xca273eceea26619c, 0xd186b8c721c0c207, 0xeada7dd6cde0eb1e, 0xf57d4f7fee6ed178,
	0x06f067aa72176fba, 0x0a637dc5a2c898a6, 0x113f9804bef90dae, 0x1b710b35131c471b,
	0x28db77f523047d84, 0x32caab7b40c72493, 0x3c9ebe0a15c9bebc, 0x431d67c49c100d4c,
	0x4cc5d4becb3e42b6, 0x597f299cfc657e2a, 0x5fcb6fab3ad6faec, 0x6c44198c4a475817,
}

func ep0(x uint64) uint64 {
	return bitops.RotateRight(x, 28) ^ bitops.RotateRight(x, 34) ^ bitops.RotateRight(x, 39)
}

func ep1(x uint64) uint64 {
	return bitops.RotateRight(x, 14) ^ bitops.RotateRight(x, 18) ^ bitops.RotateRight(x, 41)
}

func sig0(x uint64) uint64 {
	return bitops.RotateRight(x, 1) ^ bitops.RotateRight(x, 8) ^ x>>7
}

func sig1(x uint64) uint64 {
	return bitops.RotateRight(x, 19) ^ bitops.RotateRight(x, 61) ^ x>>6
}

type core struct {
	h [8]uint64
}

func (c *core) Process(block []byte) {
	var w [80]uint64
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint64(block[i*8:])
	}
	for i := 16; i < 80; i++ {
		w[i] = sig1(w[i-2]) + w[i-7] + sig0(w[i-15]) + w[i-16]
	}

	v := c.h
	for i := 0; i < 80; i++ {
		a, b, cc, d, e, f, g, h := v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7]
		t1 := h + ep1(e) + (e&f ^ ^e&g) + k[i] + w[i]
		t2 := ep0(a) + (a&b ^ a&cc ^ b&cc)
		v = [8]uint64{t1 + t2, a, b, cc, d + t1, e, f, g}
	}

	for i := range c.h {
		c.h[i] += v[i]
	}
}

func (c *core) SetMsgSize(block []byte, bits uint64) {
	binary.BigEndian.PutUint64(block[len(block)-8:], bits)
}

func (c *core) shaped() []byte {
	out := make([]byte, 0, Size)
	for _, v := range c.h {
		out = binary.BigEndian.AppendUint64(out, v)
	}
	return out
}

func (c *core) BlockSize() int  { return BlockSize }
func (c *core) LengthSize() int { return lengthSize }

type state512 struct{ core }

func (s *state512) Reset()         { s.h = iv512 }
func (s *state512) Digest() []byte { return s.shaped() }
func (s *state512) Size() int      { return Size }

type state384 struct{ core }

func (s *state384) Reset()         { s.h = iv384 }
func (s *state384) Digest() []byte { return s.shaped()[:Size384] }
func (s *state384) Size() int      { return Size384 }

// Digest is a streaming SHA-512 computation.
type Digest = blockhash.Engine[state512, *state512]

// Digest384 is a streaming SHA-384 computation.
type Digest384 = blockhash.Engine[state384, *state384]

// New returns a new SHA-512 computation.
func New() *Digest {
	return blockhash.New[state512]()
}

// New384 returns a new SHA-384 computation.
func New384() *Digest384 {
	return blockhash.New[state384]()
}

// Sum512 returns the SHA-512 digest of data.
func Sum512(data []byte) [Size]byte {
	d := New()
	// No slice reaches blockhash.MaxMessageLength, so Write cannot fail.
	_, _ = d.Write(data)
	return [Size]byte(d.Finalize())
}

// Sum384 returns the SHA-384 digest of data.
func Sum384(data []byte) [Size384]byte {
	d := New384()
	// No slice reaches blockhash.MaxMessageLength, so Write cannot fail.
	_, _ = d.Write(data)
	return [Size384]byte(d.Finalize())
}
