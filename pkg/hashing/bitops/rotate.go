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

// Package bitops provides the circular shifts used by the compression
// functions of every digest algorithm in this module.
package bitops

import "math/bits"

// Word is the set of machine words the compression functions operate on.
type Word interface {
	~uint32 | ~uint64
}

// Width returns the number of bits in T (32 or 64).
func Width[T Word]() uint {
	return uint(bits.Len64(uint64(^T(0))))
}

// RotateLeft returns x circularly shifted left by n bits.
//
// The shift is taken modulo the width of T, so RotateLeft(x, 0) and
// RotateLeft(x, Width[T]()) both return x unchanged.
func RotateLeft[T Word](x T, n uint) T {
	w := Width[T]()
	n %= w
	if n == 0 {
		return x
	}
	return x<<n | x>>(w-n)
}

// RotateRight returns x circularly shifted right by n bits.
//
// The shift is taken modulo the width of T.
func RotateRight[T Word](x T, n uint) T {
	w := Width[T]()
	n %= w
	if n == 0 {
		return x
	}
	return x>>n | x<<(w-n)
}
