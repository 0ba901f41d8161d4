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

// Package blockhash implements the incremental Merkle–Damgård engine shared
// by every digest algorithm in this module.
//
// An Engine owns one working block, a running message length and a
// compression Strategy holding the chaining state. Bytes pushed through
// Update are buffered into the block and compressed whenever it fills.
// Finalize appends the 0x80 marker, zero padding and the message length in
// bits, runs one or two final compressions and serializes the state.
//
// Engines are not safe for concurrent use. Use one Engine per stream.
package blockhash

import (
	"errors"
	"fmt"
)

const (
	// MaxBlockSize is the largest block any Strategy may declare.
	MaxBlockSize = 128

	// MaxMessageLength is the largest number of bytes an Engine absorbs.
	// The length in bits then still fits the 64-bit padding field.
	MaxMessageLength uint64 = 1 << 61
)

// ErrMessageTooLong is returned by Update when absorbing the input would
// push the message length past MaxMessageLength.
var ErrMessageTooLong = errors.New("message exceeds maximum length")

// Strategy is the compression capability set of one algorithm.
//
// Implementations are plain value types: copying a Strategy must copy its
// whole chaining state.
type Strategy interface {
	// Reset loads the initialization vector.
	Reset()
	// Process compresses one block of BlockSize bytes into the state.
	Process(block []byte)
	// SetMsgSize writes the message length in bits into the trailing
	// length field of block.
	SetMsgSize(block []byte, bits uint64)
	// Digest serializes the state in the algorithm's byte order.
	Digest() []byte
	// BlockSize is the compression block size in bytes.
	BlockSize() int
	// LengthSize is the width in bytes of the trailing length field.
	LengthSize() int
	// Size is the digest size in bytes.
	Size() int
}

// Engine is the generic streaming engine over the strategy value type S.
//
// P is the pointer type *S, which carries the Strategy methods. Holding S
// by value keeps the Engine free of heap indirection, so a plain copy of an
// Engine is an independent snapshot of an in-progress computation.
type Engine[S any, P interface {
	*S
	Strategy
}] struct {
	state  S
	block  [MaxBlockSize]byte
	offset int
	length uint64
}

// New returns an Engine in the Ready state.
func New[S any, P interface {
	*S
	Strategy
}]() *Engine[S, P] {
	e := &Engine[S, P]{}
	e.Reset()
	return e
}

func (e *Engine[S, P]) strategy() P {
	return P(&e.state)
}

// Update absorbs data into the running computation.
//
// Either the whole of data is absorbed or, when it would exceed
// MaxMessageLength, none of it is and an error wrapping ErrMessageTooLong is
// returned. data is only read for the duration of the call.
func (e *Engine[S, P]) Update(data []byte) error {
	if uint64(len(data)) > MaxMessageLength-e.length {
		return fmt.Errorf("%w: %d bytes absorbed, %d more requested", ErrMessageTooLong, e.length, len(data))
	}
	e.length += uint64(len(data))

	s := e.strategy()
	bs := s.BlockSize()

	if e.offset > 0 {
		n := copy(e.block[e.offset:bs], data)
		e.offset += n
		data = data[n:]
		if e.offset < bs {
			return nil
		}
		s.Process(e.block[:bs])
		clear(e.block[:bs])
		e.offset = 0
	}

	// Whole blocks are compressed straight from the caller's slice.
	for len(data) >= bs {
		s.Process(data[:bs])
		data = data[bs:]
	}

	if len(data) > 0 {
		e.offset = copy(e.block[:bs], data)
	}
	return nil
}

// Finalize pads the message, runs the final compressions and returns the
// digest. The Engine is then reset and ready for a new message.
func (e *Engine[S, P]) Finalize() []byte {
	s := e.strategy()
	bs := s.BlockSize()

	e.block[e.offset] = 0x80
	clear(e.block[e.offset+1 : bs])

	if bs-e.offset-1 < s.LengthSize() {
		s.Process(e.block[:bs])
		clear(e.block[:bs])
	}

	s.SetMsgSize(e.block[:bs], e.length<<3)
	s.Process(e.block[:bs])

	digest := s.Digest()
	e.Reset()
	return digest
}

// Write implements io.Writer. It only fails with ErrMessageTooLong.
func (e *Engine[S, P]) Write(p []byte) (int, error) {
	if err := e.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Sum appends the digest of the data written so far to b without changing
// the running computation.
func (e *Engine[S, P]) Sum(b []byte) []byte {
	snapshot := *e
	return append(b, snapshot.Finalize()...)
}

// Reset returns the Engine to the Ready state.
func (e *Engine[S, P]) Reset() {
	e.strategy().Reset()
	clear(e.block[:])
	e.offset = 0
	e.length = 0
}

// Size returns the digest size in bytes.
func (e *Engine[S, P]) Size() int {
	return e.strategy().Size()
}

// BlockSize returns the compression block size in bytes.
func (e *Engine[S, P]) BlockSize() int {
	return e.strategy().BlockSize()
}

// Len returns the number of bytes absorbed since the last reset.
func (e *Engine[S, P]) Len() uint64 {
	return e.length
}
