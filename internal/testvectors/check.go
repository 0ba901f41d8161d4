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

package testvectors

import (
	"bytes"
	"encoding/hex"
	"hash"
	"math/rand/v2"
	"testing"

	"github.com/sigstore/hashkit/pkg/hashing/reference"
)

// Pattern returns n deterministic bytes.
func Pattern(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i*131 + i>>8 + 7)
	}
	return out
}

// KnownAnswers checks newHash against want, keyed by the message names
// returned by All. Messages missing from want are skipped.
func KnownAnswers(t *testing.T, newHash func() hash.Hash, want map[string]string) {
	t.Helper()
	for _, m := range All() {
		w, ok := want[m.Name]
		if !ok {
			continue
		}
		t.Run(m.Name, func(t *testing.T) {
			h := newHash()
			if _, err := h.Write([]byte(m.Text)); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if got := hex.EncodeToString(h.Sum(nil)); got != w {
				t.Errorf("Sum() = %q, want %q", got, w)
			}
		})
	}
}

// StreamingEquivalence checks that every way of chunking a message gives
// the digest of writing it at once.
func StreamingEquivalence(t *testing.T, newHash func() hash.Hash) {
	t.Helper()

	msg := Pattern(5*128 + 17)
	whole := newHash()
	_, _ = whole.Write(msg)
	want := whole.Sum(nil)

	for chunk := 1; chunk <= 257; chunk++ {
		h := newHash()
		for off := 0; off < len(msg); off += chunk {
			if _, err := h.Write(msg[off:min(off+chunk, len(msg))]); err != nil {
				t.Fatalf("chunk %d: Write() error = %v", chunk, err)
			}
		}
		if got := h.Sum(nil); !bytes.Equal(got, want) {
			t.Errorf("chunk %d: Sum() = %x, want %x", chunk, got, want)
		}
	}

	bs := newHash().BlockSize()
	for _, split := range []int{bs - 1, bs, bs + 1, 2 * bs, 3*bs - 1, 3 * bs} {
		h := newHash()
		_, _ = h.Write(msg[:split])
		_, _ = h.Write(nil)
		_, _ = h.Write(msg[split:])
		if got := h.Sum(nil); !bytes.Equal(got, want) {
			t.Errorf("split at %d: Sum() = %x, want %x", split, got, want)
		}
	}
}

// MatchesReference compares newHash with the ecosystem implementation of
// the named algorithm over every length up to a few blocks and over random
// inputs.
func MatchesReference(t *testing.T, name string, newHash func() hash.Hash) {
	t.Helper()

	msg := Pattern(4*128 + 1)
	for n := 0; n <= len(msg); n++ {
		want, err := reference.Sum(name, msg[:n])
		if err != nil {
			t.Fatalf("reference.Sum() error = %v", err)
		}
		h := newHash()
		_, _ = h.Write(msg[:n])
		if got := h.Sum(nil); !bytes.Equal(got, want) {
			t.Fatalf("len %d: Sum() = %x, want %x", n, got, want)
		}
	}

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20; i++ {
		data := make([]byte, rng.IntN(1<<16))
		for j := range data {
			data[j] = byte(rng.Uint32())
		}
		want, err := reference.Sum(name, data)
		if err != nil {
			t.Fatalf("reference.Sum() error = %v", err)
		}
		h := newHash()
		_, _ = h.Write(data)
		if got := h.Sum(nil); !bytes.Equal(got, want) {
			t.Errorf("random input %d (%d bytes): Sum() = %x, want %x", i, len(data), got, want)
		}
	}
}
