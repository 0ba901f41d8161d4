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
	"encoding/hex"
	"encoding/json"
	"testing"
)

func TestAlgorithm_New(t *testing.T) {
	tests := []struct {
		alg       Algorithm
		size      int
		blockSize int
		abc       string
	}{
		{MD4, 16, 64, "a448017aaf21d8525fc10ae87aa6729d"},
		{MD5, 16, 64, "900150983cd24fb0d6963f7d28e17f72"},
		{SHA1, 20, 64, "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{SHA224, 28, 64, "23097d223405d8228642a477bda255b32aadbce4bda0b3f7e36c9da7"},
		{SHA256, 32, 64, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{SHA384, 48, 128, "cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed8086072ba1e7cc2358baeca134c825a7"},
		{SHA512, 64, 128, "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
	}

	for _, tt := range tests {
		t.Run(tt.alg.String(), func(t *testing.T) {
			if tt.alg.Size() != tt.size {
				t.Errorf("Size() = %d, want %d", tt.alg.Size(), tt.size)
			}
			if tt.alg.BlockSize() != tt.blockSize {
				t.Errorf("BlockSize() = %d, want %d", tt.alg.BlockSize(), tt.blockSize)
			}

			h, err := tt.alg.New()
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if h.Size() != tt.size || h.BlockSize() != tt.blockSize {
				t.Errorf("hasher sizes = %d/%d, want %d/%d", h.Size(), h.BlockSize(), tt.size, tt.blockSize)
			}
			if err := h.Update([]byte("abc")); err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			if h.Len() != 3 {
				t.Errorf("Len() = %d, want 3", h.Len())
			}
			if got := hex.EncodeToString(h.Finalize()); got != tt.abc {
				t.Errorf("Finalize() = %q, want %q", got, tt.abc)
			}
		})
	}
}

func TestAlgorithm_Invalid(t *testing.T) {
	var a Algorithm
	if a.Valid() {
		t.Error("Valid() = true for zero Algorithm")
	}
	if _, err := a.New(); err == nil {
		t.Error("New() error = nil for zero Algorithm")
	}
	if got := Algorithm(42).String(); got != "Algorithm(42)" {
		t.Errorf("String() = %q, want %q", got, "Algorithm(42)")
	}
	if a.Size() != 0 {
		t.Errorf("Size() = %d, want 0", a.Size())
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"md4", MD4, false},
		{"MD5", MD5, false},
		{"sha-1", SHA1, false},
		{"SHA-224", SHA224, false},
		{" sha256 ", SHA256, false},
		{"sha384", SHA384, false},
		{"Sha512", SHA512, false},
		{"blake2b", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAlgorithm() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAlgorithm() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAlgorithm_TextRoundTrip(t *testing.T) {
	type config struct {
		Algorithm Algorithm `json:"algorithm"`
	}

	out, err := json.Marshal(config{Algorithm: SHA384})
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(out) != `{"algorithm":"sha384"}` {
		t.Errorf("json.Marshal() = %s, want %s", out, `{"algorithm":"sha384"}`)
	}

	var c config
	if err := json.Unmarshal([]byte(`{"algorithm":"SHA-1"}`), &c); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if c.Algorithm != SHA1 {
		t.Errorf("json.Unmarshal() = %v, want %v", c.Algorithm, SHA1)
	}

	if err := json.Unmarshal([]byte(`{"algorithm":"crc32"}`), &c); err == nil {
		t.Error("json.Unmarshal() error = nil for unknown algorithm")
	}
}

func TestAlgorithms_Order(t *testing.T) {
	want := []string{"md4", "md5", "sha1", "sha224", "sha256", "sha384", "sha512"}
	got := Algorithms()
	if len(got) != len(want) {
		t.Fatalf("Algorithms() returned %d entries, want %d", len(got), len(want))
	}
	for i, a := range got {
		if a.String() != want[i] {
			t.Errorf("Algorithms()[%d] = %q, want %q", i, a, want[i])
		}
	}
}
