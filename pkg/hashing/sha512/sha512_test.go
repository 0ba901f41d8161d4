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

package sha512

import (
	"bytes"
	stdsha512 "crypto/sha512"
	"hash"
	"testing"

	"github.com/sigstore/hashkit/internal/testvectors"
	"github.com/sigstore/hashkit/pkg/hashing/blockhash"
)

func newHash() hash.Hash    { return New() }
func newHash384() hash.Hash { return New384() }

func TestSHA512_KnownAnswers(t *testing.T) {
	testvectors.KnownAnswers(t, newHash, map[string]string{
		"empty":           "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
		"abc":             "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f",
		"neque-94":        "5c3ae042ffabd0d90a4d93dbd7bddb1152c0d391898553aa1674fa6df5bcf602791eeb3e9e9aba28ad2a22ebf5443920b1483319269f348410713645c6fc2637",
		"lorem-ipsum":     "338bd5f492d825889b263dfe4d63e9355fff8098c0e5c5f6e0c6a092c07c67a8b3df0e62c21928be592dbd5788bdad4d80df6709ead6a1cd75189a35011ccf86",
		"neque-64":        "ad61c810586629567d69eaa77c9bc72703de5fe1ffce09b97b701299e0f3d19231c8a0ed05c468df23859a0ba400357542168cde59df45a933d39026abaf7bb9",
		"neque-60":        "9fd03e7d27144bf725d5a8f58c2eb74dbefe227cd439c7a57204437d373a3655b52f39d60244b861d88324ac53c98e0f02ba774b4e13e6124dc52ebeb9730974",
		"english-history": "4e56b4ae3437f0290dbc6dc1c4f8bf8ab2749d1f6d9efe041b6a276fc5d8f2cc6750fdfef1bf49a58d84ce6eeaf054e57d7700236ad8fa4129d84cd7291688c6",
	})
}

func TestSHA384_KnownAnswers(t *testing.T) {
	testvectors.KnownAnswers(t, newHash384, map[string]string{
		"empty":           "38b060a751ac96384cd9327eb1b1e36a21fdb71114be07434c0cc7bf63f6e1da274edebfe76f65fbd51ad2f14898b95b",
		"abc":             "cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed8086072ba1e7cc2358baeca134c825a7",
		"neque-94":        "c9290606bdc03eb2f698d5f5a3739041bdafc686d9aaf4d55d081644d2c2bf87736f810a9908178ee6f1cd5ff6feecba",
		"lorem-ipsum":     "8bd67f75f21da0d5f04a9c77ceab9897f9dec06710a977ad36cbb29e8d0658ce9042b28429563c62a6c0f847b4f7c81e",
		"neque-64":        "478599c5d02aff63c7434e03f7db5e9b327184f68a55857ee575c43d255b1529ec214d4c8523cf412bf52f4f34c4ada3",
		"neque-60":        "2a2b947479430bad4f1ba2140f90eb8e4e53c9ee55dd0be86475093a308e5e5aab3ccfa628afb9bc906d674bcac3ac49",
		"english-history": "f0f93d8843715e659b9a8e7c693cce8aae6423b2122f3a53f000b36b4b946bcfadbd557fc56704c33550d5e09900af9c",
	})
}

func TestSHA512_StreamingEquivalence(t *testing.T) {
	testvectors.StreamingEquivalence(t, newHash)
	testvectors.StreamingEquivalence(t, newHash384)
}

func TestSHA512_MatchesReference(t *testing.T) {
	testvectors.MatchesReference(t, "sha512", newHash)
	testvectors.MatchesReference(t, "sha384", newHash384)
}

// Messages of 112 to 119 bytes past a block boundary leave room for a
// 64-bit length but not for the 128-bit field, so they need two final
// compressions.
func TestSHA512_WideLengthField(t *testing.T) {
	msg := testvectors.Pattern(3 * BlockSize)
	for _, base := range []int{0, BlockSize} {
		for n := base + 104; n < base+BlockSize; n++ {
			got := Sum512(msg[:n])
			want := stdsha512.Sum512(msg[:n])
			if !bytes.Equal(got[:], want[:]) {
				t.Errorf("len %d: Sum512() = %x, want %x", n, got, want)
			}
		}
	}
}

type untruncated384 struct{ state384 }

func (s *untruncated384) Digest() []byte { return s.shaped() }
func (s *untruncated384) Size() int      { return Size }

func TestSHA384_IsTruncatedState(t *testing.T) {
	for _, m := range testvectors.All() {
		full := blockhash.New[untruncated384]()
		if err := full.Update([]byte(m.Text)); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		shaped := full.Finalize()

		got := Sum384([]byte(m.Text))
		if !bytes.Equal(got[:], shaped[:Size384]) {
			t.Errorf("%s: Sum384() = %x, want prefix of %x", m.Name, got, shaped)
		}
	}
}

func TestSizes(t *testing.T) {
	if New().Size() != Size || New384().Size() != Size384 {
		t.Errorf("Size() = %d, %d, want %d, %d", New().Size(), New384().Size(), Size, Size384)
	}
	if New().BlockSize() != BlockSize {
		t.Errorf("BlockSize() = %d, want %d", New().BlockSize(), BlockSize)
	}
}
