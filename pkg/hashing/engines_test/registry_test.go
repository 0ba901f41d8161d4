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

package engines_test

import (
	"sort"
	"strings"
	"sync"
	"testing"

	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
	"github.com/sigstore/hashkit/pkg/hashing/engines/memory"
)

func testFactory() (hashengines.StreamingHashEngine, error) {
	return memory.New(hashengines.MD5, nil)
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		wantErr   bool
	}{
		{"md4", "md4", false},
		{"md5", "md5", false},
		{"sha1", "sha1", false},
		{"sha224", "sha224", false},
		{"sha256", "sha256", false},
		{"sha384", "sha384", false},
		{"sha512", "sha512", false},
		{"case sensitive", "SHA256", true},
		{"unsupported", "blake2b", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := hashengines.Create(tt.algorithm)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && engine == nil {
				t.Error("Create() returned nil engine without error")
			}
			if tt.wantErr && !strings.Contains(err.Error(), "sha256") {
				t.Errorf("Create() error = %q, want it to list supported algorithms", err)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		factory   hashengines.HashEngineFactory
		wantErr   bool
	}{
		{"valid registration", "test-algo", testFactory, false},
		{"empty algorithm", "", testFactory, true},
		{"nil factory", "test-nil", nil, true},
		{"builtin name", "sha1", testFactory, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hashengines.Register(tt.algorithm, tt.factory)
			if (err != nil) != tt.wantErr {
				t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				_ = hashengines.Unregister(tt.algorithm)
			}
		})
	}
}

func TestMustRegister_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustRegister() should panic on duplicate registration")
		}
	}()

	hashengines.MustRegister("sha256", testFactory)
}

func TestSupportedAlgorithms(t *testing.T) {
	algorithms := hashengines.SupportedAlgorithms()

	for _, alg := range hashengines.Algorithms() {
		found := false
		for _, name := range algorithms {
			if name == alg.String() {
				found = true
			}
		}
		if !found {
			t.Errorf("SupportedAlgorithms() missing %s", alg)
		}
	}

	if !sort.StringsAreSorted(algorithms) {
		t.Errorf("SupportedAlgorithms() = %v, not sorted", algorithms)
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		algorithm string
		want      bool
	}{
		{"sha256", true},
		{"md4", true},
		{"blake2b", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := hashengines.IsSupported(tt.algorithm); got != tt.want {
			t.Errorf("IsSupported(%q) = %v, want %v", tt.algorithm, got, tt.want)
		}
	}
}

func TestUnregister(t *testing.T) {
	if err := hashengines.Register("unregister-test", testFactory); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if !hashengines.IsSupported("unregister-test") {
		t.Fatal("IsSupported() = false after Register()")
	}

	if err := hashengines.Unregister("unregister-test"); err != nil {
		t.Errorf("Unregister() error = %v", err)
	}
	if hashengines.IsSupported("unregister-test") {
		t.Error("IsSupported() = true after Unregister()")
	}
	if err := hashengines.Unregister("unregister-test"); err == nil {
		t.Error("Unregister() of unknown algorithm error = nil")
	}
}

func TestConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = hashengines.SupportedAlgorithms()
			_ = hashengines.IsSupported("sha256")
			if e, err := hashengines.Create("sha256"); err == nil {
				_ = e.Update([]byte("data"))
			}
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = hashengines.Register("concurrent-test", testFactory)
			_ = hashengines.Unregister("concurrent-test")
		}
	}()

	wg.Wait()
}
