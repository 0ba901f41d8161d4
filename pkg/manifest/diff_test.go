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

package manifest

import (
	"reflect"
	"strings"
	"testing"
)

func TestComputeDiff(t *testing.T) {
	zero := strings.Repeat("0", 64)
	actual := fileManifest(t, "actual", map[string]string{
		"same":    sha256ABC,
		"changed": zero,
		"extra2":  sha256ABC,
		"extra1":  sha256ABC,
	})
	expected := fileManifest(t, "expected", map[string]string{
		"same":    sha256ABC,
		"changed": sha256ABC,
		"missing": sha256ABC,
	})

	diff := ComputeDiff(actual, expected)

	if want := []string{"extra1", "extra2"}; !reflect.DeepEqual(diff.ExtraFiles, want) {
		t.Errorf("ExtraFiles = %v, want %v", diff.ExtraFiles, want)
	}
	if want := []string{"missing"}; !reflect.DeepEqual(diff.MissingFiles, want) {
		t.Errorf("MissingFiles = %v, want %v", diff.MissingFiles, want)
	}
	if want := []string{"same"}; !reflect.DeepEqual(diff.Matches, want) {
		t.Errorf("Matches = %v, want %v", diff.Matches, want)
	}
	wantMismatch := []HashMismatch{{Identifier: "changed", ExpectedHash: sha256ABC, ActualHash: zero}}
	if !reflect.DeepEqual(diff.Mismatches, wantMismatch) {
		t.Errorf("Mismatches = %v, want %v", diff.Mismatches, wantMismatch)
	}
	if diff.IsEmpty() {
		t.Error("IsEmpty() = true")
	}
}

func TestComputeDiff_Identical(t *testing.T) {
	m := fileManifest(t, "m", map[string]string{"a": sha256ABC, "b": sha256ABC})

	diff := ComputeDiff(m, m)
	if !diff.IsEmpty() {
		t.Errorf("IsEmpty() = false: %+v", diff)
	}
	if len(diff.Matches) != 2 {
		t.Errorf("Matches = %v, want 2 entries", diff.Matches)
	}
}

func TestComputeDiff_IgnoresAlgorithmName(t *testing.T) {
	a := NewManifest("a", []ManifestItem{NewFileManifestItem("f", mustHex(t, "sha256", sha256ABC))}, NewFileSerialization("sha256", false, nil))
	b := NewManifest("b", []ManifestItem{NewFileManifestItem("f", mustHex(t, "sha-256", sha256ABC))}, NewFileSerialization("sha256", false, nil))

	if diff := ComputeDiff(a, b); !diff.IsEmpty() {
		t.Errorf("ComputeDiff() = %+v, want empty", diff)
	}
	if a.Equal(b) {
		t.Error("Equal() = true for differently named algorithms")
	}
}

func TestComputeDiff_Empty(t *testing.T) {
	empty := NewManifest("e", nil, NewFileSerialization("md5", false, nil))
	diff := ComputeDiff(empty, empty)
	if diff.ExtraFiles == nil || diff.MissingFiles == nil || diff.Mismatches == nil || diff.Matches == nil {
		t.Errorf("ComputeDiff() returned nil slices: %+v", diff)
	}
}
