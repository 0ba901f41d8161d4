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

import "sort"

// ManifestDiff lists how an actual manifest, computed from disk, departs
// from an expected one, typically read from a sum file.
//
//nolint:revive
type ManifestDiff struct {
	// ExtraFiles are in actual but not in expected.
	ExtraFiles []string

	// MissingFiles are in expected but not in actual.
	MissingFiles []string

	// Mismatches are in both with different digests.
	Mismatches []HashMismatch

	// Matches are in both with equal digests.
	Matches []string
}

// HashMismatch is one identifier whose digests differ.
type HashMismatch struct {
	Identifier   string
	ExpectedHash string
	ActualHash   string
}

// IsEmpty reports whether the manifests agree.
func (d *ManifestDiff) IsEmpty() bool {
	return len(d.ExtraFiles) == 0 && len(d.MissingFiles) == 0 && len(d.Mismatches) == 0
}

// ComputeDiff compares actual against expected. Digests compare by hex
// value only, so a sum file without algorithm names still matches. All
// slices are sorted.
func ComputeDiff(actual, expected *Manifest) *ManifestDiff {
	diff := &ManifestDiff{
		ExtraFiles:   []string{},
		MissingFiles: []string{},
		Mismatches:   []HashMismatch{},
		Matches:      []string{},
	}

	for id, ad := range actual.items {
		ed, ok := expected.items[id]
		switch {
		case !ok:
			diff.ExtraFiles = append(diff.ExtraFiles, id)
		case ad.Hex() != ed.Hex():
			diff.Mismatches = append(diff.Mismatches, HashMismatch{
				Identifier:   id,
				ExpectedHash: ed.Hex(),
				ActualHash:   ad.Hex(),
			})
		default:
			diff.Matches = append(diff.Matches, id)
		}
	}
	for id := range expected.items {
		if _, ok := actual.items[id]; !ok {
			diff.MissingFiles = append(diff.MissingFiles, id)
		}
	}

	sort.Strings(diff.ExtraFiles)
	sort.Strings(diff.MissingFiles)
	sort.Strings(diff.Matches)
	sort.Slice(diff.Mismatches, func(i, j int) bool {
		return diff.Mismatches[i].Identifier < diff.Mismatches[j].Identifier
	})
	return diff
}
