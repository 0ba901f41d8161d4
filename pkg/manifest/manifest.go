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

// Package manifest pairs file and shard identifiers with their digests,
// records how they were computed, and compares two such sets.
package manifest

import (
	"encoding/json"
	"fmt"
	"maps"
	"sort"

	"github.com/sigstore/hashkit/pkg/hashing/digests"
	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
	"github.com/sigstore/hashkit/pkg/hashing/engines/memory"
)

// ResourceDescriptor is one entry of a manifest.
type ResourceDescriptor struct {
	// Identifier is the file path, or "path:start:end" for a shard.
	Identifier string

	Digest digests.Digest
}

// Manifest maps identifiers to digests and records the serialization type
// that produced them.
type Manifest struct {
	name              string
	items             map[string]digests.Digest
	serializationType SerializationType
}

// NewManifest keys items by their Name. A later item with the same name
// replaces an earlier one.
func NewManifest(name string, items []ManifestItem, serializationType SerializationType) *Manifest {
	itemMap := make(map[string]digests.Digest, len(items))
	for _, it := range items {
		itemMap[it.Name()] = it.Digest()
	}
	return &Manifest{
		name:              name,
		items:             itemMap,
		serializationType: serializationType,
	}
}

// ModelName returns the informative name of the manifest. It does not
// take part in Equal.
func (m *Manifest) ModelName() string {
	return m.name
}

// SerializationType returns how the manifest was produced.
func (m *Manifest) SerializationType() SerializationType {
	return m.serializationType
}

// SerializationParameters returns a copy of the serialization parameters.
func (m *Manifest) SerializationParameters() map[string]any {
	if m.serializationType == nil {
		return map[string]any{}
	}
	return maps.Clone(m.serializationType.Parameters())
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	return len(m.items)
}

// Lookup returns the digest recorded for identifier.
func (m *Manifest) Lookup(identifier string) (digests.Digest, bool) {
	d, ok := m.items[identifier]
	return d, ok
}

// Equal reports whether both manifests hold the same identifiers with
// equal digests. Name and serialization type are ignored.
func (m *Manifest) Equal(other *Manifest) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	if len(m.items) != len(other.items) {
		return false
	}
	for name, digest := range m.items {
		otherDigest, ok := other.items[name]
		if !ok || !digest.Equal(otherDigest) {
			return false
		}
	}
	return true
}

// ResourceDescriptors returns the entries sorted by identifier.
func (m *Manifest) ResourceDescriptors() []ResourceDescriptor {
	ids := make([]string, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	descs := make([]ResourceDescriptor, 0, len(ids))
	for _, id := range ids {
		descs = append(descs, ResourceDescriptor{
			Identifier: id,
			Digest:     m.items[id],
		})
	}
	return descs
}

// RootDigest hashes the raw digest bytes of every entry, in identifier
// order, with alg.
func (m *Manifest) RootDigest(alg hashengines.Algorithm) (digests.Digest, error) {
	descs := m.ResourceDescriptors()
	list := make([]digests.Digest, 0, len(descs))
	for _, rd := range descs {
		list = append(list, rd.Digest)
	}
	return memory.ComputeRootDigest(alg, list)
}

type jsonResource struct {
	Name      string `json:"name"`
	Algorithm string `json:"algorithm"`
	Digest    string `json:"digest"`
}

type jsonManifest struct {
	Name          string         `json:"name,omitempty"`
	Serialization map[string]any `json:"serialization"`
	Resources     []jsonResource `json:"resources"`
}

// MarshalJSON encodes the manifest with resources in identifier order.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	out := jsonManifest{
		Name:          m.name,
		Serialization: m.SerializationParameters(),
		Resources:     []jsonResource{},
	}
	for _, rd := range m.ResourceDescriptors() {
		out.Resources = append(out.Resources, jsonResource{
			Name:      rd.Identifier,
			Algorithm: rd.Digest.Algorithm(),
			Digest:    rd.Digest.Hex(),
		})
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form written by MarshalJSON. Every resource
// name must be valid for the recorded serialization type.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var in jsonManifest
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decode manifest: %w", err)
	}

	st, err := SerializationTypeFromArgs(in.Serialization)
	if err != nil {
		return fmt.Errorf("decode manifest: %w", err)
	}

	items := make([]ManifestItem, 0, len(in.Resources))
	for _, r := range in.Resources {
		d, err := digests.FromHex(r.Algorithm, r.Digest)
		if err != nil {
			return fmt.Errorf("decode manifest resource %q: %w", r.Name, err)
		}
		item, err := st.NewItem(r.Name, d)
		if err != nil {
			return fmt.Errorf("decode manifest resource %q: %w", r.Name, err)
		}
		items = append(items, item)
	}

	*m = *NewManifest(in.Name, items, st)
	return nil
}
