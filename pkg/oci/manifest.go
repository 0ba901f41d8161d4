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


// Package oci reads OCI image manifests so the digests they record can be
// verified against files on disk.
//
// A layer annotated with org.opencontainers.image.title, as ORAS writes
// them, is matched to the file of that name. Other blobs are matched to
// their location in an OCI image layout, blobs/<algorithm>/<hex>.
package oci

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/sigstore/hashkit/pkg/hashing/digests"
	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
	"github.com/sigstore/hashkit/pkg/manifest"
)

const (
	// AnnotationTitle names the file a layer was created from.
	AnnotationTitle = "org.opencontainers.image.title"
	// AnnotationName is the image name; it becomes the manifest name.
	AnnotationName = "org.opencontainers.image.ref.name"
)

// ImageManifest is an OCI image manifest.
// See https://github.com/opencontainers/image-spec/blob/main/manifest.md
type ImageManifest struct {
	SchemaVersion int               `json:"schemaVersion"`
	MediaType     string            `json:"mediaType,omitempty"`
	Config        Descriptor        `json:"config"`
	Layers        []Descriptor      `json:"layers"`
	Annotations   map[string]string `json:"annotations,omitempty"`
}

// Descriptor describes a content-addressable blob.
type Descriptor struct {
	MediaType   string            `json:"mediaType"`
	Digest      string            `json:"digest"`
	Size        int64             `json:"size"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

// IsImageManifest reports whether data looks like an OCI image manifest
// rather than a hashkit manifest.
func IsImageManifest(data []byte) bool {
	var probe struct {
		SchemaVersion *int            `json:"schemaVersion"`
		Layers        json.RawMessage `json:"layers"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.SchemaVersion != nil && probe.Layers != nil
}

// ParseManifest decodes and validates an OCI image manifest.
func ParseManifest(data []byte) (*ImageManifest, error) {
	var m ImageManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse OCI manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the schema version and that every digest uses a
// supported algorithm and has the right length.
func (m *ImageManifest) Validate() error {
	if m.SchemaVersion != 2 {
		return fmt.Errorf("invalid schemaVersion: expected 2, got %d", m.SchemaVersion)
	}
	if m.Config.Digest == "" {
		return fmt.Errorf("config descriptor missing digest")
	}
	if _, err := parseDigest(m.Config.Digest); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if len(m.Layers) == 0 {
		return fmt.Errorf("manifest must have at least one layer")
	}
	for i, layer := range m.Layers {
		if _, err := parseDigest(layer.Digest); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}

// SumEntries returns one entry per layer, plus the config blob when
// includeConfig is set. Entries are in manifest order.
func (m *ImageManifest) SumEntries(includeConfig bool) ([]manifest.SumEntry, error) {
	var entries []manifest.SumEntry
	if includeConfig {
		e, err := entryFor(m.Config)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		entries = append(entries, e)
	}
	for i, layer := range m.Layers {
		e, err := entryFor(layer)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ToManifest converts m into a file manifest. All digests must share one
// algorithm.
func (m *ImageManifest) ToManifest(includeConfig bool) (*manifest.Manifest, error) {
	entries, err := m.SumEntries(includeConfig)
	if err != nil {
		return nil, err
	}
	alg, err := hashengines.ParseAlgorithm(entries[0].Digest.Algorithm())
	if err != nil {
		return nil, err
	}
	for _, e := range entries[1:] {
		if e.Digest.Algorithm() != alg.String() {
			return nil, fmt.Errorf("mixed digest algorithms %s and %s", alg, e.Digest.Algorithm())
		}
	}

	name := m.Annotations[AnnotationName]
	if name == "" {
		name = "oci-image"
	}
	return manifest.ManifestFromSumEntries(name, alg, entries)
}

func entryFor(desc Descriptor) (manifest.SumEntry, error) {
	d, err := parseDigest(desc.Digest)
	if err != nil {
		return manifest.SumEntry{}, err
	}
	p := desc.Annotations[AnnotationTitle]
	if p == "" {
		p = BlobPath(d)
	}
	return manifest.SumEntry{Path: p, Digest: d, Binary: true}, nil
}

// BlobPath is the location of a blob inside an OCI image layout.
func BlobPath(d digests.Digest) string {
	return path.Join("blobs", d.Algorithm(), d.Hex())
}

// parseDigest decodes "algorithm:hex" and checks the digest size. The
// algorithm name is normalized, so "SHA256:..." is accepted.
func parseDigest(s string) (digests.Digest, error) {
	if s == "" {
		return digests.Digest{}, fmt.Errorf("missing digest")
	}
	name, value, ok := strings.Cut(s, ":")
	if !ok {
		return digests.Digest{}, fmt.Errorf("digest must be in format 'algorithm:hex', got %q", s)
	}
	alg, err := hashengines.ParseAlgorithm(name)
	if err != nil {
		return digests.Digest{}, err
	}
	d, err := digests.FromHex(alg.String(), value)
	if err != nil {
		return digests.Digest{}, err
	}
	if d.Size() != alg.Size() {
		return digests.Digest{}, fmt.Errorf("%s digest has %d bytes, want %d", alg, d.Size(), alg.Size())
	}
	return d, nil
}
