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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sigstore/hashkit/pkg/hashing/digests"
	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
)

// SumEntry is one line of a coreutils style checksum file.
type SumEntry struct {
	Path   string
	Digest digests.Digest
	// Binary is set when the line used the '*' marker.
	Binary bool
}

// WriteSumFile writes entries as "<hex>  <path>" lines. Paths holding a
// newline or backslash are escaped and the line is prefixed with '\', as
// sha256sum does.
func WriteSumFile(w io.Writer, entries []SumEntry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		path, escaped := escapePath(e.Path)
		if escaped {
			if err := bw.WriteByte('\\'); err != nil {
				return err
			}
		}
		marker := " "
		if e.Binary {
			marker = "*"
		}
		if _, err := fmt.Fprintf(bw, "%s %s%s\n", e.Digest.Hex(), marker, path); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteTaggedSumFile writes entries in the BSD "SHA256 (path) = hex"
// form, tagged with each digest's algorithm name in upper case.
func WriteTaggedSumFile(w io.Writer, entries []SumEntry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		path, escaped := escapePath(e.Path)
		if escaped {
			if err := bw.WriteByte('\\'); err != nil {
				return err
			}
		}
		tag := strings.ToUpper(e.Digest.Algorithm())
		if _, err := fmt.Fprintf(bw, "%s (%s) = %s\n", tag, path, e.Digest.Hex()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseSumFile reads the format written by WriteSumFile and by md5sum,
// sha1sum and sha256sum. BSD tagged lines such as "SHA256 (path) = hex"
// are accepted too. Blank lines and lines starting with '#' are skipped.
//
// Untagged lines carry no algorithm name. Their digests are labelled with
// defaultAlgorithm when it is valid, and otherwise with the algorithm
// whose digest size matches the hex length.
func ParseSumFile(r io.Reader, defaultAlgorithm hashengines.Algorithm) ([]SumEntry, error) {
	var entries []SumEntry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseSumLine(line, defaultAlgorithm)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read sum file: %w", err)
	}
	return entries, nil
}

func parseSumLine(line string, defaultAlgorithm hashengines.Algorithm) (SumEntry, error) {
	escaped := strings.HasPrefix(line, "\\")
	if escaped {
		line = line[1:]
	}

	if entry, ok, err := parseTaggedLine(line, escaped); ok || err != nil {
		return entry, err
	}

	sum, rest, ok := strings.Cut(line, " ")
	if !ok || len(rest) < 2 || (rest[0] != ' ' && rest[0] != '*') {
		return SumEntry{}, fmt.Errorf("malformed checksum line %q", line)
	}
	path := rest[1:]
	if escaped {
		path = unescapePath(path)
	}

	alg := defaultAlgorithm
	if !alg.Valid() {
		var err error
		if alg, err = AlgorithmForHexLength(len(sum)); err != nil {
			return SumEntry{}, err
		}
	}
	d, err := digests.FromHex(alg.String(), sum)
	if err != nil {
		return SumEntry{}, err
	}
	if d.Size() != alg.Size() {
		return SumEntry{}, fmt.Errorf("%s digest for %q has %d bytes, want %d", alg, path, d.Size(), alg.Size())
	}
	return SumEntry{Path: path, Digest: d, Binary: rest[0] == '*'}, nil
}

// parseTaggedLine handles "ALG (path) = hex". ok is false when the line
// is not in tagged form.
func parseTaggedLine(line string, escaped bool) (entry SumEntry, ok bool, err error) {
	tag, rest, found := strings.Cut(line, " (")
	if !found || strings.Contains(tag, " ") {
		return SumEntry{}, false, nil
	}
	i := strings.LastIndex(rest, ") = ")
	if i < 0 {
		return SumEntry{}, false, nil
	}
	alg, err := hashengines.ParseAlgorithm(tag)
	if err != nil {
		return SumEntry{}, false, nil
	}

	path := rest[:i]
	if escaped {
		path = unescapePath(path)
	}
	d, err := digests.FromHex(alg.String(), rest[i+len(") = "):])
	if err != nil {
		return SumEntry{}, true, err
	}
	if d.Size() != alg.Size() {
		return SumEntry{}, true, fmt.Errorf("%s digest for %q has %d bytes, want %d", alg, path, d.Size(), alg.Size())
	}
	return SumEntry{Path: path, Digest: d, Binary: true}, true, nil
}

// AlgorithmForHexLength picks the algorithm whose digest has n hex
// characters. A 32 character digest is taken as MD5 rather than MD4.
func AlgorithmForHexLength(n int) (hashengines.Algorithm, error) {
	if n == 2*hashengines.MD5.Size() {
		return hashengines.MD5, nil
	}
	for _, alg := range hashengines.Algorithms() {
		if 2*alg.Size() == n {
			return alg, nil
		}
	}
	return 0, fmt.Errorf("no algorithm produces a %d character hex digest", n)
}

// ManifestFromSumEntries builds a file-level manifest from entries.
func ManifestFromSumEntries(name string, alg hashengines.Algorithm, entries []SumEntry) (*Manifest, error) {
	st := NewFileSerialization(alg.String(), false, nil)
	items := make([]ManifestItem, 0, len(entries))
	for _, e := range entries {
		item, err := st.NewItem(e.Path, e.Digest)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return NewManifest(name, items, st), nil
}

// SumEntriesFromManifest returns one entry per resource, in identifier
// order.
func SumEntriesFromManifest(m *Manifest) []SumEntry {
	descs := m.ResourceDescriptors()
	entries := make([]SumEntry, 0, len(descs))
	for _, rd := range descs {
		entries = append(entries, SumEntry{Path: rd.Identifier, Digest: rd.Digest})
	}
	return entries
}

var (
	pathEscaper   = strings.NewReplacer("\\", "\\\\", "\n", "\\n", "\r", "\\r")
	pathUnescaper = strings.NewReplacer("\\\\", "\\", "\\n", "\n", "\\r", "\r")
)

func escapePath(p string) (string, bool) {
	if !strings.ContainsAny(p, "\\\n\r") {
		return p, false
	}
	return pathEscaper.Replace(p), true
}

func unescapePath(p string) string {
	return pathUnescaper.Replace(p)
}
