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
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sigstore/hashkit/pkg/hashing/digests"
)

// ManifestItem pairs a canonical identifier with its digest.
//
//nolint:revive
type ManifestItem interface {
	Name() string
	Digest() digests.Digest
}

// FileManifestItem is a whole file, identified by its slash-separated path
// relative to the manifest root.
type FileManifestItem struct {
	path   string
	digest digests.Digest
}

// NewFileManifestItem converts path to slash form.
func NewFileManifestItem(path string, digest digests.Digest) *FileManifestItem {
	return &FileManifestItem{
		path:   filepath.ToSlash(path),
		digest: digest,
	}
}

func (item *FileManifestItem) Name() string           { return item.path }
func (item *FileManifestItem) Digest() digests.Digest { return item.digest }

// ShardedFileManifestItem is the [start, end) byte range of a file.
type ShardedFileManifestItem struct {
	path   string
	start  int64
	end    int64
	digest digests.Digest
}

// NewShardedFileManifestItem converts path to slash form.
func NewShardedFileManifestItem(path string, start, end int64, digest digests.Digest) *ShardedFileManifestItem {
	return &ShardedFileManifestItem{
		path:   filepath.ToSlash(path),
		start:  start,
		end:    end,
		digest: digest,
	}
}

// Name returns "path:start:end".
func (item *ShardedFileManifestItem) Name() string {
	return fmt.Sprintf("%s:%d:%d", item.path, item.start, item.end)
}

func (item *ShardedFileManifestItem) Digest() digests.Digest { return item.digest }

// Path returns the file the shard belongs to.
func (item *ShardedFileManifestItem) Path() string { return item.path }

// Range returns the shard offsets.
func (item *ShardedFileManifestItem) Range() (start, end int64) { return item.start, item.end }

// parseShardName splits "path:start:end" from the right, so the path may
// itself contain colons.
func parseShardName(name string) (path string, start, end int64, err error) {
	i := strings.LastIndex(name, ":")
	if i < 0 {
		return "", 0, 0, fmt.Errorf("invalid shard name %q: want path:start:end", name)
	}
	j := strings.LastIndex(name[:i], ":")
	if j <= 0 {
		return "", 0, 0, fmt.Errorf("invalid shard name %q: want path:start:end", name)
	}

	path = name[:j]
	if start, err = strconv.ParseInt(name[j+1:i], 10, 64); err != nil {
		return "", 0, 0, fmt.Errorf("invalid shard start in %q: %w", name, err)
	}
	if end, err = strconv.ParseInt(name[i+1:], 10, 64); err != nil {
		return "", 0, 0, fmt.Errorf("invalid shard end in %q: %w", name, err)
	}
	if start < 0 || end <= start {
		return "", 0, 0, fmt.Errorf("invalid shard range in %q", name)
	}
	return path, start, end, nil
}
