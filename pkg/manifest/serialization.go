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

	"github.com/sigstore/hashkit/pkg/hashing/digests"
)

// SerializationType records how a manifest was produced, with enough
// parameters to reproduce it from the same directory.
type SerializationType interface {
	// Method returns "files" or "shards".
	Method() string

	// HashAlgorithm returns the canonical name of the content algorithm.
	HashAlgorithm() string

	// Parameters returns the method and its arguments. The map can be
	// encoded to JSON and passed back to SerializationTypeFromArgs.
	Parameters() map[string]any

	// NewItem builds the ManifestItem matching this method from an
	// identifier and its digest.
	NewItem(name string, digest digests.Digest) (ManifestItem, error)
}

const (
	fileMethod  = "files"
	shardMethod = "shards"
)

// SerializationTypeFromArgs is the inverse of SerializationType.Parameters.
func SerializationTypeFromArgs(args map[string]any) (SerializationType, error) {
	p := NewParamExtractor(args)

	method, err := p.GetString("method")
	if err != nil {
		return nil, fmt.Errorf("serialization args: %w", err)
	}
	hashType, err := p.GetString("hash_type")
	if err != nil {
		return nil, fmt.Errorf("%s serialization args: %w", method, err)
	}
	allowSymlinks, err := p.GetBoolOptional("allow_symlinks", false)
	if err != nil {
		return nil, fmt.Errorf("%s serialization args: %w", method, err)
	}
	ignorePaths, err := p.GetStringSlice("ignore_paths")
	if err != nil {
		return nil, fmt.Errorf("%s serialization args: %w", method, err)
	}

	switch method {
	case fileMethod:
		return NewFileSerialization(hashType, allowSymlinks, ignorePaths), nil
	case shardMethod:
		shardSize, err := p.GetInt64("shard_size")
		if err != nil {
			return nil, fmt.Errorf("shards serialization args: %w", err)
		}
		if shardSize <= 0 {
			return nil, fmt.Errorf("shards serialization args: shard_size must be positive, got %d", shardSize)
		}
		return NewShardSerialization(hashType, shardSize, allowSymlinks, ignorePaths), nil
	default:
		return nil, fmt.Errorf("unknown serialization type %q", method)
	}
}

// FileSerialization hashes every file as a single unit.
type FileSerialization struct {
	hashType      string
	allowSymlinks bool
	ignorePaths   []string
}

// NewFileSerialization returns a FileSerialization. ignorePaths is copied.
func NewFileSerialization(hashType string, allowSymlinks bool, ignorePaths []string) *FileSerialization {
	return &FileSerialization{
		hashType:      hashType,
		allowSymlinks: allowSymlinks,
		ignorePaths:   append([]string(nil), ignorePaths...),
	}
}

func (s *FileSerialization) Method() string        { return fileMethod }
func (s *FileSerialization) HashAlgorithm() string { return s.hashType }

// Parameters returns method, hash_type, allow_symlinks and, when set,
// ignore_paths.
func (s *FileSerialization) Parameters() map[string]any {
	params := map[string]any{
		"method":         s.Method(),
		"hash_type":      s.hashType,
		"allow_symlinks": s.allowSymlinks,
	}
	if len(s.ignorePaths) > 0 {
		params["ignore_paths"] = append([]string(nil), s.ignorePaths...)
	}
	return params
}

// NewItem treats name as a POSIX path.
func (s *FileSerialization) NewItem(name string, digest digests.Digest) (ManifestItem, error) {
	if name == "" {
		return nil, fmt.Errorf("empty file identifier")
	}
	return NewFileManifestItem(name, digest), nil
}

// ShardSerialization splits files into shardSize-byte shards and hashes
// each independently.
type ShardSerialization struct {
	FileSerialization
	shardSize int64
}

// NewShardSerialization returns a ShardSerialization. ignorePaths is
// copied.
func NewShardSerialization(hashType string, shardSize int64, allowSymlinks bool, ignorePaths []string) *ShardSerialization {
	return &ShardSerialization{
		FileSerialization: *NewFileSerialization(hashType, allowSymlinks, ignorePaths),
		shardSize:         shardSize,
	}
}

func (s *ShardSerialization) Method() string { return shardMethod }

// ShardSize returns the shard length in bytes.
func (s *ShardSerialization) ShardSize() int64 { return s.shardSize }

// Parameters adds shard_size to the file parameters.
func (s *ShardSerialization) Parameters() map[string]any {
	params := s.FileSerialization.Parameters()
	params["method"] = s.Method()
	params["shard_size"] = s.shardSize
	return params
}

// NewItem parses name as "path:start:end".
func (s *ShardSerialization) NewItem(name string, digest digests.Digest) (ManifestItem, error) {
	path, start, end, err := parseShardName(name)
	if err != nil {
		return nil, err
	}
	return NewShardedFileManifestItem(path, start, end, digest), nil
}
