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

// Package hashing turns a directory tree into a manifest of file or shard
// digests using any of the hashkit algorithms.
package hashing

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
	hashio "github.com/sigstore/hashkit/pkg/hashing/engines/io"
	"github.com/sigstore/hashkit/pkg/hashing/engines/memory"
	"github.com/sigstore/hashkit/pkg/logging"
	"github.com/sigstore/hashkit/pkg/manifest"
)

const (
	methodFiles  = "files"
	methodShards = "shards"
)

// Config selects which files under a root are hashed and how.
type Config struct {
	method         string
	algorithm      hashengines.Algorithm
	allowSymlinks  bool
	ignoredPaths   []string
	ignoreGitPaths bool
	shardSize      int64
	chunkSize      int
	maxWorkers     int
	logger         logging.Logger
}

var gitRelatedPaths = []string{
	".git",
	".gitignore",
	".gitattributes",
	".github",
	".gitmodules",
}

// NewConfig returns whole-file SHA-256 hashing with hashio.DefaultChunkSize
// reads, no ignored paths and symlinks skipped.
func NewConfig() *Config {
	return &Config{
		method:    methodFiles,
		algorithm: hashengines.SHA256,
		chunkSize: hashio.DefaultChunkSize,
	}
}

// UseFileSerialization hashes each file as one unit with alg.
func (c *Config) UseFileSerialization(alg hashengines.Algorithm) *Config {
	c.method = methodFiles
	c.algorithm = alg
	return c
}

// UseShardSerialization splits each file into shardSize-byte shards and
// hashes every shard with alg.
func (c *Config) UseShardSerialization(alg hashengines.Algorithm, shardSize int64) *Config {
	c.method = methodShards
	c.algorithm = alg
	c.shardSize = shardSize
	return c
}

// SetIgnoredPaths replaces the ignore list. Relative entries are matched
// against paths relative to the root. When ignoreGitPaths is set the
// usual git metadata files are skipped too.
func (c *Config) SetIgnoredPaths(paths []string, ignoreGitPaths bool) *Config {
	c.ignoredPaths = append([]string(nil), paths...)
	c.ignoreGitPaths = ignoreGitPaths
	return c
}

// AddIgnoredPaths resolves paths against root and appends them.
func (c *Config) AddIgnoredPaths(root string, paths []string) *Config {
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		c.ignoredPaths = append(c.ignoredPaths, p)
	}
	return c
}

func (c *Config) SetAllowSymlinks(allow bool) *Config {
	c.allowSymlinks = allow
	return c
}

// SetChunkSize sets the read size. Zero selects hashio.DefaultChunkSize.
func (c *Config) SetChunkSize(size int) *Config {
	c.chunkSize = size
	return c
}

// SetMaxWorkers bounds how many files or shards are hashed at once. Zero
// or less selects runtime.NumCPU().
func (c *Config) SetMaxWorkers(n int) *Config {
	c.maxWorkers = n
	return c
}

func (c *Config) SetLogger(l logging.Logger) *Config {
	c.logger = l
	return c
}

// Algorithm returns the content algorithm.
func (c *Config) Algorithm() hashengines.Algorithm {
	return c.algorithm
}

// Validate reports configuration errors before any file is opened.
func (c *Config) Validate() error {
	if !c.algorithm.Valid() {
		return fmt.Errorf("unsupported hash algorithm %v", c.algorithm)
	}
	if c.chunkSize < 0 {
		return fmt.Errorf("chunk size must be non-negative, got %d", c.chunkSize)
	}
	switch c.method {
	case methodFiles:
	case methodShards:
		if c.shardSize <= 0 {
			return fmt.Errorf("shard size must be strictly positive, got %d", c.shardSize)
		}
	default:
		return fmt.Errorf("unknown serialization method %q", c.method)
	}
	return nil
}

// Hash builds a manifest for root. With files nil every file under root
// is hashed, subject to the ignore rules. Otherwise only files are hashed;
// relative entries are resolved against root.
func (c *Config) Hash(ctx context.Context, root string, files []string) (*manifest.Manifest, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log := logging.EnsureLogger(c.logger).WithFields(map[string]any{
		"algorithm": c.algorithm.String(),
		"method":    c.method,
	})

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}

	var paths []string
	if files != nil {
		paths = make([]string, len(files))
		for i, f := range files {
			if !filepath.IsAbs(f) {
				f = filepath.Join(absRoot, f)
			}
			paths[i] = f
		}
	} else {
		if paths, err = c.walkDirectory(absRoot, log); err != nil {
			return nil, fmt.Errorf("walk %q: %w", absRoot, err)
		}
	}
	log.Debug("hashing %d files under %s", len(paths), absRoot)

	var items []manifest.ManifestItem
	if c.method == methodShards {
		items, err = c.hashFilesWithShards(ctx, absRoot, paths, log)
	} else {
		items, err = c.hashFiles(ctx, absRoot, paths, log)
	}
	if err != nil {
		return nil, err
	}

	return manifest.NewManifest(filepath.Base(absRoot), items, c.SerializationType()), nil
}

func (c *Config) walkDirectory(root string, log logging.Logger) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && c.shouldIgnorePath(path, root) {
			log.Debug("ignoring %s", path)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			if !c.allowSymlinks {
				log.Debug("skipping symlink %s", path)
				return nil
			}
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("resolve symlink %s: %w", path, err)
			}
			if info.IsDir() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		files = append(files, path)
		return nil
	})
	return files, err
}

func (c *Config) shouldIgnorePath(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	for _, ignored := range c.ignoredPaths {
		compare := rel
		if filepath.IsAbs(ignored) {
			compare = path
		}
		ignored = filepath.Clean(ignored)
		if compare == ignored || strings.HasPrefix(compare, ignored+string(filepath.Separator)) {
			return true
		}
	}

	if c.ignoreGitPaths {
		first, _, _ := strings.Cut(rel, string(filepath.Separator))
		for _, g := range gitRelatedPaths {
			if first == g {
				return true
			}
		}
	}
	return false
}

func (c *Config) hashFiles(ctx context.Context, root string, paths []string, log logging.Logger) ([]manifest.ManifestItem, error) {
	return runPool(ctx, c.maxWorkers, paths, func(ctx context.Context, path string) (manifest.ManifestItem, error) {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, fmt.Errorf("relative path for %s: %w", path, err)
		}
		engine, err := c.newEngine()
		if err != nil {
			return nil, err
		}
		hasher, err := hashio.NewSimpleFileHasher(path, engine, c.chunkSize, "")
		if err != nil {
			return nil, err
		}
		digest, err := hasher.ComputeContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("hash %s: %w", path, err)
		}

		log.WithField("path", filepath.ToSlash(rel)).Debug("hashed file")
		return manifest.NewFileManifestItem(rel, digest), nil
	})
}

type shardJob struct {
	path, rel  string
	start, end int64
}

func (c *Config) hashFilesWithShards(ctx context.Context, root string, paths []string, log logging.Logger) ([]manifest.ManifestItem, error) {
	var jobs []shardJob
	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, fmt.Errorf("relative path for %s: %w", path, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		size := info.Size()
		for start := int64(0); start < size; start += c.shardSize {
			jobs = append(jobs, shardJob{path: path, rel: rel, start: start, end: min(start+c.shardSize, size)})
		}
		log.WithFields(map[string]any{"path": filepath.ToSlash(rel), "bytes": size}).Debug("queued shards")
	}

	return runPool(ctx, c.maxWorkers, jobs, func(ctx context.Context, j shardJob) (manifest.ManifestItem, error) {
		engine, err := c.newEngine()
		if err != nil {
			return nil, err
		}
		hasher, err := hashio.NewShardedFileHasher(j.path, engine, j.start, j.end, c.chunkSize, c.shardSize, "")
		if err != nil {
			return nil, err
		}
		digest, err := hasher.ComputeContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("hash %s[%d:%d]: %w", j.path, j.start, j.end, err)
		}
		return manifest.NewShardedFileManifestItem(j.rel, j.start, j.end, digest), nil
	})
}

// runPool applies fn to every job on at most workers goroutines, or
// runtime.NumCPU() when workers is not positive. Items come back in job
// order. The first error cancels the remaining jobs and is returned.
func runPool[J any](ctx context.Context, workers int, jobs []J, fn func(context.Context, J) (manifest.ManifestItem, error)) ([]manifest.ManifestItem, error) {
	if len(jobs) == 0 {
		return nil, ctx.Err()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(jobs))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		index int
		item  manifest.ManifestItem
		err   error
	}

	indexes := make(chan int)
	results := make(chan result, len(jobs))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for idx := range indexes {
				item, err := fn(ctx, jobs[idx])
				if err != nil {
					cancel()
				}
				results <- result{index: idx, item: item, err: err}
			}
		}()
	}

	go func() {
		defer close(indexes)
		for i := range jobs {
			select {
			case indexes <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	items := make([]manifest.ManifestItem, len(jobs))
	var firstErr error
	done := 0
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		items[res.index] = res.item
		done++
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if done != len(jobs) {
		// The feeder stopped early because the parent context ended.
		return nil, context.Cause(ctx)
	}
	return items, nil
}

func (c *Config) newEngine() (hashengines.StreamingHashEngine, error) {
	engine, err := memory.New(c.algorithm, nil)
	if err != nil {
		return nil, err
	}
	return engine, nil
}

// SerializationType describes this configuration for the manifest. The
// git paths are listed among the ignored paths when they are skipped, so
// the recorded parameters alone reproduce the walk.
func (c *Config) SerializationType() manifest.SerializationType {
	ignored := slices.Clone(c.ignoredPaths)
	if c.ignoreGitPaths {
		for _, g := range gitRelatedPaths {
			if !slices.Contains(ignored, g) {
				ignored = append(ignored, g)
			}
		}
	}
	if c.method == methodShards {
		return manifest.NewShardSerialization(c.algorithm.String(), c.shardSize, c.allowSymlinks, ignored)
	}
	return manifest.NewFileSerialization(c.algorithm.String(), c.allowSymlinks, ignored)
}
