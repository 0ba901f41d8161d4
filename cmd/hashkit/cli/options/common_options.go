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

package options

import (
	"strings"

	"github.com/spf13/cobra"

	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
	hashio "github.com/sigstore/hashkit/pkg/hashing/engines/io"
)

// FlagAdder is a flag group that registers itself on a command.
type FlagAdder interface {
	AddFlags(cmd *cobra.Command)
}

// AddAllFlags registers several flag groups.
func AddAllFlags(cmd *cobra.Command, groups ...FlagAdder) {
	for _, g := range groups {
		g.AddFlags(cmd)
	}
}

// AlgorithmFlags selects the digest algorithm.
type AlgorithmFlags struct {
	Algorithm string // --algorithm
}

func (o *AlgorithmFlags) AddFlags(cmd *cobra.Command) {
	names := make([]string, 0, len(hashengines.Algorithms()))
	for _, a := range hashengines.Algorithms() {
		names = append(names, a.String())
	}
	cmd.Flags().StringVarP(&o.Algorithm, "algorithm", "a", "sha256",
		"digest algorithm ("+strings.Join(names, ", ")+")")
	_ = cmd.RegisterFlagCompletionFunc("algorithm", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// ParsedAlgorithm resolves --algorithm.
func (o *AlgorithmFlags) ParsedAlgorithm() (hashengines.Algorithm, error) {
	return hashengines.ParseAlgorithm(o.Algorithm)
}

// ReadFlags tune how files are read.
type ReadFlags struct {
	ChunkSize  int // --chunk-size
	MaxWorkers int // --max-workers
}

func (o *ReadFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.ChunkSize, "chunk-size", hashio.DefaultChunkSize,
		"bytes read from a file per update")
	cmd.Flags().IntVar(&o.MaxWorkers, "max-workers", 0,
		"files or shards hashed at once when hashing a directory (0 uses every CPU)")
}

// TreeFlags control which files under a directory are hashed.
type TreeFlags struct {
	IgnorePaths    []string // --ignore-paths
	IgnoreGitPaths bool     // --ignore-git-paths
	AllowSymlinks  bool     // --allow-symlinks
}

func (o *TreeFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&o.IgnorePaths, "ignore-paths", nil,
		"paths under a directory to skip, relative to it")
	cmd.Flags().BoolVar(&o.IgnoreGitPaths, "ignore-git-paths", true,
		"skip .git, .github and git attribute files")
	cmd.Flags().BoolVar(&o.AllowSymlinks, "allow-symlinks", false,
		"follow symbolic links to files")
}
