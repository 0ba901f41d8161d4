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
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/sigstore/hashkit/pkg/hashing"
	"github.com/sigstore/hashkit/pkg/logging"
	"github.com/sigstore/hashkit/pkg/utils"
)

// Output formats of the sum command.
const (
	FormatText = "text"
	FormatTag  = "tag"
	FormatJSON = "json"
)

var sumFormats = []string{FormatText, FormatTag, FormatJSON}

// SumOptions are the flags of "hashkit sum".
type SumOptions struct {
	AlgorithmFlags
	ReadFlags
	TreeFlags
	ShardSize int64  // --shard-size
	Format    string // --format
	Binary    bool   // --binary
	Root      bool   // --root-digest
}

var _ FlagAdder = (*SumOptions)(nil)

func (o *SumOptions) AddFlags(cmd *cobra.Command) {
	AddAllFlags(cmd, &o.AlgorithmFlags, &o.ReadFlags, &o.TreeFlags)
	cmd.Flags().Int64Var(&o.ShardSize, "shard-size", 0,
		"hash directory files in shards of this many bytes; needs --format json")
	cmd.Flags().StringVarP(&o.Format, "format", "f", FormatText,
		"output format (text, tag, json)")
	cmd.Flags().BoolVarP(&o.Binary, "binary", "b", false,
		"mark entries with '*' in text output")
	cmd.Flags().BoolVar(&o.Root, "root-digest", false,
		"end text or tag output with a '# root' comment holding the digest of all listed digests")
}

// Validate checks flags and the path arguments.
func (o *SumOptions) Validate(paths []string) error {
	if _, err := o.ParsedAlgorithm(); err != nil {
		return err
	}
	if !slices.Contains(sumFormats, o.Format) {
		return fmt.Errorf("unknown format %q (want text, tag or json)", o.Format)
	}
	if err := utils.ValidateNonNegative("--chunk-size", int64(o.ChunkSize)); err != nil {
		return err
	}
	if err := utils.ValidateNonNegative("--max-workers", int64(o.MaxWorkers)); err != nil {
		return err
	}
	if err := utils.ValidateNonNegative("--shard-size", o.ShardSize); err != nil {
		return err
	}
	if o.ShardSize > 0 && o.Format != FormatJSON {
		return fmt.Errorf("--shard-size requires --format json")
	}
	if o.Root && o.Format == FormatJSON {
		return fmt.Errorf("--root-digest applies to text and tag output only")
	}
	return utils.ValidateMultiple("path", paths, utils.PathTypeAny, true)
}

// ToConfig returns the directory hashing configuration for the flags.
func (o *SumOptions) ToConfig(root string, logger logging.Logger) (*hashing.Config, error) {
	alg, err := o.ParsedAlgorithm()
	if err != nil {
		return nil, err
	}
	cfg := hashing.NewConfig().
		SetChunkSize(o.ChunkSize).
		SetMaxWorkers(o.MaxWorkers).
		SetAllowSymlinks(o.AllowSymlinks).
		SetIgnoredPaths(o.IgnorePaths, o.IgnoreGitPaths).
		SetLogger(logger)
	if o.ShardSize > 0 {
		cfg.UseShardSerialization(alg, o.ShardSize)
	} else {
		cfg.UseFileSerialization(alg)
	}
	return cfg, cfg.Validate()
}
