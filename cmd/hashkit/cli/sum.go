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

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sigstore/hashkit/cmd/hashkit/cli/options"
	"github.com/sigstore/hashkit/pkg/hashing/digests"
	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
	"github.com/sigstore/hashkit/pkg/hashing/engines/memory"
	"github.com/sigstore/hashkit/pkg/logging"
	"github.com/sigstore/hashkit/pkg/manifest"
	"github.com/sigstore/hashkit/pkg/tracing"
	"github.com/sigstore/hashkit/pkg/utils"
)

// Sum creates the sum command.
func Sum(ro *options.RootOptions) *cobra.Command {
	o := &options.SumOptions{}

	long := `Print the digest of each PATH.

A PATH of "-", or no PATH at all, reads standard input. A directory is
walked and every file below it is listed, skipping ignored paths.

The text format matches sha256sum and can be verified with "hashkit check".
The tag format is the BSD "SHA256 (path) = digest" form. The json format
writes a manifest; for a single directory it records how the tree was
hashed, including shard boundaries when --shard-size is set.

With --root-digest the text and tag output end with a "# root" comment
holding one digest over all listed digests, in output order.`

	cmd := &cobra.Command{
		Use:   "sum [flags] [PATH...]",
		Short: "Compute digests of files, directories or standard input.",
		Long:  long,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{utils.StdinPath}
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			logger := loggerFor(cmd, ro)
			attrs := map[string]any{
				"hashkit.algorithm":  o.Algorithm,
				"hashkit.paths":      args,
				"hashkit.format":     o.Format,
				"hashkit.shard_size": o.ShardSize,
			}
			return tracing.Run(cmd.Context(), "Sum", attrs, func(ctx context.Context) error {
				return runSum(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), o, args, logger)
			})
		},
	}

	o.AddFlags(cmd)
	return cmd
}

func runSum(ctx context.Context, stdin io.Reader, out io.Writer, o *options.SumOptions, paths []string, logger logging.Logger) error {
	alg, err := o.ParsedAlgorithm()
	if err != nil {
		return err
	}

	var (
		entries []manifest.SumEntry
		tree    *manifest.Manifest
	)
	for _, p := range paths {
		if p == utils.StdinPath {
			d, err := hashStream(ctx, stdin, alg, o.ChunkSize)
			if err != nil {
				return fmt.Errorf("hash standard input: %w", err)
			}
			entries = append(entries, manifest.SumEntry{Path: p, Digest: d, Binary: o.Binary})
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			if o.ShardSize > 0 {
				return fmt.Errorf("%s: --shard-size applies to directories only", p)
			}
			d, err := hashFile(ctx, p, alg, o.ChunkSize)
			if err != nil {
				return err
			}
			entries = append(entries, manifest.SumEntry{Path: filepath.ToSlash(p), Digest: d, Binary: o.Binary})
			continue
		}

		cfg, err := o.ToConfig(p, logger)
		if err != nil {
			return err
		}
		m, err := cfg.Hash(ctx, p, nil)
		if err != nil {
			return err
		}
		logger.WithFields(map[string]any{"path": p, "entries": m.Len()}).Debug("hashed directory")
		if len(paths) == 1 {
			tree = m
		}
		for _, rd := range m.ResourceDescriptors() {
			entries = append(entries, manifest.SumEntry{
				Path:   path.Join(filepath.ToSlash(p), rd.Identifier),
				Digest: rd.Digest,
				Binary: o.Binary,
			})
		}
	}

	switch o.Format {
	case options.FormatTag:
		if err := manifest.WriteTaggedSumFile(out, entries); err != nil {
			return err
		}
		return writeRootDigest(out, o, alg, entries)
	case options.FormatJSON:
		if tree == nil {
			if tree, err = manifest.ManifestFromSumEntries("hashkit", alg, entries); err != nil {
				return err
			}
		}
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err
	default:
		if err := manifest.WriteSumFile(out, entries); err != nil {
			return err
		}
		return writeRootDigest(out, o, alg, entries)
	}
}

// writeRootDigest appends "# root <alg>:<hex>", a line sum file readers
// skip as a comment.
func writeRootDigest(out io.Writer, o *options.SumOptions, alg hashengines.Algorithm, entries []manifest.SumEntry) error {
	if !o.Root {
		return nil
	}
	list := make([]digests.Digest, len(entries))
	for i, e := range entries {
		list[i] = e.Digest
	}
	root, err := memory.ComputeRootDigest(alg, list)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "# root %s\n", root)
	return err
}
