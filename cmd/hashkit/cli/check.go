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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sigstore/hashkit/cmd/hashkit/cli/options"
	"github.com/sigstore/hashkit/pkg/hashing"
	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
	"github.com/sigstore/hashkit/pkg/logging"
	"github.com/sigstore/hashkit/pkg/manifest"
	"github.com/sigstore/hashkit/pkg/oci"
	"github.com/sigstore/hashkit/pkg/tracing"
	"github.com/sigstore/hashkit/pkg/utils"
)

// Check creates the check command.
func Check(ro *options.RootOptions) *cobra.Command {
	o := &options.CheckOptions{}

	long := `Verify the digests listed in SUMFILE.

SUMFILE is either a checksum file as written by "hashkit sum" or sha256sum,
a JSON manifest written by "hashkit sum --format json DIR", or an OCI image
manifest. Listed paths are resolved against --root. A SUMFILE of "-" reads
standard input.

OCI layers annotated with org.opencontainers.image.title are checked against
the file of that name; other blobs against blobs/<algorithm>/<hex>, as laid
out in an OCI image layout.

A JSON manifest is verified by hashing --root again with the recorded
parameters, so files it does not list are reported as EXTRA.

The exit status is 0 when every listed file matches and 1 otherwise.`

	cmd := &cobra.Command{
		Use:   "check [flags] SUMFILE",
		Short: "Verify files against a checksum file or manifest.",
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(args[0]); err != nil {
				return err
			}
			logger := loggerFor(cmd, ro)
			attrs := map[string]any{
				"hashkit.sumfile": args[0],
				"hashkit.root":    o.Root,
			}
			return tracing.Run(cmd.Context(), "Check", attrs, func(ctx context.Context) error {
				data, err := readInput(cmd.InOrStdin(), args[0])
				if err != nil {
					return err
				}
				r := &checkReport{out: cmd.OutOrStdout(), opts: o}
				switch {
				case oci.IsImageManifest(data):
					err = checkImageManifest(ctx, data, o, r, logger)
				case bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")):
					err = checkManifest(ctx, data, o, r, logger)
				default:
					err = checkSumFile(ctx, data, o, r, logger)
				}
				if err != nil {
					return err
				}
				return r.result(logger)
			})
		},
	}

	o.AddFlags(cmd)
	return cmd
}

// checkReport prints per-file results and counts failures.
type checkReport struct {
	out  io.Writer
	opts *options.CheckOptions

	verified   int
	mismatched int
	unreadable int
	extra      int
}

func (r *checkReport) print(path, status string) {
	if r.opts.Status || (r.opts.Quiet && status == "OK") {
		return
	}
	fmt.Fprintf(r.out, "%s: %s\n", path, status)
}

func (r *checkReport) ok(path string) {
	r.verified++
	r.print(path, "OK")
}

func (r *checkReport) failed(path string) {
	r.verified++
	r.mismatched++
	r.print(path, "FAILED")
}

func (r *checkReport) missing(path string) {
	if r.opts.IgnoreMissing {
		return
	}
	r.unreadable++
	r.print(path, "FAILED open or read")
}

func (r *checkReport) extraFile(path string) {
	if r.opts.IgnoreExtra {
		return
	}
	r.extra++
	r.print(path, "EXTRA")
}

func (r *checkReport) result(logger logging.Logger) error {
	if r.unreadable > 0 {
		logger.Warn("%d listed file(s) could not be read", r.unreadable)
	}
	if r.mismatched > 0 {
		logger.Warn("%d computed checksum(s) did NOT match", r.mismatched)
	}
	if r.extra > 0 {
		logger.Warn("%d file(s) are not listed in the manifest", r.extra)
	}
	switch {
	case r.unreadable+r.mismatched+r.extra > 0:
		return &ExitError{Code: 1, Err: errors.New("verification failed")}
	case r.verified == 0:
		return &ExitError{Code: 1, Err: errors.New("no file was verified")}
	}
	return nil
}

func checkSumFile(ctx context.Context, data []byte, o *options.CheckOptions, r *checkReport, logger logging.Logger) error {
	defaultAlg, err := o.ParsedAlgorithm()
	if err != nil {
		return err
	}
	entries, err := manifest.ParseSumFile(bytes.NewReader(data), defaultAlg)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return errors.New("no properly formatted checksum lines found")
	}
	return verifyEntries(ctx, entries, o, r, logger)
}

func checkImageManifest(ctx context.Context, data []byte, o *options.CheckOptions, r *checkReport, logger logging.Logger) error {
	m, err := oci.ParseManifest(data)
	if err != nil {
		return err
	}
	entries, err := m.SumEntries(o.IncludeConfig)
	if err != nil {
		return err
	}
	return verifyEntries(ctx, entries, o, r, logger)
}

// verifyEntries hashes each listed file with the algorithm of its digest.
func verifyEntries(ctx context.Context, entries []manifest.SumEntry, o *options.CheckOptions, r *checkReport, logger logging.Logger) error {
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		alg, err := hashengines.ParseAlgorithm(e.Digest.Algorithm())
		if err != nil {
			return err
		}
		if e.Path == utils.StdinPath {
			return fmt.Errorf("%s: cannot verify standard input", e.Path)
		}

		path := filepath.FromSlash(e.Path)
		if !filepath.IsAbs(path) {
			path = filepath.Join(o.Root, path)
		}
		got, err := hashFile(ctx, path, alg, o.ChunkSize)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			logger.WithField("path", e.Path).Debug("%v", err)
			r.missing(e.Path)
			continue
		}
		if got.Hex() == e.Digest.Hex() {
			r.ok(e.Path)
		} else {
			r.failed(e.Path)
		}
	}
	return nil
}

func checkManifest(ctx context.Context, data []byte, o *options.CheckOptions, r *checkReport, logger logging.Logger) error {
	var expected manifest.Manifest
	if err := json.Unmarshal(data, &expected); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	cfg, err := configFromManifest(&expected)
	if err != nil {
		return err
	}
	actual, err := cfg.SetChunkSize(o.ChunkSize).SetMaxWorkers(o.MaxWorkers).SetLogger(logger).Hash(ctx, o.Root, nil)
	if err != nil {
		return err
	}

	diff := manifest.ComputeDiff(actual, &expected)
	mismatched := make(map[string]bool, len(diff.Mismatches))
	for _, m := range diff.Mismatches {
		mismatched[m.Identifier] = true
	}
	missing := make(map[string]bool, len(diff.MissingFiles))
	for _, id := range diff.MissingFiles {
		missing[id] = true
	}

	for _, rd := range expected.ResourceDescriptors() {
		switch {
		case missing[rd.Identifier]:
			r.missing(rd.Identifier)
		case mismatched[rd.Identifier]:
			r.failed(rd.Identifier)
		default:
			r.ok(rd.Identifier)
		}
	}
	for _, id := range diff.ExtraFiles {
		r.extraFile(id)
	}
	return nil
}

// configFromManifest rebuilds the hashing configuration m was created with.
func configFromManifest(m *manifest.Manifest) (*hashing.Config, error) {
	st := m.SerializationType()
	if st == nil {
		return nil, errors.New("manifest has no serialization parameters")
	}
	alg, err := hashengines.ParseAlgorithm(st.HashAlgorithm())
	if err != nil {
		return nil, err
	}

	params := manifest.NewParamExtractor(st.Parameters())
	allowSymlinks, err := params.GetBoolOptional("allow_symlinks", false)
	if err != nil {
		return nil, err
	}
	ignored, err := params.GetStringSlice("ignore_paths")
	if err != nil {
		return nil, err
	}

	cfg := hashing.NewConfig().SetIgnoredPaths(ignored, false).SetAllowSymlinks(allowSymlinks)
	if shards, ok := st.(*manifest.ShardSerialization); ok {
		return cfg.UseShardSerialization(alg, shards.ShardSize()), nil
	}
	return cfg.UseFileSerialization(alg), nil
}

