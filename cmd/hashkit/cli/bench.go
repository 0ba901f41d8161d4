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
	"fmt"
	"hash"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sigstore/hashkit/cmd/hashkit/cli/options"
	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
	"github.com/sigstore/hashkit/pkg/hashing/reference"
	"github.com/sigstore/hashkit/pkg/logging"
	"github.com/sigstore/hashkit/pkg/tracing"
)

// Bench creates the bench command.
func Bench(ro *options.RootOptions) *cobra.Command {
	o := &options.BenchOptions{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare hashkit throughput with the Go standard implementations.",
		Long: `Hash the same input with every selected algorithm, once with hashkit and
once with the Go standard library (golang.org/x/crypto for MD4), and report
the best throughput of --iterations runs. The command fails if any pair of
digests differs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.Validate(); err != nil {
				return err
			}
			logger := loggerFor(cmd, ro)
			attrs := map[string]any{
				"hashkit.size":       o.Size,
				"hashkit.file":       o.File,
				"hashkit.iterations": o.Iterations,
			}
			return tracing.Run(cmd.Context(), "Bench", attrs, func(ctx context.Context) error {
				return runBench(ctx, cmd.OutOrStdout(), o, logger)
			})
		},
	}

	o.AddFlags(cmd)
	return cmd
}

type benchResult struct {
	alg       hashengines.Algorithm
	hashkit   time.Duration
	reference time.Duration
	match     bool
}

func runBench(ctx context.Context, out io.Writer, o *options.BenchOptions, logger logging.Logger) error {
	algs, err := o.Selected()
	if err != nil {
		return err
	}
	data, err := benchInput(o)
	if err != nil {
		return err
	}
	logger.Debug("benchmarking %d algorithms over %d bytes", len(algs), len(data))

	results := make([]benchResult, 0, len(algs))
	for _, alg := range algs {
		res := benchResult{alg: alg}
		var ours, theirs []byte
		for i := 0; i < o.Iterations; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}

			h, err := alg.New()
			if err != nil {
				return err
			}
			d, sum := timeHash(h, data)
			res.hashkit = fastest(res.hashkit, d, i)
			ours = sum

			ref, err := reference.New(alg.String())
			if err != nil {
				return err
			}
			d, sum = timeHash(ref, data)
			res.reference = fastest(res.reference, d, i)
			theirs = sum
		}
		res.match = bytes.Equal(ours, theirs)
		if !res.match {
			logger.WithField("algorithm", alg.String()).Error("digest %x differs from reference %x", ours, theirs)
		}
		results = append(results, res)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tSIZE\tHASHKIT MB/s\tREFERENCE MB/s\tMATCH")
	failed := 0
	for _, r := range results {
		match := "yes"
		if !r.match {
			match = "NO"
			failed++
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", r.alg, len(data),
			throughput(len(data), r.hashkit), throughput(len(data), r.reference), match)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		return &ExitError{Code: 1, Err: fmt.Errorf("%d algorithm(s) disagree with the reference implementation", failed)}
	}
	return nil
}

func benchInput(o *options.BenchOptions) ([]byte, error) {
	if o.File != "" {
		data, err := os.ReadFile(o.File)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", o.File, err)
		}
		return data, nil
	}
	data := make([]byte, o.Size)
	for i := range data {
		data[i] = byte(i*7 + i>>8)
	}
	return data, nil
}

func timeHash(h hash.Hash, data []byte) (time.Duration, []byte) {
	start := time.Now()
	_, _ = h.Write(data)
	sum := h.Sum(nil)
	return time.Since(start), sum
}

func fastest(best, d time.Duration, iteration int) time.Duration {
	if iteration == 0 || d < best {
		return d
	}
	return best
}

func throughput(n int, d time.Duration) string {
	if n == 0 || d <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", float64(n)/1e6/d.Seconds())
}
