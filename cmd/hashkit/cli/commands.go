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

// Package cli implements the hashkit commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	cobracompletefig "github.com/withfig/autocomplete-tools/integrations/cobra"
	"sigs.k8s.io/release-utils/version"

	"github.com/sigstore/hashkit/cmd/hashkit/cli/options"
	"github.com/sigstore/hashkit/pkg/logging"
)

// New returns the root command.
func New() *cobra.Command {
	ro := &options.RootOptions{}
	var (
		out    *os.File
		cancel context.CancelFunc = func() {}
	)

	cmd := &cobra.Command{
		Use:               "hashkit",
		Short:             "Compute and verify MD4, MD5, SHA-1 and SHA-2 digests.",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := options.ApplyEnv(cmd, os.LookupEnv); err != nil {
				return err
			}
			if err := ro.Validate(); err != nil {
				return err
			}

			if ro.OutputFile != "" {
				var err error
				out, err = os.Create(ro.OutputFile)
				if err != nil {
					return fmt.Errorf("error creating output file %s: %w", ro.OutputFile, err)
				}
				cmd.SetOut(out)
			}

			if ro.Timeout > 0 {
				var ctx context.Context
				ctx, cancel = context.WithTimeout(cmd.Context(), ro.Timeout)
				cmd.SetContext(ctx)
			}
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			cancel()
			if out != nil {
				_ = out.Close()
			}
		},
	}
	ro.AddFlags(cmd)

	cmd.AddCommand(Sum(ro))
	cmd.AddCommand(Check(ro))
	cmd.AddCommand(Bench(ro))
	cmd.AddCommand(Algorithms())
	cmd.AddCommand(version.WithFont("starwars"))
	cmd.AddCommand(cobracompletefig.CreateCompletionSpecCommand())
	return cmd
}

func loggerFor(cmd *cobra.Command, ro *options.RootOptions) logging.Logger {
	return ro.NewLogger(cmd.ErrOrStderr()).WithField("command", cmd.Name())
}
