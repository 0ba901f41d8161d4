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
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
)

// Algorithms creates the algorithms command, which lists the registered
// engines.
func Algorithms() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the supported digest algorithms.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tDIGEST BYTES\tBLOCK BYTES")
			for _, name := range hashengines.SupportedAlgorithms() {
				engine, err := hashengines.Create(name)
				if err != nil {
					return err
				}
				block := "-"
				if alg, err := hashengines.ParseAlgorithm(name); err == nil {
					block = strconv.Itoa(alg.BlockSize())
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\n", name, engine.DigestSize(), block)
			}
			return tw.Flush()
		},
	}
}
