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

	"github.com/spf13/cobra"

	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
	"github.com/sigstore/hashkit/pkg/utils"
)

// BenchOptions are the flags of "hashkit bench".
type BenchOptions struct {
	Size       int64    // --size
	File       string   // --file
	Algorithms []string // --algorithms
	Iterations int      // --iterations
}

var _ FlagAdder = (*BenchOptions)(nil)

func (o *BenchOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&o.Size, "size", 16<<20, "bytes of generated input when --file is not set")
	cmd.Flags().StringVar(&o.File, "file", "", "benchmark over the contents of this file")
	cmd.Flags().StringSliceVar(&o.Algorithms, "algorithms", nil, "algorithms to run (default: all)")
	cmd.Flags().IntVarP(&o.Iterations, "iterations", "n", 3, "runs per algorithm; the fastest is reported")
}

// Selected resolves --algorithms.
func (o *BenchOptions) Selected() ([]hashengines.Algorithm, error) {
	if len(o.Algorithms) == 0 {
		return hashengines.Algorithms(), nil
	}
	out := make([]hashengines.Algorithm, 0, len(o.Algorithms))
	for _, name := range o.Algorithms {
		alg, err := hashengines.ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		out = append(out, alg)
	}
	return out, nil
}

func (o *BenchOptions) Validate() error {
	if _, err := o.Selected(); err != nil {
		return err
	}
	if o.Iterations < 1 {
		return fmt.Errorf("--iterations must be at least 1, got %d", o.Iterations)
	}
	if err := utils.ValidateNonNegative("--size", o.Size); err != nil {
		return err
	}
	return utils.ValidateOptionalFile("--file", o.File)
}
