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
	"github.com/spf13/cobra"

	hashengines "github.com/sigstore/hashkit/pkg/hashing/engines"
	"github.com/sigstore/hashkit/pkg/utils"
)

// CheckOptions are the flags of "hashkit check".
type CheckOptions struct {
	ReadFlags
	Algorithm     string // --algorithm
	Root          string // --root
	Quiet         bool   // --quiet
	Status        bool   // --status
	IgnoreMissing bool   // --ignore-missing
	IgnoreExtra   bool   // --ignore-extra
	IncludeConfig bool   // --include-config
}

var _ FlagAdder = (*CheckOptions)(nil)

func (o *CheckOptions) AddFlags(cmd *cobra.Command) {
	o.ReadFlags.AddFlags(cmd)
	cmd.Flags().StringVarP(&o.Algorithm, "algorithm", "a", "",
		"algorithm of untagged lines (default: inferred from digest length)")
	cmd.Flags().StringVar(&o.Root, "root", ".",
		"directory the listed paths are relative to")
	_ = cmd.MarkFlagDirname("root")
	cmd.Flags().BoolVarP(&o.Quiet, "quiet", "q", false, "do not print OK lines")
	cmd.Flags().BoolVar(&o.Status, "status", false, "print nothing; the exit status reports the result")
	cmd.Flags().BoolVar(&o.IgnoreMissing, "ignore-missing", false, "do not fail for listed files that are absent")
	cmd.Flags().BoolVar(&o.IgnoreExtra, "ignore-extra", false,
		"do not fail for files a JSON manifest does not list")
	cmd.Flags().BoolVar(&o.IncludeConfig, "include-config", false,
		"also verify the config blob of an OCI image manifest")
}

// ParsedAlgorithm returns the --algorithm value, or zero when inference
// is wanted.
func (o *CheckOptions) ParsedAlgorithm() (hashengines.Algorithm, error) {
	if o.Algorithm == "" {
		return 0, nil
	}
	return hashengines.ParseAlgorithm(o.Algorithm)
}

func (o *CheckOptions) Validate(sumFile string) error {
	if _, err := o.ParsedAlgorithm(); err != nil {
		return err
	}
	if err := utils.ValidateNonNegative("--chunk-size", int64(o.ChunkSize)); err != nil {
		return err
	}
	if err := utils.ValidateNonNegative("--max-workers", int64(o.MaxWorkers)); err != nil {
		return err
	}
	if err := utils.ValidateFolderExists("--root", o.Root); err != nil {
		return err
	}
	return utils.ValidateInputFile("SUMFILE", sumFile)
}
