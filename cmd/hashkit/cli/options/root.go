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

// Package options defines the flag groups of the hashkit command line.
package options

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/sigstore/hashkit/pkg/logging"
)

// DefaultTimeout bounds a whole command run.
const DefaultTimeout = 30 * time.Minute

// RootOptions are the persistent flags of the root command.
type RootOptions struct {
	OutputFile string        // --output-file
	LogLevel   string        // --log-level
	LogFormat  string        // --log-format
	Timeout    time.Duration // --timeout
}

var _ FlagAdder = (*RootOptions)(nil)

func (o *RootOptions) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.OutputFile, "output-file", "",
		"write command output to this file instead of stdout")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "info",
		"minimum log level (debug, info, warn, error, silent)")
	cmd.PersistentFlags().StringVar(&o.LogFormat, "log-format", "text",
		"log output format (text, json)")
	cmd.PersistentFlags().DurationVarP(&o.Timeout, "timeout", "t", DefaultTimeout,
		"abort the command after this long")
}

// Validate checks the log flags.
func (o *RootOptions) Validate() error {
	if _, err := logging.ParseLogLevel(o.LogLevel); err != nil {
		return err
	}
	_, err := logging.ParseLogFormat(o.LogFormat)
	return err
}

// NewLogger builds a logger writing to w from the log flags. Invalid
// values fall back to the defaults; Validate reports them.
func (o *RootOptions) NewLogger(w io.Writer) logging.Logger {
	level, _ := logging.ParseLogLevel(o.LogLevel)
	format, _ := logging.ParseLogFormat(o.LogFormat)
	return logging.NewLogger(logging.LoggerOptions{
		Level:  level,
		Format: format,
		Output: w,
	})
}
