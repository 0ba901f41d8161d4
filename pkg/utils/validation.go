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

// Package utils holds input validation shared by the hashkit commands.
package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// StdinPath names standard input wherever a path is accepted.
const StdinPath = "-"

// PathType is the kind of filesystem entry a path must name.
type PathType int

const (
	PathTypeFile PathType = iota
	PathTypeFolder
	PathTypeAny
)

func (t PathType) String() string {
	switch t {
	case PathTypeFile:
		return "file"
	case PathTypeFolder:
		return "directory"
	default:
		return "file or directory"
	}
}

// PathValidator checks that one path exists and has the expected type.
type PathValidator struct {
	fieldName  string
	path       string
	pathType   PathType
	allowStdin bool
}

// NewPathValidator returns a validator for path. fieldName is used in
// error messages.
func NewPathValidator(fieldName, path string, pathType PathType) *PathValidator {
	return &PathValidator{
		fieldName: fieldName,
		path:      path,
		pathType:  pathType,
	}
}

// AllowStdin makes "-" valid.
func (v *PathValidator) AllowStdin() *PathValidator {
	v.allowStdin = true
	return v
}

func (v *PathValidator) Validate() error {
	if v.path == "" {
		return fmt.Errorf("%s is required", v.fieldName)
	}
	if v.path == StdinPath && v.allowStdin {
		return nil
	}

	info, err := os.Stat(v.path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s %q does not exist", v.fieldName, v.path)
	}
	if err != nil {
		return fmt.Errorf("checking %s %q: %w", v.fieldName, v.path, err)
	}

	switch {
	case v.pathType == PathTypeFile && !info.Mode().IsRegular():
		return fmt.Errorf("%s %q is not a regular file", v.fieldName, v.path)
	case v.pathType == PathTypeFolder && !info.IsDir():
		return fmt.Errorf("%s %q is not a directory", v.fieldName, v.path)
	}
	return nil
}

// ValidateMultiple checks every entry of paths. "-" is accepted when
// allowStdin is set; it may appear at most once.
func ValidateMultiple(fieldName string, paths []string, pathType PathType, allowStdin bool) error {
	stdin := 0
	for i, path := range paths {
		v := NewPathValidator(fmt.Sprintf("%s[%d]", fieldName, i), path, pathType)
		if allowStdin {
			v.AllowStdin()
		}
		if err := v.Validate(); err != nil {
			return err
		}
		if path == StdinPath && allowStdin {
			if stdin++; stdin > 1 {
				return fmt.Errorf("%s names standard input more than once", fieldName)
			}
		}
	}
	return nil
}

func ValidateFileExists(fieldName, path string) error {
	return NewPathValidator(fieldName, path, PathTypeFile).Validate()
}

func ValidateFolderExists(fieldName, path string) error {
	return NewPathValidator(fieldName, path, PathTypeFolder).Validate()
}

// ValidateInputFile accepts a regular file or "-".
func ValidateInputFile(fieldName, path string) error {
	return NewPathValidator(fieldName, path, PathTypeFile).AllowStdin().Validate()
}

// ValidateOptionalFile accepts an empty path or a regular file.
func ValidateOptionalFile(fieldName, path string) error {
	if path == "" {
		return nil
	}
	return ValidateFileExists(fieldName, path)
}

// ValidateNonNegative rejects negative sizes.
func ValidateNonNegative(fieldName string, value int64) error {
	if value < 0 {
		return fmt.Errorf("%s must be non-negative, got %d", fieldName, value)
	}
	return nil
}
