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

package manifest

import "fmt"

// ParamExtractor reads typed values out of serialization parameters, as
// produced by SerializationType.Parameters or decoded from JSON.
type ParamExtractor struct {
	params map[string]any
}

// NewParamExtractor wraps params.
func NewParamExtractor(params map[string]any) *ParamExtractor {
	return &ParamExtractor{params: params}
}

// Has reports whether key is present.
func (e *ParamExtractor) Has(key string) bool {
	_, exists := e.params[key]
	return exists
}

// GetString returns a required string parameter.
func (e *ParamExtractor) GetString(key string) (string, error) {
	value, exists := e.params[key]
	if !exists {
		return "", fmt.Errorf("parameter %q not found", key)
	}
	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q is not a string (got %T)", key, value)
	}
	return str, nil
}

// GetBoolOptional returns a boolean parameter, or defaultValue if absent.
func (e *ParamExtractor) GetBoolOptional(key string, defaultValue bool) (bool, error) {
	value, exists := e.params[key]
	if !exists {
		return defaultValue, nil
	}
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("parameter %q is not a bool (got %T)", key, value)
	}
	return b, nil
}

// GetInt64 returns a required integer parameter. JSON numbers arrive as
// float64 and are accepted when they hold an integral value.
func (e *ParamExtractor) GetInt64(key string) (int64, error) {
	value, exists := e.params[key]
	if !exists {
		return 0, fmt.Errorf("parameter %q not found", key)
	}

	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("parameter %q is not an integer (got %v)", key, v)
		}
		return int64(v), nil
	default:
		return 0, fmt.Errorf("parameter %q cannot be converted to int64 (got %T)", key, value)
	}
}

// GetStringSlice returns an optional list of strings, accepting both
// []string and the []any form JSON decoding produces. A missing key
// yields nil.
func (e *ParamExtractor) GetStringSlice(key string) ([]string, error) {
	value, exists := e.params[key]
	if !exists {
		return nil, nil
	}

	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("parameter %q[%d] is not a string (got %T)", key, i, item)
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("parameter %q is not a string slice (got %T)", key, value)
	}
}
