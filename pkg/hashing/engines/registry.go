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

package hashengines

import (
	"fmt"
	"sort"
	"sync"
)

// HashEngineFactory creates a fresh engine.
type HashEngineFactory func() (StreamingHashEngine, error)

var (
	registry = make(map[string]HashEngineFactory)
	mu       sync.RWMutex
)

// Register adds a factory under name. Names are case-sensitive and may not
// be registered twice.
//
// The built-in algorithms are registered by the memory package.
func Register(name string, factory HashEngineFactory) error {
	if name == "" {
		return fmt.Errorf("algorithm name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory for %q cannot be nil", name)
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := registry[name]; exists {
		return fmt.Errorf("hash algorithm %q already registered", name)
	}
	registry[name] = factory
	return nil
}

// MustRegister is like Register but panics on error. It is meant for init
// functions.
func MustRegister(name string, factory HashEngineFactory) {
	if err := Register(name, factory); err != nil {
		panic(fmt.Sprintf("failed to register hash algorithm %q: %v", name, err))
	}
}

// Create returns a new engine for the named algorithm.
func Create(name string) (StreamingHashEngine, error) {
	mu.RLock()
	factory, exists := registry[name]
	mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported hash algorithm: %s (supported: %v)", name, SupportedAlgorithms())
	}

	engine, err := factory()
	if err != nil {
		return nil, fmt.Errorf("failed to create hash engine for %q: %w", name, err)
	}
	return engine, nil
}

// SupportedAlgorithms returns the registered names in sorted order.
func SupportedAlgorithms() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupported reports whether name is registered.
func IsSupported(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, exists := registry[name]
	return exists
}

// Unregister removes name from the registry. It is mostly useful in tests.
func Unregister(name string) error {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := registry[name]; !exists {
		return fmt.Errorf("hash algorithm %q not registered", name)
	}
	delete(registry, name)
	return nil
}
