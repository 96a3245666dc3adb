// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xhttptest

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	GetFixtureName     = "get"
	XMLPostFixtureName = "xml-post"
)

var (
	ErrBlankFixtureName = errors.New("Fixture names cannot be blank")
	ErrDuplicateFixture = errors.New("A fixture with that name is already registered")
)

// Registry is a named set of fixtures.  It is safe for concurrent use.
type Registry struct {
	lock     sync.RWMutex
	fixtures map[string]Fixture
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		fixtures: make(map[string]Fixture),
	}
}

// DefaultRegistry returns a Registry holding the built-in GET and XML POST fixtures.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.fixtures[GetFixtureName] = GetRequest()
	r.fixtures[XMLPostFixtureName] = XMLPostRequest()
	return r
}

// Register adds a fixture under the given name.  The fixture must pass Validate, and the name
// must not already be in use.
func (r *Registry) Register(name string, f Fixture) error {
	if len(name) == 0 {
		return ErrBlankFixtureName
	}

	if err := f.Validate(); err != nil {
		return fmt.Errorf("Invalid fixture %s: %w", name, err)
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.fixtures[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFixture, name)
	}

	r.fixtures[name] = f
	return nil
}

func (r *Registry) Get(name string) (Fixture, bool) {
	r.lock.RLock()
	f, ok := r.fixtures[name]
	r.lock.RUnlock()

	return f, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.lock.RLock()
	names := maps.Keys(r.fixtures)
	r.lock.RUnlock()

	slices.Sort(names)
	return names
}

func (r *Registry) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.fixtures)
}
