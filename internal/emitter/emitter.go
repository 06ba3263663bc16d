// Package emitter defines the interface every output target implements and
// the registry the generator selects targets from.
package emitter

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mcncl/jsonsynth/internal/config"
	"github.com/mcncl/jsonsynth/internal/models"
)

// Emitter renders a SchemaGraph as source text for one target.
type Emitter interface {
	// Name returns the target identifier, e.g. "go" or "kotlin"
	Name() string

	// Emit renders g. opts has already been resolved, so emitters do not
	// re-validate it. Emit does not fail on a graph that passes Validate.
	Emit(g *models.SchemaGraph, opts config.Options) (string, error)

	// FileExtension returns the extension of the rendered file, e.g. ".go"
	FileExtension() string
}

var (
	mu       sync.RWMutex
	emitters = make(map[string]Emitter)
)

// Register adds an emitter to the registry, replacing any emitter with the
// same name.
func Register(e Emitter) {
	mu.Lock()
	defer mu.Unlock()
	emitters[e.Name()] = e
}

// Get retrieves an emitter by target name.
func Get(name string) (Emitter, error) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := emitters[name]
	if !ok {
		return nil, fmt.Errorf("unknown target: %s", name)
	}
	return e, nil
}

// Available returns all registered target names, sorted.
func Available() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(emitters))
	for name := range emitters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
