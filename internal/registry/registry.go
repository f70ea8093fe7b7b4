// Package registry provides a global registry for demo factories.
// Demos register themselves in init() functions, allowing the CLI
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/sprog/internal/engine"
)

// ErrUnknownDemo is returned by Create for an ID nobody registered.
var ErrUnknownDemo = errors.New("registry: unknown demo")

// Demo is a runnable program for the engine.
// Demos hold pure game logic; the engine supplies timing, input and display.
type Demo interface {
	engine.Lifecycle

	// ID returns a unique identifier (e.g. "plasma").
	// Used for CLI commands and session storage.
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Description returns a one-line summary.
	Description() string
}

// DemoInfo contains metadata about a registered demo.
type DemoInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a fresh demo instance. Every run gets its own instance.
type Factory func() Demo

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]DemoInfo)
	mu        sync.RWMutex
)

// Register adds a demo factory to the registry.
// Typically called from a demo's init() function.
// Panics if a demo with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: demo %q already registered", id))
	}

	// Get metadata by creating a temporary instance
	d := f()
	if d.ID() != id {
		panic(fmt.Sprintf("registry: demo registered as %q reports ID %q", id, d.ID()))
	}
	factories[id] = f
	infos[id] = DemoInfo{ID: id, Title: d.Title(), Description: d.Description()}
}

// List returns information about all registered demos, sorted by ID.
func List() []DemoInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]DemoInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new demo by its ID.
func Create(id string) (Demo, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownDemo, id)
	}

	return f(), nil
}

// Exists checks if a demo with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
