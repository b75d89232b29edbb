// Package engine defines the PDF capability the merge driver delegates to
// and a registry of named implementations.
//
// Implementations register themselves from an init function and are linked
// into a program with a blank import:
//
//	import _ "github.com/wudi/pdfmerge/engine/pdfcpu"
package engine

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
)

// Document is one input handed to a Merger.
type Document struct {
	// Name identifies the document in errors and logs, usually its path.
	Name    string
	Content io.ReadSeeker
	// Relaxed asks the engine to parse this document leniently,
	// whatever its configured ValidationMode.
	Relaxed bool
}

// Merger accumulates documents and writes them out as one.
type Merger interface {
	// Append queues the document's pages after those already appended
	// and returns the document's page count.
	Append(ctx context.Context, doc Document) (int, error)
	// Write emits the combined document. At least one Append must precede it.
	Write(ctx context.Context, w io.Writer) error
	// Close releases engine state. Document readers belong to the caller.
	Close() error
}

// Engine creates Mergers.
type Engine interface {
	Name() string
	NewMerger(opts Options) (Merger, error)
}

type ValidationMode int

const (
	ValidationRelaxed ValidationMode = iota
	ValidationStrict
)

func (m ValidationMode) String() string {
	switch m {
	case ValidationStrict:
		return "strict"
	case ValidationRelaxed:
		return "relaxed"
	default:
		return fmt.Sprintf("validation(%d)", int(m))
	}
}

// ParseValidationMode accepts "strict" or "relaxed"; empty means relaxed.
func ParseValidationMode(s string) (ValidationMode, error) {
	switch s {
	case "", "relaxed":
		return ValidationRelaxed, nil
	case "strict":
		return ValidationStrict, nil
	default:
		return ValidationRelaxed, fmt.Errorf("unknown validation mode %q (want strict or relaxed)", s)
	}
}

// Options configure a Merger.
type Options struct {
	Validation    ValidationMode
	UserPassword  string
	OwnerPassword string
	Optimize      bool
	XRefStreams   bool
	ObjectStreams bool
}

var (
	mu      sync.RWMutex
	engines = make(map[string]Engine)
)

// Register makes an engine available by name. It panics if e is nil or
// if an engine with the same name is already registered.
func Register(e Engine) {
	mu.Lock()
	defer mu.Unlock()
	if e == nil {
		panic("engine: Register engine is nil")
	}
	name := e.Name()
	if _, dup := engines[name]; dup {
		panic("engine: Register called twice for engine " + name)
	}
	engines[name] = e
}

// Lookup returns the engine registered under name, or a missing-dependency
// error when the program was built without it.
func Lookup(name string) (Engine, error) {
	mu.RLock()
	e, ok := engines[name]
	mu.RUnlock()
	if !ok {
		return nil, newMissingDependencyError(name, Names())
	}
	return e, nil
}

// Names returns the registered engine names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
