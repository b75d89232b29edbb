// Package enginetest provides an in-memory engine for exercising the merge
// driver without real PDF files. Its output is the byte concatenation of the
// appended documents, in append order.
package enginetest

import (
	"context"
	"io"
	"sync"

	"github.com/wudi/pdfmerge/engine"
)

// Appended records one successful Append call.
type Appended struct {
	Name    string
	Relaxed bool
	Content []byte
}

// Engine is a configurable fake. The zero value appends everything as a
// one-page document.
type Engine struct {
	EngineName string
	// Pages overrides the page count reported per document name.
	Pages map[string]int
	// StrictErr fails Append for the named document unless Document.Relaxed is set.
	StrictErr map[string]error
	// AppendErr fails Append for the named document unconditionally.
	AppendErr map[string]error
	WriteErr  error

	mu      sync.Mutex
	mergers []*Merger
}

func (e *Engine) Name() string {
	if e.EngineName == "" {
		return "fake"
	}
	return e.EngineName
}

func (e *Engine) NewMerger(opts engine.Options) (engine.Merger, error) {
	m := &Merger{engine: e, Options: opts}
	e.mu.Lock()
	e.mergers = append(e.mergers, m)
	e.mu.Unlock()
	return m, nil
}

// Mergers returns every merger created so far.
func (e *Engine) Mergers() []*Merger {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Merger(nil), e.mergers...)
}

// Last returns the most recently created merger, or nil.
func (e *Engine) Last() *Merger {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.mergers) == 0 {
		return nil
	}
	return e.mergers[len(e.mergers)-1]
}

type Merger struct {
	Options  engine.Options
	Appended []Appended
	Attempts int
	Written  bool
	Closed   bool

	engine *Engine
}

func (m *Merger) Append(ctx context.Context, doc engine.Document) (int, error) {
	m.Attempts++
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := m.engine.AppendErr[doc.Name]; err != nil {
		return 0, engine.AppendError(m.engine.Name(), doc.Name, err)
	}
	if err := m.engine.StrictErr[doc.Name]; err != nil && !doc.Relaxed {
		return 0, engine.AppendError(m.engine.Name(), doc.Name, err)
	}
	if _, err := doc.Content.Seek(0, io.SeekStart); err != nil {
		return 0, engine.AppendError(m.engine.Name(), doc.Name, err)
	}
	data, err := io.ReadAll(doc.Content)
	if err != nil {
		return 0, engine.AppendError(m.engine.Name(), doc.Name, err)
	}
	m.Appended = append(m.Appended, Appended{Name: doc.Name, Relaxed: doc.Relaxed, Content: data})
	pages, ok := m.engine.Pages[doc.Name]
	if !ok {
		pages = 1
	}
	return pages, nil
}

func (m *Merger) Write(ctx context.Context, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(m.Appended) == 0 {
		return engine.WriteError(m.engine.Name(), engine.ErrNothingToWrite)
	}
	if m.engine.WriteErr != nil {
		return engine.WriteError(m.engine.Name(), m.engine.WriteErr)
	}
	for _, a := range m.Appended {
		if _, err := w.Write(a.Content); err != nil {
			return engine.WriteError(m.engine.Name(), err)
		}
	}
	m.Written = true
	return nil
}

func (m *Merger) Close() error {
	m.Closed = true
	return nil
}

// Names lists the appended document names in order.
func (m *Merger) Names() []string {
	out := make([]string, len(m.Appended))
	for i, a := range m.Appended {
		out[i] = a.Name
	}
	return out
}
