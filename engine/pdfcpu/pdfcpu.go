// Package pdfcpu implements engine.Engine on top of github.com/pdfcpu/pdfcpu.
// Importing it registers the engine under the name "pdfcpu".
package pdfcpu

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/wudi/pdfmerge/engine"
)

const Name = "pdfcpu"

func init() {
	engine.Register(Engine{})
}

type Engine struct{}

func (Engine) Name() string { return Name }

func (Engine) NewMerger(opts engine.Options) (engine.Merger, error) {
	return &merger{opts: opts}, nil
}

var configOnce sync.Once

// Configuration translates engine options into a pdfcpu configuration.
// relaxed forces lenient parsing regardless of opts.Validation.
// pdfcpu's on-disk config directory is never created.
func Configuration(opts engine.Options, relaxed bool) *model.Configuration {
	configOnce.Do(func() { model.ConfigPath = "disable" })

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if opts.Validation == engine.ValidationStrict && !relaxed {
		conf.ValidationMode = model.ValidationStrict
	}
	conf.UserPW = opts.UserPassword
	conf.OwnerPW = opts.OwnerPassword
	conf.Optimize = opts.Optimize
	conf.WriteXRefStream = opts.XRefStreams
	conf.WriteObjectStream = opts.ObjectStreams
	return conf
}

type merger struct {
	opts   engine.Options
	docs   []engine.Document
	closed bool
}

func (m *merger) Append(ctx context.Context, doc engine.Document) (int, error) {
	if m.closed {
		return 0, engine.AppendError(Name, doc.Name, errClosed)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if doc.Content == nil {
		return 0, engine.AppendError(Name, doc.Name, errNoContent)
	}

	if err := rewind(doc.Content); err != nil {
		return 0, engine.AppendError(Name, doc.Name, err)
	}
	if err := api.Validate(doc.Content, Configuration(m.opts, doc.Relaxed)); err != nil {
		return 0, engine.AppendError(Name, doc.Name, err)
	}

	if err := rewind(doc.Content); err != nil {
		return 0, engine.AppendError(Name, doc.Name, err)
	}
	pages, err := api.PageCount(doc.Content, Configuration(m.opts, doc.Relaxed))
	if err != nil {
		return 0, engine.AppendError(Name, doc.Name, err)
	}

	m.docs = append(m.docs, doc)
	return pages, nil
}

func (m *merger) Write(ctx context.Context, w io.Writer) error {
	if m.closed {
		return engine.WriteError(Name, errClosed)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(m.docs) == 0 {
		return engine.WriteError(Name, engine.ErrNothingToWrite)
	}

	rsc := make([]io.ReadSeeker, len(m.docs))
	for i, d := range m.docs {
		if err := rewind(d.Content); err != nil {
			return engine.WriteError(Name, fmt.Errorf("rewind %s: %w", d.Name, err))
		}
		rsc[i] = d.Content
	}

	// MergeRaw re-reads every document itself; no divider pages between them.
	if err := api.MergeRaw(rsc, w, false, Configuration(m.opts, true)); err != nil {
		return engine.WriteError(Name, err)
	}
	return nil
}

func (m *merger) Close() error {
	m.closed = true
	m.docs = nil
	return nil
}

func rewind(rs io.ReadSeeker) error {
	_, err := rs.Seek(0, io.SeekStart)
	return err
}

var (
	errClosed    = fmt.Errorf("merger closed")
	errNoContent = fmt.Errorf("document has no content")
)
