// Package merge drives a PDF merge: it validates the inputs, appends them to
// an engine in order and atomically writes the combined document.
package merge

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio"

	"github.com/wudi/pdfmerge/engine"
	"github.com/wudi/pdfmerge/observability"
	"github.com/wudi/pdfmerge/recovery"
	"github.com/wudi/pdfmerge/validate"
)

const (
	DirPerm  os.FileMode = 0o755
	FilePerm os.FileMode = 0o644
)

// Span names.
const (
	SpanMerge  = "pdfmerge.merge"
	SpanAppend = "pdfmerge.append"
	SpanWrite  = "pdfmerge.write"
)

const ComponentAppend = "append"

// Request names the inputs, in merge order, and the output path.
type Request struct {
	Inputs []string
	Output string
}

type InputSummary struct {
	Path  string
	Pages int
	// Relaxed is set when the input only went through after a relaxed retry.
	Relaxed bool
}

type Result struct {
	Inputs   []InputSummary
	Output   string
	Pages    int
	Bytes    int64
	Duration time.Duration
}

type Options struct {
	// Engine is used directly when set; otherwise EngineName is looked up in the registry.
	Engine        engine.Engine
	EngineName    string
	EngineOptions engine.Options
	Recovery      recovery.Strategy
	Logger        observability.Logger
	Tracer        observability.Tracer
}

type Merger struct {
	opts Options
	log  observability.Logger
}

func New(opts Options) *Merger {
	if opts.Recovery == nil {
		opts.Recovery = recovery.NewStrictStrategy()
	}
	if opts.Logger == nil {
		opts.Logger = observability.NopLogger{}
	}
	if opts.Tracer == nil {
		opts.Tracer = observability.NopTracer()
	}
	return &Merger{opts: opts, log: opts.Logger}
}

// Merge concatenates the pages of req.Inputs, in order, into req.Output.
//
// Failures are returned, not logged above debug level; the caller reports them.
//
// The engine is resolved before any file is touched. Every input is then
// validated, and the first failure aborts the merge before anything is
// written. Parent directories of the output are created as needed, and the
// output is replaced atomically, so a failed merge never leaves a partial file.
func (m *Merger) Merge(ctx context.Context, req Request) (res *Result, err error) {
	start := time.Now()
	ctx, span := m.opts.Tracer.StartSpan(ctx, SpanMerge)
	defer func() {
		if err != nil {
			span.SetError(err)
		}
		span.Finish()
	}()

	if len(req.Inputs) == 0 {
		return nil, argsError(ErrMsgNoInputs)
	}
	if req.Output == "" {
		return nil, argsError(ErrMsgNoOutput)
	}

	eng, err := m.resolveEngine()
	if err != nil {
		m.log.Debug("pdf engine unavailable", observability.String(observability.FieldEngine, m.opts.EngineName), observability.Error(observability.FieldError, err))
		return nil, err
	}
	log := m.log.With(
		observability.String(observability.FieldEngine, eng.Name()),
		observability.String(observability.FieldOutput, req.Output),
	)
	span.SetTag(observability.FieldEngine, eng.Name())
	span.SetTag(observability.MetricInputCount, len(req.Inputs))

	if err := validate.Inputs(req.Inputs).Err(); err != nil {
		log.Debug("input validation failed", observability.Error(observability.FieldError, err))
		return nil, err
	}

	merger, err := eng.NewMerger(m.opts.EngineOptions)
	if err != nil {
		return nil, engine.WriteError(eng.Name(), err)
	}
	defer func() {
		if cerr := merger.Close(); cerr != nil {
			log.Warn("closing engine failed", observability.Error(observability.FieldError, cerr))
		}
	}()

	var files []*os.File
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	res = &Result{Output: req.Output, Inputs: make([]InputSummary, 0, len(req.Inputs))}
	for i, path := range req.Inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, openError(path, err)
		}
		files = append(files, f)

		appendStart := time.Now()
		pages, relaxed, err := m.appendInput(ctx, log, merger, i, path, f)
		if err != nil {
			return nil, err
		}
		log.Debug("appended input",
			observability.String(observability.FieldPath, path),
			observability.Int(observability.FieldIndex, i),
			observability.Int(observability.MetricPageCount, pages),
			observability.Duration(observability.MetricAppendTime, time.Since(appendStart)),
		)
		res.Inputs = append(res.Inputs, InputSummary{Path: path, Pages: pages, Relaxed: relaxed})
		res.Pages += pages
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	writeStart := time.Now()
	n, err := m.writeOutput(ctx, merger, req.Output)
	if err != nil {
		log.Debug("writing output failed", observability.Error(observability.FieldError, err))
		return nil, err
	}
	res.Bytes = n
	res.Duration = time.Since(start)

	log.Info("merge complete",
		observability.Int(observability.MetricInputCount, len(res.Inputs)),
		observability.Int(observability.MetricPageCount, res.Pages),
		observability.Int64(observability.MetricOutputBytes, res.Bytes),
		observability.Duration(observability.MetricWriteTime, time.Since(writeStart)),
		observability.Duration(observability.MetricMergeTime, res.Duration),
	)
	return res, nil
}

func (m *Merger) resolveEngine() (engine.Engine, error) {
	if m.opts.Engine != nil {
		return m.opts.Engine, nil
	}
	return engine.Lookup(m.opts.EngineName)
}

// appendInput appends one input, giving the recovery strategy a chance to
// request a single relaxed retry when strict parsing rejects it.
func (m *Merger) appendInput(ctx context.Context, log observability.Logger, merger engine.Merger, idx int, path string, content io.ReadSeeker) (int, bool, error) {
	ctx, span := m.opts.Tracer.StartSpan(ctx, SpanAppend)
	defer span.Finish()
	span.SetTag(observability.FieldPath, path)
	span.SetTag(observability.FieldIndex, idx)

	doc := engine.Document{Name: path, Content: content}
	pages, err := merger.Append(ctx, doc)
	if err == nil {
		return pages, false, nil
	}

	action := m.opts.Recovery.OnError(ctx, err, recovery.Location{Path: path, Index: idx, Component: ComponentAppend})
	log.Debug("engine rejected input",
		observability.String(observability.FieldPath, path),
		observability.String(observability.FieldAction, action.String()),
		observability.Error(observability.FieldError, err),
	)
	if action != recovery.ActionFix || m.opts.EngineOptions.Validation != engine.ValidationStrict {
		span.SetError(err)
		return 0, false, err
	}

	doc.Relaxed = true
	pages, err = merger.Append(ctx, doc)
	if err != nil {
		span.SetError(err)
		return 0, true, err
	}
	span.SetTag("relaxed", true)
	log.Warn("input accepted in relaxed mode",
		observability.String(observability.FieldPath, path),
		observability.Int(observability.FieldIndex, idx),
	)
	return pages, true, nil
}

func (m *Merger) writeOutput(ctx context.Context, merger engine.Merger, output string) (int64, error) {
	ctx, span := m.opts.Tracer.StartSpan(ctx, SpanWrite)
	defer span.Finish()

	dir := filepath.Dir(output)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		span.SetError(err)
		return 0, outputError(ErrMsgCreateDir, output, err)
	}

	pf, err := renameio.TempFile(dir, output)
	if err != nil {
		span.SetError(err)
		return 0, outputError(ErrMsgCreateOutput, output, err)
	}
	defer pf.Cleanup()

	cw := &countingWriter{w: pf}
	if err := merger.Write(ctx, cw); err != nil {
		span.SetError(err)
		return 0, err
	}
	if err := pf.Chmod(FilePerm); err != nil {
		span.SetError(err)
		return 0, outputError(ErrMsgCreateOutput, output, err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		span.SetError(err)
		return 0, outputError(ErrMsgReplaceOutput, output, err)
	}
	span.SetTag(observability.MetricOutputBytes, cw.n)
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
