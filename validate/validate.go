// Package validate runs the pre-merge checks on input paths.
//
// Checks never raise: each input yields a Result carrying a Reason, and
// callers turn the first failing Result into an error with Result.Err.
package validate

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Reason names the outcome of checking one input.
type Reason string

const (
	ReasonOK         Reason = "ok"
	ReasonNotFound   Reason = "not_found"
	ReasonNotPDF     Reason = "not_pdf"
	ReasonNotRegular Reason = "not_regular"
	ReasonUnreadable Reason = "unreadable"
)

// Extension is the required input suffix, compared case-insensitively.
const Extension = ".pdf"

// Result is the outcome of checking a single input.
type Result struct {
	Path   string
	Reason Reason
	Detail string
}

func (r Result) OK() bool { return r.Reason == ReasonOK }

// Report holds one Result per input, in input order.
type Report struct {
	Results []Result
}

// Failures returns the failing results in input order.
func (r Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

func (r Report) OK() bool { return len(r.Failures()) == 0 }

// Err returns the error for the first failing input, or nil.
func (r Report) Err() error {
	for _, res := range r.Results {
		if !res.OK() {
			return res.Err()
		}
	}
	return nil
}

// Check validates one input: it must exist, carry the .pdf extension and be a regular file.
func Check(path string) Result {
	return check(os.Stat, path)
}

// Inputs checks every path in order.
func Inputs(paths []string) Report {
	return inputs(os.Stat, paths)
}

type statFunc func(string) (fs.FileInfo, error)

func inputs(stat statFunc, paths []string) Report {
	rep := Report{Results: make([]Result, 0, len(paths))}
	for _, p := range paths {
		rep.Results = append(rep.Results, check(stat, p))
	}
	return rep
}

func check(stat statFunc, path string) Result {
	info, err := stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Path: path, Reason: ReasonNotFound}
		}
		return Result{Path: path, Reason: ReasonUnreadable, Detail: err.Error()}
	}
	if !HasPDFExtension(path) {
		return Result{Path: path, Reason: ReasonNotPDF}
	}
	if !info.Mode().IsRegular() {
		return Result{Path: path, Reason: ReasonNotRegular, Detail: info.Mode().Type().String()}
	}
	return Result{Path: path, Reason: ReasonOK}
}

// HasPDFExtension reports whether path ends in .pdf, ignoring case.
func HasPDFExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}
