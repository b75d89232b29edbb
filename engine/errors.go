package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/itsatony/go-cuserr"
)

const (
	ErrCodeDependency = "PDFMERGE_DEPENDENCY"
	ErrCodeEngine     = "PDFMERGE_ENGINE"
)

const (
	ErrMsgMissingDependency = "Missing dependency"
	ErrMsgAppendFailed      = "failed to append document"
	ErrMsgWriteFailed       = "failed to write merged document"
	ErrMsgNothingToWrite    = "no documents appended"
)

const (
	MetaKeyEngine    = "engine"
	MetaKeyAvailable = "available"
	MetaKeyDocument  = "document"
)

// InstallHint tells the user how to get a binary with an engine linked in.
const InstallHint = "Install with: go install github.com/wudi/pdfmerge/cmd/pdfmerge@latest (build without the nopdfcpu tag)"

var (
	ErrMissingDependency = errors.New("pdf engine not linked")
	ErrNothingToWrite    = errors.New(ErrMsgNothingToWrite)
)

func newMissingDependencyError(name string, available []string) error {
	avail := "none"
	if len(available) > 0 {
		avail = strings.Join(available, ", ")
	}
	msg := fmt.Sprintf("%s: pdf engine %q is not available (registered: %s). %s", ErrMsgMissingDependency, name, avail, InstallHint)
	err := cuserr.NewCustomErrorWithCategory(cuserr.ErrorCategoryInternal, ErrCodeDependency, msg)
	err.Sentinel = ErrMissingDependency
	return err.
		WithMetadata(MetaKeyEngine, name).
		WithMetadata(MetaKeyAvailable, avail)
}

// AppendError wraps a library failure while appending the named document.
func AppendError(engineName, document string, cause error) error {
	return cuserr.WrapWithCustomError(cause, cuserr.ErrorCategoryExternal, ErrCodeEngine, fmt.Sprintf("%s %s", ErrMsgAppendFailed, document)).
		WithMetadata(MetaKeyEngine, engineName).
		WithMetadata(MetaKeyDocument, document)
}

// WriteError wraps a library failure while writing the merged output.
func WriteError(engineName string, cause error) error {
	return cuserr.WrapWithCustomError(cause, cuserr.ErrorCategoryExternal, ErrCodeEngine, ErrMsgWriteFailed).
		WithMetadata(MetaKeyEngine, engineName)
}
