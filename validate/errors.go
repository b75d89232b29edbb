package validate

import (
	"errors"
	"fmt"

	"github.com/itsatony/go-cuserr"
)

const ErrCodeInput = "PDFMERGE_INPUT"

const (
	ErrMsgInputNotFound   = "Input file not found"
	ErrMsgNotPDF          = "Not a PDF file"
	ErrMsgNotRegular      = "Not a regular file"
	ErrMsgInputUnreadable = "Cannot access input file"
)

const (
	MetaKeyPath   = "path"
	MetaKeyReason = "reason"
)

var (
	ErrInputNotFound   = errors.New("no such file")
	ErrNotPDF          = errors.New("missing .pdf extension")
	ErrNotRegular      = errors.New("not a regular file")
	ErrInputUnreadable = errors.New("stat failed")
)

// Err converts a failing result into a coded error. It returns nil for ReasonOK.
func (r Result) Err() error {
	var sentinel error
	var msg string
	switch r.Reason {
	case ReasonOK:
		return nil
	case ReasonNotFound:
		sentinel, msg = ErrInputNotFound, ErrMsgInputNotFound
	case ReasonNotPDF:
		sentinel, msg = ErrNotPDF, ErrMsgNotPDF
	case ReasonNotRegular:
		sentinel, msg = ErrNotRegular, ErrMsgNotRegular
	default:
		sentinel, msg = ErrInputUnreadable, ErrMsgInputUnreadable
	}
	text := fmt.Sprintf("%s: %s", msg, r.Path)
	if r.Detail != "" {
		text = fmt.Sprintf("%s (%s)", text, r.Detail)
	}
	category := cuserr.ErrorCategoryValidation
	if r.Reason == ReasonNotFound {
		category = cuserr.ErrorCategoryNotFound
	}
	// The sentinel only classifies; the message already says everything.
	err := cuserr.NewCustomErrorWithCategory(category, ErrCodeInput, text)
	err.Sentinel = sentinel
	return err.
		WithMetadata(MetaKeyPath, r.Path).
		WithMetadata(MetaKeyReason, string(r.Reason))
}
