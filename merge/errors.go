package merge

import (
	"errors"
	"fmt"

	"github.com/itsatony/go-cuserr"

	"github.com/wudi/pdfmerge/validate"
)

const (
	ErrCodeArgs   = "PDFMERGE_ARGS"
	ErrCodeOutput = "PDFMERGE_OUTPUT"
)

const (
	ErrMsgNoInputs      = "at least one input file is required"
	ErrMsgNoOutput      = "output path is required"
	ErrMsgOpenInput     = "failed to open input file"
	ErrMsgCreateDir     = "failed to create output directory for"
	ErrMsgCreateOutput  = "failed to create output file"
	ErrMsgReplaceOutput = "failed to replace output file"
)

const MetaKeyPath = "path"

var ErrInvalidRequest = errors.New("invalid merge request")

func argsError(msg string) error {
	err := cuserr.NewCustomErrorWithCategory(cuserr.ErrorCategoryValidation, ErrCodeArgs, msg)
	err.Sentinel = ErrInvalidRequest
	return err
}

func openError(path string, cause error) error {
	return cuserr.WrapWithCustomError(cause, cuserr.ErrorCategoryNotFound, validate.ErrCodeInput, fmt.Sprintf("%s %s", ErrMsgOpenInput, path)).
		WithMetadata(MetaKeyPath, path)
}

func outputError(msg, path string, cause error) error {
	return cuserr.WrapWithCustomError(cause, cuserr.ErrorCategoryInternal, ErrCodeOutput, fmt.Sprintf("%s %s", msg, path)).
		WithMetadata(MetaKeyPath, path)
}
