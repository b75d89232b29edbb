package validate

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("%PDF-1.7\n"), 0o644))
	return p
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "a.pdf")
	upper := writeFile(t, dir, "B.PDF")
	text := writeFile(t, dir, "notes.txt")
	noExt := writeFile(t, dir, "README")
	subdir := filepath.Join(dir, "folder.pdf")
	require.NoError(t, os.Mkdir(subdir, 0o755))

	tests := []struct {
		name string
		path string
		want Reason
	}{
		{"regular pdf", good, ReasonOK},
		{"uppercase extension", upper, ReasonOK},
		{"text file", text, ReasonNotPDF},
		{"no extension", noExt, ReasonNotPDF},
		{"missing", filepath.Join(dir, "missing.pdf"), ReasonNotFound},
		{"missing without extension", filepath.Join(dir, "missing"), ReasonNotFound},
		{"directory", subdir, ReasonNotRegular},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Check(tt.path)
			assert.Equal(t, tt.want, res.Reason)
			assert.Equal(t, tt.path, res.Path)
			assert.Equal(t, tt.want == ReasonOK, res.OK())
		})
	}
}

func TestCheckUnreadable(t *testing.T) {
	denied := errors.New("permission denied")
	stat := func(string) (fs.FileInfo, error) { return nil, denied }

	res := check(stat, "locked.pdf")
	assert.Equal(t, ReasonUnreadable, res.Reason)
	assert.Equal(t, "permission denied", res.Detail)

	err := res.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInputUnreadable)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestInputsReportsFirstFailure(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.pdf")
	b := writeFile(t, dir, "b.txt")
	missing := filepath.Join(dir, "c.pdf")

	rep := Inputs([]string{a, missing, b})
	require.Len(t, rep.Results, 3)
	assert.False(t, rep.OK())

	failures := rep.Failures()
	require.Len(t, failures, 2)
	assert.Equal(t, ReasonNotFound, failures[0].Reason)
	assert.Equal(t, ReasonNotPDF, failures[1].Reason)

	err := rep.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInputNotFound)
	assert.Equal(t, ErrMsgInputNotFound+": "+missing, err.Error())
}

func TestInputsAllValid(t *testing.T) {
	dir := t.TempDir()
	rep := Inputs([]string{writeFile(t, dir, "a.pdf"), writeFile(t, dir, "b.Pdf")})
	assert.True(t, rep.OK())
	assert.NoError(t, rep.Err())
	assert.Empty(t, rep.Failures())
}

func TestResultErrMetadata(t *testing.T) {
	err := Result{Path: "scan.jpg", Reason: ReasonNotPDF}.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotPDF)
	assert.Contains(t, err.Error(), ErrMsgNotPDF)

	assert.Equal(t, "Not a PDF file: scan.jpg", err.Error())

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, ErrCodeInput, customErr.Code)
	assert.Equal(t, cuserr.ErrorCategoryValidation, customErr.Category)

	path, ok := customErr.GetMetadata(MetaKeyPath)
	assert.True(t, ok)
	assert.Equal(t, "scan.jpg", path)

	reason, ok := customErr.GetMetadata(MetaKeyReason)
	assert.True(t, ok)
	assert.Equal(t, string(ReasonNotPDF), reason)

	assert.NoError(t, Result{Path: "ok.pdf", Reason: ReasonOK}.Err())
}

func TestHasPDFExtension(t *testing.T) {
	assert.True(t, HasPDFExtension("x.pdf"))
	assert.True(t, HasPDFExtension("dir.d/X.PdF"))
	assert.False(t, HasPDFExtension("x.pdf.bak"))
	assert.False(t, HasPDFExtension("pdf"))
	assert.False(t, HasPDFExtension(".pdfx"))
}
