//go:build !nopdfcpu

package main

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/pdfmerge/pdftest"
)

func TestRun_PDFCPUEndToEnd(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		pdftest.WriteFile(t, dir, "first.pdf", pdftest.Pages(2, 360)...),
		pdftest.WriteFile(t, dir, "second.PDF", pdftest.Pages(2, 480)...),
	}
	out := filepath.Join(dir, "out", "merged.pdf")

	for i := 0; i < 2; i++ {
		r := runCLI(append(inputs, "-o", out)...)
		require.Equal(t, ExitCodeSuccess, r.code, r.stderr)
		assert.Equal(t, fmt.Sprintf("Merged 2 file(s) into: %s\n", out), r.stdout)

		n, err := api.PageCountFile(out)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	}
}

func TestRun_PDFCPURejectsCorruptInput(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		pdftest.WriteFile(t, dir, "ok.pdf", pdftest.Pages(1, 300)...),
		pdftest.WriteBytes(t, dir, "corrupt.pdf", pdftest.NotAPDF),
	}
	out := filepath.Join(dir, "merged.pdf")

	r := runCLI(append(inputs, "-o", out)...)
	assert.Equal(t, ExitCodeError, r.code)
	requireOneErrorLine(t, r)
	assert.Contains(t, r.stderr, "corrupt.pdf")
	assert.NoFileExists(t, out)
}
