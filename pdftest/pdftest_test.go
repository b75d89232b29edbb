package pdftest

import (
	"bytes"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildXRefOffsets(t *testing.T) {
	data := Build(Pages(3, 300)...)

	require.True(t, bytes.HasPrefix(data, []byte("%PDF-1.7\n")))
	require.True(t, bytes.HasSuffix(data, []byte("%%EOF\n")))

	m := regexp.MustCompile(`startxref\n(\d+)\n`).FindSubmatch(data)
	require.NotNil(t, m)
	xrefOff, err := strconv.Atoi(string(m[1]))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data[xrefOff:], []byte("xref\n0 10\n")))

	entries := regexp.MustCompile(`(\d{10}) 00000 n `).FindAllSubmatch(data, -1)
	require.Len(t, entries, 9)
	for i, e := range entries {
		off, err := strconv.Atoi(string(e[1]))
		require.NoError(t, err)
		want := strconv.Itoa(i+1) + " 0 obj"
		assert.True(t, bytes.HasPrefix(data[off:], []byte(want)), "object %d offset %d", i+1, off)
	}
}

func TestBuildPageOrder(t *testing.T) {
	data := string(Build(Pages(2, 400)...))
	assert.Contains(t, data, "/Count 2")
	first := regexp.MustCompile(`/MediaBox \[0 0 (\d+) 792\]`).FindAllStringSubmatch(data, -1)
	require.Len(t, first, 2)
	assert.Equal(t, "400", first[0][1])
	assert.Equal(t, "401", first[1][1])
}

func TestBuildDefaults(t *testing.T) {
	data := string(Build())
	assert.Contains(t, data, "/Count 1")
	assert.Contains(t, data, "/MediaBox [0 0 612 792]")
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `a\(b\)\\`, escape(`a(b)\`))
	assert.Equal(t, "612.5", num(612.5))
	assert.Equal(t, "100", num(100))
}

func TestWriteFile(t *testing.T) {
	p := WriteFile(t, t.TempDir(), "nested/one.pdf", Page{Text: "x"})
	assert.FileExists(t, p)
}
