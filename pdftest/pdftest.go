// Package pdftest builds small, well-formed PDF files for tests.
//
// Each page gets its own MediaBox so that page order survives a round trip
// through a real engine and can be read back from page dimensions.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Page describes one synthetic page.
type Page struct {
	Width  float64
	Height float64
	Text   string
}

const (
	DefaultWidth  = 612
	DefaultHeight = 792
)

// Pages returns n letter-height pages whose widths are first, first+1, ...
func Pages(n int, first float64) []Page {
	out := make([]Page, n)
	for i := range out {
		out[i] = Page{
			Width:  first + float64(i),
			Height: DefaultHeight,
			Text:   fmt.Sprintf("page %d", i+1),
		}
	}
	return out
}

// Build renders a PDF 1.7 document with one content stream per page and a
// classic cross-reference table.
func Build(pages ...Page) []byte {
	if len(pages) == 0 {
		pages = []Page{{Width: DefaultWidth, Height: DefaultHeight}}
	}
	const firstPageObj = 4
	objCount := firstPageObj - 1 + 2*len(pages)

	buf := &bytes.Buffer{}
	offsets := make([]int, objCount+1)
	obj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	buf.WriteString("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")
	obj(1, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", firstPageObj+2*i)
	}
	obj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	obj(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	for i, p := range pages {
		w, h := p.Width, p.Height
		if w <= 0 {
			w = DefaultWidth
		}
		if h <= 0 {
			h = DefaultHeight
		}
		pageNum := firstPageObj + 2*i
		contentNum := pageNum + 1
		obj(pageNum, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %s %s] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			num(w), num(h), contentNum))
		content := fmt.Sprintf("BT /F1 12 Tf 36 36 Td (%s) Tj ET", escape(p.Text))
		obj(contentNum, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xrefOff := buf.Len()
	fmt.Fprintf(buf, "xref\n0 %d\n0000000000 65535 f \n", objCount+1)
	for i := 1; i <= objCount; i++ {
		fmt.Fprintf(buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", objCount+1, xrefOff)
	return buf.Bytes()
}

// NotAPDF is content no PDF reader accepts.
var NotAPDF = []byte("this file only pretends to be a PDF\n")

// WriteFile writes Build(pages...) to dir/name and returns the path.
func WriteFile(tb testing.TB, dir, name string, pages ...Page) string {
	tb.Helper()
	return WriteBytes(tb, dir, name, Build(pages...))
}

// WriteBytes writes raw content to dir/name and returns the path.
func WriteBytes(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("create fixture dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

func num(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
