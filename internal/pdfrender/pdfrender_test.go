package pdfrender

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/acadmate/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF assembles a minimal document with one text line per page and a
// correct cross-reference table.
func buildPDF(pageTexts ...string) []byte {
	n := len(pageTexts)
	fontID := 3 + 2*n
	var objs []string
	objs = append(objs, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, n)
	for i := range pageTexts {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	objs = append(objs, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))

	for i, text := range pageTexts {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 700 Td (%s) Tj ET", text)
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R >> >> >>", 4+2*i, fontID),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}
	objs = append(objs, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func TestOpen_CountsPages(t *testing.T) {
	doc, err := Open(buildPDF("First page", "Second page"))
	require.NoError(t, err)
	assert.Equal(t, 2, doc.NumPages())

	text, err := doc.PageText(2)
	require.NoError(t, err)
	assert.Contains(t, text, "Second page")
}

func TestOpen_Garbage(t *testing.T) {
	_, err := Open([]byte("%PDF-1.4 but not really"))
	require.ErrorIs(t, err, common.ErrExternalOperationFailed)

	_, err = Open(nil)
	require.ErrorIs(t, err, common.ErrExternalOperationFailed)
}

func TestRenderPage(t *testing.T) {
	doc, err := Open(buildPDF("Hello AcadMate"))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, doc.RenderPage(&out, 1, 1.5))
	assert.Contains(t, out.String(), "Hello AcadMate")

	err = doc.RenderPage(&out, 2, 1.5)
	require.ErrorIs(t, err, ErrPageOutOfRange)
	err = doc.RenderPage(&out, 0, 1.5)
	require.ErrorIs(t, err, ErrPageOutOfRange)
}

func TestColumns(t *testing.T) {
	assert.Equal(t, 120, Columns(1.5))
	assert.Equal(t, 80, Columns(1))
	assert.Equal(t, 16, Columns(0.2))
	assert.Equal(t, 10, Columns(0.01))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"empty", "   ", 10, nil},
		{"fits", "one two", 10, []string{"one two"}},
		{"breaks on space", "one two three", 8, []string{"one two", "three"}},
		{"long word split", "abcdefghij xy", 4, []string{"abcd", "efgh", "ij", "xy"}},
		{"keeps paragraphs", "a\n\n\nb\n", 10, []string{"a", "", "b"}},
		{"collapses spaces", "a    b\tc", 10, []string{"a b c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.text, tt.width))
		})
	}
}
