// Package pdfrender turns stored PDF bytes into something a terminal can show:
// a page count and the text of one page, wrapped to a width derived from the
// zoom scale.
package pdfrender

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/acadmate/internal/common"
	"github.com/ledongthuc/pdf"
)

// BaseColumns is the line width at scale 1.0.
const BaseColumns = 80

var ErrPageOutOfRange = errors.New("page out of range")

type Document struct {
	reader *pdf.Reader
	pages  int
}

// Open parses data. The parser panics on some malformed inputs, so those
// are reported as errors too.
func Open(data []byte) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: parse pdf: %v", common.ErrExternalOperationFailed, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: parse pdf: %v", common.ErrExternalOperationFailed, err)
	}
	pages := reader.NumPage()
	if pages < 1 {
		return nil, fmt.Errorf("%w: pdf has no pages", common.ErrExternalOperationFailed)
	}
	return &Document{reader: reader, pages: pages}, nil
}

func (d *Document) NumPages() int {
	return d.pages
}

// PageText extracts the plain text of a 1-based page.
func (d *Document) PageText(page int) (text string, err error) {
	if page < 1 || page > d.pages {
		return "", fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, page, d.pages)
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: render page %d: %v", common.ErrExternalOperationFailed, page, r)
		}
	}()

	p := d.reader.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	text, err = p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("%w: render page %d: %v", common.ErrExternalOperationFailed, page, err)
	}
	return text, nil
}

// RenderPage writes the page's text to w, wrapped at BaseColumns*scale.
func (d *Document) RenderPage(w io.Writer, page int, scale float64) error {
	text, err := d.PageText(page)
	if err != nil {
		return err
	}

	lines := Wrap(text, Columns(scale))
	if len(lines) == 0 {
		lines = []string{"(no extractable text on this page)"}
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Columns is the wrap width for a zoom scale, never below 10.
func Columns(scale float64) int {
	return max(int(BaseColumns*scale), 10)
}

// Wrap splits text into lines of at most width runes, breaking on spaces.
// Words longer than width are split. Source line breaks are kept; blank runs
// collapse to a single empty line.
func Wrap(text string, width int) []string {
	var out []string
	blank := false
	for _, src := range strings.Split(text, "\n") {
		words := strings.Fields(strings.ToValidUTF8(src, ""))
		if len(words) == 0 {
			if len(out) > 0 && !blank {
				out = append(out, "")
				blank = true
			}
			continue
		}
		blank = false

		var line []rune
		for _, word := range words {
			w := []rune(word)
			for len(w) > width {
				if len(line) > 0 {
					out = append(out, string(line))
					line = nil
				}
				out = append(out, string(w[:width]))
				w = w[width:]
			}
			switch {
			case len(w) == 0:
			case len(line) == 0:
				line = w
			case len(line)+1+len(w) <= width:
				line = append(append(line, ' '), w...)
			default:
				out = append(out, string(line))
				line = w
			}
		}
		if len(line) > 0 {
			out = append(out, string(line))
		}
	}
	if n := len(out); n > 0 && out[n-1] == "" {
		out = out[:n-1]
	}
	return out
}
