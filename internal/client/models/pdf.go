package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

const PDFMediaType = "application/pdf"

type PdfFile struct {
	Name    string `json:"name"`
	DataURL string `json:"dataUrl"`
}

// Bytes decodes the stored payload.
func (f PdfFile) Bytes() ([]byte, error) {
	_, data, err := DecodeDataURL(f.DataURL)
	return data, err
}

// PdfFolders maps folder names to their files and remembers the order in
// which folders were added. That order survives a JSON round trip.
// The zero value is an empty library.
type PdfFolders struct {
	order []string
	files map[string][]PdfFile
}

func NewPdfFolders(names ...string) *PdfFolders {
	f := &PdfFolders{}
	for _, n := range names {
		f.Add(n)
	}
	return f
}

func (f *PdfFolders) Names() []string {
	return slices.Clone(f.order)
}

func (f *PdfFolders) Len() int { return len(f.order) }

func (f *PdfFolders) Has(name string) bool {
	_, ok := f.files[name]
	return ok
}

// Files returns a copy of the folder's files.
func (f *PdfFolders) Files(name string) ([]PdfFile, bool) {
	files, ok := f.files[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(files), true
}

// Add appends an empty folder. It is a no-op when the folder exists.
func (f *PdfFolders) Add(name string) {
	if f.Has(name) {
		return
	}
	f.Put(name, nil)
}

// Put replaces the folder's files, appending the folder if it is new.
func (f *PdfFolders) Put(name string, files []PdfFile) {
	if f.files == nil {
		f.files = make(map[string][]PdfFile)
	}
	if _, ok := f.files[name]; !ok {
		f.order = append(f.order, name)
	}
	if files == nil {
		files = []PdfFile{}
	}
	f.files[name] = files
}

func (f *PdfFolders) Delete(name string) {
	if !f.Has(name) {
		return
	}
	delete(f.files, name)
	f.order = slices.DeleteFunc(f.order, func(n string) bool { return n == name })
}

func (f PdfFolders) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range f.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.files[name])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *PdfFolders) UnmarshalJSON(data []byte) error {
	*f = PdfFolders{}
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("pdf folders: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("pdf folders: unexpected key %v", tok)
		}
		var files []PdfFile
		if err := dec.Decode(&files); err != nil {
			return fmt.Errorf("pdf folders: folder %q: %w", name, err)
		}
		f.Put(name, files)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
