package services

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/acadmate/internal/client/models"
	"github.com/dmitrijs2005/acadmate/internal/client/registry"
	"github.com/dmitrijs2005/acadmate/internal/common"
	"github.com/dmitrijs2005/acadmate/internal/logging"
	"github.com/dmitrijs2005/acadmate/internal/pdfrender"
)

const (
	DefaultScale = 1.5
	ZoomStep     = 0.1
	MinScale     = 0.2
)

// readFile is the file-read collaborator used by Upload.
var readFile = os.ReadFile

// LibraryService manages the PDF library and opens documents for viewing.
//
// Contract:
//   - folder and file operations delegate to the PDF library registry;
//   - Upload reads a file from disk and stores it under its base name;
//   - Open parses a stored file and returns a Viewer on page 1 at DefaultScale.
type LibraryService interface {
	ListFolders(ctx context.Context) ([]string, error)
	CreateFolder(ctx context.Context, name string) error
	DeleteFolder(ctx context.Context, name string) error
	ListFiles(ctx context.Context, folder string) ([]models.PdfFile, error)
	Upload(ctx context.Context, folder, path string) (string, error)
	DeleteFile(ctx context.Context, folder, name string) error
	Open(ctx context.Context, folder, name string) (*Viewer, error)
}

type libraryService struct {
	lib *registry.PdfLibrary
	log logging.Logger
}

func NewLibraryService(lib *registry.PdfLibrary, log logging.Logger) LibraryService {
	return &libraryService{lib: lib, log: log.With("component", "library")}
}

func (s *libraryService) ListFolders(ctx context.Context) ([]string, error) {
	return s.lib.ListFolders(ctx)
}

func (s *libraryService) CreateFolder(ctx context.Context, name string) error {
	return s.lib.CreateFolder(ctx, name)
}

func (s *libraryService) DeleteFolder(ctx context.Context, name string) error {
	return s.lib.DeleteFolder(ctx, name)
}

func (s *libraryService) ListFiles(ctx context.Context, folder string) ([]models.PdfFile, error) {
	return s.lib.ListFiles(ctx, folder)
}

func (s *libraryService) Upload(ctx context.Context, folder, path string) (string, error) {
	data, err := readFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", common.ErrValidation, path, err)
	}
	name := filepath.Base(path)
	if err := s.lib.AddFile(ctx, folder, name, data); err != nil {
		s.log.Warn(ctx, "upload failed", "folder", folder, "file", name, "size", len(data), "error", err)
		return "", err
	}
	s.log.Info(ctx, "pdf uploaded", "folder", folder, "file", name, "size", len(data))
	return name, nil
}

func (s *libraryService) DeleteFile(ctx context.Context, folder, name string) error {
	return s.lib.DeleteFile(ctx, folder, name)
}

func (s *libraryService) Open(ctx context.Context, folder, name string) (*Viewer, error) {
	data, err := s.lib.GetFile(ctx, folder, name)
	if err != nil {
		return nil, err
	}
	doc, err := pdfrender.Open(data)
	if err != nil {
		s.log.Warn(ctx, "pdf parse failed", "folder", folder, "file", name, "error", err)
		return nil, err
	}
	return &Viewer{Folder: folder, Name: name, doc: doc, page: 1, scale: DefaultScale}, nil
}

// Viewer holds page and zoom state for one open document.
type Viewer struct {
	Folder string
	Name   string

	doc   *pdfrender.Document
	page  int
	scale float64
}

func (v *Viewer) Page() int       { return v.page }
func (v *Viewer) NumPages() int   { return v.doc.NumPages() }
func (v *Viewer) Scale() float64  { return v.scale }
func (v *Viewer) Columns() int    { return pdfrender.Columns(v.scale) }
func (v *Viewer) Next() int       { return v.Goto(v.page + 1) }
func (v *Viewer) Prev() int       { return v.Goto(v.page - 1) }
func (v *Viewer) ZoomIn() float64 { return v.setScale(v.scale + ZoomStep) }

func (v *Viewer) ZoomOut() float64 { return v.setScale(v.scale - ZoomStep) }

// Goto moves to page n, clamped to [1, NumPages].
func (v *Viewer) Goto(n int) int {
	v.page = min(max(n, 1), v.doc.NumPages())
	return v.page
}

func (v *Viewer) setScale(s float64) float64 {
	// keep one decimal so repeated steps do not drift
	v.scale = max(math.Round(s*10)/10, MinScale)
	return v.scale
}

func (v *Viewer) Render(w io.Writer) error {
	return v.doc.RenderPage(w, v.page, v.scale)
}
