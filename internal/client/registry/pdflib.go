package registry

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrijs2005/acadmate/internal/client/models"
	"github.com/dmitrijs2005/acadmate/internal/common"
	"github.com/dmitrijs2005/acadmate/internal/kvstore"
)

// IsPDF sniffs data the way browsers do; the result must be application/pdf.
func IsPDF(data []byte) bool {
	return http.DetectContentType(data) == models.PDFMediaType
}

// PdfLibrary stores PDF files grouped in named folders. Files are kept inline
// as data URLs, so large documents count heavily against the store quota.
type PdfLibrary struct {
	store kvstore.Store
}

func NewPdfLibrary(store kvstore.Store) *PdfLibrary {
	return &PdfLibrary{store: store}
}

func (l *PdfLibrary) load(ctx context.Context) (*models.PdfFolders, error) {
	folders := &models.PdfFolders{}
	if _, err := loadJSON(ctx, l.store, models.KeyPdfFolders, folders); err != nil {
		return nil, err
	}
	if folders.Len() == 0 {
		folders = models.NewPdfFolders(models.DefaultFolder)
	}
	return folders, nil
}

func (l *PdfLibrary) save(ctx context.Context, folders *models.PdfFolders) error {
	return saveJSON(ctx, l.store, models.KeyPdfFolders, folders)
}

// ListFolders returns folder names in creation order.
func (l *PdfLibrary) ListFolders(ctx context.Context) ([]string, error) {
	folders, err := l.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return folders.Names(), nil
}

func (l *PdfLibrary) CreateFolder(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("create folder: %w: folder name is required", common.ErrValidation)
	}

	folders, err := l.load(ctx)
	if err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	if folders.Has(name) {
		return fmt.Errorf("create folder %q: %w", name, common.ErrDuplicateFolder)
	}
	folders.Add(name)
	if err := l.save(ctx, folders); err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	return nil
}

// DeleteFolder removes a folder and every file in it. Removing the last
// folder brings back the default one on the next read.
func (l *PdfLibrary) DeleteFolder(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	folders, err := l.load(ctx)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if !folders.Has(name) {
		return fmt.Errorf("delete folder %q: %w", name, common.ErrFolderNotFound)
	}
	folders.Delete(name)
	if err := l.save(ctx, folders); err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	return nil
}

func (l *PdfLibrary) ListFiles(ctx context.Context, folder string) ([]models.PdfFile, error) {
	folder = strings.TrimSpace(folder)
	folders, err := l.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	files, ok := folders.Files(folder)
	if !ok {
		return nil, fmt.Errorf("list files %q: %w", folder, common.ErrFolderNotFound)
	}
	return files, nil
}

// AddFile stores data as name inside folder.
func (l *PdfLibrary) AddFile(ctx context.Context, folder, name string, data []byte) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("add file: %w: file name is required", common.ErrValidation)
	}
	folder = strings.TrimSpace(folder)
	if !IsPDF(data) {
		return fmt.Errorf("add file %q: %w", name, common.ErrNotPDF)
	}

	folders, err := l.load(ctx)
	if err != nil {
		return fmt.Errorf("add file: %w", err)
	}
	files, ok := folders.Files(folder)
	if !ok {
		return fmt.Errorf("add file %q: %w", folder, common.ErrFolderNotFound)
	}
	if slices.ContainsFunc(files, func(f models.PdfFile) bool { return f.Name == name }) {
		return fmt.Errorf("add file %q: %w", name, common.ErrDuplicateFile)
	}

	files = append(files, models.PdfFile{Name: name, DataURL: models.EncodeDataURL(models.PDFMediaType, data)})
	folders.Put(folder, files)
	if err := l.save(ctx, folders); err != nil {
		return fmt.Errorf("add file %q: %w", name, err)
	}
	return nil
}

// GetFile returns the decoded bytes of a stored file.
func (l *PdfLibrary) GetFile(ctx context.Context, folder, name string) ([]byte, error) {
	files, err := l.ListFiles(ctx, folder)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(files, func(f models.PdfFile) bool { return f.Name == name })
	if i < 0 {
		return nil, fmt.Errorf("get file %q: %w", name, common.ErrNotFound)
	}
	data, err := files[i].Bytes()
	if err != nil {
		return nil, fmt.Errorf("get file %q: %w", name, err)
	}
	return data, nil
}

func (l *PdfLibrary) DeleteFile(ctx context.Context, folder, name string) error {
	folder = strings.TrimSpace(folder)
	folders, err := l.load(ctx)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	files, ok := folders.Files(folder)
	if !ok {
		return fmt.Errorf("delete file %q: %w", folder, common.ErrFolderNotFound)
	}
	i := slices.IndexFunc(files, func(f models.PdfFile) bool { return f.Name == name })
	if i < 0 {
		return fmt.Errorf("delete file %q: %w", name, common.ErrNotFound)
	}
	folders.Put(folder, slices.Delete(files, i, i+1))
	if err := l.save(ctx, folders); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}
