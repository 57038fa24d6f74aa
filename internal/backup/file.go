package backup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dmitrijs2005/acadmate/internal/common"
	"github.com/dmitrijs2005/acadmate/internal/filex"
)

// FileSink keeps snapshots as files in a directory.
type FileSink struct {
	dir string
}

// NewFileSink creates dir (relative to the working directory) if needed.
func NewFileSink(dir string) (*FileSink, error) {
	full, err := filex.EnsureSubdDir(dir)
	if err != nil {
		return nil, err
	}
	return &FileSink{dir: full}, nil
}

func (s *FileSink) Dir() string { return s.dir }

func (s *FileSink) Put(_ context.Context, name string, data []byte) error {
	if err := validName(name); err != nil {
		return err
	}
	return filex.WriteFileAtomic(filepath.Join(s.dir, name), data)
}

func (s *FileSink) Get(_ context.Context, name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: snapshot %s", common.ErrNotFound, name)
	}
	return data, err
}

// List returns snapshot names in ascending order.
func (s *FileSink) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), fileExt) {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}
