// Package backup exports every AcadMate key from a store into a JSON
// snapshot and restores such snapshots.
//
// Snapshots are written to a Sink: a local directory (FileSink) or an
// S3-compatible bucket (S3Sink).
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/dmitrijs2005/acadmate/internal/common"
	"github.com/dmitrijs2005/acadmate/internal/kvstore"
)

const (
	FormatVersion = 1
	fileExt       = ".json"
)

// Snapshot is the on-disk form of a backup.
type Snapshot struct {
	Version   int               `json:"version"`
	CreatedAt time.Time         `json:"createdAt"`
	Entries   map[string]string `json:"entries"`
}

// Sink stores snapshots by name.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
}

// SnapshotName is the file name of a snapshot taken at t.
func SnapshotName(t time.Time) string {
	return "acadmate-" + t.UTC().Format("20060102T150405Z") + fileExt
}

func validName(name string) error {
	if name == "" || path.Base(name) != name || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: invalid snapshot name %q", common.ErrValidation, name)
	}
	return nil
}

// Export snapshots every key with the AcadMate prefix and writes it to sink.
func Export(ctx context.Context, store kvstore.Store, sink Sink, now time.Time) (string, int, error) {
	entries, err := kvstore.Snapshot(ctx, store, common.KeyPrefix)
	if err != nil {
		return "", 0, fmt.Errorf("export: %w", err)
	}
	snap := Snapshot{Version: FormatVersion, CreatedAt: now.UTC(), Entries: entries}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", 0, fmt.Errorf("export: encode: %w", err)
	}

	name := SnapshotName(now)
	if err := sink.Put(ctx, name, data); err != nil {
		return "", 0, fmt.Errorf("export: %w", err)
	}
	return name, len(entries), nil
}

// Decode parses and checks a snapshot.
func Decode(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: decode snapshot: %v", common.ErrValidation, err)
	}
	if snap.Version != FormatVersion {
		return Snapshot{}, fmt.Errorf("%w: unsupported snapshot version %d", common.ErrValidation, snap.Version)
	}
	for k := range snap.Entries {
		if !strings.HasPrefix(k, common.KeyPrefix) {
			return Snapshot{}, fmt.Errorf("%w: foreign key %q in snapshot", common.ErrValidation, k)
		}
	}
	return snap, nil
}

// Restore writes the named snapshot back into store. Keys absent from the
// snapshot are left untouched. A quota failure is returned as is.
func Restore(ctx context.Context, store kvstore.Store, sink Sink, name string) (int, error) {
	if err := validName(name); err != nil {
		return 0, err
	}
	data, err := sink.Get(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("restore: %w", err)
	}
	snap, err := Decode(data)
	if err != nil {
		return 0, fmt.Errorf("restore: %w", err)
	}
	if err := kvstore.SetMany(ctx, store, snap.Entries); err != nil {
		return 0, fmt.Errorf("restore: %w", err)
	}
	return len(snap.Entries), nil
}

// Latest returns the newest snapshot name in sink.
func Latest(ctx context.Context, sink Sink) (string, error) {
	names, err := sink.List(ctx)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w: no snapshots", common.ErrNotFound)
	}
	return names[len(names)-1], nil
}
