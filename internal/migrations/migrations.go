// Package migrations embeds the goose migrations for the SQL key/value backends.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// SQLite returns the migrations for the modernc.org/sqlite backend.
func SQLite() fs.FS {
	return sub("sqlite")
}

// Postgres returns the migrations for the pgx backend.
func Postgres() fs.FS {
	return sub("postgres")
}

func sub(dir string) fs.FS {
	f, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return f
}
