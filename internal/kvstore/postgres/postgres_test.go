package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/acadmate/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"
)

const (
	qGet    = `(?s)^SELECT\s+value\s+FROM\s+kv\s+WHERE\s+key\s*=\s*\$1\s*$`
	qSet    = `(?s)^INSERT\s+INTO\s+kv\s*\(key,\s*value\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT\s*\(key\)\s*DO\s+UPDATE\s+SET\s+value\s*=\s*EXCLUDED\.value,\s*updated_at\s*=\s*now\(\)\s*$`
	qDelete = `(?s)^DELETE\s+FROM\s+kv\s+WHERE\s+key\s*=\s*\$1\s*$`
	qKeys   = `(?s)^SELECT\s+key\s+FROM\s+kv\s+ORDER\s+BY\s+key\s*$`
)

func newStoreWithMock(t *testing.T) (*Store, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return New(db), mock, db
}

func TestGet_Found(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qGet).WithArgs("acadmate-user").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("a@b.co"))

	v, ok, err := s.Get(context.Background(), "acadmate-user")
	if err != nil || !ok || v != "a@b.co" {
		t.Fatalf("unexpected result: %q %v %v", v, ok, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGet_NotFound(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qGet).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	v, ok, err := s.Get(context.Background(), "ghost")
	if err != nil || ok || v != "" {
		t.Fatalf("want empty miss, got %q %v %v", v, ok, err)
	}
}

func TestGet_DBError(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qGet).WithArgs("k").WillReturnError(errors.New("db down"))

	_, _, err := s.Get(context.Background(), "k")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestSet_Success(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(qSet).WithArgs("acadmate-notes", "[]").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.Set(context.Background(), "acadmate-notes", "[]"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSet_DiskFullMapsToQuota(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(qSet).WithArgs("k", "v").
		WillReturnError(&pgconn.PgError{Code: "53100", Message: "could not extend file"})

	err := s.Set(context.Background(), "k", "v")
	if !errors.Is(err, common.ErrStorageQuotaExceeded) {
		t.Fatalf("want quota error, got %v", err)
	}
}

func TestSet_OtherPgErrorIsNotQuota(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(qSet).WithArgs("k", "v").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := s.Set(context.Background(), "k", "v")
	if err == nil || errors.Is(err, common.ErrStorageQuotaExceeded) {
		t.Fatalf("want plain db error, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectExec(qDelete).WithArgs("k").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := s.Remove(context.Background(), "k"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}

	mock.ExpectExec(qDelete).WithArgs("k").WillReturnError(errors.New("db down"))
	if err := s.Remove(context.Background(), "k"); err == nil {
		t.Fatal("expected error")
	}
}

func TestKeys(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qKeys).WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("a").AddRow("b"))

	keys, err := s.Keys(context.Background())
	if err != nil {
		t.Fatalf("Keys error: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestKeys_RowError(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"key"}).AddRow("a").RowError(0, errors.New("row broke"))
	mock.ExpectQuery(qKeys).WillReturnRows(rows)

	if _, err := s.Keys(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestSetMany_CommitsInKeyOrder(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(qSet).WithArgs("a", "1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qSet).WithArgs("b", "2").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := s.SetMany(context.Background(), map[string]string{"b": "2", "a": "1"}); err != nil {
		t.Fatalf("SetMany error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSetMany_RollsBackOnError(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(qSet).WithArgs("a", "1").WillReturnError(&pgconn.PgError{Code: "53100"})
	mock.ExpectRollback()

	err := s.SetMany(context.Background(), map[string]string{"a": "1"})
	if !errors.Is(err, common.ErrStorageQuotaExceeded) {
		t.Fatalf("want quota error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRunMigrations_UsesSeam(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	if err := RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
	if gotDir != "." {
		t.Fatalf("unexpected dir %q", gotDir)
	}

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	if err := RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("want boom, got %v", err)
	}
}
