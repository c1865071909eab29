package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-property-backend/internal/domain"
)

func TestOpenSQLite_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "catalog.db")
	db, err := OpenSQLite(path)
	if db != nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want ErrNotExist, got db=%v err=%v", db, err)
	}
}

func TestOpenSQLite_FileBackedCatalog(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	pragma := func(name string) string {
		var v string
		if err := db.Raw("PRAGMA " + name).Row().Scan(&v); err != nil {
			t.Fatalf("PRAGMA %s: %v", name, err)
		}
		return strings.ToLower(v)
	}
	for name, want := range map[string]string{
		"journal_mode": "wal",
		"synchronous":  "1",
		"foreign_keys": "1",
		"busy_timeout": "5000",
	} {
		if got := pragma(name); got != want {
			t.Fatalf("%s = %q; want %q", name, got, want)
		}
	}
	if got := sqlDB.Stats().MaxOpenConnections; got != sqlitePool.maxOpen {
		t.Fatalf("MaxOpenConnections = %d", got)
	}

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	for _, model := range []any{&domain.Property{}, &domain.Commune{}, &domain.User{}, &domain.Investment{}, &domain.Idempotency{}} {
		if !db.Migrator().HasTable(model) {
			t.Fatalf("no table for %T", model)
		}
	}

	ctx := context.Background()
	store := NewGormStore(db)
	want := SeedProperties()[2]
	if err := store.CreateProperty(ctx, &want); err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}
	got, err := store.GetProperty(ctx, want.ID)
	if err != nil || got.Name != want.Name || got.Commune != want.Commune {
		t.Fatalf("GetProperty = %+v, %v", got, err)
	}
}

func TestEnableTracing_SeedStillWorks(t *testing.T) {
	db := newTestDB(t, true)
	if err := EnableTracing(db); err != nil {
		t.Fatalf("EnableTracing: %v", err)
	}
	if err := Seed(context.Background(), NewGormStore(db), "demo-user"); err != nil {
		t.Fatalf("Seed: %v", err)
	}
}

func TestOpenPostgres_Unreachable(t *testing.T) {
	db, err := OpenPostgres("postgres://catalog@127.0.0.1:1/catalog?sslmode=disable&connect_timeout=1")
	if err == nil || db != nil {
		t.Fatalf("want a dial error, got db=%v err=%v", db, err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{errors.New("UNIQUE constraint failed: users.email"), true},
		{errors.New(`ERROR: duplicate key value violates unique constraint "ux_users_email" (SQLSTATE 23505)`), true},
		{fmt.Errorf("create user: %w", gorm.ErrDuplicatedKey), true},
		{errors.New("no such table: users"), false},
		{gorm.ErrRecordNotFound, false},
	}
	for _, tc := range cases {
		if got := isUniqueViolation(tc.err); got != tc.want {
			t.Fatalf("isUniqueViolation(%v) = %v", tc.err, got)
		}
	}
}
