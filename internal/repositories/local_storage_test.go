package repositories

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/desertthunder/dance-party/internal/session"
	"github.com/desertthunder/dance-party/internal/shared"
)

var _ session.Store = (*LocalStorage)(nil)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.OpenDatabase(shared.DatabaseConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestLocalStorage(t *testing.T) {
	t.Run("Get missing key", func(t *testing.T) {
		store := NewLocalStorage(setupTestDB(t))

		value, ok, err := store.Get("missing")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok || value != "" {
			t.Errorf("expected absent key, got %q (ok=%v)", value, ok)
		}
	})

	t.Run("Set and Get", func(t *testing.T) {
		store := NewLocalStorage(setupTestDB(t))

		if err := store.Set(session.AccessTokenKey, "tok1"); err != nil {
			t.Fatalf("failed to set: %v", err)
		}

		value, ok, err := store.Get(session.AccessTokenKey)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if !ok || value != "tok1" {
			t.Errorf("expected tok1, got %q (ok=%v)", value, ok)
		}
	})

	t.Run("Set overwrites", func(t *testing.T) {
		store := NewLocalStorage(setupTestDB(t))

		store.Set("k", "one")
		if err := store.Set("k", "two"); err != nil {
			t.Fatalf("failed to overwrite: %v", err)
		}

		if value, _, _ := store.Get("k"); value != "two" {
			t.Errorf("expected two, got %q", value)
		}

		var rows int
		if err := store.db.QueryRow("SELECT COUNT(*) FROM local_storage WHERE key = ?", "k").Scan(&rows); err != nil {
			t.Fatalf("failed to count rows: %v", err)
		}
		if rows != 1 {
			t.Errorf("expected a single row for k, got %d", rows)
		}
	})

	t.Run("Empty value is present", func(t *testing.T) {
		store := NewLocalStorage(setupTestDB(t))
		store.Set("k", "")

		if _, ok, _ := store.Get("k"); !ok {
			t.Error("expected empty value to be present")
		}
	})

	t.Run("Remove is idempotent", func(t *testing.T) {
		store := NewLocalStorage(setupTestDB(t))
		store.Set("k", "v")

		for i := 0; i < 2; i++ {
			if err := store.Remove("k"); err != nil {
				t.Fatalf("remove %d: expected no error, got %v", i+1, err)
			}
		}
		if _, ok, _ := store.Get("k"); ok {
			t.Error("expected key to be removed")
		}
	})

	t.Run("Durable across connections", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dance-party.db")

		db, err := shared.OpenDatabase(shared.DatabaseConfig{Path: path, MaxOpenConns: 1, MaxIdleConns: 1})
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		NewLocalStorage(db).Set(session.AccessTokenKey, "tok1")
		db.Close()

		db, err = shared.OpenDatabase(shared.DatabaseConfig{Path: path, MaxOpenConns: 1, MaxIdleConns: 1})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db.Close()

		if value, _, _ := NewLocalStorage(db).Get(session.AccessTokenKey); value != "tok1" {
			t.Errorf("expected token to survive reopen, got %q", value)
		}
	})

	t.Run("Closed database", func(t *testing.T) {
		db := setupTestDB(t)
		store := NewLocalStorage(db)
		db.Close()

		if _, _, err := store.Get("k"); !errors.Is(err, shared.ErrStorage) {
			t.Errorf("expected ErrStorage from Get, got %v", err)
		}
		if err := store.Set("k", "v"); !errors.Is(err, shared.ErrStorage) {
			t.Errorf("expected ErrStorage from Set, got %v", err)
		}
		if err := store.Remove("k"); !errors.Is(err, shared.ErrStorage) {
			t.Errorf("expected ErrStorage from Remove, got %v", err)
		}
	})

	t.Run("Drives the session manager", func(t *testing.T) {
		store := NewLocalStorage(setupTestDB(t))
		m := session.NewManager(session.Options{ClientID: "id", RedirectURI: "http://127.0.0.1:3000/", Store: store})

		if _, err := m.GenerateLoginURL(); err != nil {
			t.Fatalf("failed to generate login URL: %v", err)
		}
		nonce, _, _ := store.Get(session.StateKey)

		nav := &session.StaticNavigator{Fragment: "access_token=tok1&state=" + nonce}
		ok, err := m.With(nav, nil).IsAuthenticated()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !ok || !nav.Reset {
			t.Errorf("expected authenticated and URL reset, got ok=%v reset=%v", ok, nav.Reset)
		}
		if _, present, _ := store.Get(session.StateKey); present {
			t.Error("expected nonce to be consumed")
		}
	})
}
