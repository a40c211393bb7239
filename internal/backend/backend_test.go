package backend

import (
	"path/filepath"
	"testing"

	"saldo/internal/config"
)

func TestCreateMemoryBackend(t *testing.T) {
	res, err := Create(&config.Config{DataBackend: "memory"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Store == nil {
		t.Fatal("nil store")
	}
	if err := res.Cleanup(); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
}

func TestCreateSQLiteBackend(t *testing.T) {
	res, err := Create(&config.Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: filepath.Join(t.TempDir(), "saldo.db"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer res.Cleanup()
	if res.Store == nil {
		t.Fatal("nil store")
	}
}

func TestCreateInvalidBackend(t *testing.T) {
	if _, err := Create(&config.Config{DataBackend: "redis"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
