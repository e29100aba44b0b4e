package persist

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/l1jgo/skirmish/internal/config"
	"go.uber.org/zap"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no migrations embedded")
	}
	for _, e := range entries {
		src, err := fs.ReadFile(migrations, "migrations/"+e.Name())
		if err != nil {
			t.Fatalf("read %s: %v", e.Name(), err)
		}
		body := string(src)
		if !strings.Contains(body, "-- +goose Up") || !strings.Contains(body, "-- +goose Down") {
			t.Errorf("%s lacks goose Up/Down markers", e.Name())
		}
	}
}

func TestNewDBRequiresDSN(t *testing.T) {
	_, err := NewDB(context.Background(), config.DatabaseConfig{}, zap.NewNop())
	if !errors.Is(err, ErrNoDSN) {
		t.Fatalf("err = %v, want ErrNoDSN", err)
	}
}

func TestNewDBRejectsBadDSN(t *testing.T) {
	_, err := NewDB(context.Background(), config.DatabaseConfig{DSN: "postgres://%zz"}, zap.NewNop())
	if err == nil || errors.Is(err, ErrNoDSN) {
		t.Fatalf("err = %v, want a parse error", err)
	}
}
