// Package testutil builds throwaway application dependencies for tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/config"
	"github.com/RehanWaris/voiceworx-vapp/app/database"
	"github.com/RehanWaris/voiceworx-vapp/app/models"
	"github.com/RehanWaris/voiceworx-vapp/app/services"
)

// NewDeps returns services over a migrated SQLite file in t.TempDir(),
// evaluated in UTC and reading time from now.
func NewDeps(t *testing.T, now func() time.Time) *services.Deps {
	t.Helper()

	dir := t.TempDir()
	cfg, err := config.FromEnv(map[string]string{
		"VAPP_DB_DRIVER":   config.DriverSQLite,
		"VAPP_DB_DSN":      filepath.Join(dir, "vapp.db"),
		"VAPP_JWT_SECRET":  "test-secret",
		"VAPP_UPLOAD_DIR":  filepath.Join(dir, "uploads"),
		"VAPP_STATIC_DIR":  filepath.Join(dir, "static"),
		"VAPP_TIMEZONE":    "UTC",
		"VAPP_BCRYPT_COST": "4",
	})
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.RunMigrations(context.Background(), db, logger); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	deps := services.NewDeps(cfg, db, logger)
	deps.Now = now
	return deps
}

// CreateUser stores a user with a real password hash.
func CreateUser(t *testing.T, deps *services.Deps, name, email, password string, role models.Role) *models.User {
	t.Helper()

	hash, err := deps.Credentials.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := database.CreateUser(context.Background(), deps.DB, user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

// Clock is a settable time source.
type Clock struct {
	t time.Time
}

func NewClock(t time.Time) *Clock {
	return &Clock{t: t}
}

func (c *Clock) Now() time.Time {
	return c.t
}

func (c *Clock) Set(t time.Time) {
	c.t = t
}
