package services

import (
	"log/slog"
	"time"

	"github.com/RehanWaris/voiceworx-vapp/app/config"
	"github.com/RehanWaris/voiceworx-vapp/app/database"
)

// Deps is everything a route group needs, built once in main.
type Deps struct {
	Config      *config.Config
	DB          *database.DB
	Logger      *slog.Logger
	Credentials *Credentials
	Ledger      *Ledger
	Attendance  *Attendance
	Activity    *Activity
	Uploads     *Uploads

	// Now is the clock. Nil means time.Now.
	Now func() time.Time
}

// NewDeps wires the services over db according to cfg.
func NewDeps(cfg *config.Config, db *database.DB, logger *slog.Logger) *Deps {
	if logger == nil {
		logger = slog.Default()
	}
	ledger := NewLedger(db)
	deps := &Deps{
		Config:     cfg,
		DB:         db,
		Logger:     logger,
		Ledger:     ledger,
		Attendance: NewAttendance(db, ledger),
		Activity:   NewActivity(db, ledger),
		Uploads:    NewUploads(cfg.UploadDir),
	}
	// Token issue and expiry follow Now, including when it is set later.
	deps.Credentials = NewCredentials(cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost).WithClock(deps.Clock)
	return deps
}

// Clock returns the current time in the configured location.
func (d *Deps) Clock() time.Time {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	return now().In(d.Config.Location())
}
