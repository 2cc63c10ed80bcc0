package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/dori/tminus/internal/alert"
	"github.com/dori/tminus/internal/config"
	"github.com/dori/tminus/internal/db"
	"github.com/dori/tminus/internal/engine"
	"github.com/dori/tminus/internal/model"
	"github.com/dori/tminus/internal/notify"
	"github.com/gofrs/flock"
	"go.uber.org/multierr"
)

// ErrAlreadyRunning is returned when another session holds the lock
var ErrAlreadyRunning = errors.New("another instance of tminus is already running")

// App holds the session state and its collaborators
type App struct {
	Config   *config.Config
	DB       *db.DB
	Engine   *engine.Engine
	Alert    *alert.Trigger
	Notifier *notify.Notifier
	Logger   *log.Logger

	lockFile *flock.Flock
	logFile  *os.File
}

// Options lets callers swap collaborators, mainly for tests
type Options struct {
	Player alert.Player // nil uses the system speaker
}

// New creates a new application instance
func New(cfg *config.Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{Config: cfg}

	if err := app.openLog(); err != nil {
		return nil, err
	}

	// Acquire lock to ensure single instance
	if err := app.acquireLock(); err != nil {
		app.Close()
		return nil, err
	}

	database, err := db.Open()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database

	player := opts.Player
	if player == nil {
		player = alert.NewSpeaker(cfg.Alert.SampleRate)
	}
	app.Alert = alert.NewTrigger(player, cfg.Alert.SoundFile, alert.Tone{
		Frequency: cfg.Alert.ToneHz,
		Gain:      cfg.Alert.ToneGain,
		Duration:  cfg.Alert.ToneDuration,
	}, app.Logger)
	app.Notifier = notify.NewNotifier(cfg.Notify.Enabled)

	filter, _ := model.ParseFilter(cfg.Filter) // checked by Validate
	app.Engine = engine.New(app.DB, engine.Options{
		Filter:   filter,
		Alerter:  app.Alert,
		Notifier: app.Notifier,
		Logger:   app.Logger,
	})

	app.Logger.Printf("session started (data dir %s)", cfg.DataDir)
	return app, nil
}

// openLog sets up the debug logger. Without a log file everything is discarded
// so nothing leaks onto the alt screen.
func (a *App) openLog() error {
	if a.Config.Debug.LogFile == "" {
		a.Logger = log.New(io.Discard, "", 0)
		return nil
	}

	f, err := os.OpenFile(a.Config.Debug.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}
	a.logFile = f
	a.Logger = log.New(f, "tminus ", log.LstdFlags|log.Lmicroseconds)
	return nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.Config.DataDir, "tminus.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return ErrAlreadyRunning
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() error {
	if a.lockFile == nil || !a.lockFile.Locked() {
		return nil
	}
	return a.lockFile.Unlock()
}

// Close discards the session and releases resources
func (a *App) Close() error {
	var err error

	if a.DB != nil {
		if cerr := a.DB.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close database: %w", cerr))
		}
	}

	if lerr := a.releaseLock(); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("failed to release lock: %w", lerr))
	}

	if a.logFile != nil {
		a.Logger.Printf("session closed")
		err = multierr.Append(err, a.logFile.Close())
	}

	return err
}
