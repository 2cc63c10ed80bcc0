package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dori/tminus/internal/alert"
	"github.com/dori/tminus/internal/config"
)

type silentPlayer struct{}

func (silentPlayer) PlayFile(string) error     { return errors.New("no device") }
func (silentPlayer) PlayTone(alert.Tone) error { return errors.New("no device") }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.DataDir = t.TempDir()
	cfg.Notify.Enabled = false
	cfg.Debug.LogFile = filepath.Join(cfg.DataDir, "debug.log")
	return cfg
}

func TestNewWiresSession(t *testing.T) {
	cfg := testConfig(t)
	cfg.Filter = "completed"

	application, err := New(cfg, Options{Player: silentPlayer{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	now := time.Now()
	if err := application.Engine.Start(now); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if application.Engine.Filter() != "completed" {
		t.Errorf("filter = %s", application.Engine.Filter())
	}
	if _, err := application.Engine.CreateAt("Launch", now.Add(time.Second), now); err != nil {
		t.Fatalf("CreateAt: %v", err)
	}
	res := application.Engine.Tick(now.Add(time.Second))
	if len(res.Completed) != 1 {
		t.Fatalf("completed = %d", len(res.Completed))
	}
	// A failing audio device must not break the tick
	application.Alert.Wait()

	if err := application.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	logged, err := os.ReadFile(cfg.Debug.LogFile)
	if err != nil {
		t.Fatalf("read debug log: %v", err)
	}
	for _, want := range []string{"session started", "completed", "visual only", "session closed"} {
		if !strings.Contains(string(logged), want) {
			t.Errorf("debug log missing %q", want)
		}
	}
}

func TestSingleInstance(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg, Options{Player: silentPlayer{}})
	if err != nil {
		t.Fatalf("first New: %v", err)
	}

	if _, err := New(cfg, Options{Player: silentPlayer{}}); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second New err = %v, want ErrAlreadyRunning", err)
	}

	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	again, err := New(cfg, Options{Player: silentPlayer{}})
	if err != nil {
		t.Fatalf("New after Close: %v", err)
	}
	again.Close()
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.TickInterval = 0

	if _, err := New(cfg, Options{}); err == nil {
		t.Fatal("expected error for invalid config")
	}
}
