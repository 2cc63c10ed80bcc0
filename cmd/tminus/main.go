package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/tminus/internal/app"
	"github.com/dori/tminus/internal/config"
	"github.com/dori/tminus/internal/dateparse"
	"github.com/dori/tminus/internal/model"
	"github.com/dori/tminus/internal/ui"
	"github.com/dori/tminus/internal/ui/theme"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "when":
			os.Exit(handleWhen(os.Args[2:], time.Now()))
		case "version":
			fmt.Printf("tminus v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	// Parse flags for TUI mode
	configFlag := flag.String("config", config.GetDefaultConfigPath(), "Path to the YAML config file")
	filterFlag := flag.String("filter", "", "Starting filter (recent, important, completed)")
	themeFlag := flag.String("theme", "", "Theme name (nord, dracula, gruvbox, catppuccin)")
	soundFlag := flag.String("sound", "", "WAV file played when a countdown finishes")
	noNotifyFlag := flag.Bool("no-notify", false, "Disable desktop notifications")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override config values
	if *filterFlag != "" {
		cfg.Filter = *filterFlag
	}
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}
	if *soundFlag != "" {
		cfg.Alert.SoundFile = *soundFlag
	}
	if *noNotifyFlag {
		cfg.Notify.Enabled = false
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `tminus - countdown timers in your terminal

Usage:
  tminus                    Start the TUI
  tminus when <date>        Show how a date resolves and the time left
  tminus version            Show version
  tminus help               Show this help

Date Syntax:
  tminus when "2026-12-31 18:00"
  tminus when "tomorrow 9am"
  tminus when +1h30m

  Absolute:  2026-12-31, 2026-12-31 18:00, 12/31/2026, Dec 31, 2026 18:00
  Relative:  +10m, in 2h, today 17:00, tomorrow, 3pm

TUI Options:
  --config <path>   Config file (default ~/.config/tminus/config.yaml)
  --filter <name>   Starting filter (recent, important, completed)
  --theme <name>    Theme (nord, dracula, gruvbox, catppuccin)
  --sound <path>    WAV file played when a countdown finishes
  --no-notify       Disable desktop notifications

Keybindings:
  Navigation:   ↑/↓ or j/k    Move cursor
                g/G           Go to top/bottom

  Actions:      a             New countdown
                i             Toggle important
                d             Delete

  Filters:      1/2/3         Recent, important, completed
                f or tab      Next filter

  General:      ctrl+t        Cycle theme
                ?             Help
                q             Quit

Countdowns live for the session only and are gone when tminus exits.`

	fmt.Println(help)
}

// handleWhen resolves date text and prints the countdown to it
func handleWhen(args []string, now time.Time) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: tminus when <date>")
		fmt.Fprintln(os.Stderr, "Example: tminus when \"tomorrow 9am\"")
		return 1
	}

	text := strings.Join(args, " ")
	target, err := dateparse.Parse(text, now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if !target.After(now) {
		fmt.Fprintf(os.Stderr, "Error: %s is already in the past\n", target.Format(time.RFC1123))
		return 1
	}

	fmt.Printf("Target: %s (%s)\n", target.Format(time.RFC1123), formatTarget(target, now))
	fmt.Printf("T-minus: %s\n", model.DecomposeDuration(target.Sub(now)))
	return 0
}

func formatTarget(t, now time.Time) string {
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return "today"
	}

	tomorrow := now.AddDate(0, 0, 1)
	if t.Year() == tomorrow.Year() && t.YearDay() == tomorrow.YearDay() {
		return "tomorrow"
	}

	if t.Year() == now.Year() {
		return t.Format("Mon, Jan 2")
	}

	return t.Format("Jan 2, 2006")
}

func runTUI(cfg *config.Config) error {
	if cfg.Theme != "" {
		t, ok := theme.ByName(cfg.Theme)
		if !ok {
			return fmt.Errorf("unknown theme %q", cfg.Theme)
		}
		theme.SetTheme(t)
	}

	// Create application
	application, err := app.New(cfg, app.Options{})
	if err != nil {
		if errors.Is(err, app.ErrAlreadyRunning) {
			return fmt.Errorf("%w (lock in %s)", err, cfg.DataDir)
		}
		return err
	}
	defer reportClose(os.Stderr, application)

	// Create root model
	root := ui.NewRootModel(application)

	// Create and run program
	p := tea.NewProgram(
		root,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}

// reportClose closes the session and prints whatever failed while the
// program is exiting
func reportClose(w io.Writer, c io.Closer) {
	if err := c.Close(); err != nil {
		fmt.Fprintf(w, "Warning: failed to clean up: %v\n", err)
	}
}
