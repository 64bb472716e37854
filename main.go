package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/geminiflow/moa-tui/app"
	"github.com/geminiflow/moa-tui/client"
	"github.com/geminiflow/moa-tui/config"
	"github.com/geminiflow/moa-tui/history"
	"github.com/geminiflow/moa-tui/style"
)

var version = "v1.2"

// disableColor degrades rendering to plain text. termenv.Ascii is the
// no-color profile; the zero Profile value is TrueColor.
func disableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func main() {
	urlFlag := flag.String("url", "", "Backend base URL (overrides config and MOA_URL)")
	streamFlag := flag.Bool("stream", false, "Force streaming transport")
	noStream := flag.Bool("no-stream", false, "Force blocking transport")
	themeFlag := flag.String("theme", "", "Color theme (dark, light, catppuccin)")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("moa %s\n", version)
		os.Exit(0)
	}

	if *noColor {
		disableColor()
	}

	home, _ := os.UserHomeDir()
	app.ProfileDir = filepath.Join(home, ".moa")

	cfg := config.Load(app.ProfileDir)
	if *urlFlag != "" {
		cfg.BackendURL = *urlFlag
	}
	if *streamFlag {
		cfg.Streaming = true
	}
	if *noStream {
		cfg.Streaming = false
	}
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}

	// Theme precedence: explicit config/flag wins, otherwise follow the
	// terminal background.
	if _, ok := style.Themes[cfg.Theme]; ok && cfg.Theme != config.Defaults().Theme {
		style.SetTheme(cfg.Theme)
	} else if lipgloss.HasDarkBackground() {
		style.SetTheme("dark")
	} else {
		style.SetTheme("light")
	}

	c := client.New(cfg.BackendURL)
	c.Streaming = cfg.Streaming

	store := history.NewStore(filepath.Join(app.ProfileDir, "history"), cfg.MaxHistory)

	m := app.New(c, cfg, store, version)

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}

	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "moa: %v\n", err)
		os.Exit(1)
	}
}
