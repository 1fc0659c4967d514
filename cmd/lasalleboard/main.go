package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jrcapio/lasalleboard/internal/app"
	"github.com/jrcapio/lasalleboard/internal/credential"
	"github.com/jrcapio/lasalleboard/internal/model"
	"github.com/jrcapio/lasalleboard/internal/prefs"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("lasalleboard " + version)
		return nil
	}

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The TUI owns stdout, so the standard logger goes to a file next
	// to the database.
	if err := redirectLog(cfg.Database.Path); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	store, err := prefs.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open preference store: %w", err)
	}
	defer store.Close()

	// Missing token is not an error; the UI opens with the token form.
	tok, err := credential.Token()
	if err != nil {
		log.Printf("reading token from keyring: %v", err)
	}

	p := tea.NewProgram(app.New(cfg, store, tok), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// redirectLog points the standard logger at lasalleboard.log in the
// data directory.
func redirectLog(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	f, err := os.OpenFile(
		filepath.Join(dir, "lasalleboard.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		0600,
	)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return nil
}
