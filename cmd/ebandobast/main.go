package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/ebandobast/internal/config"
	"github.com/jask/ebandobast/internal/database"
	"github.com/jask/ebandobast/internal/database/repository"
	"github.com/jask/ebandobast/internal/nav"
	"github.com/jask/ebandobast/internal/prefs"
	"github.com/jask/ebandobast/internal/tui"
)

func main() {
	open := flag.String("open", "", "start on this screen instead of the splash (e.g. chat, admin-map)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var deepLink *nav.Screen
	if *open != "" {
		s, err := nav.ParseScreen(*open)
		if err != nil {
			log.Fatalf("open: %v", err)
		}
		deepLink = &s
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	gps := &prefs.GPSInterval{
		Settings:  repository.NewSettingsRepo(db),
		DefaultMs: cfg.GPS.DefaultIntervalMs,
	}
	intervalMs, err := gps.Load(ctx)
	if err != nil {
		log.Printf("warn: %v", err)
	}

	// the alt screen owns the terminal; logs go to a file or nowhere
	if cfg.Log.Path != "" {
		f, err := tea.LogToFile(cfg.Log.Path, "ebandobast")
		if err != nil {
			log.Fatalf("log file: %v", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(tui.New(ctx, cfg, gps, intervalMs, deepLink), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
