package main

import (
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/dparedesb/avicola-console/internal/config"
	"github.com/dparedesb/avicola-console/internal/infrastructure/api"
	"github.com/dparedesb/avicola-console/internal/presentation/tui"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// The terminal is owned by the interface, so logs go to a file.
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.App.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	logPath := filepath.Join(cfg.Export.Dir, "console.log")
	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	logger.SetOutput(logFile)

	// Initialize the backend client
	client := api.NewClient(cfg, logger)

	// Run the console
	model := tui.NewModel(cfg, logger, client)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("Failed to run console: %v", err)
	}
}
