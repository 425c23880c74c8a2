package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/felipeftav/chatbot-LLM-toten/internal/backend"
	"github.com/felipeftav/chatbot-LLM-toten/internal/capture"
	"github.com/felipeftav/chatbot-LLM-toten/internal/config"
	"github.com/felipeftav/chatbot-LLM-toten/internal/playback"
	"github.com/felipeftav/chatbot-LLM-toten/internal/ui"
)

func main() {
	// Include sub-second precision in all log timestamps
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	// Stdout belongs to the TUI; route logging to a file.
	if f, err := tea.LogToFile("lia.log", "lia"); err == nil {
		defer f.Close()
	}

	cfg := config.Load()
	client := backend.NewClient(cfg.BackendURL)

	var device playback.Device
	if dev, err := playback.NewOtoDevice(); err != nil {
		log.Printf("no audio output available, running silent: %v", err)
		device = playback.NullDevice{}
		cfg.TTSEnabled = false
	} else {
		device = dev
	}

	m := ui.New(cfg, client, device, capture.MicSource{})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("lia: %v", err)
	}
}
