package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/app"
	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/client"
	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/config"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (optional)")
	url := flag.String("url", "", "WebSocket URL of the proctoring monitor (overrides config)")
	token := flag.String("token", "", "Auth token (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *url != "" {
		cfg.Server.URL = *url
	}
	if *token != "" {
		cfg.Server.Token = *token
	}

	ws := client.NewWSClient(cfg.Server.URL, cfg.Server.Token,
		cfg.Reconnect.BaseDelay, cfg.Reconnect.MaxDelay)

	m := app.New(ws, ws, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
