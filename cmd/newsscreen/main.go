package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/newsscreen/internal/config"
	"github.com/jask/newsscreen/internal/logger"
	"github.com/jask/newsscreen/internal/newsapi"
	"github.com/jask/newsscreen/internal/tui"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.OpenFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Close()

	lg.Info("starting", "country", cfg.NewsAPI.Country, "api_key_set", cfg.HasAPIKey(), "timeout", cfg.NewsAPI.Timeout)

	client := newsapi.New(cfg.NewsAPI, newsapi.WithLogger(lg.With("component", "newsapi")))

	p := tea.NewProgram(tui.New(ctx, cfg, client, lg), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		lg.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		cancel()
		_ = lg.Close()
		os.Exit(1)
	}
	lg.Info("exit")
}
