// Command docchat is a terminal client for a retrieval-augmented
// document-chat backend.
//
// Usage:
//
//	DOCCHAT_API_BASE_URL=http://localhost:8000/api/chat docchat [flags]
//	GEMINI_API_KEY=gk-... docchat [flags]
//
// Flags:
//
//	-api-base string    Backend base URL (overrides DOCCHAT_API_BASE_URL)
//	-provider string    Provider: rag, gemini (auto-detected if omitted)
//	-model string       Gemini model ID (gemini provider only)
//	-transcript string  Path to transcript file to resume
//	-history int        Conversation history entries per request
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/amartinez/docchat"
	"github.com/amartinez/docchat/config"
	docjson "github.com/amartinez/docchat/json"
	"github.com/amartinez/docchat/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "docchat: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may be set elsewhere.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var (
		apiBase        = flag.String("api-base", cfg.APIBaseURL, "Backend base URL")
		providerFlag   = flag.String("provider", string(cfg.Provider), "Provider: rag, gemini (auto-detected if omitted)")
		model          = flag.String("model", cfg.GeminiModel, "Gemini model ID")
		transcriptPath = flag.String("transcript", cfg.TranscriptPath, "Path to transcript file to resume")
		historyLimit   = flag.Int("history", cfg.HistoryLimit, "Conversation history entries per request")
	)
	flag.Parse()

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	provider, err := resolveProvider(ctx, *providerFlag, *apiBase, cfg.GeminiAPIKey, *model)
	if err != nil {
		return err
	}
	if err := checkBackend(ctx, provider); err != nil {
		return err
	}

	store, err := loadOrCreateTranscript(*transcriptPath)
	if err != nil {
		return err
	}

	session := docchat.NewSession(provider, store, docchat.WithHistoryLimit(*historyLimit))

	theme := docchat.DefaultTheme()
	if err := tui.Run(ctx, tui.New(session.Submit, store, theme)); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}

	// Save transcript on exit.
	msgs := store.All()
	if *transcriptPath != "" {
		if err := docjson.Save(*transcriptPath, msgs); err != nil {
			return fmt.Errorf("save transcript: %w", err)
		}
	} else if len(msgs) > 0 {
		savePath := defaultTranscriptPath()
		if err := docjson.Save(savePath, msgs); err != nil {
			return fmt.Errorf("auto-save transcript: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Transcript saved to %s\n", savePath)
	}

	return nil
}

func loadOrCreateTranscript(path string) (*docchat.TranscriptStore, error) {
	if path == "" {
		return docchat.NewTranscriptStore(), nil
	}
	store, err := docjson.Load(path)
	switch {
	case err == nil:
		return store, nil
	case errors.Is(err, os.ErrNotExist):
		// First run with this path; start empty, save on exit.
		return docchat.NewTranscriptStore(), nil
	default:
		return nil, fmt.Errorf("load transcript: %w", err)
	}
}

func defaultTranscriptPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	name := fmt.Sprintf("%d.json", time.Now().UnixNano())
	return filepath.Join(home, ".docchat", "transcripts", name)
}
