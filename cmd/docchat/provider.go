package main

import (
	"context"
	"fmt"
	"time"

	"github.com/amartinez/docchat"
	"github.com/amartinez/docchat/gemini"
	"github.com/amartinez/docchat/ragapi"
)

// resolveProvider selects and constructs the provider. All env var values
// are passed in as parameters - env is only read through config in run().
func resolveProvider(ctx context.Context, providerFlag, apiBase, geminiKey, geminiModel string) (docchat.Provider, error) {
	provider := providerFlag

	// Auto-detect if no flag.
	if provider == "" {
		hasBackend := apiBase != ""
		hasGemini := geminiKey != ""
		switch {
		case hasBackend && hasGemini:
			return nil, fmt.Errorf("both DOCCHAT_API_BASE_URL and GEMINI_API_KEY set: use -provider to select")
		case hasBackend:
			provider = "rag"
		case hasGemini:
			provider = "gemini"
		default:
			return nil, fmt.Errorf("no backend configured: set DOCCHAT_API_BASE_URL or GEMINI_API_KEY")
		}
	}

	switch provider {
	case "rag":
		if apiBase == "" {
			return nil, fmt.Errorf("DOCCHAT_API_BASE_URL not set (use -api-base flag or environment variable)")
		}
		return ragapi.New(apiBase), nil
	case "gemini":
		if geminiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		var opts []gemini.Option
		if geminiModel != "" {
			opts = append(opts, gemini.WithModel(geminiModel))
		}
		client, err := gemini.New(ctx, geminiKey, opts...)
		if err != nil {
			return nil, fmt.Errorf("gemini: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown provider %q: must be \"rag\" or \"gemini\"", provider)
	}
}

// checkBackend verifies the retrieval backend is reachable before the UI
// starts, so a bad URL fails fast instead of on the first question.
// Providers without a health route are skipped.
func checkBackend(ctx context.Context, provider docchat.Provider) error {
	client, ok := provider.(*ragapi.Client)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Health(ctx); err != nil {
		return fmt.Errorf("backend health check: %w", err)
	}
	return nil
}
