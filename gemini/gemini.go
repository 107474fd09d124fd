// Package gemini implements [docchat.Provider] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK, translating between docchat's
// domain types and the Gemini API types. Streaming uses the SDK's
// iter.Seq2 iterator, wrapped into the pull-based [docchat.Stream]
// interface. It serves as a direct-to-model fallback when no retrieval
// backend is configured; answers are not grounded in any document index.
package gemini

const (
	defaultModel     = "gemini-3.1-pro-preview"
	defaultMaxTokens = 65536
)
