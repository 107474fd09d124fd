package gemini

import (
	"context"
	"fmt"

	"github.com/amartinez/docchat"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ docchat.Provider = (*Client)(nil)

// Client implements [docchat.Provider] for the Google Gemini API.
type Client struct {
	client       *genai.Client
	model        string
	systemPrompt string
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the model ID. Default is gemini-3.1-pro-preview.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithSystemPrompt sets a system instruction sent with every request.
func WithSystemPrompt(prompt string) Option {
	return func(c *Client) { c.systemPrompt = prompt }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c := &Client{
		client: gc,
		model:  defaultModel,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Stream sends a streaming request to the Gemini API and returns a
// [docchat.Stream] that emits reply fragments.
func (c *Client) Stream(ctx context.Context, req docchat.Request) (docchat.Stream, error) {
	contents := ConvertRequest(req)
	config := c.buildConfig()

	iter := c.client.Models.GenerateContentStream(ctx, c.model, contents, config)
	return newStream(ctx, iter), nil
}

func (c *Client) buildConfig() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: defaultMaxTokens,
	}
	if c.systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: c.systemPrompt}},
		}
	}
	return config
}

// ConvertRequest converts a docchat Request to genai Contents. The
// request history already carries the new question as its trailing entry;
// the separate Message field is only appended when the history omits it
// (e.g. a zero history limit). Exported for testing.
func ConvertRequest(req docchat.Request) []*genai.Content {
	var result []*genai.Content
	for _, entry := range req.History {
		role := "user"
		if entry.Role == docchat.RoleAssistant {
			role = "model"
		}
		result = append(result, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: entry.Content}},
		})
	}
	if n := len(req.History); n == 0 || req.History[n-1].Content != req.Message {
		result = append(result, &genai.Content{
			Role:  "user",
			Parts: []*genai.Part{{Text: req.Message}},
		})
	}
	return result
}
