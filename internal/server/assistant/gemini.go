package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/supportchat/internal/logging"
	"google.golang.org/genai"
)

// GeminiConfig holds the settings of the Gemini API backend. BaseURL is
// normally empty; it points the client at a proxy or a test server.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GeminiGateway completes prompts with a single fixed Gemini model. Calls are
// never retried and carry no timeout beyond the caller's context.
type GeminiGateway struct {
	client *genai.Client
	model  string
	logger logging.Logger
}

func NewGeminiGateway(ctx context.Context, cfg GeminiConfig, l logging.Logger) (*GeminiGateway, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiGateway{
		client: client,
		model:  cfg.Model,
		logger: l.With("module", "gemini"),
	}, nil
}

func (g *GeminiGateway) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", &GatewayError{Err: err}
	}

	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		g.logger.Warn(ctx, "gemini returned no text", "model", g.model)
		return "", &GatewayError{Err: ErrEmptyResponse}
	}

	return text, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, p := range c.Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}
