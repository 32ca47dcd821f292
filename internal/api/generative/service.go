package generative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/descubre-app/descubre-api/internal/types"
)

// ErrNotConfigured indicates the generative backend has no credential; the
// chat engine falls back to its deterministic path.
var ErrNotConfigured = errors.New("generative backend is not configured")

// Backend is the generative text collaborator consumed by the chat engine.
type Backend interface {
	Available() bool
	Generate(ctx context.Context, message, promptContext string) (*types.GenAIChatResult, error)
}

var _ Backend = (*Client)(nil)

// Client wraps the Gemini API behind the Backend contract.
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
	timeout     time.Duration
	logger      *slog.Logger
}

func NewClient(ctx context.Context, model string, temperature float64, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Client{
		client:      client,
		model:       model,
		temperature: float32(temperature),
		timeout:     timeout,
		logger:      logger,
	}, nil
}

func (c *Client) Available() bool {
	return c != nil && c.client != nil
}

// Generate asks the model for a structured chat payload and parses the
// strict-JSON response.
func (c *Client) Generate(ctx context.Context, message, promptContext string) (*types.GenAIChatResult, error) {
	if !c.Available() {
		return nil, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := chatPrompt(message, promptContext)
	config := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](c.temperature)}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("generate content failed: %w", err)
	}

	txt := result.Text()
	if txt == "" {
		return nil, fmt.Errorf("no valid content in model response")
	}

	jsonStr := cleanJSONResponse(txt)
	var parsed types.GenAIChatResult
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse model response JSON: %w", err)
	}
	if parsed.Message == "" {
		return nil, fmt.Errorf("model response is missing the message field")
	}
	return &parsed, nil
}

// cleanJSONResponse strips markdown fences and surrounding prose so the
// payload can be unmarshaled even when the model decorates its output.
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	if strings.HasSuffix(response, "```") {
		response = strings.TrimSuffix(response, "```")
	}
	response = strings.TrimSpace(response)

	firstBrace := strings.Index(response, "{")
	if firstBrace == -1 {
		return response
	}
	lastBrace := strings.LastIndex(response, "}")
	if lastBrace == -1 || lastBrace <= firstBrace {
		return response
	}
	return strings.TrimSpace(response[firstBrace : lastBrace+1])
}
