package mapper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/davissekai/irys/model"
)

// ErrNoCredentials is returned when the semantic mapper is asked to run
// without an API key. Callers fall back to the local heuristic.
var ErrNoCredentials = errors.New("semantic mapper: no API key configured")

// SemanticConfig configures the semantic-matching collaborator.
type SemanticConfig struct {
	// BaseURL of an OpenAI-compatible chat API. Defaults to OpenRouter.
	BaseURL string `yaml:"base_url" json:"base_url"`
	APIKey  string `yaml:"api_key" json:"api_key"`
	Model   string `yaml:"model" json:"model"`
	// Timeout bounds each mapping call. The collaborator is never allowed
	// to stall an extraction; on expiry the caller falls back to the
	// local heuristic.
	Timeout time.Duration `yaml:"-" json:"-"`
}

const (
	defaultBaseURL = "https://openrouter.ai/api"
	defaultModel   = "stepfun/step-3.5-flash"
	defaultTimeout = 30 * time.Second
)

// Semantic maps columns by asking an OpenAI-compatible chat model. Every
// failure mode (missing credentials, network errors, non-2xx statuses,
// unparseable responses) surfaces as an error so the caller can fall
// back to the local heuristic.
type Semantic struct {
	cfg    SemanticConfig
	client *http.Client
	logger *slog.Logger
}

// NewSemantic creates a semantic mapper. Zero-value config fields get
// OpenRouter-compatible defaults.
func NewSemantic(cfg SemanticConfig) *Semantic {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Semantic{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: slog.Default(),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// MapColumns sends the extracted headers and desired columns to the chat
// model and expects back a JSON object keyed by the desired columns,
// mapping each to a chosen header or null.
func (s *Semantic) MapColumns(ctx context.Context, extracted, desired []string) (model.ColumnMapping, error) {
	if s.cfg.APIKey == "" {
		return model.ColumnMapping{}, ErrNoCredentials
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	prompt, err := buildPrompt(extracted, desired)
	if err != nil {
		return model.ColumnMapping{}, err
	}

	body := chatCompletionRequest{
		Model:          s.cfg.Model,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		Temperature:    0.1,
		MaxTokens:      500,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	data, err := sonic.Marshal(body)
	if err != nil {
		return model.ColumnMapping{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(data))
	if err != nil {
		return model.ColumnMapping{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return model.ColumnMapping{}, fmt.Errorf("semantic mapper request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.ColumnMapping{}, fmt.Errorf("reading semantic mapper response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.ColumnMapping{}, fmt.Errorf("semantic mapper API error %d: %s", resp.StatusCode, respBody)
	}

	var chat chatCompletionResponse
	if err := sonic.Unmarshal(respBody, &chat); err != nil {
		return model.ColumnMapping{}, fmt.Errorf("decoding semantic mapper response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return model.ColumnMapping{}, errors.New("semantic mapper: no choices in response")
	}

	content := stripFences(chat.Choices[0].Message.Content)

	var raw map[string]*string
	if err := sonic.Unmarshal([]byte(content), &raw); err != nil {
		return model.ColumnMapping{}, fmt.Errorf("semantic mapper returned malformed mapping: %w", err)
	}

	// Key the result by the desired columns regardless of what came
	// back; a missing or null entry means no match.
	mapping := model.NewColumnMapping(desired)
	for _, col := range mapping.Columns {
		if h, ok := raw[col]; ok && h != nil && strings.TrimSpace(*h) != "" {
			mapping.Matches[col] = *h
		}
	}

	s.logger.Debug("semantic column mapping generated",
		"extracted", len(extracted), "desired", len(desired), "matched", len(mapping.Matches))
	return mapping, nil
}

// buildPrompt renders the mapping instruction with both header lists
// embedded as JSON.
func buildPrompt(extracted, desired []string) (string, error) {
	extractedJSON, err := sonic.Marshal(extracted)
	if err != nil {
		return "", err
	}
	desiredJSON, err := sonic.Marshal(desired)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`You are a data extraction assistant. Your task is to match user-requested column names to columns found in a document.

Document contains these columns: %s
User wants these columns: %s

For each column the user wants, find the best matching column from the document.
Consider semantic similarity (e.g., "Name" matches "NAME" or "STUDENT NAME" or "FULL NAME").
If there's no reasonable match, use null.

Return ONLY a valid JSON object mapping each desired column to its best match from the document.
CRITICAL: The keys in your JSON MUST match the user's columns EXACTLY as provided above (including case).
Example output: {"Name": "NAME", "ID": "STUDENT_ID", "Phone": null}

Your response (JSON only, no markdown, no explanation):`, extractedJSON, desiredJSON), nil
}

// stripFences removes a wrapping markdown code fence from model output.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	parts := strings.SplitN(content, "```", 3)
	if len(parts) < 2 {
		return content
	}
	inner := parts[1]
	inner = strings.TrimPrefix(inner, "json")
	return strings.TrimSpace(inner)
}
