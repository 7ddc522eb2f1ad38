package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"patient-intake-agent/internal/intake"
	"patient-intake-agent/internal/platform/metrics"
)

const groqAPIURL = "https://api.groq.com/openai/v1/chat/completions"

// GroqClient calls the Groq chat completions API. It implements
// intake.TextGenerator for both field extraction and report synthesis.
type GroqClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGroqClient(apiKey, model string) *GroqClient {
	return &GroqClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: groqAPIURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Messages       []chatMessage   `json:"messages"`
	Model          string          `json:"model"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate runs one chat completion and returns the trimmed content with any
// markdown code fences stripped.
func (c *GroqClient) Generate(ctx context.Context, prompt string, opts intake.GenerateOptions) (string, error) {
	reqBody := chatRequest{
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Model:       c.model,
		Temperature: 0.6,
		MaxTokens:   1024,
	}
	if opts.Temperature > 0 {
		reqBody.Temperature = opts.Temperature
	}
	if opts.MaxTokens > 0 {
		reqBody.MaxTokens = opts.MaxTokens
	}
	if opts.JSONMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.Wrap(err, "marshal chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", errors.Wrap(err, "build chat request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	purpose := "text"
	if opts.JSONMode {
		purpose = "structured"
	}
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RecordLLMRequest(purpose, time.Since(start))
	if err != nil {
		return "", errors.Wrap(err, "call groq api")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read groq response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("groq api error: %s - %s", resp.Status, string(body))
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return "", errors.Wrap(err, "decode groq response")
	}
	if chat.Error != nil {
		return "", errors.Errorf("groq api error: %s", chat.Error.Message)
	}
	if len(chat.Choices) == 0 {
		return "", errors.New("groq api returned no choices")
	}

	content := chat.Choices[0].Message.Content
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content), nil
}
