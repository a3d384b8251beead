package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/partsbot/internal/config"
	"github.com/sandevgo/partsbot/internal/core"
	"github.com/sandevgo/partsbot/pkg/retry"
)

const systemPrompt = `Tu normalises des demandes de pièces automobiles écrites en dialecte tunisien, en français approximatif ou avec des fautes.
Réponds UNIQUEMENT avec un objet JSON: {"normalized": "<demande en français standard>", "is_greeting": bool, "is_thanks": bool, "confidence": <0..1>}.
Ne reformule pas les références de catalogue; recopie-les telles quelles.`

// Client calls an OpenAI-compatible chat endpoint and asks for a JSON
// normalization verdict. It is a best-effort collaborator: callers fall back
// to the rule-based dictionary whenever it errors.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string

	budget  int
	encoder *tiktoken.Tiktoken
	retrier *retry.Retrier
}

func NewClient(cfg *config.AIConfig) (*Client, error) {
	encoder, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	return &Client{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		budget:  cfg.PromptBudget,
		encoder: encoder,
		retrier: retry.NewDefaultRetrier(),
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Normalize sends the user text and decodes the JSON verdict. The text is
// clipped to the prompt budget first so a pasted invoice cannot blow up the
// request.
func (c *Client) Normalize(ctx context.Context, text string) (core.NormalizedQuery, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: c.clip(text)},
		},
		Temperature: 0,
	}

	var raw chatResponse
	err := c.retrier.Do(ctx, func() error {
		return c.doChat(ctx, req, &raw)
	})
	if err != nil {
		return core.NormalizedQuery{}, err
	}

	if len(raw.Choices) == 0 {
		return core.NormalizedQuery{}, fmt.Errorf("empty completion")
	}

	var nq core.NormalizedQuery
	content := strings.TrimSpace(raw.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.Trim(content, "` \n")
	if err := json.Unmarshal([]byte(content), &nq); err != nil {
		return core.NormalizedQuery{}, fmt.Errorf("decode normalization: %w", err)
	}
	return nq, nil
}

func (c *Client) doChat(ctx context.Context, body chatRequest, out *chatResponse) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", core.BotUserAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(payload))
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) clip(text string) string {
	if c.budget <= 0 {
		return text
	}
	tokens := c.encoder.Encode(text, nil, nil)
	if len(tokens) <= c.budget {
		return text
	}
	return c.encoder.Decode(tokens[:c.budget])
}
