package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/randomtoy/moonblock-go/internal/domain"
	"github.com/randomtoy/moonblock-go/internal/ports"
)

// Client implements ports.FortuneTeller against an OpenAI-compatible
// chat completions endpoint. It makes exactly one call per request.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	logger      *slog.Logger
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, temperature float64, logger *slog.Logger) *Client {
	return &Client{
		httpClient:  httpClient,
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		temperature: temperature,
		logger:      logger,
	}
}

var _ ports.FortuneTeller = (*Client)(nil)

// chatRequest / chatResponse mirror the OpenAI-compatible API shapes.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type throwReply struct {
	Text string `json:"text"`
}

type cardReply struct {
	CardTitle      string `json:"cardTitle"`
	CardSubtitle   string `json:"cardSubtitle"`
	Stamp          string `json:"stamp"`
	Interpretation string `json:"interpretation"`
	DivinationText string `json:"divinationText"`
	FinalResult    string `json:"finalResult"`
}

func (c *Client) CommentOnThrow(ctx context.Context, in ports.ThrowInput) (string, error) {
	var reply throwReply
	if err := c.complete(ctx, throwSystemPrompt, buildThrowPrompt(in), &reply); err != nil {
		return "", err
	}
	text := strings.TrimSpace(reply.Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty text", domain.ErrServiceError)
	}
	return text, nil
}

func (c *Client) ProduceCard(ctx context.Context, in ports.CardInput) (domain.VerdictCard, error) {
	var reply cardReply
	if err := c.complete(ctx, cardSystemPrompt, buildCardPrompt(in), &reply); err != nil {
		return domain.VerdictCard{}, err
	}
	verdict, err := domain.ParseVerdict(strings.ToUpper(strings.TrimSpace(reply.FinalResult)))
	if err != nil {
		return domain.VerdictCard{}, fmt.Errorf("%w: unknown finalResult %q", domain.ErrServiceError, reply.FinalResult)
	}
	return domain.VerdictCard{
		Title:          reply.CardTitle,
		Subtitle:       reply.CardSubtitle,
		StampText:      reply.Stamp,
		Interpretation: reply.Interpretation,
		SummaryText:    reply.DivinationText,
		Verdict:        verdict,
	}, nil
}

// complete sends one chat request and decodes the JSON object the model
// returned into out.
func (c *Client) complete(ctx context.Context, system, user string, out any) error {
	if c.apiKey == "" {
		return domain.ErrServiceUnavailable
	}

	content, err := c.callLLM(ctx, system, user)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w", domain.ErrServiceTimeout, err)
		}
		return fmt.Errorf("%w: %w", domain.ErrServiceError, err)
	}

	if err := json.Unmarshal([]byte(stripCodeFence(content)), out); err != nil {
		c.logger.WarnContext(ctx, "LLM returned invalid JSON", "model", c.model, "error", err)
		return fmt.Errorf("%w: invalid JSON: %w", domain.ErrServiceError, err)
	}
	return nil
}

func (c *Client) callLLM(ctx context.Context, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    c.temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// stripCodeFence removes a ```json fence some models wrap around the object
// despite being asked not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
