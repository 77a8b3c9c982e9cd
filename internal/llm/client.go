package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rojak/internal/translate"
)

// Client is a client for a hosted sequence-to-sequence translation model.
// Tokenisation, generation and decoding all happen on the inference server.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	// Timeout bounds a single Generate call. Zero means no timeout.
	Timeout time.Duration
	client  *http.Client
}

// NewClient creates a new model client.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Model:   model,
		Timeout: timeout,
		client:  http.DefaultClient,
	}
}

// endpoint returns the model URL. An empty Model means BaseURL already points at the model.
func (c *Client) endpoint() string {
	if c.Model == "" {
		return c.BaseURL
	}
	return fmt.Sprintf("%s/models/%s", c.BaseURL, c.Model)
}

// Generate runs the model on prompt with the given decoding parameters and
// returns the decoded text of the single returned sequence.
func (c *Client) Generate(ctx context.Context, prompt string, params translate.DecodingConfig) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	payload := GenerateRequest{
		Inputs:     prompt,
		Parameters: params,
		Options: GenerateOptions{
			WaitForModel: true,
			UseCache:     false,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	if c.APIKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if json.Unmarshal(raw, &errResp) == nil && errResp.Error != "" {
			return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, errResp.Error)
		}
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	return decodeGeneration(raw)
}

// decodeGeneration accepts both the list form `[{"generated_text": ...}]`
// and the single-object form some servers return.
func decodeGeneration(raw []byte) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var gens []Generation
		if err := json.Unmarshal(trimmed, &gens); err != nil {
			return "", fmt.Errorf("failed to decode response: %w", err)
		}
		if len(gens) == 0 {
			return "", fmt.Errorf("no generations returned")
		}
		return gens[0].GeneratedText, nil
	}

	var gen Generation
	if err := json.Unmarshal(trimmed, &gen); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return gen.GeneratedText, nil
}

// Ping checks that the inference server is reachable.
// Any status below 500 counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach model server: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("model server unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
