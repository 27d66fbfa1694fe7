package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/shufa/errors"
	"github.com/teranos/shufa/internal/httpclient"
	"github.com/teranos/shufa/internal/util"
	"github.com/teranos/shufa/logger"
)

const (
	// DefaultBaseURL is the OpenAI-compatible endpoint used when none is configured
	DefaultBaseURL = "https://api.deepseek.com/v1"
	// DefaultModel should match the default in config/defaults.go
	DefaultModel = "deepseek-chat"

	maxAttempts = 3
)

// ChatConfig configures a ChatRewriter
type ChatConfig struct {
	BaseURL           string
	Model             string
	APIKey            string
	SystemPrompt      string
	Timeout           time.Duration      // per request (0 = 30s)
	RequestsPerMinute int                // outbound limit (0 = 30)
	Temperature       *float64           // nil = 0.1
	MaxTokens         *int               // nil = 200
	RetryDelay        time.Duration      // linear back-off unit (0 = 1s)
	AllowPrivateIP    bool               // permit loopback and private endpoints (local model servers)
	Logger            *zap.SugaredLogger // nil = logger.Named("gateway")
}

// ChatRewriter rewrites free text through an OpenAI-compatible chat completions API
type ChatRewriter struct {
	config     ChatConfig
	httpClient *httpclient.Client
	limiter    *rate.Limiter
	logger     *zap.SugaredLogger
}

// NewChatRewriter creates a ChatRewriter, filling defaults
func NewChatRewriter(config ChatConfig) *ChatRewriter {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = 30
	}
	if config.Temperature == nil {
		config.Temperature = util.Ptr(0.1)
	}
	if config.MaxTokens == nil {
		config.MaxTokens = util.Ptr(200)
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = time.Second
	}

	log := config.Logger
	if log == nil {
		log = logger.Named("gateway")
	}

	return &ChatRewriter{
		config: config,
		httpClient: httpclient.New(config.Timeout, httpclient.Options{
			AllowPrivateIP: config.AllowPrivateIP,
		}),
		limiter: rate.NewLimiter(rate.Limit(float64(config.RequestsPerMinute)/60.0), 1),
		logger:  log,
	}
}

// Close releases idle connections
func (c *ChatRewriter) Close() {
	c.httpClient.CloseIdleConnections()
}

// Model returns the configured model name
func (c *ChatRewriter) Model() string {
	return c.config.Model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// statusError is a non-200 reply from the API
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.code, e.body)
}

// Rewrite implements Rewriter
func (c *ChatRewriter) Rewrite(ctx context.Context, text string) (string, error) {
	if c.config.APIKey == "" {
		return "", errors.WithHint(
			errors.WrapGateway(errors.New("API key not configured"), "chat rewriter"),
			"set gateway.api_key in shufa.toml or export SHUFA_GATEWAY_API_KEY",
		)
	}

	req := chatRequest{
		Model:       c.config.Model,
		Temperature: *c.config.Temperature,
		MaxTokens:   *c.config.MaxTokens,
		Messages:    []chatMessage{{Role: "user", Content: text}},
	}
	if c.config.SystemPrompt != "" {
		req.Messages = append([]chatMessage{{Role: "system", Content: c.config.SystemPrompt}}, req.Messages...)
	}

	c.logger.Debugw("Rewrite request",
		logger.FieldModel, c.config.Model,
		"user_prompt", text,
	)

	var resp *chatResponse
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * c.config.RetryDelay
			c.logger.Debugw("Retrying rewrite request",
				logger.FieldAttempt, attempt, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", errors.WrapGateway(ctx.Err(), "rewrite cancelled")
			}
		}

		if err = c.limiter.Wait(ctx); err != nil {
			return "", errors.WrapGateway(err, "rate limit wait")
		}

		resp, err = c.complete(ctx, req)
		if err == nil {
			break
		}

		c.logger.Warnw("Rewrite request failed",
			logger.FieldAttempt, attempt+1,
			logger.FieldModel, c.config.Model,
			logger.FieldError, err,
		)
		if !isRetryable(err) {
			return "", errors.WrapGateway(err, "rewrite failed")
		}
	}
	if err != nil {
		return "", errors.WrapGateway(err, fmt.Sprintf("rewrite failed after %d attempts", maxAttempts))
	}

	if len(resp.Choices) == 0 {
		return "", errors.WrapGateway(errors.New("no choices in response"), "rewrite failed")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.logger.Debugw("Rewrite response",
		logger.FieldModel, resp.Model,
		"content", content,
		"total_tokens", resp.Usage.TotalTokens,
	)
	return content, nil
}

func (c *ChatRewriter) complete(ctx context.Context, req chatRequest) (*chatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &statusError{code: httpResp.StatusCode, body: strings.TrimSpace(string(respBody))}
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal response")
	}
	return &resp, nil
}

// isRetryable reports whether a failed attempt is worth repeating:
// network timeouts and resets, rate limiting and server-side errors
func isRetryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return false
}
