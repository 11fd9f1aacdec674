package llm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const maxStreamLine = 1024 * 1024

// Client sends prompts to one configured provider.
type Client struct {
	cfg    Config
	label  string
	http   *resty.Client
	logger *zap.Logger
}

// New validates cfg and returns a client for it.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = cfg.Timeout

	hc := resty.New().
		SetTransport(transport).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		cfg:    cfg,
		label:  providers[cfg.Provider].label,
		http:   hc,
		logger: logger,
	}, nil
}

// Provider returns the normalized provider name.
func (c *Client) Provider() string {
	return c.cfg.Provider
}

func (c *Client) headers() map[string]string {
	h := map[string]string{}
	if c.cfg.Provider == ProviderClaude {
		h["x-api-key"] = c.cfg.APIKey
		h["anthropic-version"] = anthropicVersion
		return h
	}
	h["Authorization"] = "Bearer " + c.cfg.APIKey
	if c.cfg.Provider != ProviderCustom {
		return h
	}
	for k, v := range c.cfg.CustomHeaders {
		h[k] = v
	}
	return h
}

func (c *Client) body(prompt string, stream bool) map[string]any {
	messages := []map[string]string{{"role": "user", "content": prompt}}
	if c.cfg.Provider == ProviderClaude {
		return map[string]any{
			"model":      c.cfg.Model,
			"max_tokens": c.cfg.MaxTokens,
			"messages":   messages,
		}
	}
	b := map[string]any{
		"model":       c.cfg.Model,
		"messages":    messages,
		"max_tokens":  c.cfg.MaxTokens,
		"temperature": *c.cfg.Temperature,
	}
	if c.cfg.Provider != ProviderCustom {
		b["stream"] = stream
		return b
	}
	if stream {
		b["stream"] = true
	}
	for k, v := range c.cfg.CustomParams {
		b[k] = v
	}
	return b
}

// Complete sends prompt and returns the whole reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(c.headers()).
		SetBody(c.body(prompt, false)).
		Post(c.cfg.APIURL)
	if err != nil {
		c.logger.Error("llm request failed", zap.String("provider", c.cfg.Provider), zap.Error(err))
		return "", fmt.Errorf("%s API调用失败: %w", c.label, err)
	}
	c.logger.Debug("llm request finished",
		zap.String("provider", c.cfg.Provider),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("elapsed", time.Since(start)),
	)
	if resp.StatusCode() != http.StatusOK {
		return "", &APIError{Provider: c.label, Status: resp.StatusCode(), Body: resp.String()}
	}
	return c.extract(resp.Body())
}

func (c *Client) extract(body []byte) (string, error) {
	switch c.cfg.Provider {
	case ProviderClaude:
		if r := gjson.GetBytes(body, "content.0.text"); r.Exists() {
			return r.String(), nil
		}
	case ProviderCustom:
		return extractCustom(body)
	default:
		if r := gjson.GetBytes(body, "choices.0.message.content"); r.Exists() {
			return r.String(), nil
		}
	}
	return "", fmt.Errorf("%s API返回格式无法解析", c.label)
}

// extractCustom accepts OpenAI, Anthropic and plain {"response": ...} shapes.
func extractCustom(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", ErrUnparseable
	}
	if choices := gjson.GetBytes(body, "choices"); choices.IsArray() && len(choices.Array()) > 0 {
		return choices.Get("0.message.content").String(), nil
	}
	if content := gjson.GetBytes(body, "content"); content.Exists() {
		if content.IsArray() {
			return content.Get("0.text").String(), nil
		}
		return content.String(), nil
	}
	if r := gjson.GetBytes(body, "response"); r.Exists() {
		return r.String(), nil
	}
	return "", ErrUnparseable
}

// Stream sends prompt with streaming enabled. Deltas arrive on the first
// channel; at most one error arrives on the second. Both close when the
// stream ends.
func (c *Client) Stream(ctx context.Context, prompt string) (<-chan string, <-chan error) {
	contentChan := make(chan string, 100)
	errorChan := make(chan error, 1)

	go func() {
		defer close(contentChan)
		defer close(errorChan)

		if !c.cfg.CanStream() {
			errorChan <- ErrStreamUnsupported
			return
		}

		resp, err := c.http.R().
			SetContext(ctx).
			SetDoNotParseResponse(true).
			SetHeaders(c.headers()).
			SetHeader("Accept", "text/event-stream").
			SetBody(c.body(prompt, true)).
			Post(c.cfg.APIURL)
		if err != nil {
			errorChan <- fmt.Errorf("%s API调用失败: %w", c.label, err)
			return
		}
		raw := resp.RawBody()
		defer raw.Close()

		if resp.StatusCode() != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(raw, 64*1024))
			errorChan <- &APIError{Provider: c.label, Status: resp.StatusCode(), Body: string(body)}
			return
		}

		scanner := bufio.NewScanner(raw)
		scanner.Buffer(make([]byte, 0, 64*1024), maxStreamLine)
		scanDone := make(chan struct{})
		scanErr := make(chan error, 1)

		go func() {
			defer close(scanDone)
			for scanner.Scan() {
				delta, done := parseStreamLine(scanner.Text())
				if done {
					return
				}
				if delta == "" {
					continue
				}
				select {
				case contentChan <- delta:
				case <-ctx.Done():
					return
				}
			}
			if err := scanner.Err(); err != nil {
				scanErr <- err
			}
		}()

		select {
		case <-scanDone:
			select {
			case err := <-scanErr:
				errorChan <- fmt.Errorf("读取流失败: %w", err)
			default:
			}
		case <-ctx.Done():
			raw.Close()
			<-scanDone
			errorChan <- ctx.Err()
		}
	}()

	return contentChan, errorChan
}

// parseStreamLine returns the content delta of one SSE line. Lines that are
// not data events or do not parse yield "".
func parseStreamLine(line string) (string, bool) {
	if !strings.HasPrefix(line, "data:") {
		return "", false
	}
	data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
	if data == "[DONE]" {
		return "", true
	}
	if !gjson.Valid(data) {
		return "", false
	}
	return gjson.Get(data, "choices.0.delta.content").String(), false
}
