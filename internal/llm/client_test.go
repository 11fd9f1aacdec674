package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

type captured struct {
	header http.Header
	body   map[string]any
}

func newServer(t *testing.T, status int, reply string, got *captured) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			got.header = r.Header.Clone()
			_ = json.NewDecoder(r.Body).Decode(&got.body)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Config{Provider: "unknown"}.Validate(), ErrUnsupportedProvider)
	assert.ErrorIs(t, Config{Provider: "qianfan"}.Validate(), ErrNotImplemented)

	var missing *MissingFieldError
	require.ErrorAs(t, Config{Provider: "custom", APIKey: "k"}.Validate(), &missing)
	assert.Equal(t, "api_url", missing.Field)
	assert.Equal(t, "自定义API配置缺少必需字段: api_url", missing.Error())

	assert.NoError(t, Config{Provider: "OpenAI", APIKey: "k"}.Validate())
}

func TestCompleteOpenAI(t *testing.T) {
	var got captured
	srv := newServer(t, http.StatusOK, `{"choices":[{"message":{"content":"解读"}}]}`, &got)

	c, err := New(Config{Provider: ProviderOpenAI, APIKey: "sk-test", APIURL: srv.URL}, nil)
	require.NoError(t, err)

	text, err := c.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "解读", text)
	assert.Equal(t, "Bearer sk-test", got.header.Get("Authorization"))
	assert.Equal(t, "gpt-3.5-turbo", got.body["model"])
	assert.Equal(t, float64(DefaultMaxTokens), got.body["max_tokens"])
	assert.Equal(t, DefaultTemperature, got.body["temperature"])
	assert.Equal(t, false, got.body["stream"])
}

func TestCustomExtrasOnlyForCustomProvider(t *testing.T) {
	for _, provider := range []string{ProviderOpenAI, ProviderDeepSeek} {
		var got captured
		srv := newServer(t, http.StatusOK, `{"choices":[{"message":{"content":"ok"}}]}`, &got)
		c, err := New(Config{
			Provider:      provider,
			APIKey:        "k",
			APIURL:        srv.URL,
			CustomHeaders: map[string]string{"X-Tenant": "t1"},
			CustomParams:  map[string]any{"top_p": 0.5, "model": "other"},
		}, nil)
		require.NoError(t, err)

		_, err = c.Complete(context.Background(), "p")
		require.NoError(t, err)
		assert.Empty(t, got.header.Get("X-Tenant"), provider)
		assert.Equal(t, "Bearer k", got.header.Get("Authorization"), provider)
		_, hasTopP := got.body["top_p"]
		assert.False(t, hasTopP, provider)
		assert.NotEqual(t, "other", got.body["model"], provider)
	}
}

func TestCompleteClaude(t *testing.T) {
	var got captured
	srv := newServer(t, http.StatusOK, `{"content":[{"type":"text","text":"命理"}]}`, &got)

	c, err := New(Config{Provider: ProviderClaude, APIKey: "key", APIURL: srv.URL}, nil)
	require.NoError(t, err)

	text, err := c.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "命理", text)
	assert.Equal(t, "key", got.header.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", got.header.Get("anthropic-version"))
	assert.Empty(t, got.header.Get("Authorization"))
	_, hasTemp := got.body["temperature"]
	assert.False(t, hasTemp)
}

func TestCompleteAPIError(t *testing.T) {
	srv := newServer(t, http.StatusUnauthorized, `bad key`, nil)
	c, err := New(Config{Provider: ProviderDeepSeek, APIKey: "k", APIURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "hello")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "DeepSeek API错误: 401 - bad key", apiErr.Error())
}

func TestCompleteCustomShapes(t *testing.T) {
	cases := []struct {
		reply string
		want  string
		err   error
	}{
		{`{"choices":[{"message":{"content":"a"}}]}`, "a", nil},
		{`{"content":[{"text":"b"}]}`, "b", nil},
		{`{"content":"c"}`, "c", nil},
		{`{"response":"d"}`, "d", nil},
		{`{"other":"e"}`, "", ErrUnparseable},
	}
	for _, tc := range cases {
		var got captured
		srv := newServer(t, http.StatusOK, tc.reply, &got)
		c, err := New(Config{
			Provider:      ProviderCustom,
			APIKey:        "k",
			APIURL:        srv.URL,
			CustomHeaders: map[string]string{"X-Tenant": "t1"},
			CustomParams:  map[string]any{"top_p": 0.5},
		}, nil)
		require.NoError(t, err)

		text, err := c.Complete(context.Background(), "p")
		if tc.err != nil {
			assert.ErrorIs(t, err, tc.err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, text)
		assert.Equal(t, "t1", got.header.Get("X-Tenant"))
		assert.Equal(t, 0.5, got.body["top_p"])
		_, hasStream := got.body["stream"]
		assert.False(t, hasStream)
	}
}

func sseServer(t *testing.T, lines []string, hold time.Duration) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, l := range lines {
			fmt.Fprintf(w, "%s\n\n", l)
			flusher.Flush()
		}
		if hold > 0 {
			select {
			case <-r.Context().Done():
			case <-time.After(hold):
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func drain(content <-chan string, errs <-chan error) (string, error) {
	var b strings.Builder
	for c := range content {
		b.WriteString(c)
	}
	return b.String(), <-errs
}

func TestStreamCollectsDeltas(t *testing.T) {
	srv := sseServer(t, []string{
		`: keep-alive`,
		`data: {"choices":[{"delta":{"role":"assistant"}}]}`,
		`data: {"choices":[{"delta":{"content":"你"}}]}`,
		`data: not json`,
		`data: {"choices":[{"delta":{"content":"好"}}]}`,
		`data: [DONE]`,
		`data: {"choices":[{"delta":{"content":"ignored"}}]}`,
	}, 0)

	c, err := New(Config{Provider: ProviderOpenAI, APIKey: "k", APIURL: srv.URL}, nil)
	require.NoError(t, err)

	text, err := drain(c.Stream(context.Background(), "p"))
	require.NoError(t, err)
	assert.Equal(t, "你好", text)
}

func TestStreamUnsupportedProvider(t *testing.T) {
	c, err := New(Config{Provider: ProviderClaude, APIKey: "k"}, nil)
	require.NoError(t, err)

	_, err = drain(c.Stream(context.Background(), "p"))
	assert.ErrorIs(t, err, ErrStreamUnsupported)
}

func TestStreamStatusError(t *testing.T) {
	srv := newServer(t, http.StatusTooManyRequests, `slow down`, nil)
	c, err := New(Config{Provider: ProviderDeepSeek, APIKey: "k", APIURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = drain(c.Stream(context.Background(), "p"))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
}

func TestStreamCancel(t *testing.T) {
	srv := sseServer(t, []string{`data: {"choices":[{"delta":{"content":"x"}}]}`}, 5*time.Second)
	c, err := New(Config{Provider: ProviderOpenAI, APIKey: "k", APIURL: srv.URL}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	content, errs := c.Stream(ctx, "p")
	assert.Equal(t, "x", <-content)
	cancel()

	_, err = drain(content, errs)
	assert.True(t, errors.Is(err, context.Canceled), "expected cancellation, got %v", err)
}
