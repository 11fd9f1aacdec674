package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/verte-zerg/mingpan/internal/llm"
	"github.com/verte-zerg/mingpan/internal/model"
)

type birthInfoRequest struct {
	Date         string     `json:"date"`
	Time         flexString `json:"time"`
	Gender       string     `json:"gender"`
	CalendarType string     `json:"calendar_type"`
	Shengxiao    string     `json:"shengxiao"`
}

type interpretationRequest struct {
	BirthInfo         *birthInfoRequest `json:"birth_info"`
	ShengxiaoAnalysis *model.ZodiacInfo `json:"shengxiao_analysis"`
	BaziAnalysis      *string           `json:"bazi_analysis"`
	AIConfig          json.RawMessage   `json:"ai_config"`
	BaziStruct        *model.Chart      `json:"bazi_struct"`
}

type storyRequest struct {
	Prompt    *string         `json:"prompt"`
	AIConfig  json.RawMessage `json:"ai_config"`
	GameState json.RawMessage `json:"game_state"`
}

// decodeAIConfig parses ai_config and reports which keys were present.
func decodeAIConfig(raw json.RawMessage) (llm.Config, map[string]bool, error) {
	var cfg llm.Config
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return cfg, nil, err
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, nil, err
	}
	present := make(map[string]bool, len(keys))
	for k := range keys {
		present[k] = true
	}
	return cfg, present, nil
}

func (h *Handler) withAITimeout(cfg llm.Config) llm.Config {
	if h.aiTimeout > 0 {
		cfg.Timeout = h.aiTimeout
	}
	return cfg
}

// parseInterpretation validates the request. It writes the error response
// itself and reports whether the caller should continue.
func (h *Handler) parseInterpretation(w http.ResponseWriter, r *http.Request) (string, llm.Config, bool) {
	var req interpretationRequest
	if err := readBodyJSON(w, r, maxBodyBytes, &req); rejectTooLarge(w, err) {
		return "", llm.Config{}, false
	}

	switch {
	case req.BirthInfo == nil:
		writeError(w, http.StatusBadRequest, "缺少必需参数: birth_info")
		return "", llm.Config{}, false
	case req.ShengxiaoAnalysis == nil:
		writeError(w, http.StatusBadRequest, "缺少必需参数: shengxiao_analysis")
		return "", llm.Config{}, false
	case req.BaziAnalysis == nil:
		writeError(w, http.StatusBadRequest, "缺少必需参数: bazi_analysis")
		return "", llm.Config{}, false
	case len(req.AIConfig) == 0 || string(req.AIConfig) == "null":
		writeError(w, http.StatusBadRequest, "缺少必需参数: ai_config")
		return "", llm.Config{}, false
	}

	cfg, present, err := decodeAIConfig(req.AIConfig)
	if err != nil || !present["provider"] || !present["api_key"] {
		writeError(w, http.StatusBadRequest, "AI配置不完整，需要provider和api_key")
		return "", llm.Config{}, false
	}

	prompt, err := llm.InterpretationPrompt(llm.PromptInput{
		Birth: llm.BirthInfo{
			Date:         req.BirthInfo.Date,
			Time:         req.BirthInfo.Time.Value,
			Gender:       req.BirthInfo.Gender,
			CalendarType: req.BirthInfo.CalendarType,
			Shengxiao:    req.BirthInfo.Shengxiao,
		},
		Zodiac:   *req.ShengxiaoAnalysis,
		Analysis: *req.BaziAnalysis,
		Chart:    req.BaziStruct,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("服务器错误: %v", err))
		return "", llm.Config{}, false
	}
	return prompt, h.withAITimeout(cfg), true
}

func (h *Handler) Interpretation(w http.ResponseWriter, r *http.Request) {
	prompt, cfg, ok := h.parseInterpretation(w, r)
	if !ok {
		return
	}
	client, err := h.newClient(cfg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	text, err := client.Complete(r.Context(), prompt)
	if err != nil {
		h.logger.Warn("ai interpretation failed", zap.String("provider", cfg.Provider), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "AI解读失败: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"interpretation": text,
		"timestamp":      h.timestamp(),
	})
}

func (h *Handler) InterpretationStream(w http.ResponseWriter, r *http.Request) {
	prompt, cfg, ok := h.parseInterpretation(w, r)
	if !ok {
		return
	}
	sse := newSSEWriter(w)
	client, ok := h.streamClient(sse, cfg)
	if !ok {
		return
	}
	if _, ok := h.relay(r.Context(), sse, client, prompt); !ok {
		return
	}
	_ = sse.send(map[string]any{"done": true})
}

// streamClient builds a client for a streaming request, sending the error
// event itself when the provider cannot stream.
func (h *Handler) streamClient(sse *sseWriter, cfg llm.Config) (Completer, bool) {
	if !cfg.CanStream() {
		_ = sse.send(map[string]any{"error": llm.ErrStreamUnsupported.Error()})
		return nil, false
	}
	client, err := h.newClient(cfg)
	if err != nil {
		_ = sse.send(map[string]any{"error": err.Error()})
		return nil, false
	}
	return client, true
}

// relay forwards content deltas as events and returns the full text. On a
// provider failure it sends the error event and returns false.
func (h *Handler) relay(ctx context.Context, sse *sseWriter, client Completer, prompt string) (string, bool) {
	content, errs := client.Stream(ctx, prompt)
	var full strings.Builder
	for delta := range content {
		full.WriteString(delta)
		if err := sse.send(map[string]any{"content": delta}); err != nil {
			h.logger.Debug("client went away", zap.Error(err))
		}
	}
	if err := <-errs; err != nil {
		var apiErr *llm.APIError
		msg := "流式处理错误: " + err.Error()
		if errors.As(err, &apiErr) {
			msg = fmt.Sprintf("API错误: %d", apiErr.Status)
		}
		h.logger.Warn("ai stream failed", zap.Error(err))
		_ = sse.send(map[string]any{"error": msg})
		return full.String(), false
	}
	return full.String(), true
}

var storyProviders = map[string]bool{
	llm.ProviderOpenAI:   true,
	llm.ProviderClaude:   true,
	llm.ProviderDeepSeek: true,
	llm.ProviderCustom:   true,
}

func (h *Handler) parseStory(w http.ResponseWriter, r *http.Request) (string, llm.Config, bool) {
	var req storyRequest
	if err := readBodyJSON(w, r, maxBodyBytes, &req); rejectTooLarge(w, err) {
		return "", llm.Config{}, false
	}

	switch {
	case req.Prompt == nil:
		writeError(w, http.StatusBadRequest, "缺少必需参数: prompt")
		return "", llm.Config{}, false
	case len(req.AIConfig) == 0 || string(req.AIConfig) == "null":
		writeError(w, http.StatusBadRequest, "缺少必需参数: ai_config")
		return "", llm.Config{}, false
	case len(req.GameState) == 0:
		writeError(w, http.StatusBadRequest, "缺少必需参数: game_state")
		return "", llm.Config{}, false
	}

	cfg, _, err := decodeAIConfig(req.AIConfig)
	if err != nil || cfg.APIKey == "" {
		writeError(w, http.StatusBadRequest, "AI配置不完整，需要api_key")
		return "", llm.Config{}, false
	}
	return *req.Prompt, h.withAITimeout(cfg), true
}

func (h *Handler) Story(w http.ResponseWriter, r *http.Request) {
	prompt, cfg, ok := h.parseStory(w, r)
	if !ok {
		return
	}
	if !storyProviders[strings.ToLower(cfg.Provider)] {
		writeError(w, http.StatusBadRequest, llm.ErrUnsupportedProvider.Error())
		return
	}

	client, err := h.newClient(cfg)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
		return
	}
	text, err := client.Complete(r.Context(), prompt)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
		return
	}

	story, err := llm.ParseStory(text)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success":     false,
			"error":       "AI返回格式错误: " + err.Error(),
			"raw_content": text,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"story":     story,
		"timestamp": h.timestamp(),
	})
}

func (h *Handler) StoryStream(w http.ResponseWriter, r *http.Request) {
	prompt, cfg, ok := h.parseStory(w, r)
	if !ok {
		return
	}
	sse := newSSEWriter(w)
	client, ok := h.streamClient(sse, cfg)
	if !ok {
		return
	}
	full, ok := h.relay(r.Context(), sse, client, prompt)
	if !ok {
		return
	}

	story, err := llm.ParseStory(full)
	if err != nil {
		_ = sse.send(map[string]any{
			"error":       "故事解析错误: " + err.Error(),
			"raw_content": full,
		})
		return
	}
	_ = sse.send(map[string]any{"story_data": story, "done": true})
}
