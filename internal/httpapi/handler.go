package httpapi

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/mingpan/internal/legacy"
	"github.com/verte-zerg/mingpan/internal/llm"
	"github.com/verte-zerg/mingpan/internal/model"
)

// ChartBuilder produces structured charts. A nil chart means unavailable.
type ChartBuilder interface {
	Build(in model.BirthInput) *model.Chart
}

// LegacyRunner runs the text analysis script.
type LegacyRunner interface {
	Run(ctx context.Context, in model.BirthInput) legacy.Result
}

// Completer is an LLM client.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Stream(ctx context.Context, prompt string) (<-chan string, <-chan error)
}

// ClientFactory builds a Completer for a request's ai_config.
type ClientFactory func(cfg llm.Config) (Completer, error)

// Deps are the collaborators of Handler.
type Deps struct {
	Builder   ChartBuilder
	Legacy    LegacyRunner
	NewClient ClientFactory
	Logger    *zap.Logger
	// AITimeout bounds each provider call. Zero uses the client default.
	AITimeout time.Duration
}

// Handler serves the API endpoints.
type Handler struct {
	builder   ChartBuilder
	legacy    LegacyRunner
	newClient ClientFactory
	aiTimeout time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

func NewHandler(d Deps) *Handler {
	h := &Handler{
		builder:   d.Builder,
		legacy:    d.Legacy,
		newClient: d.NewClient,
		aiTimeout: d.AITimeout,
		logger:    d.Logger,
		now:       time.Now,
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	if h.newClient == nil {
		h.newClient = func(cfg llm.Config) (Completer, error) {
			return llm.New(cfg, h.logger)
		}
	}
	return h
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) Index(w http.ResponseWriter, _ *http.Request) {
	endpoints := map[string]string{
		"/api/shengxiao":                "生肖分析 (POST)",
		"/api/bazi":                     "八字分析 (POST)",
		"/api/bazi/struct":              "结构化八字排盘 (POST)",
		"/api/complete":                 "完整分析 (POST)",
		"/api/ai-interpretation":        "AI解读 (POST)",
		"/api/ai-interpretation-stream": "AI解读流式 (POST)",
		"/api/destiny-story":            "命运轨迹故事生成 (POST)",
		"/api/destiny-story-stream":     "命运轨迹故事生成流式 (POST)",
		"/health":                       "健康检查 (GET)",
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "八字生肖分析API服务",
		"endpoints": endpoints,
	})
}

func (h *Handler) timestamp() string {
	return h.now().Format(time.RFC3339)
}
