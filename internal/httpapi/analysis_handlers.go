package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/mingpan/internal/birth"
	"github.com/verte-zerg/mingpan/internal/legacy"
	"github.com/verte-zerg/mingpan/internal/model"
	"github.com/verte-zerg/mingpan/internal/zodiac"
)

type shengxiaoRequest struct {
	Shengxiao *string `json:"shengxiao"`
}

type birthRequest struct {
	BirthDate    *string    `json:"birth_date"`
	BirthTime    flexString `json:"birth_time"`
	Gender       string     `json:"gender"`
	CalendarType string     `json:"calendar_type"`
}

type birthInfo struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	Gender       string `json:"gender"`
	CalendarType string `json:"calendar_type,omitempty"`
	Shengxiao    string `json:"shengxiao,omitempty"`
}

var birthExample = map[string]string{
	"birth_date":    "1990-01-01",
	"birth_time":    "8",
	"gender":        birth.DefaultGender,
	"calendar_type": birth.DefaultCalendar,
}

func missingBirthParams(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":    "缺少参数",
		"required": []string{"birth_date"},
		"optional": []string{"birth_time", "gender", "calendar_type"},
		"example":  birthExample,
	})
}

// parseBirth decodes and validates a birth request. It writes the error
// response itself and reports whether the caller should continue.
func parseBirth(w http.ResponseWriter, r *http.Request) (model.BirthInput, birthInfo, bool) {
	var req birthRequest
	err := readBodyJSON(w, r, maxBodyBytes, &req)
	if rejectTooLarge(w, err) {
		return model.BirthInput{}, birthInfo{}, false
	}
	if err != nil || req.BirthDate == nil {
		missingBirthParams(w)
		return model.BirthInput{}, birthInfo{}, false
	}
	in, err := birth.Parse(birth.Raw{
		Date:     *req.BirthDate,
		Hour:     req.BirthTime.Value,
		Gender:   req.Gender,
		Calendar: req.CalendarType,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return model.BirthInput{}, birthInfo{}, false
	}
	info := birthInfo{
		Date:         *req.BirthDate,
		Time:         req.BirthTime.Or(birth.DefaultHour),
		Gender:       in.Gender.Label(),
		CalendarType: in.Calendar.Label(),
	}
	return in, info, true
}

func (h *Handler) Shengxiao(w http.ResponseWriter, r *http.Request) {
	var req shengxiaoRequest
	err := readBodyJSON(w, r, maxBodyBytes, &req)
	if rejectTooLarge(w, err) {
		return
	}
	if err != nil || req.Shengxiao == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":    "缺少参数",
			"required": []string{"shengxiao"},
			"example":  map[string]string{"shengxiao": "鼠"},
		})
		return
	}
	info, err := zodiac.Lookup(*req.Shengxiao)
	var invalid *zodiac.InvalidAnimalError
	if errors.As(err, &invalid) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":            invalid.Error(),
			"valid_shengxiaos": invalid.Valid,
		})
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) Bazi(w http.ResponseWriter, r *http.Request) {
	in, info, ok := parseBirth(w, r)
	if !ok {
		return
	}
	info.CalendarType = ""

	res := h.legacy.Run(r.Context(), in)
	if !res.Success {
		h.logger.Warn("legacy analysis failed",
			zap.String("command", res.Command),
			zap.Int("return_code", res.ReturnCode),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":      res.Error,
			"birth_info": info,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"birth_info": info,
		"analysis":   legacy.Clean(res.Output),
		"success":    true,
	})
}

func (h *Handler) BaziStruct(w http.ResponseWriter, r *http.Request) {
	in, info, ok := parseBirth(w, r)
	if !ok {
		return
	}
	chart := h.builder.Build(in)
	if chart == nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      "结构化八字生成失败",
			"birth_info": info,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"birth_info":  info,
		"bazi_struct": chart,
		"success":     true,
	})
}

// Complete runs the zodiac lookup, the legacy script and the chart builder.
// The script and the builder run concurrently.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	in, info, ok := parseBirth(w, r)
	if !ok {
		return
	}
	info.Shengxiao = zodiac.ForYear(in.Year)
	animal, _ := zodiac.Lookup(info.Shengxiao)

	var (
		res   legacy.Result
		chart *model.Chart
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		res = h.legacy.Run(ctx, in)
		return nil
	})
	g.Go(func() error {
		chart = h.builder.Build(in)
		return nil
	})
	_ = g.Wait()

	if !res.Success {
		debug := map[string]any{
			"command":     res.Command,
			"return_code": res.ReturnCode,
			"stderr":      res.Error,
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":      "八字分析失败: " + res.Error,
			"debug_info": debug,
			"birth_info": info,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"birth_info":         info,
		"bazi_analysis":      legacy.Clean(res.Output),
		"shengxiao_analysis": animal,
		"bazi_struct":        chart,
		"success":            true,
	})
}
