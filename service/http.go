package service

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rushteam/stayrec/core"
)

// Handler 是引擎的 HTTP 外壳。
type Handler struct {
	engine *Engine
	log    zerolog.Logger
}

func NewHandler(engine *Engine, log zerolog.Logger) *Handler {
	return &Handler{engine: engine, log: log}
}

// Router 组装路由。
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api/recommendations", func(r chi.Router) {
		r.Get("/trending", h.trending)
		r.Get("/similar/{hotelID}", h.similar)
		r.Post("/retrain", h.retrain)
		r.Get("/profile/{userID}", h.profile)
		r.Get("/{userID}", h.recommend)
	})
	r.Get("/healthz", h.health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(
		h.engine.Metrics().Registry, promhttp.HandlerOpts{},
	))
	return r
}

// 响应 DTO

type hotelDTO struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type,omitempty"`
	City      string   `json:"city,omitempty"`
	Rating    float64  `json:"rating"`
	Price     float64  `json:"price"`
	Amenities []string `json:"amenities,omitempty"`
}

type componentsDTO struct {
	Content    *float64 `json:"content,omitempty"`
	Collab     *float64 `json:"collab,omitempty"`
	Popularity float64  `json:"popularity"`
}

type itemDTO struct {
	HotelID    string         `json:"hotelId"`
	Score      float64        `json:"score"`
	Components componentsDTO  `json:"components"`
	Reasons    []string       `json:"reasons,omitempty"`
	Hotel      *hotelDTO      `json:"hotel,omitempty"`
	Meta       map[string]any `json:"meta,omitempty"`
}

func toItemDTO(it *core.Item) itemDTO {
	dto := itemDTO{
		HotelID: string(it.ID),
		Score:   it.Score,
		Reasons: it.Reasons,
	}
	if it.Components.HasContent {
		v := it.Components.Content
		dto.Components.Content = &v
	}
	if it.Components.HasCollab {
		v := it.Components.Collab
		dto.Components.Collab = &v
	}
	dto.Components.Popularity = it.Components.Popularity
	if it.Hotel != nil {
		dto.Hotel = &hotelDTO{
			ID:        string(it.Hotel.ID),
			Name:      it.Hotel.Name,
			Type:      it.Hotel.Type,
			City:      it.Hotel.City,
			Rating:    it.Hotel.Rating,
			Price:     it.Hotel.Price,
			Amenities: it.Hotel.Amenities,
		}
	}
	if len(it.Meta) > 0 {
		dto.Meta = it.Meta
	}
	return dto
}

type listResponse struct {
	Success         bool        `json:"success"`
	Recommendations []itemDTO   `json:"recommendations"`
	Count           int         `json:"count"`
	Status          core.Status `json:"status"`
	Reason          string      `json:"reason,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error().Err(err).Msg("encode response")
	}
}

func (h *Handler) writeResult(w http.ResponseWriter, res *core.Result) {
	if res.Status == core.StatusInputError {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: res.Reason})
		return
	}
	items := make([]itemDTO, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, toItemDTO(it))
	}
	h.writeJSON(w, http.StatusOK, listResponse{
		Success:         true,
		Recommendations: items,
		Count:           len(items),
		Status:          res.Status,
		Reason:          res.Reason,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if core.IsInvalidInput(err) {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	h.log.Error().Err(err).Msg("request failed")
	h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func queryInt(r *http.Request, key string, def int) int {
	if s := r.URL.Query().Get(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}

func queryFloat(r *http.Request, key string) *float64 {
	if s := r.URL.Query().Get(key); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return &v
		}
	}
	return nil
}

// criteriaFromQuery 把查询串映射为硬约束。
func criteriaFromQuery(r *http.Request) *core.Criteria {
	q := r.URL.Query()
	c := &core.Criteria{
		City: q.Get("city"),
		Type: q.Get("type"),
		Rule: q.Get("rule"),
	}
	min, max := queryFloat(r, "minPrice"), queryFloat(r, "maxPrice")
	if min != nil || max != nil {
		c.PriceRange = &core.PriceRange{Min: min, Max: max}
	}
	c.MinRating = queryFloat(r, "minRating")
	if s := q.Get("amenities"); s != "" {
		for _, a := range strings.Split(s, ",") {
			if a = strings.TrimSpace(a); a != "" {
				c.Amenities = append(c.Amenities, a)
			}
		}
	}
	return c
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request) {
	userID := core.UserID(chi.URLParam(r, "userID"))
	limit := queryInt(r, "limit", 10)

	res, err := h.engine.Recommend(r.Context(), userID, limit, criteriaFromQuery(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeResult(w, res)
}

func (h *Handler) similar(w http.ResponseWriter, r *http.Request) {
	hotelID := core.HotelID(chi.URLParam(r, "hotelID"))
	limit := queryInt(r, "limit", 10)

	res, err := h.engine.Similar(r.Context(), hotelID, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeResult(w, res)
}

func (h *Handler) trending(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)
	city := r.URL.Query().Get("city")

	res, err := h.engine.Trending(r.Context(), limit, city)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeResult(w, res)
}

func (h *Handler) retrain(w http.ResponseWriter, r *http.Request) {
	scope, err := ParseScope(r.URL.Query().Get("scope"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	report, err := h.engine.Retrain(r.Context(), scope)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"report":  report,
	})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	userID := core.UserID(chi.URLParam(r, "userID"))

	analysis, err := h.engine.AnalyzeProfile(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"profile": analysis,
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Check(r.Context()); err != nil {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"ready":  h.engine.Ready(),
	})
}
