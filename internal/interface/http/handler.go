package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/meteomag/internal/domain/advisory"
	"github.com/yanqian/meteomag/internal/domain/insights"
	apperrors "github.com/yanqian/meteomag/pkg/errors"
)

const recordTimeout = 2 * time.Second

// Handler wires the HTTP transport to domain services.
type Handler struct {
	advisorySvc advisory.Service
	insightsSvc insights.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(advisorySvc advisory.Service, insightsSvc insights.Service, logger *slog.Logger) *Handler {
	return &Handler{
		advisorySvc: advisorySvc,
		insightsSvc: insightsSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

type replyRequest struct {
	Text string `json:"text"`
}

// CreateAdvisory handles POST /advisories.
func (h *Handler) CreateAdvisory(c *gin.Context) {
	var req advisory.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	h.advise(c, req)
}

// GetAdvisory handles GET /advisories?location=.
func (h *Handler) GetAdvisory(c *gin.Context) {
	h.advise(c, advisory.Request{Location: c.Query("location")})
}

func (h *Handler) advise(c *gin.Context, req advisory.Request) {
	resp, err := h.advisorySvc.Advise(c.Request.Context(), req)
	h.record(c.Request.Context(), req.Location, resp, err)
	if err != nil {
		code := apperrors.CodeOf(err)
		if code == "" {
			code = advisory.CodeTemporaryFailure
		}
		abortWithError(c, NewHTTPError(statusFor(code), code, advisory.MessageFor(err), err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reply answers a chat message with the text to relay back verbatim.
func (h *Handler) Reply(c *gin.Context) {
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	resp, err := h.advisorySvc.Advise(c.Request.Context(), advisory.Request{Location: req.Text})
	h.record(c.Request.Context(), req.Text, resp, err)
	reply := resp.Text
	if err != nil {
		reply = advisory.MessageFor(err)
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// TrendingPlaces returns the most requested settlements.
func (h *Handler) TrendingPlaces(c *gin.Context) {
	items, err := h.insightsSvc.Trending(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "insights_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": items})
}

// RecentLookups returns the newest lookup log entries.
func (h *Handler) RecentLookups(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer", err))
			return
		}
		limit = parsed
	}
	items, err := h.insightsSvc.Recent(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "insights_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"lookups": items})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) record(ctx context.Context, query string, resp advisory.Response, adviseErr error) {
	lookup := insights.Lookup{Query: query, Outcome: insights.OutcomeOK}
	if adviseErr != nil {
		lookup.Outcome = apperrors.CodeOf(adviseErr)
		if lookup.Outcome == "" {
			lookup.Outcome = advisory.CodeTemporaryFailure
		}
	} else {
		temp := resp.TemperatureC
		lookup.Place = resp.Place
		lookup.Condition = string(resp.Condition)
		lookup.TemperatureC = &temp
	}

	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := h.insightsSvc.Record(recordCtx, lookup); err != nil {
		h.logger.Warn("record lookup failed", "query", query, "error", err)
	}
}

func statusFor(code string) int {
	switch code {
	case advisory.CodeInvalidInput:
		return http.StatusBadRequest
	case advisory.CodeLocationNotFound:
		return http.StatusNotFound
	case advisory.CodeNotASettlement:
		return http.StatusUnprocessableEntity
	case advisory.CodeWeatherUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusServiceUnavailable
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
