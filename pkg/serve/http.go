package serve

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justopinion/justopinion/pkg/citation"
	"github.com/justopinion/justopinion/pkg/research"
	"github.com/justopinion/justopinion/pkg/store"
	"github.com/justopinion/justopinion/pkg/textpos"
)

// Handler serves the research operations over HTTP.
type Handler struct {
	core   *research.Core
	logger *slog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(core *research.Core, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{core: core, logger: logger}
}

// Router returns a gin engine with every route registered.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.logRequests)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": Version,
		})
	})

	v1 := r.Group("/v1")
	{
		v1.POST("/locate", h.Locate)
		v1.POST("/locate/batch", h.LocateBatch)
		v1.POST("/render", h.Render)
		v1.POST("/cite", h.Cite)
		v1.POST("/cite/normalize", h.Normalize)
		v1.GET("/quotations", h.ListQuotations)
		v1.GET("/quotations/:id", h.GetQuotation)
	}
	return r
}

func (h *Handler) logRequests(c *gin.Context) {
	c.Next()
	h.logger.Debug("request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
	)
}

// Locate handles POST /v1/locate
func (h *Handler) Locate(c *gin.Context) {
	var req research.LocateItem
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.core.Locate(req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// LocateBatch handles POST /v1/locate/batch
func (h *Handler) LocateBatch(c *gin.Context) {
	var req LocateBatchPayload
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.core.LocateBatch(req.Items)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// Render handles POST /v1/render
func (h *Handler) Render(c *gin.Context) {
	var req research.RenderItem
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.core.Render(req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// Cite handles POST /v1/cite
func (h *Handler) Cite(c *gin.Context) {
	var req CitePayload
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.core.Cite(req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// Normalize handles POST /v1/cite/normalize
func (h *Handler) Normalize(c *gin.Context) {
	var req CitePayload
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.core.Normalize(req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// ListQuotations handles GET /v1/quotations, optionally filtered by ?decision_id=
func (h *Handler) ListQuotations(c *gin.Context) {
	ctx := c.Request.Context()
	s := h.core.Store()

	if raw := c.Query("decision_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorBody("INVALID_DECISION_ID", "decision_id must be an integer"))
			return
		}
		quotations, err := s.GetQuotations(ctx, id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": quotations})
		return
	}

	quotations, err := s.GetAllQuotations(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": quotations})
}

// GetQuotation handles GET /v1/quotations/:id
func (h *Handler) GetQuotation(c *gin.Context) {
	q, err := h.core.Store().GetQuotation(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": q})
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("INVALID_REQUEST", err.Error()))
		return false
	}
	return true
}

// writeError maps an error to a status code and error body.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, textpos.ErrValidation):
		c.JSON(http.StatusBadRequest, errorBody("INVALID_POSITION", err.Error()))
	case errors.Is(err, textpos.ErrRange):
		c.JSON(http.StatusUnprocessableEntity, errorBody("OUT_OF_RANGE", err.Error()))
	case errors.Is(err, textpos.ErrNotFound):
		c.JSON(http.StatusNotFound, errorBody("TEXT_NOT_FOUND", err.Error()))
	case errors.Is(err, citation.ErrNoCaseCitation):
		c.JSON(http.StatusUnprocessableEntity, errorBody("NO_CASE_CITATION", err.Error()))
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, errorBody("INTERNAL", err.Error()))
	}
}

func errorBody(code, message string) gin.H {
	return gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}
