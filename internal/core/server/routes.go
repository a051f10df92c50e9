package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/solatis/mwsfba/internal/core/api"
)

// maxBodyBytes bounds a call document. A thousand-member list stays well
// under it.
const maxBodyBytes = 1 << 20

// APIError is the JSON body of every error response.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type handlers struct {
	service *api.ParamsService
	logger  *slog.Logger
}

// NewRouter returns the gin engine serving the preview API.
func NewRouter(service *api.ParamsService, logger *slog.Logger, timeout time.Duration) *gin.Engine {
	h := &handlers{service: service, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger), requestTimeout(timeout))

	r.GET("/healthz", h.health)

	v1 := r.Group("/v1")
	{
		v1.POST("/params", h.buildParams)
		v1.GET("/actions", h.listActions)
		v1.GET("/actions/:group", h.listActions)
		v1.GET("/actions/:group/:action", h.describeAction)
		v1.GET("/ledger", h.listEntries)
		v1.GET("/ledger/:id", h.getEntry)
	}
	return r
}

func respondWithError(c *gin.Context, err error) {
	status := api.Status(err)
	c.AbortWithStatusJSON(status, APIError{Code: status, Message: err.Error()})
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.service.Catalog().Version()})
}

// buildParams finalizes the posted call document. ?record=true hands the
// call to the invoker, which writes it to the ledger when one is configured.
func (h *handlers) buildParams(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, APIError{
			Code:    http.StatusRequestEntityTooLarge,
			Message: err.Error(),
		})
		return
	}
	doc, err := api.ParseDocument(body)
	if err != nil {
		respondWithError(c, err)
		return
	}

	record, _ := strconv.ParseBool(c.Query("record"))
	build := h.service.Build
	if record {
		build = h.service.Submit
	}
	res, err := build(c.Request.Context(), doc)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handlers) listActions(c *gin.Context) {
	group := c.Param("group")
	if group == "" {
		group = c.Query("group")
	}
	out, err := h.service.Actions(group)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"actions": out})
}

func (h *handlers) describeAction(c *gin.Context) {
	d, err := h.service.Describe(c.Param("group"), c.Param("action"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *handlers) listEntries(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		respondWithError(c, fmt.Errorf("%w: limit %q is not an integer", api.ErrInvalidQuery, c.Query("limit")))
		return
	}
	// The ledger caps limit at ledger.MaxListLimit.
	out, err := h.service.Entries(c.Request.Context(), c.Query("group"), c.Query("action"), limit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}

func (h *handlers) getEntry(c *gin.Context) {
	e, err := h.service.Entry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
