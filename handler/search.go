package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/light-87/Lead-V/model"
	"github.com/light-87/Lead-V/pkg/logger"
)

// SearchRunner starts a discovery run.
type SearchRunner interface {
	Run(ctx context.Context, req model.SearchRequest) <-chan model.ProgressEvent
}

type SearchHandler struct {
	runner SearchRunner
}

func NewSearchHandler(runner SearchRunner) *SearchHandler {
	return &SearchHandler{runner: runner}
}

// Search streams a discovery run as server-sent events. Each event is one
// "data: <json>" frame, flushed as soon as it is produced. The run is
// cancelled when the client goes away.
func (h *SearchHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.City) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "City and count are required"})
		return
	}
	req.City = strings.TrimSpace(req.City)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	broken := false
	for ev := range h.runner.Run(ctx, req) {
		if broken {
			continue
		}

		data, err := json.Marshal(ev)
		if err != nil {
			logger.Error(ctx, "failed to encode progress event", "stage", ev.Stage, "error", err)
			continue
		}
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", data); err != nil {
			logger.Warn(ctx, "search stream closed by client", "error", err)
			broken = true
			cancel()
			continue
		}
		c.Writer.Flush()
	}
}
