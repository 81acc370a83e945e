package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bizbookshq/biz_books_app/internal/apperrors"
	portssvc "github.com/bizbookshq/biz_books_app/internal/core/ports/services"
	"github.com/bizbookshq/biz_books_app/internal/dto"
	"github.com/bizbookshq/biz_books_app/internal/middleware"
)

// syncLogHandler handles HTTP requests related to ledger-tool sync logs.
type syncLogHandler struct {
	syncLogService portssvc.SyncLogSvcFacade
}

// newSyncLogHandler creates a new syncLogHandler.
func newSyncLogHandler(ss portssvc.SyncLogSvcFacade) *syncLogHandler {
	return &syncLogHandler{
		syncLogService: ss,
	}
}

// registerSyncLogRoutes registers routes related to sync logs.
func registerSyncLogRoutes(rg *gin.RouterGroup, syncLogService portssvc.SyncLogSvcFacade) {
	h := newSyncLogHandler(syncLogService)

	syncLogs := rg.Group("/sync-logs")
	{
		syncLogs.POST("", h.recordSync)
		syncLogs.GET("", h.listSyncLogs)
	}
}

// recordSync godoc
// @Summary Record a sync run
// @Description Records one synchronization run against the external ledger tool
// @Tags sync-logs
// @Accept  json
// @Produce  json
// @Param   syncLog body dto.CreateSyncLogRequest true "Sync run details"
// @Success 201 {object} dto.SyncLogResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to record sync"
// @Security BearerAuth
// @Router /sync-logs [post]
func (h *syncLogHandler) recordSync(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSyncLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordSync", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.syncLogService.RecordSync(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record sync", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sync"})
		}
		return
	}

	logger.Info("Sync run recorded", slog.String("sync_log_id", entry.SyncLogID), slog.String("status", string(entry.Status)))
	c.JSON(http.StatusCreated, dto.ToSyncLogResponse(entry))
}

// listSyncLogs godoc
// @Summary List sync runs
// @Description Lists the user's most recent sync runs, newest first
// @Tags sync-logs
// @Produce  json
// @Param   limit query int false "Maximum entries to return (default 50)"
// @Success 200 {object} dto.ListSyncLogsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list sync logs"
// @Security BearerAuth
// @Router /sync-logs [get]
func (h *syncLogHandler) listSyncLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	logs, err := h.syncLogService.ListSyncLogs(c.Request.Context(), userID, limit)
	if err != nil {
		logger.Error("Failed to list sync logs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sync logs"})
		return
	}

	c.JSON(http.StatusOK, dto.ListSyncLogsResponse{SyncLogs: dto.ToSyncLogResponses(logs)})
}
