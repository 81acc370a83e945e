package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bizbookshq/biz_books_app/internal/apperrors"
	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	portssvc "github.com/bizbookshq/biz_books_app/internal/core/ports/services"
	"github.com/bizbookshq/biz_books_app/internal/core/services"
	"github.com/bizbookshq/biz_books_app/internal/dto"
	"github.com/bizbookshq/biz_books_app/internal/middleware"
	"github.com/bizbookshq/biz_books_app/internal/utils/numeric"
)

// bnplHandler handles HTTP requests related to BNPL credit limits.
type bnplHandler struct {
	bnplService portssvc.BnplSvcFacade
}

// newBnplHandler creates a new bnplHandler.
func newBnplHandler(bs portssvc.BnplSvcFacade) *bnplHandler {
	return &bnplHandler{
		bnplService: bs,
	}
}

// registerBnplRoutes registers routes related to BNPL limits.
func registerBnplRoutes(rg *gin.RouterGroup, bnplService portssvc.BnplSvcFacade) {
	h := newBnplHandler(bnplService)

	limits := rg.Group("/bnpl-limits")
	{
		limits.PUT("", h.upsertLimit)
		limits.POST("/:partyID/:limitType/usage", h.recordUsage)
		limits.POST("/:partyID/:limitType/release", h.releaseUsage)
	}
}

// upsertLimit godoc
// @Summary Set a BNPL limit
// @Description Creates or replaces the total BNPL limit for a party and direction
// @Tags bnpl
// @Accept  json
// @Produce  json
// @Param   limit body dto.UpsertBnplLimitRequest true "Limit details"
// @Success 200 {object} dto.BnplLimitResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Failed to set BNPL limit"
// @Security BearerAuth
// @Router /bnpl-limits [put]
func (h *bnplHandler) upsertLimit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertBnplLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertBnplLimit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, err := h.bnplService.UpsertLimit(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
		} else {
			logger.Error("Failed to upsert BNPL limit", slog.String("error", err.Error()), slog.String("party_id", req.PartyID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set BNPL limit"})
		}
		return
	}

	logger.Info("BNPL limit set", slog.String("party_id", limit.PartyID), slog.String("limit_type", string(limit.LimitType)))
	c.JSON(http.StatusOK, dto.ToBnplLimitResponse(limit))
}

// recordUsage godoc
// @Summary Record BNPL usage
// @Description Consumes part of a party's BNPL limit
// @Tags bnpl
// @Accept  json
// @Produce  json
// @Param   partyID path string true "Party ID"
// @Param   limitType path string true "Limit direction (purchase or sales)"
// @Param   usage body dto.RecordBnplUsageRequest true "Usage amount"
// @Success 200 {object} dto.BnplLimitResponse
// @Failure 400 {object} map[string]string "Invalid input, no limit set, or limit exceeded"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Failed to record BNPL usage"
// @Security BearerAuth
// @Router /bnpl-limits/{partyID}/{limitType}/usage [post]
func (h *bnplHandler) recordUsage(c *gin.Context) {
	h.applyUsage(c, h.bnplService.RecordUsage)
}

// releaseUsage godoc
// @Summary Release BNPL usage
// @Description Returns part of a party's BNPL limit, flooring used limit at zero
// @Tags bnpl
// @Accept  json
// @Produce  json
// @Param   partyID path string true "Party ID"
// @Param   limitType path string true "Limit direction (purchase or sales)"
// @Param   usage body dto.RecordBnplUsageRequest true "Release amount"
// @Success 200 {object} dto.BnplLimitResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Party or limit not found"
// @Failure 500 {object} map[string]string "Failed to release BNPL usage"
// @Security BearerAuth
// @Router /bnpl-limits/{partyID}/{limitType}/release [post]
func (h *bnplHandler) releaseUsage(c *gin.Context) {
	h.applyUsage(c, h.bnplService.ReleaseUsage)
}

type usageFn func(ctx context.Context, userID string, partyID string, limitType domain.BnplLimitType, amount decimal.Decimal) (*domain.BnplLimit, error)

func (h *bnplHandler) applyUsage(c *gin.Context, apply usageFn) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("partyID")
	limitType := domain.BnplLimitType(c.Param("limitType"))

	if limitType != domain.BnplPurchase && limitType != domain.BnplSales {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limitType must be purchase or sales"})
		return
	}

	var req dto.RecordBnplUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BNPL usage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, err := apply(c.Request.Context(), userID, partyID, limitType, numeric.LenientDecimal(req.Amount))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, services.ErrBnplLimitExceeded):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Party or limit not found"})
		default:
			logger.Error("Failed to apply BNPL usage", slog.String("error", err.Error()), slog.String("party_id", partyID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply BNPL usage"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBnplLimitResponse(limit))
}
