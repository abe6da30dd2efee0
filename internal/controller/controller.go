package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phynetix/grading-api/config"
	"github.com/phynetix/grading-api/internal/dto"
	apperrors "github.com/phynetix/grading-api/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type errorMapping struct {
	err     error
	status  int
	message string
}

// Sentinels are checked in order; the first match wins.
var errorMappings = []errorMapping{
	{apperrors.ErrMissingAuthHeader, http.StatusUnauthorized, "Missing authorization header"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{apperrors.ErrForbidden, http.StatusForbidden, "Forbidden"},
	{apperrors.ErrInvalidRequest, http.StatusBadRequest, "attempt_id is required"},
	{apperrors.ErrAttemptNotFound, http.StatusNotFound, "Test attempt not found"},
	{apperrors.ErrTestNotFound, http.StatusNotFound, "Test not found"},
	{apperrors.ErrAlreadySubmitted, http.StatusConflict, "Test already submitted"},
	{apperrors.ErrScoreCalculation, http.StatusInternalServerError, "Failed to calculate score"},
	{apperrors.ErrPersistence, http.StatusInternalServerError, "Failed to save results"},
}

// ErrorStatus maps a service error to its HTTP status and public message.
func ErrorStatus(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.message
		}
	}

	var validationErr apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Message
	}
	var storeErr apperrors.StoreError
	if errors.As(err, &storeErr) {
		return http.StatusBadRequest, storeErr.Error()
	}
	return http.StatusInternalServerError, "Internal server error"
}

// RespondError writes err as a JSON error body with the mapped status.
func RespondError(ctx *gin.Context, err error) {
	status, message := ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.Request.URL.Path).Int("status", status).Msg("Request failed")
	} else {
		log.Warn().Err(err).Str("path", ctx.Request.URL.Path).Int("status", status).Msg("Request rejected")
	}
	ctx.JSON(status, dto.ErrorResponse{Error: message})
}

type HealthController struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewHealthController(db *gorm.DB, cfg *config.Config) *HealthController {
	return &HealthController{db: db, cfg: cfg}
}

// Health godoc
// @Summary Service health
// @Description Reports service status and whether the database answers a ping.
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse "Database unreachable"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	resp := dto.HealthResponse{
		Status:  "ok",
		Service: c.cfg.App.Name,
		Version: c.cfg.App.Version,
	}

	sqlDB, err := c.db.DB()
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(pingCtx)
	}
	if err != nil {
		log.Error().Err(err).Msg("Health: Database ping failed")
		resp.Status = "degraded"
		ctx.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
