package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/phynetix/grading-api/internal/controller"
	"github.com/phynetix/grading-api/internal/service"
	apperrors "github.com/phynetix/grading-api/pkg/errors"
	"github.com/rs/zerolog/log"
)

type AdminTestController struct {
	adminTestService service.AdminTestService
}

func NewAdminTestController(adminTestService service.AdminTestService) *AdminTestController {
	return &AdminTestController{adminTestService: adminTestService}
}

// RerankTest godoc
// @Summary (Admin) Recompute the leaderboard of a test
// @Description Rewrites rank and percentile of every completed attempt of the test in one transaction.
// @Tags Admin - Tests
// @Produce json
// @Security BearerAuth
// @Param test_id path string true "Test ID (UUID)"
// @Success 200 {object} dto.RerankResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{test_id}/rerank [post]
func (c *AdminTestController) RerankTest(ctx *gin.Context) {
	raw := ctx.Param("test_id")
	testID, err := uuid.Parse(raw)
	if err != nil {
		controller.RespondError(ctx, apperrors.ValidationError{Field: "test_id", Value: raw, Message: "Invalid Test ID format"})
		return
	}

	resp, err := c.adminTestService.RerankTest(ctx.Request.Context(), testID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	log.Info().Str("testID", testID.String()).Int("ranked", resp.Ranked).Msg("Admin RerankTest: Leaderboard recomputed")
	ctx.JSON(http.StatusOK, resp)
}
