package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/phynetix/grading-api/internal/controller"
	"github.com/phynetix/grading-api/internal/dto"
	"github.com/phynetix/grading-api/internal/middleware"
	"github.com/phynetix/grading-api/internal/service"
	apperrors "github.com/phynetix/grading-api/pkg/errors"
	"github.com/rs/zerolog/log"
)

type UserTestController struct {
	userTestService       service.UserTestService
	testSubmissionService service.TestSubmissionService
	leaderboardService    service.LeaderboardService
}

func NewUserTestController(uts service.UserTestService, tss service.TestSubmissionService, ls service.LeaderboardService) *UserTestController {
	return &UserTestController{
		userTestService:       uts,
		testSubmissionService: tss,
		leaderboardService:    ls,
	}
}

// SubmitTest godoc
// @Summary (User) Submit answers for an attempt
// @Description Grades the attempt, stores the result and returns score, rank and percentile. An attempt can be submitted once.
// @Tags User - Tests & Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param submission body dto.SubmitTestRequest true "Attempt id, answers keyed by question id and time taken"
// @Success 200 {object} dto.SubmitTestResponse
// @Failure 400 {object} dto.ErrorResponse "attempt_id is required or the body is malformed"
// @Failure 401 {object} dto.ErrorResponse "Missing authorization header or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Test attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Test already submitted"
// @Failure 500 {object} dto.ErrorResponse "Failed to calculate score or save results"
// @Router /submit-test [post]
func (c *UserTestController) SubmitTest(ctx *gin.Context) {
	var req dto.SubmitTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("User SubmitTest: Failed to bind JSON")
		controller.RespondError(ctx, apperrors.ValidationError{Field: "body", Message: err.Error()})
		return
	}

	userID := middleware.UserIDFromContext(ctx)
	log.Info().Str("userID", userID.String()).Str("attemptID", req.AttemptID).Int("answerCount", len(req.Answers)).Msg("Received request to submit test")

	resp, err := c.testSubmissionService.SubmitTest(ctx.Request.Context(), userID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// StartAttempt godoc
// @Summary (User) Start or resume an attempt
// @Description Creates an in-progress attempt for the caller, or returns the open one if it exists.
// @Tags User - Tests & Attempts
// @Produce json
// @Security BearerAuth
// @Param test_id path string true "Test ID (UUID)"
// @Success 201 {object} dto.TestAttemptSummaryDTO "Attempt created"
// @Success 200 {object} dto.TestAttemptSummaryDTO "Open attempt resumed"
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id}/attempts [post]
func (c *UserTestController) StartAttempt(ctx *gin.Context) {
	testID, err := pathUUID(ctx, "test_id", "Invalid Test ID format")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}

	attempt, created, err := c.userTestService.StartAttempt(ctx.Request.Context(), middleware.UserIDFromContext(ctx), testID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	if created {
		ctx.JSON(http.StatusCreated, attempt)
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// GetUserTestAttempts godoc
// @Summary (User) Get the caller's attempts for a test
// @Description Summary of every attempt the caller made on a test, newest first.
// @Tags User - Tests & Attempts
// @Produce json
// @Security BearerAuth
// @Param test_id path string true "Test ID (UUID)"
// @Success 200 {array} dto.TestAttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{test_id}/my-attempts [get]
func (c *UserTestController) GetUserTestAttempts(ctx *gin.Context) {
	testID, err := pathUUID(ctx, "test_id", "Invalid Test ID format")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}

	attempts, err := c.userTestService.GetUserAttemptsForTest(ctx.Request.Context(), testID, middleware.UserIDFromContext(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetSpecificTestAttemptDetails godoc
// @Summary (User) Get details of a specific test attempt
// @Description Full review of one of the caller's attempts, including per-question results and subject scores.
// @Tags User - Tests & Attempts
// @Produce json
// @Security BearerAuth
// @Param attempt_id path string true "Test Attempt ID (UUID)"
// @Success 200 {object} dto.TestAttemptDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test Attempt ID format"
// @Failure 404 {object} dto.ErrorResponse "Test attempt not found"
// @Router /test-attempts/{attempt_id} [get]
func (c *UserTestController) GetSpecificTestAttemptDetails(ctx *gin.Context) {
	attemptID, err := pathUUID(ctx, "attempt_id", "Invalid Test Attempt ID format")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}

	details, err := c.userTestService.GetTestAttemptDetails(ctx.Request.Context(), attemptID, middleware.UserIDFromContext(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, details)
}

// GetLeaderboard godoc
// @Summary (User) Leaderboard of a test
// @Description Completed attempts ordered by rank.
// @Tags User - Tests & Attempts
// @Produce json
// @Security BearerAuth
// @Param test_id path string true "Test ID (UUID)"
// @Param limit query int false "Number of entries (default 50, max 500)"
// @Success 200 {array} dto.LeaderboardEntry
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID or limit"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{test_id}/leaderboard [get]
func (c *UserTestController) GetLeaderboard(ctx *gin.Context) {
	testID, err := pathUUID(ctx, "test_id", "Invalid Test ID format")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	var query dto.LeaderboardQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		controller.RespondError(ctx, apperrors.ValidationError{Field: "limit", Value: ctx.Query("limit"), Message: err.Error()})
		return
	}

	entries, err := c.leaderboardService.Top(ctx.Request.Context(), testID, query.Limit)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

func pathUUID(ctx *gin.Context, name, message string) (uuid.UUID, error) {
	raw := ctx.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.ValidationError{Field: name, Value: raw, Message: message}
	}
	return id, nil
}
