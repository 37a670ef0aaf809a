package controller

import (
	"errors"
	"strconv"

	"quizdeck_backend/internal/model"
	"quizdeck_backend/internal/service"
	"quizdeck_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	quizService    *service.QuizService
	attemptService *service.AttemptService
}

func NewQuizController(quizService *service.QuizService, attemptService *service.AttemptService) *QuizController {
	return &QuizController{
		quizService:    quizService,
		attemptService: attemptService,
	}
}

// ListTests godoc
// @Summary List test summaries
// @Tags tests
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/tests [get]
func (c *QuizController) ListTests(ctx *gin.Context) {
	summaries, err := c.quizService.ListTests()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"tests": summaries})
}

// GetTest godoc
// @Summary Get one test by positional id
// @Tags tests
// @Produce json
// @Param id path int true "Test id"
// @Success 200 {object} util.Response
// @Router /api/tests/{id} [get]
func (c *QuizController) GetTest(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	test, err := c.quizService.GetTest(id)
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": id, "title": test.Title, "questions": test.Questions})
}

// CreateTest godoc
// @Summary Create a test
// @Tags tests
// @Accept json
// @Produce json
// @Param request body model.Test true "Test"
// @Success 201 {object} util.Response
// @Router /api/tests [post]
func (c *QuizController) CreateTest(ctx *gin.Context) {
	var test model.Test
	if err := ctx.ShouldBindJSON(&test); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id, err := c.quizService.CreateTest(test)
	if err != nil {
		util.FailFromError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": id})
}

// UpdateTest godoc
// @Summary Replace a test
// @Tags tests
// @Accept json
// @Produce json
// @Param id path int true "Test id"
// @Param request body model.Test true "Test"
// @Success 200 {object} util.Response
// @Router /api/tests/{id} [put]
func (c *QuizController) UpdateTest(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var test model.Test
	if err := ctx.ShouldBindJSON(&test); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.quizService.UpdateTest(id, test); err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx)
			return
		}
		util.FailFromError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// DeleteTest godoc
// @Summary Delete a test and its owned media
// @Tags tests
// @Produce json
// @Param id path int true "Test id"
// @Success 200 {object} util.Response
// @Router /api/tests/{id} [delete]
func (c *QuizController) DeleteTest(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.quizService.DeleteTest(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type submitRequest struct {
	Answers []*int `json:"answers"`
}

// SubmitTest godoc
// @Summary Submit answers for grading
// @Tags tests
// @Accept json
// @Produce json
// @Param id path int true "Test id"
// @Param request body submitRequest true "Selected option index per question, null for unanswered"
// @Success 201 {object} util.Response
// @Router /api/tests/{id}/submit [post]
func (c *QuizController) SubmitTest(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req submitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.quizService.GetTest(id)
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	attempt, err := c.attemptService.Submit(id, test, req.Answers)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}

func parseID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid test id")
		return 0, false
	}
	return id, true
}
