package controller

import (
	"practicehub/internal/middleware"
	"practicehub/internal/service"
	"practicehub/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

// ProblemController handles problem HTTP endpoints.
type ProblemController struct {
	problemService *service.ProblemService
}

// NewProblemController creates a new ProblemController.
func NewProblemController(problemService *service.ProblemService) *ProblemController {
	return &ProblemController{problemService: problemService}
}

// CreateProblemRequest defines the problem creation payload.
// Rating is a pointer so a zero score still satisfies the required rule.
type CreateProblemRequest struct {
	Name           string   `json:"name" binding:"required"`
	Rating         *float64 `json:"rating" binding:"required"`
	Link           string   `json:"link" binding:"required,url"`
	SubmissionLink string   `json:"submissionLink" binding:"required,url"`
	Tags           []string `json:"tags" binding:"required,min=1"`
}

// Create handles POST /problems.
func (h *ProblemController) Create(c *gin.Context) {
	var req CreateProblemRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := h.problemService.Create(c.Request.Context(), service.CreateProblemInput{
		Name:           req.Name,
		Rating:         *req.Rating,
		Link:           req.Link,
		SubmissionLink: req.SubmissionLink,
		Tags:           req.Tags,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Problem created successfully")
}

// List handles GET /problems with an optional tag filter.
func (h *ProblemController) List(c *gin.Context) {
	problems, err := h.problemService.List(c.Request.Context(), c.Query("tag"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, problems)
}

// Solve handles PATCH /problems/:id/solve.
func (h *ProblemController) Solve(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		response.AbortUnauthorized(c)
		return
	}

	if err := h.problemService.Solve(c.Request.Context(), c.Param("id"), caller); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "Problem marked as solved")
}

// Delete handles DELETE /problems/:id.
func (h *ProblemController) Delete(c *gin.Context) {
	if err := h.problemService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "Problem deleted successfully")
}
