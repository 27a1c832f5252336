package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/models"
	"github.com/noah-isme/portfolio-api/internal/service"
	"github.com/noah-isme/portfolio-api/pkg/response"
)

type assignmentService interface {
	ListByCourse(ctx context.Context, userID, courseID string) ([]models.Assignment, error)
	Create(ctx context.Context, userID, courseID string, req service.AssignmentRequest) (*models.Assignment, error)
	Update(ctx context.Context, userID, id string, req service.AssignmentRequest) (*models.Assignment, error)
	Delete(ctx context.Context, userID, id string) error
	Breakdown(ctx context.Context, userID, courseID string) (*dto.CourseBreakdownResponse, error)
	SetWeights(ctx context.Context, userID, courseID string, req service.SetWeightsRequest) (*dto.CourseBreakdownResponse, error)
}

// AssignmentHandler exposes assignment and course grade endpoints.
type AssignmentHandler struct {
	assignments assignmentService
}

// NewAssignmentHandler constructs handler.
func NewAssignmentHandler(assignments assignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// List godoc
// @Summary List course assignments
// @Tags Assignments
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	assignments, err := h.assignments.ListByCourse(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments)
}

// Create godoc
// @Summary Add assignment to course
// @Description Recomputes the course grade after the insert.
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.AssignmentRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /courses/{id}/assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req service.AssignmentRequest
	if !bindJSON(c, &req) {
		return
	}
	assignment, err := h.assignments.Create(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// Update godoc
// @Summary Replace assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param payload body service.AssignmentRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Router /assignments/{id} [put]
func (h *AssignmentHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req service.AssignmentRequest
	if !bindJSON(c, &req) {
		return
	}
	assignment, err := h.assignments.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignment)
}

// Delete godoc
// @Summary Delete assignment
// @Tags Assignments
// @Param id path string true "Assignment ID"
// @Success 204
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.assignments.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Breakdown godoc
// @Summary Course grade breakdown
// @Tags Assignments
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/breakdown [get]
func (h *AssignmentHandler) Breakdown(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	breakdown, err := h.assignments.Breakdown(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, breakdown)
}

// SetWeights godoc
// @Summary Replace category weights of a course
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.SetWeightsRequest true "Weights payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses/{id}/weights [put]
func (h *AssignmentHandler) SetWeights(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req service.SetWeightsRequest
	if !bindJSON(c, &req) {
		return
	}
	breakdown, err := h.assignments.SetWeights(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, breakdown)
}
