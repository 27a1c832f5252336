package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/middleware"
	"github.com/noah-isme/portfolio-api/internal/models"
	"github.com/noah-isme/portfolio-api/internal/service"
	"github.com/noah-isme/portfolio-api/pkg/response"
)

type gpaService interface {
	Summary(ctx context.Context, userID string) (*dto.GPASummaryResponse, bool, error)
}

type admissionsService interface {
	Assess(ctx context.Context, userID, universityID string) (*dto.AdmissionRiskResponse, error)
	AssessAll(ctx context.Context, userID string) ([]dto.AdmissionRiskResponse, error)
}

type testScoreService interface {
	List(ctx context.Context, userID string) ([]models.TestScore, error)
	Create(ctx context.Context, userID string, req service.TestScoreRequest) (*models.TestScore, error)
}

type transcriptService interface {
	Export(ctx context.Context, userID, format string) (*service.TranscriptFile, error)
}

// GPAHandler exposes GPA endpoints.
type GPAHandler struct {
	gpa gpaService
}

// NewGPAHandler constructs handler.
func NewGPAHandler(gpa gpaService) *GPAHandler {
	return &GPAHandler{gpa: gpa}
}

// Summary godoc
// @Summary GPA summary
// @Description Unweighted and weighted GPA with the per-year trend.
// @Tags GPA
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /gpa [get]
func (h *GPAHandler) Summary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	summary, cached, err := h.gpa.Summary(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, summary, middleware.ResponseMeta(c))
}

// AdmissionsHandler exposes admission risk and test score endpoints.
type AdmissionsHandler struct {
	admissions admissionsService
	scores     testScoreService
}

// NewAdmissionsHandler constructs handler.
func NewAdmissionsHandler(admissions admissionsService, scores testScoreService) *AdmissionsHandler {
	return &AdmissionsHandler{admissions: admissions, scores: scores}
}

// RiskAll godoc
// @Summary Admission risk for every target university
// @Tags Admissions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admissions/risk [get]
func (h *AdmissionsHandler) RiskAll(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	results, err := h.admissions.AssessAll(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results)
}

// Risk godoc
// @Summary Admission risk for one university
// @Tags Admissions
// @Produce json
// @Param universityId path string true "University ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admissions/risk/{universityId} [get]
func (h *AdmissionsHandler) Risk(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	result, err := h.admissions.Assess(c.Request.Context(), userID, c.Param("universityId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ListTestScores godoc
// @Summary List test scores
// @Tags Admissions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /test-scores [get]
func (h *AdmissionsHandler) ListTestScores(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	scores, err := h.scores.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scores)
}

// CreateTestScore godoc
// @Summary Record a test score
// @Tags Admissions
// @Accept json
// @Produce json
// @Param payload body service.TestScoreRequest true "Test score payload"
// @Success 201 {object} response.Envelope
// @Router /test-scores [post]
func (h *AdmissionsHandler) CreateTestScore(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req service.TestScoreRequest
	if !bindJSON(c, &req) {
		return
	}
	score, err := h.scores.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, score)
}

// TranscriptHandler exposes transcript downloads.
type TranscriptHandler struct {
	transcripts transcriptService
}

// NewTranscriptHandler constructs handler.
func NewTranscriptHandler(transcripts transcriptService) *TranscriptHandler {
	return &TranscriptHandler{transcripts: transcripts}
}

// Export godoc
// @Summary Download transcript
// @Tags Transcript
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" Enums(csv, pdf)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /transcript/export [get]
func (h *TranscriptHandler) Export(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	file, err := h.transcripts.Export(c.Request.Context(), userID, c.DefaultQuery("format", service.TranscriptCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.ContentType, file.Filename, file.Body)
}
