package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portfolio-api/internal/dto"
	"github.com/noah-isme/portfolio-api/internal/grading"
	"github.com/noah-isme/portfolio-api/internal/middleware"
	"github.com/noah-isme/portfolio-api/internal/models"
	"github.com/noah-isme/portfolio-api/internal/service"
	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
)

type courseServiceMock struct {
	listResp   []models.Course
	getErr     error
	createResp *models.Course
	createErr  error
	deleteErr  error
	lastUserID string
	lastID     string
	lastReq    service.CourseRequest
	created    bool
	deleted    bool
}

func (m *courseServiceMock) List(ctx context.Context, userID string) ([]models.Course, error) {
	m.lastUserID = userID
	return m.listResp, nil
}

func (m *courseServiceMock) Get(ctx context.Context, userID, id string) (*models.Course, error) {
	m.lastUserID = userID
	m.lastID = id
	if m.getErr != nil {
		return nil, m.getErr
	}
	return &models.Course{ID: id, UserID: userID}, nil
}

func (m *courseServiceMock) Create(ctx context.Context, userID string, req service.CourseRequest) (*models.Course, error) {
	m.created = true
	m.lastUserID = userID
	m.lastReq = req
	return m.createResp, m.createErr
}

func (m *courseServiceMock) Update(ctx context.Context, userID, id string, req service.CourseRequest) (*models.Course, error) {
	m.lastID = id
	m.lastReq = req
	return &models.Course{ID: id, Name: req.Name}, nil
}

func (m *courseServiceMock) Delete(ctx context.Context, userID, id string) error {
	m.deleted = true
	m.lastID = id
	return m.deleteErr
}

type recalculationQueueMock struct {
	resp *dto.RecalculationResponse
	err  error
}

func (m *recalculationQueueMock) Enqueue(ctx context.Context, userID string) (*dto.RecalculationResponse, error) {
	return m.resp, m.err
}

func newUserContext(method, target string, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, target, nil)
	} else {
		req, _ = http.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1"})
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func TestCourseHandlerListUsesCaller(t *testing.T) {
	mockSvc := &courseServiceMock{listResp: []models.Course{{ID: "c1", Name: "Algebra"}}}
	handler := NewCourseHandler(mockSvc, &recalculationQueueMock{})

	c, w := newUserContext(http.MethodGet, "/courses", "")
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", mockSvc.lastUserID)
	data := decodeEnvelope(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
}

func TestCourseHandlerRequiresClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCourseHandler(&courseServiceMock{}, &recalculationQueueMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/courses", nil)

	handler.List(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCourseHandlerGetNotFound(t *testing.T) {
	mockSvc := &courseServiceMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "course not found")}
	handler := NewCourseHandler(mockSvc, &recalculationQueueMock{})

	c, w := newUserContext(http.MethodGet, "/courses/missing", "")
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "missing", mockSvc.lastID)
}

func TestCourseHandlerCreate(t *testing.T) {
	mockSvc := &courseServiceMock{createResp: &models.Course{ID: "c1", Name: "Chemistry"}}
	handler := NewCourseHandler(mockSvc, &recalculationQueueMock{})

	c, w := newUserContext(http.MethodPost, "/courses", `{"name":"Chemistry","year":2024,"semester":"Fall","level":"AP"}`)
	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, mockSvc.created)
	assert.Equal(t, grading.LevelAP, mockSvc.lastReq.Level)
	assert.Equal(t, 2024, mockSvc.lastReq.Year)
}

func TestCourseHandlerCreateInvalidBody(t *testing.T) {
	mockSvc := &courseServiceMock{}
	handler := NewCourseHandler(mockSvc, &recalculationQueueMock{})

	c, w := newUserContext(http.MethodPost, "/courses", `{"name":"Chem"`)
	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mockSvc.created)
}

func TestCourseHandlerDelete(t *testing.T) {
	mockSvc := &courseServiceMock{}
	handler := NewCourseHandler(mockSvc, &recalculationQueueMock{})

	c, w := newUserContext(http.MethodDelete, "/courses/c1", "")
	c.Params = gin.Params{{Key: "id", Value: "c1"}}
	handler.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, mockSvc.deleted)
}

func TestCourseHandlerRecalculateAccepted(t *testing.T) {
	queue := &recalculationQueueMock{resp: &dto.RecalculationResponse{JobID: "job-1", Status: "queued"}}
	handler := NewCourseHandler(&courseServiceMock{}, queue)

	c, w := newUserContext(http.MethodPost, "/courses/recalculate", "")
	handler.Recalculate(c)

	require.Equal(t, http.StatusAccepted, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "job-1", data["job_id"])
}

func TestCourseHandlerRecalculateUnavailable(t *testing.T) {
	queue := &recalculationQueueMock{err: appErrors.ErrUnavailable}
	handler := NewCourseHandler(&courseServiceMock{}, queue)

	c, w := newUserContext(http.MethodPost, "/courses/recalculate", "")
	handler.Recalculate(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
