package httpd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service/integration"
)

type stubFormService struct {
	createFn   func(ctx context.Context, deviceID string) (*models.SessionResponse, error)
	getFn      func(ctx context.Context, id string) (*models.SessionResponse, error)
	updateFn   func(ctx context.Context, id string, changes models.UpdateFieldsRequest) (*models.SessionResponse, error)
	submitFn   func(ctx context.Context, id string) (*service.BuildResult, error)
	downloadFn func(ctx context.Context, documentID string) (io.ReadCloser, int64, error)
}

func (s *stubFormService) CreateSession(ctx context.Context, deviceID string) (*models.SessionResponse, error) {
	if s.createFn != nil {
		return s.createFn(ctx, deviceID)
	}
	return &models.SessionResponse{SessionID: "sess-1"}, nil
}

func (s *stubFormService) GetSession(ctx context.Context, id string) (*models.SessionResponse, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return &models.SessionResponse{SessionID: id}, nil
}

func (s *stubFormService) UpdateFields(ctx context.Context, id string, changes models.UpdateFieldsRequest) (*models.SessionResponse, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, changes)
	}
	return &models.SessionResponse{SessionID: id}, nil
}

func (s *stubFormService) Submit(ctx context.Context, id string) (*service.BuildResult, error) {
	if s.submitFn != nil {
		return s.submitFn(ctx, id)
	}
	return &service.BuildResult{
		DocumentID:  "doc-1",
		PDF:         []byte("%PDF-1.4"),
		ContentType: "application/pdf",
		Checksum:    "abc123",
	}, nil
}

func (s *stubFormService) DownloadDocument(ctx context.Context, documentID string) (io.ReadCloser, int64, error) {
	if s.downloadFn != nil {
		return s.downloadFn(ctx, documentID)
	}
	content := []byte("%PDF-1.4")
	return io.NopCloser(bytes.NewReader(content)), int64(len(content)), nil
}

type stubSubmissionService struct {
	listFn  func(ctx context.Context, page, limit int) (*models.SubmissionsResponse, error)
	getFn   func(ctx context.Context, id string) (*models.Submission, error)
	statsFn func(ctx context.Context) (*models.SubmissionStatsResponse, error)
}

func (s *stubSubmissionService) GetSubmissions(ctx context.Context, page, limit int) (*models.SubmissionsResponse, error) {
	if s.listFn != nil {
		return s.listFn(ctx, page, limit)
	}
	return &models.SubmissionsResponse{Submissions: []models.Submission{}, Page: page, Limit: limit}, nil
}

func (s *stubSubmissionService) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return &models.Submission{ID: id}, nil
}

func (s *stubSubmissionService) GetStats(ctx context.Context) (*models.SubmissionStatsResponse, error) {
	if s.statsFn != nil {
		return s.statsFn(ctx)
	}
	return &models.SubmissionStatsResponse{}, nil
}

type stubStatusService struct {
	statusFn func(ctx context.Context) (*models.StatusResponse, error)
}

func (s *stubStatusService) GetServiceStatus(ctx context.Context) (*models.StatusResponse, error) {
	if s.statusFn != nil {
		return s.statusFn(ctx)
	}
	return &models.StatusResponse{Status: "healthy", Timestamp: time.Now()}, nil
}

type stubCatalogClient struct {
	typesFn func(ctx context.Context) ([]models.ActivityDescriptor, error)
	langsFn func(ctx context.Context) ([]models.LanguageDescriptor, error)
}

func (s *stubCatalogClient) ActivityTypes(ctx context.Context) ([]models.ActivityDescriptor, error) {
	if s.typesFn != nil {
		return s.typesFn(ctx)
	}
	return []models.ActivityDescriptor{{Value: "lectures", Name: "Lectures"}}, nil
}

func (s *stubCatalogClient) Languages(ctx context.Context) ([]models.LanguageDescriptor, error) {
	if s.langsFn != nil {
		return s.langsFn(ctx)
	}
	return []models.LanguageDescriptor{{Code: "it", Name: "Italiano"}}, nil
}

type handlerFixture struct {
	form    *stubFormService
	subs    *stubSubmissionService
	status  *stubStatusService
	catalog *stubCatalogClient
	router  *chi.Mux
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		form:    &stubFormService{},
		subs:    &stubSubmissionService{},
		status:  &stubStatusService{},
		catalog: &stubCatalogClient{},
	}

	f.router = chi.NewRouter()
	h := NewHandler(f.form, f.subs, f.status, f.catalog, zerolog.Nop())
	h.RegisterRoutes(f.router)

	return f
}

func doRequest(router http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateSession(t *testing.T) {
	f := newHandlerFixture()

	var gotDeviceID string
	f.form.createFn = func(ctx context.Context, deviceID string) (*models.SessionResponse, error) {
		gotDeviceID = deviceID
		return &models.SessionResponse{SessionID: "sess-42"}, nil
	}

	rec := doRequest(f.router, "POST", "/api/v1/sessions", strings.NewReader(`{"device_id":"device-1"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "device-1", gotDeviceID)

	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sess-42", resp.SessionID)
}

func TestCreateSessionEmptyBody(t *testing.T) {
	f := newHandlerFixture()

	rec := doRequest(f.router, "POST", "/api/v1/sessions", nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateSessionInvalidBody(t *testing.T) {
	f := newHandlerFixture()

	rec := doRequest(f.router, "POST", "/api/v1/sessions", strings.NewReader("{not json"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSessionNotFound(t *testing.T) {
	f := newHandlerFixture()
	f.form.getFn = func(ctx context.Context, id string) (*models.SessionResponse, error) {
		return nil, service.ErrSessionNotFound
	}

	rec := doRequest(f.router, "GET", "/api/v1/sessions/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Not Found", resp.Error)
}

func TestUpdateFields(t *testing.T) {
	f := newHandlerFixture()

	var gotChanges models.UpdateFieldsRequest
	f.form.updateFn = func(ctx context.Context, id string, changes models.UpdateFieldsRequest) (*models.SessionResponse, error) {
		gotChanges = changes
		return &models.SessionResponse{
			SessionID: id,
			Validation: models.ValidationResponse{
				Valid:  false,
				Errors: []models.FieldError{{Field: "name", Code: models.ErrCodeFieldRequired}},
			},
		}, nil
	}

	body := `{"activity_type":"lectures","course":"Algorithms"}`
	rec := doRequest(f.router, "PATCH", "/api/v1/sessions/sess-1/fields", strings.NewReader(body))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, gotChanges.ActivityType)
	assert.Equal(t, "lectures", *gotChanges.ActivityType)
	require.NotNil(t, gotChanges.Course)
	assert.Equal(t, "Algorithms", *gotChanges.Course)
	assert.Nil(t, gotChanges.Name)

	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Validation.Errors, 1)
	assert.Equal(t, "name", resp.Validation.Errors[0].Field)
}

func TestUpdateFieldsInvalidBody(t *testing.T) {
	f := newHandlerFixture()

	rec := doRequest(f.router, "PATCH", "/api/v1/sessions/sess-1/fields", strings.NewReader("oops"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitReturnsPDFInline(t *testing.T) {
	f := newHandlerFixture()

	rec := doRequest(f.router, "POST", "/api/v1/sessions/sess-1/submit", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "inline; filename=document.pdf", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "doc-1", rec.Header().Get("X-Document-ID"))
	assert.Equal(t, []byte("%PDF-1.4"), rec.Body.Bytes())
}

func TestSubmitValidationFailure(t *testing.T) {
	f := newHandlerFixture()
	f.form.submitFn = func(ctx context.Context, id string) (*service.BuildResult, error) {
		return nil, &service.ValidationError{Errors: []models.FieldError{
			{Field: "course", Code: models.ErrCodeActivityFieldRequired, Message: "course is required for Lectures"},
			{Field: "date", Code: models.ErrCodeMalformedDate, Message: "date must be a valid calendar date in YYYY-MM-DD format"},
		}}
	}

	rec := doRequest(f.router, "POST", "/api/v1/sessions/sess-1/submit", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Error)
	require.Len(t, resp.Details, 2)
	assert.Equal(t, "course", resp.Details[0].Field)
	assert.Equal(t, models.ErrCodeActivityFieldRequired, resp.Details[0].Code)
}

func TestSubmitBuildInFlight(t *testing.T) {
	f := newHandlerFixture()
	f.form.submitFn = func(ctx context.Context, id string) (*service.BuildResult, error) {
		return nil, service.ErrBuildInFlight
	}

	rec := doRequest(f.router, "POST", "/api/v1/sessions/sess-1/submit", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitRenderFailure(t *testing.T) {
	f := newHandlerFixture()
	f.form.submitFn = func(ctx context.Context, id string) (*service.BuildResult, error) {
		return nil, &integration.RenderError{Code: 500, Message: "typst compiler exited with status 1"}
	}

	rec := doRequest(f.router, "POST", "/api/v1/sessions/sess-1/submit", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Document generation failed", resp.Error)
	assert.Equal(t, "typst compiler exited with status 1", resp.Message)
}

func TestDownloadDocument(t *testing.T) {
	f := newHandlerFixture()

	rec := doRequest(f.router, "GET", "/api/v1/documents/doc-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "inline; filename=document.pdf", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, []byte("%PDF-1.4"), rec.Body.Bytes())
}

func TestDownloadDocumentNotFound(t *testing.T) {
	f := newHandlerFixture()
	f.form.downloadFn = func(ctx context.Context, documentID string) (io.ReadCloser, int64, error) {
		return nil, 0, service.ErrDocumentNotFound
	}

	rec := doRequest(f.router, "GET", "/api/v1/documents/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetActivityTypes(t *testing.T) {
	f := newHandlerFixture()

	rec := doRequest(f.router, "GET", "/api/v1/catalog/activity-types", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ActivityTypesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.ActivityTypes, 1)
	assert.Equal(t, "lectures", resp.ActivityTypes[0].Value)
}

func TestGetActivityTypesDegradesToEmptyList(t *testing.T) {
	f := newHandlerFixture()
	f.catalog.typesFn = func(ctx context.Context) ([]models.ActivityDescriptor, error) {
		return nil, errors.New("render service unreachable")
	}

	rec := doRequest(f.router, "GET", "/api/v1/catalog/activity-types", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"activity_types":[]}`, rec.Body.String())
}

func TestGetLanguagesDegradesToEmptyList(t *testing.T) {
	f := newHandlerFixture()
	f.catalog.langsFn = func(ctx context.Context) ([]models.LanguageDescriptor, error) {
		return nil, errors.New("render service unreachable")
	}

	rec := doRequest(f.router, "GET", "/api/v1/catalog/languages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"languages":[]}`, rec.Body.String())
}

func TestGetSubmissionsPassesPagination(t *testing.T) {
	f := newHandlerFixture()

	var gotPage, gotLimit int
	f.subs.listFn = func(ctx context.Context, page, limit int) (*models.SubmissionsResponse, error) {
		gotPage, gotLimit = page, limit
		return &models.SubmissionsResponse{Submissions: []models.Submission{}, Page: page, Limit: limit}, nil
	}

	rec := doRequest(f.router, "GET", "/api/v1/submissions?page=3&limit=50", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, gotPage)
	assert.Equal(t, 50, gotLimit)
}

func TestGetSubmissionNotFound(t *testing.T) {
	f := newHandlerFixture()
	f.subs.getFn = func(ctx context.Context, id string) (*models.Submission, error) {
		return nil, service.ErrSubmissionNotFound
	}

	rec := doRequest(f.router, "GET", "/api/v1/submissions/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSubmissionStats(t *testing.T) {
	f := newHandlerFixture()
	f.subs.statsFn = func(ctx context.Context) (*models.SubmissionStatsResponse, error) {
		return &models.SubmissionStatsResponse{Total: 10, Succeeded: 8, Failed: 2}, nil
	}

	rec := doRequest(f.router, "GET", "/api/v1/submissions/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":10,"succeeded":8,"failed":2}`, rec.Body.String())
}

func TestHealthCheck(t *testing.T) {
	f := newHandlerFixture()

	rec := doRequest(f.router, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.HealthCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, serviceName, resp.Service)
}

func TestGetServiceStatusDegraded(t *testing.T) {
	f := newHandlerFixture()
	f.status.statusFn = func(ctx context.Context) (*models.StatusResponse, error) {
		return &models.StatusResponse{Status: "degraded", Database: false, Timestamp: time.Now()}, nil
	}

	rec := doRequest(f.router, "GET", "/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.False(t, resp.Database)
}
