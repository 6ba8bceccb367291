package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/services"
	"github.com/ytgov/digital-marketplace/utils/logger"
	"github.com/ytgov/digital-marketplace/validation"
)

type mockOpportunityService struct {
	mock.Mock
}

func (m *mockOpportunityService) ValidateCreate(ctx context.Context, session *models.Session, req *models.CreateCWUOpportunityRequest) (validation.Validation[services.CreateOpportunityIntention], error) {
	args := m.Called(ctx, session, req)
	return args.Get(0).(validation.Validation[services.CreateOpportunityIntention]), args.Error(1)
}

func (m *mockOpportunityService) ExecuteCreate(ctx context.Context, intention services.CreateOpportunityIntention) (*models.CWUOpportunity, error) {
	args := m.Called(ctx, intention)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CWUOpportunity), args.Error(1)
}

func (m *mockOpportunityService) ValidateUpdate(ctx context.Context, session *models.Session, id string, req *models.UpdateCWUOpportunityRequest) (validation.Validation[services.OpportunityTransition], error) {
	args := m.Called(ctx, session, id, req)
	return args.Get(0).(validation.Validation[services.OpportunityTransition]), args.Error(1)
}

func (m *mockOpportunityService) ExecuteUpdate(ctx context.Context, transition services.OpportunityTransition) (*models.CWUOpportunity, validation.Errors, error) {
	args := m.Called(ctx, transition)
	var opportunity *models.CWUOpportunity
	if args.Get(0) != nil {
		opportunity = args.Get(0).(*models.CWUOpportunity)
	}
	var errs validation.Errors
	if args.Get(1) != nil {
		errs = args.Get(1).(validation.Errors)
	}
	return opportunity, errs, args.Error(2)
}

func (m *mockOpportunityService) ValidateDelete(ctx context.Context, session *models.Session, id string) (validation.Validation[*models.CWUOpportunity], error) {
	args := m.Called(ctx, session, id)
	return args.Get(0).(validation.Validation[*models.CWUOpportunity]), args.Error(1)
}

func (m *mockOpportunityService) ExecuteDelete(ctx context.Context, opportunity *models.CWUOpportunity) (*models.CWUOpportunity, validation.Errors, error) {
	args := m.Called(ctx, opportunity)
	var deleted *models.CWUOpportunity
	if args.Get(0) != nil {
		deleted = args.Get(0).(*models.CWUOpportunity)
	}
	var errs validation.Errors
	if args.Get(1) != nil {
		errs = args.Get(1).(validation.Errors)
	}
	return deleted, errs, args.Error(2)
}

func (m *mockOpportunityService) ReadOne(ctx context.Context, session *models.Session, id string) (*models.CWUOpportunity, validation.Errors, error) {
	args := m.Called(ctx, session, id)
	var opportunity *models.CWUOpportunity
	if args.Get(0) != nil {
		opportunity = args.Get(0).(*models.CWUOpportunity)
	}
	var errs validation.Errors
	if args.Get(1) != nil {
		errs = args.Get(1).(validation.Errors)
	}
	return opportunity, errs, args.Error(2)
}

func (m *mockOpportunityService) ReadMany(ctx context.Context, session *models.Session) ([]models.CWUOpportunitySlim, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CWUOpportunitySlim), args.Error(1)
}

func (m *mockOpportunityService) SaveAndPublish(ctx context.Context, session *models.Session, id string, doc *models.CWUOpportunityDocument) (*models.CWUOpportunity, validation.Errors, bool, error) {
	args := m.Called(ctx, session, id, doc)
	var opportunity *models.CWUOpportunity
	if args.Get(0) != nil {
		opportunity = args.Get(0).(*models.CWUOpportunity)
	}
	var errs validation.Errors
	if args.Get(1) != nil {
		errs = args.Get(1).(validation.Errors)
	}
	return opportunity, errs, args.Bool(2), args.Error(3)
}

func (m *mockOpportunityService) SweepDeadlines(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type OpportunityControllerTestSuite struct {
	suite.Suite
	service    *mockOpportunityService
	controller *OpportunityController
	router     *gin.Engine
}

func (s *OpportunityControllerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *OpportunityControllerTestSuite) SetupTest() {
	s.service = &mockOpportunityService{}
	s.controller = NewOpportunityController(s.service, logger.NewLogger("error", "text"))

	s.router = gin.New()
	s.router.POST("/opportunities/codeWithUs", s.controller.Create)
	s.router.GET("/opportunities/codeWithUs/:id", s.controller.ReadOne)
	s.router.PUT("/opportunities/codeWithUs/:id", s.controller.Update)
	s.router.DELETE("/opportunities/codeWithUs/:id", s.controller.Delete)
}

func (s *OpportunityControllerTestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	return w
}

func (s *OpportunityControllerTestSuite) TestCreateReturns201() {
	created := &models.CWUOpportunity{ID: "opp-1", Status: models.CWUOpportunityStatusDraft}
	s.service.On("ValidateCreate", mock.Anything, mock.Anything, mock.Anything).
		Return(validation.Valid(services.CreateOpportunityIntention{OrganizationID: "org-1"}), nil)
	s.service.On("ExecuteCreate", mock.Anything, mock.Anything).Return(created, nil)

	w := s.request(http.MethodPost, "/opportunities/codeWithUs",
		models.CreateCWUOpportunityRequest{Organization: "org-1"})

	s.Equal(http.StatusCreated, w.Code)
	s.Contains(w.Body.String(), "opp-1")
}

func (s *OpportunityControllerTestSuite) TestCreateMalformedBodyReturns400() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/opportunities/codeWithUs", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "Invalid request body.")
}

func (s *OpportunityControllerTestSuite) TestFieldRejectionReturns400() {
	s.service.On("ValidateCreate", mock.Anything, mock.Anything, mock.Anything).
		Return(validation.Invalid[services.CreateOpportunityIntention](
			validation.Errors{"title": {"This field is required."}}), nil)

	w := s.request(http.MethodPost, "/opportunities/codeWithUs", models.CreateCWUOpportunityRequest{})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "title")
}

func (s *OpportunityControllerTestSuite) TestPermissionRejectionReturns401() {
	s.service.On("ValidateCreate", mock.Anything, mock.Anything, mock.Anything).
		Return(validation.Invalid[services.CreateOpportunityIntention](
			validation.PermissionErrors("You do not have permission to perform this action.")), nil)

	w := s.request(http.MethodPost, "/opportunities/codeWithUs", models.CreateCWUOpportunityRequest{})

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Contains(w.Body.String(), "permissions")
}

func (s *OpportunityControllerTestSuite) TestCollaboratorFailureReturns503() {
	var zero validation.Validation[services.CreateOpportunityIntention]
	s.service.On("ValidateCreate", mock.Anything, mock.Anything, mock.Anything).
		Return(zero, errors.New("dynamodb unreachable"))

	w := s.request(http.MethodPost, "/opportunities/codeWithUs", models.CreateCWUOpportunityRequest{})

	s.Equal(http.StatusServiceUnavailable, w.Code)

	var body []string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal([]string{models.ServiceUnavailableMessage}, body)
}

func (s *OpportunityControllerTestSuite) TestUpdateLostRaceReturns400() {
	transition := services.OpportunityTransition{Tag: models.CWUOpportunityTagSuspend}
	s.service.On("ValidateUpdate", mock.Anything, mock.Anything, "opp-1", mock.Anything).
		Return(validation.Valid(transition), nil)
	s.service.On("ExecuteUpdate", mock.Anything, transition).
		Return(nil, validation.Errors{"opportunity": {services.MsgOpportunityRaced}}, nil)

	w := s.request(http.MethodPut, "/opportunities/codeWithUs/opp-1",
		models.UpdateCWUOpportunityRequest{Tag: models.CWUOpportunityTagSuspend})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), services.MsgOpportunityRaced)
}

func (s *OpportunityControllerTestSuite) TestSaveAndPublishWithoutDocumentReturns400() {
	w := s.request(http.MethodPut, "/opportunities/codeWithUs/opp-1",
		models.UpdateCWUOpportunityRequest{Tag: models.CWUOpportunityTagSaveAndPublish})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), services.MsgDocumentRequired)
	s.service.AssertNotCalled(s.T(), "SaveAndPublish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *OpportunityControllerTestSuite) TestSaveAndPublishPartialOutcome() {
	doc := models.CWUOpportunityDocument{Title: "Draft in progress"}
	s.service.On("SaveAndPublish", mock.Anything, mock.Anything, "opp-1", &doc).
		Return(nil, validation.Errors{
			"changesSaved": {services.MsgChangesSavedNotPublished},
			"description":  {"This field is required."},
		}, true, nil)

	w := s.request(http.MethodPut, "/opportunities/codeWithUs/opp-1",
		models.UpdateCWUOpportunityRequest{Tag: models.CWUOpportunityTagSaveAndPublish, Edit: &doc})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "changesSaved")
	s.Contains(w.Body.String(), "description")
}

func (s *OpportunityControllerTestSuite) TestSaveAndPublishSuccess() {
	doc := models.CWUOpportunityDocument{Title: "Ready to go"}
	published := &models.CWUOpportunity{ID: "opp-1", Status: models.CWUOpportunityStatusPublished}
	s.service.On("SaveAndPublish", mock.Anything, mock.Anything, "opp-1", &doc).
		Return(published, nil, true, nil)

	w := s.request(http.MethodPut, "/opportunities/codeWithUs/opp-1",
		models.UpdateCWUOpportunityRequest{Tag: models.CWUOpportunityTagSaveAndPublish, Edit: &doc})

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), string(models.CWUOpportunityStatusPublished))
}

func (s *OpportunityControllerTestSuite) TestReadOneNotFoundReturns400() {
	s.service.On("ReadOne", mock.Anything, mock.Anything, "missing").
		Return(nil, validation.Errors{"opportunity": {services.MsgOpportunityNotFound}}, nil)

	w := s.request(http.MethodGet, "/opportunities/codeWithUs/missing", nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), services.MsgOpportunityNotFound)
}

func (s *OpportunityControllerTestSuite) TestDeleteReturns200() {
	draft := &models.CWUOpportunity{ID: "opp-1", Status: models.CWUOpportunityStatusDraft}
	s.service.On("ValidateDelete", mock.Anything, mock.Anything, "opp-1").
		Return(validation.Valid(draft), nil)
	s.service.On("ExecuteDelete", mock.Anything, draft).Return(draft, nil, nil)

	w := s.request(http.MethodDelete, "/opportunities/codeWithUs/opp-1", nil)

	s.Equal(http.StatusOK, w.Code)
}

func TestOpportunityControllerTestSuite(t *testing.T) {
	suite.Run(t, new(OpportunityControllerTestSuite))
}
