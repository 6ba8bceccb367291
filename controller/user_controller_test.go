package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ytgov/digital-marketplace/middleware"
	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/permissions"
	"github.com/ytgov/digital-marketplace/services"
	"github.com/ytgov/digital-marketplace/utils/logger"
	"github.com/ytgov/digital-marketplace/validation"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) ValidateRegister(ctx context.Context, req *models.RegisterUser) (validation.Validation[services.RegisterIntention], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(validation.Validation[services.RegisterIntention]), args.Error(1)
}

func (m *mockUserService) ExecuteRegister(ctx context.Context, intention services.RegisterIntention) (*models.User, error) {
	args := m.Called(ctx, intention)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, validation.Errors, error) {
	args := m.Called(ctx, email, password)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	var errs validation.Errors
	if args.Get(1) != nil {
		errs = args.Get(1).(validation.Errors)
	}
	return user, errs, args.Error(2)
}

func (m *mockUserService) ValidateUpdate(ctx context.Context, session *models.Session, id string, req *models.UpdateUserRequest) (validation.Validation[services.UserTransition], error) {
	args := m.Called(ctx, session, id, req)
	return args.Get(0).(validation.Validation[services.UserTransition]), args.Error(1)
}

func (m *mockUserService) ExecuteUpdate(ctx context.Context, transition services.UserTransition) (*models.User, validation.Errors, error) {
	args := m.Called(ctx, transition)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	var errs validation.Errors
	if args.Get(1) != nil {
		errs = args.Get(1).(validation.Errors)
	}
	return user, errs, args.Error(2)
}

func (m *mockUserService) ReadOne(ctx context.Context, session *models.Session, id string) (*models.User, validation.Errors, error) {
	args := m.Called(ctx, session, id)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	var errs validation.Errors
	if args.Get(1) != nil {
		errs = args.Get(1).(validation.Errors)
	}
	return user, errs, args.Error(2)
}

func (m *mockUserService) ReadMany(ctx context.Context, session *models.Session) ([]models.UserSlim, validation.Errors, error) {
	args := m.Called(ctx, session)
	var slims []models.UserSlim
	if args.Get(0) != nil {
		slims = args.Get(0).([]models.UserSlim)
	}
	var errs validation.Errors
	if args.Get(1) != nil {
		errs = args.Get(1).(validation.Errors)
	}
	return slims, errs, args.Error(2)
}

type UserControllerTestSuite struct {
	suite.Suite
	service    *mockUserService
	jwtManager *middleware.JWTManager
	controller *UserController
	router     *gin.Engine
}

func (s *UserControllerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *UserControllerTestSuite) SetupTest() {
	cfg := &models.Config{
		AppName:      "digital-marketplace",
		JWTSecret:    "test-secret-please-rotate",
		JWTExpiresIn: 30 * time.Minute,
	}
	log := logger.NewLogger("error", "text")
	s.service = &mockUserService{}
	// No user repo: token validation trusts the signed claims in tests.
	s.jwtManager = middleware.NewJWTManager(cfg, log, nil)
	s.controller = NewUserController(s.service, s.jwtManager, cfg, log)

	s.router = gin.New()
	s.router.POST("/users", s.controller.Register)
	s.router.GET("/users", s.controller.ReadMany)
	s.router.POST("/sessions", s.controller.Login)
	s.router.DELETE("/sessions", s.controller.Logout)
}

func (s *UserControllerTestSuite) postJSON(path string, body interface{}) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	return w
}

func (s *UserControllerTestSuite) TestRegisterReturns201() {
	created := &models.User{ID: "user-1", Email: "pat@example.com", Status: models.UserStatusActive}
	s.service.On("ValidateRegister", mock.Anything, mock.Anything).
		Return(validation.Valid(services.RegisterIntention{Email: "pat@example.com"}), nil)
	s.service.On("ExecuteRegister", mock.Anything, mock.Anything).Return(created, nil)

	w := s.postJSON("/users", models.RegisterUser{Email: "pat@example.com"})

	s.Equal(http.StatusCreated, w.Code)
	s.Contains(w.Body.String(), "user-1")
}

func (s *UserControllerTestSuite) TestRegisterDuplicateReturns400() {
	s.service.On("ValidateRegister", mock.Anything, mock.Anything).
		Return(validation.Invalid[services.RegisterIntention](
			validation.Errors{"email": {services.MsgEmailTaken}}), nil)

	w := s.postJSON("/users", models.RegisterUser{Email: "pat@example.com"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), services.MsgEmailTaken)
}

func (s *UserControllerTestSuite) TestLoginReturnsBearerToken() {
	account := &models.User{ID: "user-1", Type: models.UserTypeVendor, Status: models.UserStatusActive, Email: "pat@example.com"}
	s.service.On("Authenticate", mock.Anything, "pat@example.com", "secret password").
		Return(account, nil, nil)

	w := s.postJSON("/sessions", loginRequest{Email: "pat@example.com", Password: "secret password"})

	s.Equal(http.StatusOK, w.Code)

	var response models.LoginResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal("Bearer", response.TokenType)
	s.Equal(int64(1800), response.ExpiresIn)
	s.Equal("user-1", response.User.ID)

	claims, err := s.jwtManager.ValidateToken(context.Background(), response.AccessToken)
	s.NoError(err)
	s.Equal("user-1", claims.UserID)
}

func (s *UserControllerTestSuite) TestLoginBadCredentialsReturns401() {
	s.service.On("Authenticate", mock.Anything, "pat@example.com", "a guess").
		Return(nil, validation.Errors{"credentials": {services.MsgInvalidCredentials}}, nil)

	w := s.postJSON("/sessions", loginRequest{Email: "pat@example.com", Password: "a guess"})

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Contains(w.Body.String(), services.MsgInvalidCredentials)
}

func (s *UserControllerTestSuite) TestLogoutRevokesToken() {
	account := &models.User{ID: "user-1", Type: models.UserTypeVendor, Status: models.UserStatusActive}
	token, err := s.jwtManager.GenerateToken(account)
	s.Require().NoError(err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/sessions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	_, err = s.jwtManager.ValidateToken(context.Background(), token)
	s.Error(err)
}

func (s *UserControllerTestSuite) TestReadManyDeniedReturnsBareMessageList() {
	s.service.On("ReadMany", mock.Anything, mock.Anything).
		Return(nil, validation.PermissionErrors(permissions.ErrorMessage), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)

	// Collection-level rejections flatten to a bare message list.
	var body []string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal([]string{permissions.ErrorMessage}, body)
}

func TestUserControllerTestSuite(t *testing.T) {
	suite.Run(t, new(UserControllerTestSuite))
}
