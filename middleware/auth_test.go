package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/permissions"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) ReadOneUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) ReadOneUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) ReadManyUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, user *models.User, updates map[string]interface{}) (*models.User, error) {
	args := m.Called(ctx, user, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type AuthMiddlewareTestSuite struct {
	suite.Suite
	userRepo *mockUserRepository
	manager  *JWTManager
	user     *models.User
}

func (s *AuthMiddlewareTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	s.userRepo = &mockUserRepository{}
	s.manager = NewJWTManager(&models.Config{
		AppName:      "digital-marketplace",
		JWTSecret:    "test-secret-please-rotate",
		JWTExpiresIn: 30 * time.Minute,
	}, logger.NewLogger("error", "text"), s.userRepo)
	s.user = &models.User{
		ID:     "user-1",
		Type:   models.UserTypeVendor,
		Status: models.UserStatusActive,
		Name:   "Pat Doe",
		Email:  "pat@example.com",
	}
}

func (s *AuthMiddlewareTestSuite) router() *gin.Engine {
	r := gin.New()
	r.GET("/protected", s.manager.AuthMiddleware(), func(c *gin.Context) {
		session := SessionFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": session.UserID})
	})
	r.GET("/open", s.manager.OptionalAuthMiddleware(), func(c *gin.Context) {
		session := SessionFromContext(c)
		if session == nil {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": session.UserID})
	})
	return r
}

func (s *AuthMiddlewareTestSuite) TestGenerateAndValidateRoundTrip() {
	s.userRepo.On("ReadOneUser", mock.Anything, "user-1").Return(s.user, nil)

	token, err := s.manager.GenerateToken(s.user)
	s.Require().NoError(err)

	claims, err := s.manager.ValidateToken(context.Background(), token)
	s.NoError(err)
	s.Equal("user-1", claims.UserID)
	s.Equal(models.UserTypeVendor, claims.UserType)
}

func (s *AuthMiddlewareTestSuite) TestValidateRejectsWrongSecret() {
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, models.JWTClaims{UserID: "user-1"})
	token, err := foreign.SignedString([]byte("some other secret"))
	s.Require().NoError(err)

	_, err = s.manager.ValidateToken(context.Background(), token)
	s.Error(err)
}

func (s *AuthMiddlewareTestSuite) TestValidateRejectsDeactivatedAccount() {
	deactivated := *s.user
	deactivated.Status = models.UserStatusInactiveByAdmin
	s.userRepo.On("ReadOneUser", mock.Anything, "user-1").Return(&deactivated, nil)

	token, err := s.manager.GenerateToken(s.user)
	s.Require().NoError(err)

	_, err = s.manager.ValidateToken(context.Background(), token)
	s.Error(err)
}

func (s *AuthMiddlewareTestSuite) TestRevokedTokenRejected() {
	s.userRepo.On("ReadOneUser", mock.Anything, "user-1").Return(s.user, nil)

	token, err := s.manager.GenerateToken(s.user)
	s.Require().NoError(err)

	claims, err := s.manager.ValidateToken(context.Background(), token)
	s.Require().NoError(err)

	s.manager.RevokeToken(claims.ID, claims.ExpiresAt.Time)

	_, err = s.manager.ValidateToken(context.Background(), token)
	s.Error(err)
}

func (s *AuthMiddlewareTestSuite) TestCleanupDropsExpiredEntries() {
	s.manager.RevokeToken("stale", time.Now().Add(-time.Minute))
	s.manager.RevokeToken("fresh", time.Now().Add(time.Hour))

	s.manager.CleanupExpiredTokens()

	s.manager.TokenMutex.RLock()
	defer s.manager.TokenMutex.RUnlock()
	s.NotContains(s.manager.BlacklistedTokens, "stale")
	s.Contains(s.manager.BlacklistedTokens, "fresh")
}

func (s *AuthMiddlewareTestSuite) TestMiddlewareRejectsMissingHeader() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)

	s.router().ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)

	// An auth failure targets no field, so the body is a bare message list.
	var body []string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal([]string{permissions.ErrorMessage}, body)
}

func (s *AuthMiddlewareTestSuite) TestMiddlewareRejectsMalformedHeader() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")

	s.router().ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AuthMiddlewareTestSuite) TestMiddlewareStoresSession() {
	s.userRepo.On("ReadOneUser", mock.Anything, "user-1").Return(s.user, nil)
	token, err := s.manager.GenerateToken(s.user)
	s.Require().NoError(err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	s.router().ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "user-1")
}

func (s *AuthMiddlewareTestSuite) TestOptionalAuthPassesAnonymous() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)

	s.router().ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "anonymous")
}

func (s *AuthMiddlewareTestSuite) TestOptionalAuthStillRejectsGarbage() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	s.router().ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}
