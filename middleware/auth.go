package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/permissions"
	"github.com/ytgov/digital-marketplace/repository"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

// SessionKey is the gin context slot the validated session is stored under.
const SessionKey = "session"

// JWTManager handles JWT token operations
type JWTManager struct {
	Config            *models.Config
	Logger            logger.Logger
	UserRepo          repository.UserRepositoryInterface
	BlacklistedTokens map[string]time.Time // token revocation blacklist
	TokenMutex        sync.RWMutex
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(cfg *models.Config, log logger.Logger, userRepo repository.UserRepositoryInterface) *JWTManager {
	return &JWTManager{
		Config:            cfg,
		Logger:            log,
		UserRepo:          userRepo,
		BlacklistedTokens: make(map[string]time.Time),
	}
}

// GenerateToken signs an access token for a user.
func (j *JWTManager) GenerateToken(user *models.User) (string, error) {
	claims := models.JWTClaims{
		UserID:   user.ID,
		UserType: user.Type,
		Status:   user.Status,
		Name:     user.Name,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			Issuer:    j.Config.AppName,
			Audience:  jwt.ClaimStrings{j.Config.AppName},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.Config.JWTExpiresIn)),
			NotBefore: jwt.NewNumericDate(time.Now()),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.Config.JWTSecret))
	if err != nil {
		j.Logger.Errorf("Failed to sign JWT token: %v", err)
		return "", err
	}

	j.Logger.Debugf("Generated JWT token for user: %s", user.ID)
	return tokenString, nil
}

// ValidateToken validates a token and cross-verifies the account is still
// active before trusting the embedded session.
func (j *JWTManager) ValidateToken(ctx context.Context, tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Prevent algorithm confusion attacks.
		if method, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		} else if method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("invalid signing algorithm: %v", method.Alg())
		}
		return []byte(j.Config.JWTSecret), nil
	})
	if err != nil {
		j.Logger.Errorf("Failed to parse JWT token: %v", err)
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}

	j.TokenMutex.RLock()
	expiry, revoked := j.BlacklistedTokens[claims.ID]
	j.TokenMutex.RUnlock()
	if revoked && expiry.After(time.Now()) {
		return nil, fmt.Errorf("token has been revoked")
	}

	if j.UserRepo != nil {
		user, err := j.UserRepo.ReadOneUser(ctx, claims.UserID)
		if err != nil {
			j.Logger.Errorf("Failed to verify user in database: %v", err)
			return nil, fmt.Errorf("user verification failed")
		}
		if user == nil {
			return nil, fmt.Errorf("user not found")
		}
		if user.Status != models.UserStatusActive {
			return nil, fmt.Errorf("user account is %s", user.Status)
		}
		// The token may carry a stale status; the record wins.
		claims.Status = user.Status
		claims.UserType = user.Type
	}

	return claims, nil
}

// RevokeToken blacklists a token until its natural expiry (logout).
func (j *JWTManager) RevokeToken(tokenID string, expiry time.Time) {
	j.TokenMutex.Lock()
	defer j.TokenMutex.Unlock()
	j.BlacklistedTokens[tokenID] = expiry
}

// CleanupExpiredTokens removes expired tokens from the blacklist.
func (j *JWTManager) CleanupExpiredTokens() {
	j.TokenMutex.Lock()
	defer j.TokenMutex.Unlock()

	now := time.Now()
	for tokenID, expiry := range j.BlacklistedTokens {
		if expiry.Before(now) {
			delete(j.BlacklistedTokens, tokenID)
		}
	}
}

// AuthMiddleware requires a valid bearer token and stores the session in
// the request context.
func (j *JWTManager) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := j.sessionFromHeader(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, []string{permissions.ErrorMessage})
			c.Abort()
			return
		}
		if session == nil {
			c.JSON(http.StatusUnauthorized, []string{permissions.ErrorMessage})
			c.Abort()
			return
		}
		c.Set(SessionKey, session)
		c.Next()
	}
}

// OptionalAuthMiddleware stores a session when a valid bearer token is
// present and lets anonymous requests through. Invalid tokens are still
// rejected rather than silently downgraded.
func (j *JWTManager) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		session, ok := j.sessionFromHeader(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, []string{permissions.ErrorMessage})
			c.Abort()
			return
		}
		c.Set(SessionKey, session)
		c.Next()
	}
}

func (j *JWTManager) sessionFromHeader(c *gin.Context) (*models.Session, bool) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		j.Logger.Debugf("Invalid Authorization header format")
		return nil, false
	}

	claims, err := j.ValidateToken(c.Request.Context(), strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, false
	}
	return claims.Session(), true
}

// SessionFromContext extracts the session stored by the auth middleware.
// Returns nil for anonymous requests.
func SessionFromContext(c *gin.Context) *models.Session {
	value, exists := c.Get(SessionKey)
	if !exists {
		return nil
	}
	session, ok := value.(*models.Session)
	if !ok {
		return nil
	}
	return session
}
