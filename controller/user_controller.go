package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ytgov/digital-marketplace/middleware"
	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/services"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

type UserController struct {
	service    services.UserServiceInterface
	jwtManager *middleware.JWTManager
	config     *models.Config
	logger     logger.Logger
}

func NewUserController(service services.UserServiceInterface, jwtManager *middleware.JWTManager, cfg *models.Config, log logger.Logger) *UserController {
	return &UserController{
		service:    service,
		jwtManager: jwtManager,
		config:     cfg,
		logger:     log,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /users
func (h *UserController) Register(c *gin.Context) {
	req, ok := bindJSON[models.RegisterUser](c, h.logger)
	if !ok {
		return
	}

	v, err := h.service.ValidateRegister(c.Request.Context(), req)
	intention, ok := guard(c, h.logger, v, err)
	if !ok {
		return
	}

	user, err := h.service.ExecuteRegister(c.Request.Context(), intention)
	if err != nil {
		respondUnavailable(c, h.logger, err)
		return
	}
	h.logger.Infof("Registered user %s", user.ID)
	c.JSON(http.StatusCreated, user)
}

// Login handles POST /sessions
func (h *UserController) Login(c *gin.Context) {
	req, ok := bindJSON[loginRequest](c, h.logger)
	if !ok {
		return
	}

	user, errs, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondUnavailable(c, h.logger, err)
		return
	}
	if errs != nil {
		c.JSON(http.StatusUnauthorized, errs)
		return
	}

	token, err := h.jwtManager.GenerateToken(user)
	if err != nil {
		respondUnavailable(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.config.JWTExpiresIn.Seconds()),
		User:        user.Slim(),
	})
}

// Logout handles DELETE /sessions. The bearer token is revoked until its
// natural expiry.
func (h *UserController) Logout(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if len(tokenString) > 7 {
		tokenString = tokenString[7:]
	}
	claims := &models.JWTClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err == nil && claims.ExpiresAt != nil {
		h.jwtManager.RevokeToken(claims.ID, claims.ExpiresAt.Time)
	} else {
		h.jwtManager.RevokeToken(claims.ID, time.Now().Add(h.config.JWTExpiresIn))
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ReadOne handles GET /users/:id
func (h *UserController) ReadOne(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	user, errs, err := h.service.ReadOne(c.Request.Context(), session, c.Param("id"))
	respondExecuted(c, h.logger, http.StatusOK, user, errs, err)
}

// ReadMany handles GET /users
func (h *UserController) ReadMany(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	users, errs, err := h.service.ReadMany(c.Request.Context(), session)
	respondCollection(c, h.logger, users, errs, err)
}

// Update handles PUT /users/:id with a tagged body.
func (h *UserController) Update(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	req, ok := bindJSON[models.UpdateUserRequest](c, h.logger)
	if !ok {
		return
	}

	v, err := h.service.ValidateUpdate(c.Request.Context(), session, c.Param("id"), req)
	transition, ok := guard(c, h.logger, v, err)
	if !ok {
		return
	}

	user, errs, err := h.service.ExecuteUpdate(c.Request.Context(), transition)
	respondExecuted(c, h.logger, http.StatusOK, user, errs, err)
}
