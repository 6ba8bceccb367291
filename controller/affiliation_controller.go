package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ytgov/digital-marketplace/middleware"
	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/services"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

type AffiliationController struct {
	service services.AffiliationServiceInterface
	logger  logger.Logger
}

func NewAffiliationController(service services.AffiliationServiceInterface, log logger.Logger) *AffiliationController {
	return &AffiliationController{
		service: service,
		logger:  log,
	}
}

// Create handles POST /affiliations
func (h *AffiliationController) Create(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	req, ok := bindJSON[models.CreateAffiliationRequest](c, h.logger)
	if !ok {
		return
	}

	v, err := h.service.ValidateCreate(c.Request.Context(), session, req)
	intention, ok := guard(c, h.logger, v, err)
	if !ok {
		return
	}

	affiliation, err := h.service.ExecuteCreate(c.Request.Context(), intention)
	if err != nil {
		respondUnavailable(c, h.logger, err)
		return
	}
	h.logger.Infof("Created affiliation %s (%s)", affiliation.ID, affiliation.MembershipStatus)
	c.JSON(http.StatusCreated, affiliation)
}

// Approve handles PUT /affiliations/:id
func (h *AffiliationController) Approve(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	v, err := h.service.ValidateApprove(c.Request.Context(), session, c.Param("id"))
	affiliation, ok := guard(c, h.logger, v, err)
	if !ok {
		return
	}

	approved, errs, err := h.service.ExecuteApprove(c.Request.Context(), affiliation)
	respondExecuted(c, h.logger, http.StatusOK, approved, errs, err)
}

// Delete handles DELETE /affiliations/:id
func (h *AffiliationController) Delete(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	v, err := h.service.ValidateDelete(c.Request.Context(), session, c.Param("id"))
	affiliation, ok := guard(c, h.logger, v, err)
	if !ok {
		return
	}

	deleted, errs, err := h.service.ExecuteDelete(c.Request.Context(), affiliation)
	respondExecuted(c, h.logger, http.StatusOK, deleted, errs, err)
}

// ReadMany handles GET /affiliations
func (h *AffiliationController) ReadMany(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	affiliations, errs, err := h.service.ReadMany(c.Request.Context(), session)
	respondCollection(c, h.logger, affiliations, errs, err)
}
