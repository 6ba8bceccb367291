package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ytgov/digital-marketplace/middleware"
	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/services"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

type OrganizationController struct {
	service services.OrganizationServiceInterface
	logger  logger.Logger
}

func NewOrganizationController(service services.OrganizationServiceInterface, log logger.Logger) *OrganizationController {
	return &OrganizationController{
		service: service,
		logger:  log,
	}
}

// Create handles POST /organizations
func (h *OrganizationController) Create(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	req, ok := bindJSON[models.Organization](c, h.logger)
	if !ok {
		return
	}

	v, err := h.service.ValidateCreate(c.Request.Context(), session, req)
	intention, ok := guard(c, h.logger, v, err)
	if !ok {
		return
	}

	org, err := h.service.ExecuteCreate(c.Request.Context(), intention)
	if err != nil {
		respondUnavailable(c, h.logger, err)
		return
	}
	h.logger.Infof("Created organization %s", org.ID)
	c.JSON(http.StatusCreated, org)
}

// ReadOne handles GET /organizations/:id
func (h *OrganizationController) ReadOne(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	org, errs, err := h.service.ReadOne(c.Request.Context(), session, c.Param("id"))
	respondExecuted(c, h.logger, http.StatusOK, org, errs, err)
}

// ReadMany handles GET /organizations
func (h *OrganizationController) ReadMany(c *gin.Context) {
	orgs, err := h.service.ReadMany(c.Request.Context())
	if err != nil {
		respondUnavailable(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orgs)
}

// ReadManyOwned handles GET /ownedOrganizations
func (h *OrganizationController) ReadManyOwned(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	orgs, errs, err := h.service.ReadManyOwned(c.Request.Context(), session)
	respondCollection(c, h.logger, orgs, errs, err)
}

// Update handles PUT /organizations/:id
func (h *OrganizationController) Update(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	req, ok := bindJSON[models.Organization](c, h.logger)
	if !ok {
		return
	}

	v, err := h.service.ValidateUpdate(c.Request.Context(), session, c.Param("id"), req)
	org, ok := guard(c, h.logger, v, err)
	if !ok {
		return
	}

	updated, errs, err := h.service.ExecuteUpdate(c.Request.Context(), session, org, req)
	respondExecuted(c, h.logger, http.StatusOK, updated, errs, err)
}

// Delete handles DELETE /organizations/:id
func (h *OrganizationController) Delete(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	v, err := h.service.ValidateDelete(c.Request.Context(), session, c.Param("id"))
	org, ok := guard(c, h.logger, v, err)
	if !ok {
		return
	}

	deleted, errs, err := h.service.ExecuteDelete(c.Request.Context(), org)
	respondExecuted(c, h.logger, http.StatusOK, deleted, errs, err)
}
