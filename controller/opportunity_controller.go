package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ytgov/digital-marketplace/middleware"
	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/services"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

type OpportunityController struct {
	service services.OpportunityServiceInterface
	logger  logger.Logger
}

func NewOpportunityController(service services.OpportunityServiceInterface, log logger.Logger) *OpportunityController {
	return &OpportunityController{
		service: service,
		logger:  log,
	}
}

// Create handles POST /opportunities/codeWithUs
func (h *OpportunityController) Create(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	req, ok := bindJSON[models.CreateCWUOpportunityRequest](c, h.logger)
	if !ok {
		return
	}

	v, err := h.service.ValidateCreate(c.Request.Context(), session, req)
	intention, ok := guard(c, h.logger, v, err)
	if !ok {
		return
	}

	opportunity, err := h.service.ExecuteCreate(c.Request.Context(), intention)
	if err != nil {
		respondUnavailable(c, h.logger, err)
		return
	}
	h.logger.Infof("Created opportunity %s", opportunity.ID)
	c.JSON(http.StatusCreated, opportunity)
}

// ReadOne handles GET /opportunities/codeWithUs/:id
func (h *OpportunityController) ReadOne(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	opportunity, errs, err := h.service.ReadOne(c.Request.Context(), session, c.Param("id"))
	respondExecuted(c, h.logger, http.StatusOK, opportunity, errs, err)
}

// ReadMany handles GET /opportunities/codeWithUs
func (h *OpportunityController) ReadMany(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	opportunities, err := h.service.ReadMany(c.Request.Context(), session)
	if err != nil {
		respondUnavailable(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, opportunities)
}

// Update handles PUT /opportunities/codeWithUs/:id with a tagged body. The
// saveAndPublish tag runs the composite edit-then-publish flow.
func (h *OpportunityController) Update(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	req, ok := bindJSON[models.UpdateCWUOpportunityRequest](c, h.logger)
	if !ok {
		return
	}

	if req.Tag == models.CWUOpportunityTagSaveAndPublish {
		if req.Edit == nil {
			c.JSON(http.StatusBadRequest, gin.H{"value": []string{services.MsgDocumentRequired}})
			return
		}
		opportunity, errs, saved, err := h.service.SaveAndPublish(c.Request.Context(), session, c.Param("id"), req.Edit)
		if err != nil {
			respondUnavailable(c, h.logger, err)
			return
		}
		if errs != nil {
			if saved {
				h.logger.Infof("Opportunity %s saved but not published", c.Param("id"))
			}
			respondErrors(c, errs)
			return
		}
		c.JSON(http.StatusOK, opportunity)
		return
	}

	v, err := h.service.ValidateUpdate(c.Request.Context(), session, c.Param("id"), req)
	transition, ok := guard(c, h.logger, v, err)
	if !ok {
		return
	}

	opportunity, errs, err := h.service.ExecuteUpdate(c.Request.Context(), transition)
	respondExecuted(c, h.logger, http.StatusOK, opportunity, errs, err)
}

// Delete handles DELETE /opportunities/codeWithUs/:id
func (h *OpportunityController) Delete(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	v, err := h.service.ValidateDelete(c.Request.Context(), session, c.Param("id"))
	opportunity, ok := guard(c, h.logger, v, err)
	if !ok {
		return
	}

	deleted, errs, err := h.service.ExecuteDelete(c.Request.Context(), opportunity)
	respondExecuted(c, h.logger, http.StatusOK, deleted, errs, err)
}
