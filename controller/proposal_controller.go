package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ytgov/digital-marketplace/middleware"
	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/services"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

type ProposalController struct {
	service services.ProposalServiceInterface
	logger  logger.Logger
}

func NewProposalController(service services.ProposalServiceInterface, log logger.Logger) *ProposalController {
	return &ProposalController{
		service: service,
		logger:  log,
	}
}

// Create handles POST /proposals/codeWithUs
func (h *ProposalController) Create(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	req, ok := bindJSON[models.CreateCWUProposalRequest](c, h.logger)
	if !ok {
		return
	}

	v, err := h.service.ValidateCreate(c.Request.Context(), session, req)
	intention, ok := guard(c, h.logger, v, err)
	if !ok {
		return
	}

	proposal, err := h.service.ExecuteCreate(c.Request.Context(), intention)
	if err != nil {
		respondUnavailable(c, h.logger, err)
		return
	}
	h.logger.Infof("Created proposal %s for opportunity %s", proposal.ID, proposal.OpportunityID)
	c.JSON(http.StatusCreated, proposal)
}

// ReadOne handles GET /proposals/codeWithUs/:id
func (h *ProposalController) ReadOne(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	proposal, errs, err := h.service.ReadOne(c.Request.Context(), session, c.Param("id"))
	respondExecuted(c, h.logger, http.StatusOK, proposal, errs, err)
}

// ReadMany handles GET /proposals/codeWithUs. Reviewers pass ?opportunity=
// to list submissions against one of their opportunities.
func (h *ProposalController) ReadMany(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	proposals, errs, err := h.service.ReadMany(c.Request.Context(), session, c.Query("opportunity"))
	respondCollection(c, h.logger, proposals, errs, err)
}

// Update handles PUT /proposals/codeWithUs/:id with a tagged body. The
// saveAndSubmit tag runs the composite edit-then-submit flow.
func (h *ProposalController) Update(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	req, ok := bindJSON[models.UpdateCWUProposalRequest](c, h.logger)
	if !ok {
		return
	}

	if req.Tag == models.CWUProposalTagSaveAndSubmit {
		if req.Edit == nil {
			c.JSON(http.StatusBadRequest, gin.H{"value": []string{services.MsgDocumentRequired}})
			return
		}
		proposal, errs, saved, err := h.service.SaveAndSubmit(c.Request.Context(), session, c.Param("id"), req.Edit)
		if err != nil {
			respondUnavailable(c, h.logger, err)
			return
		}
		if errs != nil {
			if saved {
				h.logger.Infof("Proposal %s saved but not submitted", c.Param("id"))
			}
			respondErrors(c, errs)
			return
		}
		c.JSON(http.StatusOK, proposal)
		return
	}

	v, err := h.service.ValidateUpdate(c.Request.Context(), session, c.Param("id"), req)
	transition, ok := guard(c, h.logger, v, err)
	if !ok {
		return
	}

	proposal, errs, err := h.service.ExecuteUpdate(c.Request.Context(), transition)
	respondExecuted(c, h.logger, http.StatusOK, proposal, errs, err)
}

// Delete handles DELETE /proposals/codeWithUs/:id
func (h *ProposalController) Delete(c *gin.Context) {
	session := middleware.SessionFromContext(c)

	v, err := h.service.ValidateDelete(c.Request.Context(), session, c.Param("id"))
	proposal, ok := guard(c, h.logger, v, err)
	if !ok {
		return
	}

	deleted, errs, err := h.service.ExecuteDelete(c.Request.Context(), proposal)
	respondExecuted(c, h.logger, http.StatusOK, deleted, errs, err)
}
