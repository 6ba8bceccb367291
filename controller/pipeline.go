package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/utils/logger"
	"github.com/ytgov/digital-marketplace/validation"
)

// Every resource handler is the same pipeline: parse the body, run the
// guard, execute the accepted intention, map the outcome. The helpers
// below encode the status mapping once:
//
//	201  successful creation
//	200  successful read, update or delete
//	401  rejection whose errors include the permissions bucket
//	400  any other rejection, including malformed bodies
//	503  a collaborator failure; the body is a bare message list
//	     because the failure is not attributable to any field

// bindJSON parses the request body, responding 400 on malformed input.
func bindJSON[T any](c *gin.Context, log logger.Logger) (*T, bool) {
	var body T
	if err := c.ShouldBindJSON(&body); err != nil {
		log.Debugf("Failed to bind JSON: %v", err)
		c.JSON(http.StatusBadRequest, validation.Errors{"body": {"Invalid request body."}})
		return nil, false
	}
	return &body, true
}

// guard unwraps a guard result. On rejection or collaborator failure it
// writes the response and reports false.
func guard[T any](c *gin.Context, log logger.Logger, v validation.Validation[T], err error) (T, bool) {
	var zero T
	if err != nil {
		respondUnavailable(c, log, err)
		return zero, false
	}
	if !v.Ok() {
		respondErrors(c, v.Errors())
		return zero, false
	}
	return v.Value(), true
}

// respondErrors maps a rejection to 401 when the permissions bucket is
// non-empty and 400 otherwise.
func respondErrors(c *gin.Context, errs validation.Errors) {
	status := http.StatusBadRequest
	if errs.HasPermissionErrors() {
		status = http.StatusUnauthorized
	}
	c.JSON(status, errs)
}

// respondUnavailable maps a collaborator failure to 503.
func respondUnavailable(c *gin.Context, log logger.Logger, err error) {
	log.Errorf("Persistence collaborator failed: %v", err)
	c.JSON(http.StatusServiceUnavailable, []string{models.ServiceUnavailableMessage})
}

// respondCollection maps a collection read. Rejections flatten to a bare
// message list because a collection error targets no single field.
func respondCollection(c *gin.Context, log logger.Logger, entities interface{}, errs validation.Errors, err error) {
	if err != nil {
		respondUnavailable(c, log, err)
		return
	}
	if errs != nil {
		status := http.StatusBadRequest
		if errs.HasPermissionErrors() {
			status = http.StatusUnauthorized
		}
		c.JSON(status, errs.Flatten())
		return
	}
	c.JSON(http.StatusOK, entities)
}

// respondExecuted maps an execution outcome: entity on success, errors on
// a lost race, 503 on collaborator failure.
func respondExecuted(c *gin.Context, log logger.Logger, status int, entity interface{}, errs validation.Errors, err error) {
	if err != nil {
		respondUnavailable(c, log, err)
		return
	}
	if errs != nil {
		respondErrors(c, errs)
		return
	}
	c.JSON(status, entity)
}
