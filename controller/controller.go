package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ytgov/digital-marketplace/middleware"
	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/services"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

type Controller struct {
	User         *UserController
	Organization *OrganizationController
	Affiliation  *AffiliationController
	Opportunity  *OpportunityController
	Proposal     *ProposalController

	jwtManager *middleware.JWTManager
	config     *models.Config
	logger     logger.Logger
}

func NewController(cfg *models.Config, log logger.Logger, service *services.Service, jwtManager *middleware.JWTManager) *Controller {
	return &Controller{
		User:         NewUserController(service.User, jwtManager, cfg, log),
		Organization: NewOrganizationController(service.Organization, log),
		Affiliation:  NewAffiliationController(service.Affiliation, log),
		Opportunity:  NewOpportunityController(service.Opportunity, log),
		Proposal:     NewProposalController(service.Proposal, log),
		jwtManager:   jwtManager,
		config:       cfg,
		logger:       log,
	}
}

// RegisterRoutes wires every resource under the configured base path.
// Public reads carry an optional session; writes require one.
func (c *Controller) RegisterRoutes(r *gin.Engine, basePath string) {
	api := r.Group(basePath)

	auth := c.jwtManager.AuthMiddleware()
	optionalAuth := c.jwtManager.OptionalAuthMiddleware()

	api.GET("/health", func(g *gin.Context) {
		g.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": c.config.AppVersion,
			"service": c.config.AppName,
		})
	})

	api.POST("/sessions", c.User.Login)
	api.DELETE("/sessions", auth, c.User.Logout)

	users := api.Group("/users")
	users.POST("", c.User.Register)
	users.GET("", auth, c.User.ReadMany)
	users.GET("/:id", auth, c.User.ReadOne)
	users.PUT("/:id", auth, c.User.Update)

	organizations := api.Group("/organizations")
	organizations.POST("", auth, c.Organization.Create)
	organizations.GET("", optionalAuth, c.Organization.ReadMany)
	organizations.GET("/:id", optionalAuth, c.Organization.ReadOne)
	organizations.PUT("/:id", auth, c.Organization.Update)
	organizations.DELETE("/:id", auth, c.Organization.Delete)

	api.GET("/ownedOrganizations", auth, c.Organization.ReadManyOwned)

	affiliations := api.Group("/affiliations")
	affiliations.POST("", auth, c.Affiliation.Create)
	affiliations.GET("", auth, c.Affiliation.ReadMany)
	affiliations.PUT("/:id", auth, c.Affiliation.Approve)
	affiliations.DELETE("/:id", auth, c.Affiliation.Delete)

	opportunities := api.Group("/opportunities/codeWithUs")
	opportunities.POST("", auth, c.Opportunity.Create)
	opportunities.GET("", optionalAuth, c.Opportunity.ReadMany)
	opportunities.GET("/:id", optionalAuth, c.Opportunity.ReadOne)
	opportunities.PUT("/:id", auth, c.Opportunity.Update)
	opportunities.DELETE("/:id", auth, c.Opportunity.Delete)

	proposals := api.Group("/proposals/codeWithUs")
	proposals.POST("", auth, c.Proposal.Create)
	proposals.GET("", auth, c.Proposal.ReadMany)
	proposals.GET("/:id", auth, c.Proposal.ReadOne)
	proposals.PUT("/:id", auth, c.Proposal.Update)
	proposals.DELETE("/:id", auth, c.Proposal.Delete)
}

// Serve starts the HTTP server and blocks until it stops.
func (c *Controller) Serve(r *gin.Engine) error {
	srv := &http.Server{
		Addr:    c.config.AppHost + ":" + c.config.AppPort,
		Handler: r,
	}
	c.logger.Infof("Starting server on %s:%s", c.config.AppHost, c.config.AppPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
