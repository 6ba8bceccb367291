package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ytgov/digital-marketplace/controller"
	"github.com/ytgov/digital-marketplace/dal"
	"github.com/ytgov/digital-marketplace/middleware"
	"github.com/ytgov/digital-marketplace/repository"
	"github.com/ytgov/digital-marketplace/services"
	"github.com/ytgov/digital-marketplace/utils"
	"github.com/ytgov/digital-marketplace/utils/logger"
	"github.com/ytgov/digital-marketplace/worker"
)

func main() {
	config, err := utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}

	logg := logger.NewLogger(config.LogLevel, config.LogFormat)
	logg.Infof("Starting %s %s (%s)", config.AppName, config.AppVersion, config.AppEnv)

	ctx := context.Background()

	dbclient, err := dal.NewDynamoDBClient(config, logg)
	if err != nil {
		logg.Fatalf("Failed to initialize DynamoDB client: %v", err)
	}

	if err := worker.EnsureTables(ctx, dbclient, config, logg); err != nil {
		logg.Fatalf("Failed to ensure tables: %v", err)
	}

	repo := repository.NewRepository(dbclient, config, logg)
	service := services.NewService(repo, logg)

	if config.WorkerEnabled {
		w := worker.NewWorker(config, logg, dbclient, service.Opportunity)
		if err := w.Start(); err != nil {
			logg.Fatalf("Failed to start worker: %v", err)
		}
		defer w.Stop()
	}

	jwtManager := middleware.NewJWTManager(config, logg, repo.User)
	c := controller.NewController(config, logg, service, jwtManager)

	r := gin.New()
	logging := middleware.NewLoggingMiddleware(logg)
	r.Use(logging.Recovery())
	r.Use(logging.StructuredLogger())
	r.Use(middleware.CORS(config))

	c.RegisterRoutes(r, config.BasePath)

	if err := c.Serve(r); err != nil {
		logg.Fatalf("Server stopped: %v", err)
	}
}
