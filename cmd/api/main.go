package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/cv-ranker/internal/config"
	"alfredoptarigan/cv-ranker/internal/handlers"
	"alfredoptarigan/cv-ranker/internal/logging"
	"alfredoptarigan/cv-ranker/internal/middleware"
	"alfredoptarigan/cv-ranker/internal/repositories"
	"alfredoptarigan/cv-ranker/internal/services"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	appLog := logging.New(cfg.Server.LogLevel)
	defer func() { _ = appLog.Sync() }()

	db, err := config.InitDatabase(cfg, appLog)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	jdRepo := repositories.NewJobDescriptionRepository(db)
	cvRepo := repositories.NewCVRepository(db)
	userRepo := repositories.NewUserRepository(db)

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("failed to create upload directory: %v", err)
	}

	matcher, err := services.NewMatcher(cfg.Matching.Strategy)
	if err != nil {
		log.Fatalf("invalid MATCH_STRATEGY: %v", err)
	}

	stopwords := services.NewStopwords(services.DefaultStopwords())
	rankerLog := appLog.With("component", "ranker")

	rankerService := services.NewRankerService(
		jdRepo,
		cvRepo,
		storageService,
		services.NewTextExtractor(cfg.Storage.ReadTimeout, rankerLog),
		services.NewSkillExtractor(services.NewProseTagger(), stopwords),
		services.NewCandidateExtractor(),
		services.NewScorer(stopwords, matcher),
		services.NewWorker(cfg.Worker.Concurrency, rankerLog),
		rankerLog,
	)
	appLog.Info("services initialized",
		"match_strategy", matcher.Name(),
		"worker_concurrency", cfg.Worker.Concurrency,
		"read_timeout", cfg.Storage.ReadTimeout.String(),
	)

	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authMiddleware := middleware.NewAuth(cfg.Auth.Keys, authService)

	httpLog := appLog.With("component", "http")
	userHandler := handlers.NewUserHandler(authService)
	rankHandler := handlers.NewRankHandler(rankerService)
	cvHandler := handlers.NewCVHandler(cvRepo, storageService, cfg.Storage.MaxFileSize, httpLog)
	jdHandler := handlers.NewJobDescriptionHandler(jdRepo, storageService, cfg.Storage.MaxFileSize, httpLog)

	app := fiber.New(fiber.Config{
		AppName:      "CV Ranker API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 10,
		ErrorHandler: customErrorHandler(httpLog),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// stored CVs hold personal data, so downloads need the same credentials
	app.Use("/uploads", authMiddleware)
	app.Static("/uploads", cfg.Storage.UploadPath)

	api := app.Group("/api/v1", authMiddleware)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	userRoutes := api.Group("/users")
	userRoutes.Post("/register", userHandler.HandleRegister)
	userRoutes.Post("/login", userHandler.HandleLogin)
	userRoutes.Get("/profile", userHandler.HandleProfile)

	api.Get("/rank-cvs", rankHandler.HandleRank)

	cvRoutes := api.Group("/cv")
	cvRoutes.Post("/upload-cv", cvHandler.HandleUpload)
	cvRoutes.Get("/all", cvHandler.HandleList)
	cvRoutes.Delete("/delete-all", cvHandler.HandleDeleteAll)

	jdRoutes := api.Group("/jobDescription")
	jdRoutes.Post("/jd", jdHandler.HandleCreate)
	jdRoutes.Get("/jd", jdHandler.HandleList)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CV Ranker API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/users/register",
				"POST /api/v1/users/login",
				"GET /api/v1/users/profile",
				"GET /api/v1/rank-cvs",
				"POST /api/v1/cv/upload-cv",
				"GET /api/v1/cv/all",
				"DELETE /api/v1/cv/delete-all",
				"POST /api/v1/jobDescription/jd",
				"GET /api/v1/jobDescription/jd",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		appLog.Info("shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			appLog.Error("server forced to shutdown", "err", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	appLog.Info("server starting", "addr", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func customErrorHandler(log *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("request failed", "method", c.Method(), "path", c.Path(), "err", err)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  code,
		})
	}
}
