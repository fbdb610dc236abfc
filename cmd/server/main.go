package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/missionconnect/missionconnect/internal/config"
	"github.com/missionconnect/missionconnect/internal/database"
	"github.com/missionconnect/missionconnect/internal/handlers"
	"github.com/missionconnect/missionconnect/internal/middleware"
	"github.com/missionconnect/missionconnect/internal/security"
	"github.com/missionconnect/missionconnect/internal/types"

	_ "github.com/missionconnect/missionconnect/docs/api" // Swagger docs
)

// @title MissionConnect API
// @version 1.0.0
// @description Contact, note, and visit tracking service for missionaries
// @contact.name API Support
// @contact.url https://github.com/missionconnect/missionconnect

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load .env when present; real deployments set the environment directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hasher := security.NewHasher(0)
	tokens := security.NewTokenProvider(cfg.JWTSecret, cfg.TokenTTL)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("missionconnect")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Root status route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "MissionConnect API is running",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"auth":     "/api/auth",
				"contacts": "/api/contacts",
				"visits":   "/api/visits",
			},
		})
	})

	// API routes under /api
	api := app.Group("/api")

	// Version negotiation
	api.Use(middleware.NegotiateVersion())

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db, Hasher: hasher, Tokens: tokens}
	contactHandler := &handlers.ContactHandler{DB: db}
	noteHandler := &handlers.NoteHandler{DB: db}
	visitHandler := &handlers.VisitHandler{DB: db}
	demoHandler := &handlers.DemoHandler{DB: db, DemoEmail: cfg.DemoEmail}

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Everything below requires a bearer token
	requireAuth := middleware.RequireAuth(tokens)

	contacts := api.Group("/contacts", requireAuth)
	contacts.Get("/", contactHandler.List)
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/:id", contactHandler.Get)
	contacts.Delete("/:id", contactHandler.Delete)
	contacts.Get("/:id/notes", noteHandler.List)
	contacts.Post("/:id/notes", noteHandler.Create)

	api.Delete("/notes/:id", requireAuth, noteHandler.Delete)

	visits := api.Group("/visits", requireAuth)
	visits.Post("/", visitHandler.Create)
	visits.Get("/", visitHandler.List)
	visits.Delete("/:id", visitHandler.Delete)

	demo := api.Group("/demo", requireAuth)
	demo.Post("/init", demoHandler.Init)
	demo.Delete("/clear", demoHandler.Clear)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
