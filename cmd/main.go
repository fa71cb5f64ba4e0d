package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"speedfriending/internal/clock"
	"speedfriending/internal/config"
	"speedfriending/internal/database"
	"speedfriending/internal/handlers"
	"speedfriending/internal/jobs"
	"speedfriending/internal/repository"
	"speedfriending/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repository
	repo := repository.NewRepository(database.GetDB())

	// Initialize services
	clk := clock.New()
	eventService := services.NewEventService(repo, cfg.App.JoinCodeLength, cfg.App.DefaultTimezone)
	participantService := services.NewParticipantService(repo)
	roundService := services.NewRoundService(repo, clk, cfg.App.RoundDuration())
	matchService := services.NewMatchService(repo)
	pairingStatusService := services.NewPairingStatusService(repo, matchService, clk)

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(eventService)
	participantHandler := handlers.NewParticipantHandler(participantService)
	roundHandler := handlers.NewRoundHandler(roundService)
	matchHandler := handlers.NewMatchHandler(matchService, pairingStatusService)

	// Start pairing sweeper job
	sweeper := jobs.NewPairingSweeper(repo, clk, cfg.App.SweepGrace())
	sweeper.Start(cfg.App.SweepInterval())
	log.Println("Pairing sweeper job started")

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173", // Vite dev server
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	// Add additional frontend URL from environment if provided
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// API routes
	api := router.Group("/api")
	{
		api.POST("/events", eventHandler.CreateEvent)
		api.POST("/events/:code/join", participantHandler.JoinEvent)
		api.GET("/events/:code/participants", participantHandler.ListParticipants)
		api.POST("/events/:code/rounds", roundHandler.StartRound)
		api.GET("/events/:code/match", matchHandler.MyMatch)
		api.POST("/events/:code/match/met", matchHandler.ReportMet)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
