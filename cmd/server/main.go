package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"justfit/tracker/internal/api"
	"justfit/tracker/internal/config"
	"justfit/tracker/internal/identity"
	"justfit/tracker/internal/repository/mongo"
	"justfit/tracker/internal/service"
)

func main() {
	log.Println("Starting JustFit tracker server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	if cfg.Identity.ProjectID == "" {
		log.Fatalf("FATAL: identity.project_id is required")
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureActivityIndexes(ctx, appDB.Collection("activities"))
		mongo.EnsureGoalIndexes(ctx, appDB.Collection("goals"))
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Repositories ---
	activityRepo := mongo.NewMongoActivityRepository(appDB)
	goalRepo := mongo.NewMongoGoalRepository(appDB)
	userRepo := mongo.NewMongoUserRepository(appDB)

	// --- Initialize Services ---
	activityService := service.NewActivityService(activityRepo)
	goalService := service.NewGoalService(goalRepo)
	userService := service.NewUserService(userRepo)

	// --- Identity Verifier ---
	verifier := identity.NewGoogleVerifier(cfg.Identity.ProjectID, cfg.Identity.CertsURL)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, verifier, activityService, goalService, userService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()
	log.Printf("Server listening on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
