package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"familyconnect/internal/config"
	"familyconnect/internal/database"
	"familyconnect/internal/handlers"
	"familyconnect/internal/repository"
	"familyconnect/internal/security"
	"familyconnect/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	postRepo := repository.NewPostRepository(db)
	eventRepo := repository.NewEventRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(cfg.SESRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	uploadService, err := service.NewUploadService(cfg.UploadDir, cfg.UploadMaxSize)
	if err != nil {
		log.Fatalf("Failed to initialize upload service: %v", err)
	}

	userService := service.NewUserService(userRepo)
	familyService := service.NewFamilyService(familyRepo)
	postService := service.NewPostService(postRepo, familyRepo)
	eventService := service.NewEventService(eventRepo, familyRepo)
	newsletterService := service.NewNewsletterService(newsletterRepo, familyRepo, postRepo, emailService, cfg.AppBaseURL)

	// Initialize handlers
	limiter := security.NewRateLimiter(60, time.Minute)
	middleware := handlers.NewMiddleware(userService, cfg.JWTSecret)
	familyHandler := handlers.NewFamilyHandler(familyService)
	postHandler := handlers.NewPostHandler(postService)
	eventHandler := handlers.NewEventHandler(eventService)
	newsletterHandler := handlers.NewNewsletterHandler(newsletterService)
	userHandler := handlers.NewUserHandler(userService, uploadService)

	// Setup routes
	mux := http.NewServeMux()

	// Uploaded files
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Operational endpoints
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Family routes
	mux.HandleFunc("POST /api/families", middleware.RequireAuth(familyHandler.CreateFamily))
	mux.HandleFunc("GET /api/families", middleware.RequireAuth(familyHandler.ListFamilies))
	mux.HandleFunc("GET /api/families/{id}", middleware.RequireAuth(familyHandler.GetFamily))
	mux.HandleFunc("PUT /api/families/{id}", middleware.RequireAuth(familyHandler.UpdateFamily))
	mux.HandleFunc("GET /api/families/{id}/members", middleware.RequireAuth(familyHandler.ListMembers))

	// Membership routes
	mux.HandleFunc("POST /api/families/{id}/members", middleware.RequireAuth(familyHandler.JoinFamily))
	mux.HandleFunc("PUT /api/families/{familyId}/members/{memberId}/approve", middleware.RequireAuth(familyHandler.ApproveMember))
	mux.HandleFunc("PUT /api/families/{familyId}/members/{memberId}/role", middleware.RequireAuth(familyHandler.UpdateMemberRole))
	mux.HandleFunc("DELETE /api/families/{familyId}/members/{memberId}", middleware.RequireAuth(familyHandler.RemoveMember))

	// Post routes
	mux.HandleFunc("POST /api/families/{id}/posts", middleware.RequireAuth(postHandler.CreatePost))
	mux.HandleFunc("GET /api/families/{id}/posts", middleware.RequireAuth(postHandler.ListFamilyPosts))
	mux.HandleFunc("GET /api/user/posts", middleware.RequireAuth(postHandler.ListOwnPosts))
	mux.HandleFunc("GET /api/posts/{id}", middleware.RequireAuth(postHandler.GetPost))
	mux.HandleFunc("POST /api/posts/{id}/comments", middleware.RequireAuth(postHandler.AddComment))
	mux.HandleFunc("GET /api/posts/{id}/comments", middleware.RequireAuth(postHandler.ListComments))
	mux.HandleFunc("POST /api/posts/{id}/likes", middleware.RequireAuth(postHandler.LikePost))
	mux.HandleFunc("DELETE /api/posts/{id}/likes", middleware.RequireAuth(postHandler.UnlikePost))

	// Event routes
	mux.HandleFunc("POST /api/families/{id}/events", middleware.RequireAuth(eventHandler.CreateEvent))
	mux.HandleFunc("GET /api/events/{id}", middleware.RequireAuth(eventHandler.GetEvent))
	mux.HandleFunc("GET /api/families/{id}/events", middleware.RequireAuth(eventHandler.ListFamilyEvents))
	mux.HandleFunc("GET /api/families/{id}/upcoming-events", middleware.RequireAuth(eventHandler.ListUpcomingEvents))

	// Newsletter routes
	mux.HandleFunc("POST /api/families/{id}/newsletters", middleware.RequireAuth(newsletterHandler.CreateNewsletter))
	mux.HandleFunc("GET /api/families/{id}/newsletters", middleware.RequireAuth(newsletterHandler.ListFamilyNewsletters))
	mux.HandleFunc("GET /api/newsletters/{id}", middleware.RequireAuth(newsletterHandler.GetNewsletter))
	mux.HandleFunc("POST /api/newsletters/{id}/send", handlers.RateLimit(limiter, middleware.RequireAuth(newsletterHandler.SendNewsletter)))

	// User routes
	mux.HandleFunc("GET /api/auth/user", middleware.RequireAuth(userHandler.GetMe))
	mux.HandleFunc("PUT /api/user/profile", middleware.RequireAuth(userHandler.UpdateProfile))
	mux.HandleFunc("POST /api/upload", handlers.RateLimit(limiter, middleware.RequireAuth(userHandler.UploadImage)))

	// Wrap with CORS, metrics and logging middleware
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	handler := handlers.Logging(handlers.Metrics(corsMiddleware.Handler(mux)))

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
