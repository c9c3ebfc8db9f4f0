package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkwell/internal/common"
	"inkwell/internal/wire"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize application with dependency injection
	log.Println("Initializing application...")
	app, err := wire.InitializeApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup HTTP router
	router := setupRouter(app)

	// Create HTTP server
	server := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", app.Config.Server.Host, app.Config.Server.Port),
		Handler:        router,
		ReadTimeout:    time.Duration(app.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(app.Config.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop the notification worker pool before the HTTP server so
	// in-flight publish events drain first
	if app.Notifications != nil {
		app.Notifications.Shutdown()
	}

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if app.Mongo != nil {
		if err := app.Mongo.Close(ctx); err != nil {
			log.Printf("MongoDB disconnect failed: %v", err)
		}
	}

	log.Println("Server gracefully stopped")
}

// setupRouter configures HTTP routes
func setupRouter(app *wire.Application) *mux.Router {
	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(loggingMiddleware)

	// Public media downloads live outside the API prefix so stored
	// URLs stay short
	router.HandleFunc("/media/{fileID}", app.MediaServer.ServeFile).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Public routes
	api.HandleFunc("/auth/register", app.UserHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", app.UserHandler.Login).Methods("POST")
	api.HandleFunc("/posts", app.BlogHandler.ListPosts).Methods("GET")
	api.HandleFunc("/posts/{id}", app.BlogHandler.GetPost).Methods("GET")
	api.HandleFunc("/contact", app.ContactHandler.SubmitMessage).Methods("POST")
	api.HandleFunc("/subscribe", app.ContactHandler.Subscribe).Methods("POST")
	api.HandleFunc("/unsubscribe", app.ContactHandler.Unsubscribe).Methods("POST")

	// Authenticated routes
	auth := api.NewRoute().Subrouter()
	auth.Use(common.AuthMiddleware)
	auth.HandleFunc("/auth/me", app.UserHandler.GetProfile).Methods("GET")
	auth.HandleFunc("/auth/me", app.UserHandler.UpdateProfile).Methods("PUT")
	auth.HandleFunc("/posts", app.BlogHandler.CreatePost).Methods("POST")
	auth.HandleFunc("/posts/{id}", app.BlogHandler.UpdatePost).Methods("PUT")
	auth.HandleFunc("/posts/{id}", app.BlogHandler.DeletePost).Methods("DELETE")
	auth.HandleFunc("/drafts", app.BlogHandler.ListDrafts).Methods("GET")
	auth.HandleFunc("/drafts", app.BlogHandler.SaveDraft).Methods("POST")
	auth.HandleFunc("/drafts/{id}", app.BlogHandler.GetDraft).Methods("GET")
	auth.HandleFunc("/drafts/{id}", app.BlogHandler.DeleteDraft).Methods("DELETE")
	auth.HandleFunc("/drafts/{id}/publish", app.BlogHandler.PublishDraft).Methods("POST")
	auth.HandleFunc("/media", app.MediaServer.Upload).Methods("POST")

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(common.AuthMiddleware)
	admin.Use(common.AdminMiddleware)
	admin.HandleFunc("/messages", app.ContactHandler.ListMessages).Methods("GET")
	admin.HandleFunc("/messages/{id}", app.ContactHandler.DeleteMessage).Methods("DELETE")
	admin.HandleFunc("/subscribers", app.ContactHandler.ListSubscribers).Methods("GET")

	return router
}

// corsMiddleware adds CORS headers
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// healthCheckHandler provides basic health check
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"inkwell"}`))
}
