package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"momentmap/backend/internal/api/handler"
	"momentmap/backend/internal/bubblehub"
	"momentmap/backend/internal/config"
	"momentmap/backend/internal/storage"
)

func main() {
	log.Println("Starting MomentMap Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded")
	}

	// 1. In-memory state owners. Everything is volatile and lost on
	// restart; there is deliberately no database behind this service.
	bubbles := storage.NewBubbleStore()
	users := storage.NewUserDirectory()

	// 2. Realtime hub and the expiry sweeper.
	hub := bubblehub.NewManagerService()
	sweeper := storage.NewSweeper(bubbles, config.SweepInterval)

	go hub.Run()
	go sweeper.Run()
	defer sweeper.Stop()

	// 3. Gin router.
	r := gin.Default()
	r.Use(cors.Default())

	h := handler.NewHandler(hub, bubbles, users)

	r.POST("/api/auth/login", h.Login)
	r.POST("/api/bubbles", h.PostBubble)
	r.GET("/api/bubbles", h.ListBubbles)
	r.DELETE("/api/bubbles/:id", h.DeleteBubble)
	r.GET("/ws", h.ServeWebSocket)

	// The map client itself.
	r.Static("/public", config.StaticDir)

	server := &http.Server{
		Addr:           config.ServerAddr(),
		Handler:        r,
		ReadTimeout:    config.ReadTimeout,
		WriteTimeout:   config.WriteTimeout,
		MaxHeaderBytes: config.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	log.Println("server stopped")
}
