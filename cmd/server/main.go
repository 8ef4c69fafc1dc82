package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/poll/live/internal/adapters/handler/http"
	"github.com/poll/live/internal/adapters/handler/ws"
	"github.com/poll/live/internal/adapters/repository/memory"
	"github.com/poll/live/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	port := getenv("PORT", "3000")
	adminPassword := getenv("ADMIN_PASSWORD", "071117")
	publicDir := getenv("PUBLIC_DIR", "public")
	uploadDir := getenv("UPLOAD_DIR", filepath.Join(publicDir, "uploads"))
	publicURL := os.Getenv("PUBLIC_URL")

	// Fixed at startup; a mismatch tells returning clients the poll state
	// they remember no longer exists.
	bootID := time.Now().UnixMilli()

	store := memory.NewStore(memory.DefaultOptions())
	tally := services.NewTallyService(store)
	catalog := services.NewCatalogService(store)
	identity := services.NewIdentityService(store)
	history := services.NewHistoryService(store)
	gate := services.NewSessionGate(adminPassword)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub(tally, catalog, identity, history, gate, bootID)
	go hub.Run(ctx)

	handler := http.NewHandler(
		ws.NewHandler(hub, publicURL),
		http.NewUploadHandler(uploadDir),
		publicDir,
	)
	server := &stdhttp.Server{Addr: "0.0.0.0:" + port, Handler: handler}

	go func() {
		log.Printf("Poll server listening on http://localhost:%s (boot id %d)", port, bootID)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
