// Command billed-devserver runs the bills REST API over the in-memory store,
// so the client can be exercised without a remote document store.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/billed-app/billed/internal/auth"
	"github.com/billed-app/billed/internal/devserver"
	"github.com/billed-app/billed/internal/store/memstore"
	"github.com/billed-app/billed/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	port := getEnv("PORT", "8080")
	secret := getEnv("BILLED_JWT_SECRET", "billed-dev-secret")

	jwtManager := auth.NewJWTManager(secret, 24*time.Hour)
	store := memstore.New(jwtManager)
	handler := devserver.New(store, jwtManager).Handler()

	// h2c allows HTTP/2 without TLS for local clients.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := ":" + port
	slog.Info("dev server starting", "address", addr, "url", "http://localhost"+addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
