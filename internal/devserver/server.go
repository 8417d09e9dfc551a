// Package devserver serves the Billed bills REST API from the in-memory
// store, for local development and integration tests. It is an emulator for
// the remote document store, not a persistence implementation: nothing it
// holds survives a restart.
package devserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/billed-app/billed/internal/auth"
	"github.com/billed-app/billed/internal/models"
	"github.com/billed-app/billed/internal/store"
	"github.com/billed-app/billed/internal/store/memstore"
)

// maxUploadBytes caps receipt uploads.
const maxUploadBytes = 10 << 20

// Server handles the bills API.
type Server struct {
	store *memstore.Store
	jwt   *auth.JWTManager
}

// New creates a server over the given store. The JWT manager must share its
// secret with the store's login tokens.
func New(st *memstore.Store, jwtManager *auth.JWTManager) *Server {
	return &Server{store: st, jwt: jwtManager}
}

// Handler returns the full middleware-wrapped API handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /bills", s.requireAuth(s.handleList))
	mux.HandleFunc("POST /bills", s.requireAuth(s.handleUpload))
	mux.HandleFunc("PATCH /bills/{id}", s.requireAuth(s.handleFinalize))
	mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(corsMiddleware(mux))
}

// requireAuth validates the Bearer token before letting the request through.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
			return
		}
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, auth.ErrInvalidToken.Error(), http.StatusUnauthorized)
			return
		}
		if _, err := s.jwt.Validate(parts[1]); err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "invalid login payload", http.StatusBadRequest)
		return
	}

	token, err := s.store.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		slog.Warn("login rejected", "email", creds.Email)
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"jwt": token})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	bills, err := s.store.Bills().List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "failed to parse multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file part", http.StatusBadRequest)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read file", http.StatusBadRequest)
		return
	}

	upload, err := s.store.Bills().UploadReceipt(r.Context(), store.Receipt{
		FileName: header.Filename,
		Content:  content,
		Email:    r.FormValue("email"),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	slog.Info("receipt uploaded", "file", header.Filename, "key", upload.Key)
	writeJSON(w, http.StatusCreated, upload)
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	var bill models.Bill
	if err := json.NewDecoder(r.Body).Decode(&bill); err != nil {
		http.Error(w, "invalid bill payload", http.StatusBadRequest)
		return
	}
	bill.ID = r.PathValue("id")

	stored, err := s.store.Bills().FinalizeBill(r.Context(), bill)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	slog.Info("bill finalized", "bill_id", stored.ID, "status", stored.Status)
	writeJSON(w, http.StatusOK, stored)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// loggingMiddleware logs all incoming requests.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
