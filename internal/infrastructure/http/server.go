// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle.
// Thin plumbing: handlers validate input, call usecases, serialize output.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/leanaid/leanaid-go/internal/domain/entities"
	"github.com/leanaid/leanaid-go/internal/domain/ports"
	"github.com/leanaid/leanaid-go/internal/domain/usecases"
)

// Server is the HTTP server for the suggestion API.
type Server struct {
	suggestUC *usecases.SuggestUseCase
	store     ports.ProofStore
	inference ports.InferenceService // may be nil, used for health reporting only
	logger    *zap.Logger
	addr      string
}

// NewServer creates a new HTTP server.
func NewServer(
	suggestUC *usecases.SuggestUseCase,
	store ports.ProofStore,
	inference ports.InferenceService,
	logger *zap.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		suggestUC: suggestUC,
		store:     store,
		inference: inference,
		logger:    logger,
		addr:      addr,
	}
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info("leanaid server starting", zap.String("addr", s.addr))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler assembles the route table with middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/suggestions", s.handleSuggestions)
	mux.HandleFunc("/api/parse", s.handleParse)
	mux.HandleFunc("/api/proofs", s.handleProofs)
	mux.HandleFunc("/api/proofs/", s.handleProofByID)
	mux.HandleFunc("/api/health", s.handleHealth)
	return corsMiddleware(s.loggingMiddleware(mux))
}

// handleSuggestions runs the suggestion pipeline for one request.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req entities.SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	suggestions, err := s.suggestUC.Suggest(r.Context(), req)
	if errors.Is(err, usecases.ErrEmptyProof) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("suggest failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "suggestion engine failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"suggestions": suggestions})
}

// handleParse returns the structured proof model for raw source.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Source string `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	writeJSON(w, http.StatusOK, s.suggestUC.Parse(req.Source))
}

// handleProofs covers the collection routes: list and create.
func (s *Server) handleProofs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		proofs, err := s.store.List(r.Context())
		if err != nil {
			s.logger.Error("listing proofs failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "listing proofs failed")
			return
		}
		if proofs == nil {
			proofs = []entities.Proof{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"proofs": proofs})

	case http.MethodPost:
		var proof entities.Proof
		if err := json.NewDecoder(r.Body).Decode(&proof); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(proof.Source) == "" {
			writeError(w, http.StatusBadRequest, "source is required")
			return
		}
		proof.ID = "" // ids are store-assigned
		if err := s.store.Create(r.Context(), &proof); err != nil {
			s.logger.Error("creating proof failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "creating proof failed")
			return
		}
		writeJSON(w, http.StatusCreated, proof)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleProofByID covers the item routes: get, update, delete.
func (s *Server) handleProofByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/proofs/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		proof, err := s.store.Get(r.Context(), id)
		if s.respondStoreError(w, err, "fetching proof") {
			return
		}
		writeJSON(w, http.StatusOK, proof)

	case http.MethodPut:
		var proof entities.Proof
		if err := json.NewDecoder(r.Body).Decode(&proof); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		proof.ID = id
		err := s.store.Update(r.Context(), &proof)
		if s.respondStoreError(w, err, "updating proof") {
			return
		}
		writeJSON(w, http.StatusOK, proof)

	case http.MethodDelete:
		err := s.store.Delete(r.Context(), id)
		if s.respondStoreError(w, err, "deleting proof") {
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleHealth reports server and inference backend status. It never fails:
// an unreachable backend is reported, not propagated.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	probeCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	ollama := false
	if s.inference != nil {
		ollama = s.inference.Available(probeCtx)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"ollama": ollama,
	})
}

func (s *Server) respondStoreError(w http.ResponseWriter, err error, action string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, http.StatusNotFound, "proof not found")
		return true
	}
	s.logger.Error(action+" failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, action+" failed")
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
