package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"atm-service/internal/bank"
	"atm-service/internal/config"
	"atm-service/internal/handler"
)

// Server exposes the bank service over HTTP
type Server struct {
	router *mux.Router
	server *http.Server
	bank   *bank.Service
	logger *slog.Logger
	port   string
}

// NewServer creates a new server instance backed by the given bank
func NewServer(bankService *bank.Service, logger *slog.Logger) *Server {
	bankHandler := handler.NewBankHandler(bankService)

	// Setup router
	router := mux.NewRouter()

	// Add middleware for logging
	router.Use(loggingMiddleware(logger))

	// Session routes
	router.HandleFunc("/login", bankHandler.Login).Methods("POST")

	// Account routes
	router.HandleFunc("/accounts/{account_number}/balance", bankHandler.Balance).Methods("GET")
	router.HandleFunc("/accounts/{account_number}/deposits", bankHandler.Deposit).Methods("POST")
	router.HandleFunc("/accounts/{account_number}/withdrawals", bankHandler.Withdraw).Methods("POST")
	router.HandleFunc("/accounts/{account_number}/transactions", bankHandler.Transactions).Methods("GET")

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	return &Server{
		router: router,
		bank:   bankService,
		logger: logger,
	}
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create response wrapper to capture status code
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration", time.Since(start),
				"user_agent", r.UserAgent(),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port string) (string, error) {
	// Create listener first to get actual port
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return "", err
	}

	// Get the actual port being used
	addr := listener.Addr().(*net.TCPAddr)
	s.port = strconv.Itoa(addr.Port)

	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server", "port", s.port)

	// Start server in background
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Server failed", "error", err)
		}
	}()

	return s.port, nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// GetPort returns the port the server is listening on
func (s *Server) GetPort() string {
	return s.port
}

// GetBaseURL returns the base URL for the server
func (s *Server) GetBaseURL() string {
	return "http://localhost:" + s.port
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *mux.Router {
	return s.router
}

// StartServer builds a bank from the configuration and serves it
func StartServer(cfg *config.Config) (*Server, string, error) {
	// Use io.Discard for the ephemeral-port test environment
	var logger *slog.Logger
	if cfg.Server.Port == "0" {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}

	bankService := bank.NewService(logger)
	if cfg.Seed.Enabled {
		if err := bank.SeedDemoData(bankService); err != nil {
			return nil, "", err
		}
	}

	serverInstance := NewServer(bankService, logger)

	port, err := serverInstance.Start(cfg.Server.Port)
	if err != nil {
		return nil, "", err
	}

	return serverInstance, port, nil
}
