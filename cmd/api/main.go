package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"nft-market/adapters"
	"nft-market/extractor"
	"nft-market/internal/config"
	"nft-market/internal/types"
	"nft-market/utils"
)

// APIRequest represents the request body for the API
type APIRequest struct {
	Marketplace string `json:"marketplace"`
	ID          string `json:"id"`
}

// APIResponse represents the response from the API
type APIResponse struct {
	Success bool                    `json:"success"`
	Data    *types.CollectionRecord `json:"data,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

// Fetcher is the part of the retriever the server uses
type Fetcher interface {
	Fetch(ctx context.Context, market types.Marketplace, id string) (types.CollectionRecord, error)
}

// Server holds the API server configuration
type Server struct {
	logger  types.Logger
	config  *types.Config
	fetcher Fetcher
	table   *adapters.Table
}

// NewServer creates a new API server
func NewServer(cfg *types.Config, logger types.Logger, fetcher Fetcher) *Server {
	return &Server{
		logger:  logger,
		config:  cfg,
		fetcher: fetcher,
		table:   adapters.DefaultTable(),
	}
}

// handleFetch handles the fetch API endpoint
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	// Handle preflight requests
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req APIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	market, err := types.ParseMarketplace(req.Marketplace)
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		s.sendError(w, "No collection id provided", http.StatusBadRequest)
		return
	}

	s.logger.Infof("API request received for %s/%s", market, id)

	// Budget for every retry plus its page loads
	budget := time.Duration(s.config.MaxRetries+1) * (s.config.Timeout + s.config.SettleWait + s.config.RetryDelay)
	ctx, cancel := context.WithTimeout(r.Context(), budget)
	defer cancel()

	record, err := s.fetcher.Fetch(ctx, market, id)
	if err != nil {
		var unsupported *types.UnsupportedMarketplaceError
		if errors.As(err, &unsupported) {
			s.sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.logger.Warnf("Failed to fetch %s/%s: %v", market, id, err)
		s.sendError(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(APIResponse{Success: true, Data: &record}); err != nil {
		s.logger.Errorf("Failed to encode response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	response := APIResponse{
		Success: false,
		Error:   message,
	}

	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Errorf("Failed to encode error response: %v", err)
	}
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// handleMarkets lists the registered marketplaces
func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	type market struct {
		Name       types.Marketplace `json:"name"`
		Explorer   bool              `json:"explorer"`
		Deprecated bool              `json:"deprecated"`
		Successor  types.Marketplace `json:"successor,omitempty"`
	}

	var markets []market
	for _, m := range s.table.Marketplaces() {
		strategy, err := s.table.Resolve(m)
		if err != nil {
			continue
		}
		markets = append(markets, market{
			Name:       m,
			Explorer:   strategy.Explorer,
			Deprecated: strategy.Deprecated,
			Successor:  strategy.Successor,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(markets)
}

// Routes returns the server's handler
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/fetch", s.handleFetch)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/markets", s.handleMarkets)
	return mux
}

// Start starts the API server
func (s *Server) Start(port string) error {
	s.logger.Infof("Starting API server on port %s", port)
	s.logger.Info("Available endpoints:")
	s.logger.Info("  POST /fetch   - Fetch statistics for one collection")
	s.logger.Info("  GET  /markets - List supported marketplaces")
	s.logger.Info("  GET  /health  - Health check")

	return http.ListenAndServe(":"+port, s.Routes())
}

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	serverPort := "8080"
	if envPort := os.Getenv("API_PORT"); envPort != "" {
		serverPort = envPort
		fmt.Printf("Using port from environment variable API_PORT: %s\n", serverPort)
	} else {
		fmt.Printf("No API_PORT environment variable found, using default: %s\n", serverPort)
	}

	cfg, err := config.Load(os.Getenv("NFTMARKET_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal(err)
	}

	var logger *logrus.Logger
	if logger, err = config.NewLogger(cfg, os.Stderr); err != nil {
		log.Fatal(err)
	}

	opener, err := utils.NewPageOpener(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	if c, ok := opener.(interface{ Close() }); ok {
		defer c.Close()
	}

	server := NewServer(cfg, logger, extractor.NewRetriever(cfg, logger, opener))

	log.Printf("Starting API server on port %s", serverPort)
	log.Fatal(server.Start(serverPort))
}
