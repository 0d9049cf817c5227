// Package api exposes transcript resolution as a JSON HTTP service.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ytscribe/youtube"
)

// Resolver is the resolution surface the API depends on.
type Resolver interface {
	Resolve(ctx context.Context, input string, languages ...string) (*youtube.Transcript, error)
}

// Server handles HTTP API requests for transcript resolution.
type Server struct {
	resolver Resolver
	metadata *youtube.MetadataClient
}

// NewServer creates a new API server instance. metadata may be nil; it
// only enriches successful responses and is never required.
func NewServer(resolver Resolver, metadata *youtube.MetadataClient) *Server {
	return &Server{
		resolver: resolver,
		metadata: metadata,
	}
}

// NewRouter constructs a Gin engine with registered routes.
func (s *Server) NewRouter() *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	s.RegisterTranscriptRoutes(r)
	s.RegisterHealthRoutes(r)
	return r
}

// RegisterHealthRoutes registers liveness endpoints.
func (s *Server) RegisterHealthRoutes(r *gin.Engine) {
	g := r.Group("/api")
	g.GET("/health", s.handleHealth)
}

// handleHealth reports service liveness.
// GET /api/health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
