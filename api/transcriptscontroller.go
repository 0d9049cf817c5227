package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ytscribe/youtube"
)

// RegisterTranscriptRoutes registers transcript resolution endpoints.
func (s *Server) RegisterTranscriptRoutes(r *gin.Engine) {
	g := r.Group("/api")
	g.POST("/transcripts", s.handleResolveTranscript)
}

// ResolveTranscriptRequest represents the incoming resolution request.
type ResolveTranscriptRequest struct {
	URL       string   `json:"url" binding:"required"`
	Languages []string `json:"languages"`
}

// ResolveTranscriptResponse represents a successful resolution.
type ResolveTranscriptResponse struct {
	VideoID   string                 `json:"video_id"`
	Language  string                 `json:"language"`
	Generated bool                   `json:"generated"`
	Text      string                 `json:"text"`
	CharCount int                    `json:"char_count"`
	RequestID string                 `json:"request_id"`
	Metadata  *youtube.VideoMetadata `json:"metadata,omitempty"`
}

// ErrorResponse represents a failed resolution.
type ErrorResponse struct {
	ErrorKind string `json:"error_kind"`
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

// handleResolveTranscript resolves one URL or video ID to a flattened transcript.
// POST /api/transcripts
// Expects: ResolveTranscriptRequest JSON in request body
// Returns: ResolveTranscriptResponse JSON, or ErrorResponse on failure
func (s *Server) handleResolveTranscript(c *gin.Context) {
	requestID := uuid.NewString()

	var req ResolveTranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			ErrorKind: youtube.KindInvalidInput.String(),
			Error:     "body must carry a url field",
			RequestID: requestID,
		})
		return
	}

	result, err := s.resolver.Resolve(c.Request.Context(), req.URL, req.Languages...)
	if err != nil {
		status, kind := statusForError(err)
		log.Printf("api: request %s failed (%s): %v", requestID, kind, err)
		c.JSON(status, ErrorResponse{
			ErrorKind: kind,
			Error:     err.Error(),
			RequestID: requestID,
		})
		return
	}

	resp := ResolveTranscriptResponse{
		VideoID:   result.VideoID,
		Language:  result.Language,
		Generated: result.Generated,
		Text:      result.Text,
		CharCount: result.CharCount,
		RequestID: requestID,
	}
	if s.metadata != nil {
		if meta, err := s.metadata.Lookup(c.Request.Context(), result.VideoID); err == nil {
			resp.Metadata = meta
		}
	}

	c.JSON(http.StatusOK, resp)
}

// statusForError maps resolution failures onto HTTP statuses: caller
// mistakes are 400, absent transcripts 404, backend refusal 429, and
// upstream trouble 502.
func statusForError(err error) (int, string) {
	var resErr *youtube.ResolutionError
	if !errors.As(err, &resErr) {
		return http.StatusInternalServerError, "internal-error"
	}

	switch resErr.Kind {
	case youtube.KindInvalidInput:
		return http.StatusBadRequest, resErr.Kind.String()
	case youtube.KindTranscriptsDisabled, youtube.KindVideoUnavailable, youtube.KindNoTranscript:
		return http.StatusNotFound, resErr.Kind.String()
	case youtube.KindRateLimited:
		return http.StatusTooManyRequests, resErr.Kind.String()
	case youtube.KindNetwork, youtube.KindFetchFailed:
		return http.StatusBadGateway, resErr.Kind.String()
	default:
		return http.StatusInternalServerError, resErr.Kind.String()
	}
}
