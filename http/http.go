// Package http exposes the interview engine, memory stores and media
// pipeline over a JSON HTTP API. Handlers are thin: they authenticate,
// decode, call a domain component, and translate domain errors to status
// codes. All /api routes require a bearer token; the verified subject is the
// owner id for every store call.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/storee/storee"
	"github.com/storee/storee/interview"
)

// SignatureVerifier checks signed media URL parameters. Implemented by the
// fs blob store.
type SignatureVerifier interface {
	VerifySignature(key, expires, sig string) bool
}

// Config carries the server's collaborators. Verifier, Engine, Materializer,
// Sessions and Memories are required; the rest disable their routes when nil.
type Config struct {
	Logger       zerolog.Logger
	Verifier     *TokenVerifier
	Engine       *interview.Engine
	Materializer *interview.Materializer

	Sessions storee.SessionStore
	Memories storee.MemoryStore
	Stories  storee.StoryStore
	Media    storee.MediaStore

	Blobs          storee.BlobStore
	BlobSignatures SignatureVerifier
	Transcriber    storee.Transcriber
	Index          storee.MemoryIndex

	// Now and NewID override time and id generation. Useful for testing.
	Now   func() time.Time
	NewID func() string
}

// Server is the HTTP front end.
type Server struct {
	handler http.Handler
	logger  zerolog.Logger

	verifier     *TokenVerifier
	engine       *interview.Engine
	materializer *interview.Materializer

	sessions storee.SessionStore
	memories storee.MemoryStore
	stories  storee.StoryStore
	media    storee.MediaStore

	blobs       storee.BlobStore
	blobSigs    SignatureVerifier
	transcriber storee.Transcriber
	index       storee.MemoryIndex

	now   func() time.Time
	newID func() string
}

// NewServer builds the route table and middleware chain.
func NewServer(cfg Config) *Server {
	s := &Server{
		logger:       cfg.Logger,
		verifier:     cfg.Verifier,
		engine:       cfg.Engine,
		materializer: cfg.Materializer,
		sessions:     cfg.Sessions,
		memories:     cfg.Memories,
		stories:      cfg.Stories,
		media:        cfg.Media,
		blobs:        cfg.Blobs,
		blobSigs:     cfg.BlobSignatures,
		transcriber:  cfg.Transcriber,
		index:        cfg.Index,
		now:          cfg.Now,
		newID:        cfg.NewID,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/interview/start", s.authed(s.handleInterviewStart))
	mux.HandleFunc("GET /api/interview/sessions", s.authed(s.handleSessionList))
	mux.HandleFunc("GET /api/interview/{id}", s.authed(s.handleSessionGet))
	mux.HandleFunc("DELETE /api/interview/{id}", s.authed(s.handleSessionDelete))
	mux.HandleFunc("POST /api/interview/{id}/continue", s.authed(s.handleInterviewContinue))
	mux.HandleFunc("POST /api/interview/{id}/end", s.authed(s.handleInterviewEnd))
	mux.HandleFunc("POST /api/interview/{id}/suggest-title", s.authed(s.handleSuggestTitle))
	mux.HandleFunc("POST /api/interview/{id}/create-memory", s.authed(s.handleCreateMemoryFromSession))

	mux.HandleFunc("POST /api/memories", s.authed(s.handleMemoryCreate))
	mux.HandleFunc("GET /api/memories", s.authed(s.handleMemoryList))
	mux.HandleFunc("GET /api/memories/search", s.authed(s.handleMemorySearch))
	mux.HandleFunc("GET /api/memories/{id}", s.authed(s.handleMemoryGet))
	mux.HandleFunc("PUT /api/memories/{id}", s.authed(s.handleMemoryUpdate))
	mux.HandleFunc("DELETE /api/memories/{id}", s.authed(s.handleMemoryDelete))
	mux.HandleFunc("GET /api/memories/{id}/export", s.authed(s.handleMemoryExport))

	mux.HandleFunc("POST /api/stories", s.authed(s.handleStoryCreate))
	mux.HandleFunc("GET /api/stories", s.authed(s.handleStoryList))
	mux.HandleFunc("GET /api/stories/search", s.authed(s.handleStorySearch))
	mux.HandleFunc("GET /api/stories/{id}", s.authed(s.handleStoryGet))
	mux.HandleFunc("PUT /api/stories/{id}", s.authed(s.handleStoryUpdate))
	mux.HandleFunc("DELETE /api/stories/{id}", s.authed(s.handleStoryDelete))

	mux.HandleFunc("POST /api/media", s.authed(s.handleMediaUpload))
	mux.HandleFunc("GET /api/media/{id}", s.authed(s.handleMediaGet))
	mux.HandleFunc("DELETE /api/media/{id}", s.authed(s.handleMediaDelete))
	mux.HandleFunc("GET /media/{key...}", s.handleMediaServe)

	mux.HandleFunc("POST /api/transcription", s.authed(s.handleTranscription))

	s.handler = s.logged(mux)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

type ctxKey int

const ownerKey ctxKey = 0

// owner returns the authenticated owner id stored by the auth middleware.
func owner(ctx context.Context) string {
	v, _ := ctx.Value(ownerKey).(string)
	return v
}

// authed wraps a handler with bearer token verification and owner injection.
func (s *Server) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.verifier.Authenticate(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), ownerKey, claims.Subject)))
	}
}

// statusWriter records the response code for request logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (s *Server) logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

// writeError maps domain sentinel errors to status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("internal error")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, storee.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, storee.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storee.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, storee.ErrGateway):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON request body into v. An empty body leaves v at its
// zero value; field-level validation belongs to the domain layer.
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request body: %v: %w", err, storee.ErrValidation)
	}
	return nil
}
