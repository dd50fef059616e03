package http

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"time"

	"github.com/storee/storee"
)

// maxUploadBytes caps media and audio uploads at 32 MiB.
const maxUploadBytes = 32 << 20

// signedURLExpiry is how long media links handed to clients stay valid.
const signedURLExpiry = 15 * time.Minute

func (s *Server) handleMediaUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, fmt.Errorf("invalid multipart form: %v: %w", err, storee.ErrValidation))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, fmt.Errorf("file field is required: %w", storee.ErrValidation))
		return
	}
	defer file.Close()

	memoryID := r.FormValue("memory_id")
	mediaType := r.FormValue("media_type")
	if memoryID == "" {
		s.writeError(w, fmt.Errorf("memory_id is required: %w", storee.ErrValidation))
		return
	}
	if mediaType != "image" && mediaType != "audio" {
		s.writeError(w, fmt.Errorf("media_type must be image or audio: %w", storee.ErrValidation))
		return
	}

	ownerID := owner(r.Context())

	// The memory must exist and belong to the caller before bytes land
	// anywhere.
	if _, err := s.memories.Memory(r.Context(), memoryID, ownerID); err != nil {
		s.writeError(w, err)
		return
	}

	key := ownerID + "/" + s.newID() + path.Ext(header.Filename)
	if err := s.blobs.Put(r.Context(), key, file); err != nil {
		s.writeError(w, err)
		return
	}

	att := storee.MediaAttachment{
		ID:        s.newID(),
		MemoryID:  memoryID,
		Owner:     ownerID,
		MediaType: mediaType,
		Label:     r.FormValue("label"),
		Key:       key,
		CreatedAt: s.now(),
	}
	if err := s.media.CreateAttachment(r.Context(), att); err != nil {
		// Roll the blob back so storage does not leak orphans.
		_ = s.blobs.Delete(r.Context(), key)
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, attachmentResponse{
		ID:        att.ID,
		MemoryID:  att.MemoryID,
		MediaType: att.MediaType,
		Label:     att.Label,
		Key:       att.Key,
		CreatedAt: att.CreatedAt,
	})
}

func (s *Server) handleMediaGet(w http.ResponseWriter, r *http.Request) {
	att, err := s.media.Attachment(r.Context(), r.PathValue("id"), owner(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}

	url, err := s.blobs.SignedURL(r.Context(), att.Key, signedURLExpiry)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		attachmentResponse
		URL string `json:"url"`
	}{
		attachmentResponse: attachmentResponse{
			ID:        att.ID,
			MemoryID:  att.MemoryID,
			MediaType: att.MediaType,
			Label:     att.Label,
			Key:       att.Key,
			CreatedAt: att.CreatedAt,
		},
		URL: url,
	})
}

func (s *Server) handleMediaDelete(w http.ResponseWriter, r *http.Request) {
	ownerID := owner(r.Context())
	att, err := s.media.Attachment(r.Context(), r.PathValue("id"), ownerID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.media.DeleteAttachment(r.Context(), att.ID, ownerID); err != nil {
		s.writeError(w, err)
		return
	}
	// The record is gone; a blob delete failure only leaves garbage.
	_ = s.blobs.Delete(r.Context(), att.Key)
	w.WriteHeader(http.StatusNoContent)
}

// handleMediaServe streams a blob referenced by a signed URL. This is the one
// route that skips bearer auth: possession of a valid signature is the
// credential.
func (s *Server) handleMediaServe(w http.ResponseWriter, r *http.Request) {
	if s.blobSigs == nil || s.blobs == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "media serving is not configured"})
		return
	}

	key := r.PathValue("key")
	q := r.URL.Query()
	if !s.blobSigs.VerifySignature(key, q.Get("expires"), q.Get("sig")) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired signature"})
		return
	}

	blob, err := s.blobs.Get(r.Context(), key)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer blob.Close()

	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	_, _ = io.Copy(w, blob)
}

func (s *Server) handleTranscription(w http.ResponseWriter, r *http.Request) {
	if s.transcriber == nil {
		s.writeError(w, fmt.Errorf("transcription is not configured: %w", storee.ErrValidation))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, fmt.Errorf("invalid multipart form: %v: %w", err, storee.ErrValidation))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, fmt.Errorf("file field is required: %w", storee.ErrValidation))
		return
	}
	defer file.Close()

	text, err := s.transcriber.Transcribe(r.Context(), file, header.Filename)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}
