package http

import (
	"fmt"
	"html"
	"net/http"
	"strconv"
	"time"

	"github.com/storee/storee"
	"github.com/storee/storee/markdown"
)

type attachmentResponse struct {
	ID        string    `json:"id"`
	MemoryID  string    `json:"memory_id"`
	MediaType string    `json:"media_type"`
	Label     string    `json:"label,omitempty"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
}

type memoryResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Content     string               `json:"content"`
	Date        time.Time            `json:"date"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Attachments []attachmentResponse `json:"attachments,omitempty"`
}

func toMemoryResponse(m storee.Memory) memoryResponse {
	resp := memoryResponse{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		Date:      m.Date,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for _, a := range m.Attachments {
		resp.Attachments = append(resp.Attachments, attachmentResponse{
			ID:        a.ID,
			MemoryID:  a.MemoryID,
			MediaType: a.MediaType,
			Label:     a.Label,
			Key:       a.Key,
			CreatedAt: a.CreatedAt,
		})
	}
	return resp
}

type memoryRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    struct {
		Value       string `json:"value"`
		Type        string `json:"type"`
		Description string `json:"description"`
	} `json:"date"`
}

func (req memoryRequest) dateSpec() storee.DateSpec {
	return storee.DateSpec{
		Value:       req.Date.Value,
		Type:        storee.DateType(req.Date.Type),
		Description: req.Date.Description,
	}
}

func (s *Server) handleMemoryCreate(w http.ResponseWriter, r *http.Request) {
	var req memoryRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Title == "" || req.Content == "" {
		s.writeError(w, fmt.Errorf("title and content are required: %w", storee.ErrValidation))
		return
	}

	now := s.now()
	memory := storee.Memory{
		ID:        s.newID(),
		Owner:     owner(r.Context()),
		Title:     req.Title,
		Content:   req.Content,
		Date:      req.dateSpec().Resolve(now),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.memories.CreateMemory(r.Context(), memory); err != nil {
		s.writeError(w, err)
		return
	}
	if s.index != nil {
		// Best effort: search lags rather than blocking creation.
		_ = s.index.Index(r.Context(), memory)
	}
	writeJSON(w, http.StatusCreated, toMemoryResponse(memory))
}

func (s *Server) handleMemoryList(w http.ResponseWriter, r *http.Request) {
	memories, err := s.memories.Memories(r.Context(), owner(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]memoryResponse, len(memories))
	for i, m := range memories {
		out[i] = toMemoryResponse(m)
	}
	writeJSON(w, http.StatusOK, map[string]any{"memories": out})
}

func (s *Server) handleMemoryGet(w http.ResponseWriter, r *http.Request) {
	memory, err := s.loadMemoryWithAttachments(r, r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemoryResponse(memory))
}

func (s *Server) handleMemoryUpdate(w http.ResponseWriter, r *http.Request) {
	var req memoryRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Title == "" || req.Content == "" {
		s.writeError(w, fmt.Errorf("title and content are required: %w", storee.ErrValidation))
		return
	}

	ownerID := owner(r.Context())
	existing, err := s.memories.Memory(r.Context(), r.PathValue("id"), ownerID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	now := s.now()
	existing.Title = req.Title
	existing.Content = req.Content
	existing.Date = req.dateSpec().Resolve(now)
	existing.UpdatedAt = now

	updated, err := s.memories.UpdateMemory(r.Context(), existing)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if s.index != nil {
		_ = s.index.Index(r.Context(), updated)
	}
	writeJSON(w, http.StatusOK, toMemoryResponse(updated))
}

func (s *Server) handleMemoryDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ownerID := owner(r.Context())
	if err := s.memories.DeleteMemory(r.Context(), id, ownerID); err != nil {
		s.writeError(w, err)
		return
	}
	if s.index != nil {
		_ = s.index.Remove(r.Context(), id, ownerID)
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMemorySearch runs a semantic search when q is given, otherwise lists
// the owner's memories, and applies the optional start_date/end_date range
// either way.
func (s *Server) handleMemorySearch(w http.ResponseWriter, r *http.Request) {
	dates, err := parseDateRange(r.URL.Query())
	if err != nil {
		s.writeError(w, err)
		return
	}
	k := 10
	if v := r.URL.Query().Get("k"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, fmt.Errorf("k must be a positive integer: %w", storee.ErrValidation))
			return
		}
		k = n
	}

	var results []storee.SearchResult
	if query := r.URL.Query().Get("q"); query != "" {
		if s.index == nil {
			s.writeError(w, fmt.Errorf("search is not configured: %w", storee.ErrValidation))
			return
		}
		results, err = s.index.Search(r.Context(), owner(r.Context()), query, k)
		if err != nil {
			s.writeError(w, err)
			return
		}
	} else {
		memories, err := s.memories.Memories(r.Context(), owner(r.Context()))
		if err != nil {
			s.writeError(w, err)
			return
		}
		for _, m := range memories {
			results = append(results, storee.SearchResult{Memory: m})
		}
	}

	type searchHit struct {
		Memory memoryResponse `json:"memory"`
		Score  float32        `json:"score"`
	}
	hits := make([]searchHit, 0, len(results))
	for _, res := range results {
		if !dates.contains(res.Memory.Date) {
			continue
		}
		hits = append(hits, searchHit{Memory: toMemoryResponse(res.Memory), Score: res.Score})
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": hits})
}

// handleMemoryExport renders the memory as a standalone HTML page.
func (s *Server) handleMemoryExport(w http.ResponseWriter, r *http.Request) {
	memory, err := s.memories.Memory(r.Context(), r.PathValue("id"), owner(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}

	body, err := markdown.RenderHTML(memory.Content)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	title := html.EscapeString(memory.Title)
	fmt.Fprintf(w, exportTemplate, title, title, memory.Date.Format("January 2, 2006"), body)
}

const exportTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
<article>
<h1>%s</h1>
<p><time>%s</time></p>
%s
</article>
</body>
</html>
`

// loadMemoryWithAttachments loads a memory and, when a media store is
// configured, its attachment records.
func (s *Server) loadMemoryWithAttachments(r *http.Request, id string) (storee.Memory, error) {
	ownerID := owner(r.Context())
	memory, err := s.memories.Memory(r.Context(), id, ownerID)
	if err != nil {
		return storee.Memory{}, err
	}
	if s.media != nil {
		atts, err := s.media.MemoryAttachments(r.Context(), id, ownerID)
		if err != nil {
			return storee.Memory{}, err
		}
		memory.Attachments = atts
	}
	return memory, nil
}
