package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/storee/storee"
)

type storyResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

func toStoryResponse(st storee.Story) storyResponse {
	return storyResponse{
		ID:        st.ID,
		Title:     st.Title,
		Content:   st.Content,
		Date:      st.Date,
		CreatedAt: st.CreatedAt,
	}
}

type storyRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"` // YYYY-MM-DD
}

func (req storyRequest) validate() (time.Time, error) {
	if req.Title == "" || req.Content == "" {
		return time.Time{}, fmt.Errorf("title and content are required: %w", storee.ErrValidation)
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %w", storee.ErrValidation)
	}
	return date, nil
}

func (s *Server) handleStoryCreate(w http.ResponseWriter, r *http.Request) {
	var req storyRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	date, err := req.validate()
	if err != nil {
		s.writeError(w, err)
		return
	}

	story := storee.Story{
		ID:        s.newID(),
		Owner:     owner(r.Context()),
		Title:     req.Title,
		Content:   req.Content,
		Date:      date,
		CreatedAt: s.now(),
	}
	if err := s.stories.CreateStory(r.Context(), story); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toStoryResponse(story))
}

func (s *Server) handleStoryList(w http.ResponseWriter, r *http.Request) {
	stories, err := s.stories.Stories(r.Context(), owner(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]storyResponse, len(stories))
	for i, st := range stories {
		out[i] = toStoryResponse(st)
	}
	writeJSON(w, http.StatusOK, map[string]any{"stories": out})
}

func (s *Server) handleStoryGet(w http.ResponseWriter, r *http.Request) {
	story, err := s.stories.Story(r.Context(), r.PathValue("id"), owner(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStoryResponse(story))
}

func (s *Server) handleStoryUpdate(w http.ResponseWriter, r *http.Request) {
	var req storyRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	date, err := req.validate()
	if err != nil {
		s.writeError(w, err)
		return
	}

	updated, err := s.stories.UpdateStory(r.Context(), storee.Story{
		ID:      r.PathValue("id"),
		Owner:   owner(r.Context()),
		Title:   req.Title,
		Content: req.Content,
		Date:    date,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStoryResponse(updated))
}

func (s *Server) handleStoryDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.stories.DeleteStory(r.Context(), r.PathValue("id"), owner(r.Context())); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleStorySearch filters the owner's stories by a case-insensitive text
// match on title and content, and by an inclusive date range. All parameters
// are optional; with none the full list is returned.
func (s *Server) handleStorySearch(w http.ResponseWriter, r *http.Request) {
	dates, err := parseDateRange(r.URL.Query())
	if err != nil {
		s.writeError(w, err)
		return
	}
	query := strings.ToLower(r.URL.Query().Get("q"))

	stories, err := s.stories.Stories(r.Context(), owner(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]storyResponse, 0, len(stories))
	for _, st := range stories {
		if query != "" &&
			!strings.Contains(strings.ToLower(st.Title), query) &&
			!strings.Contains(strings.ToLower(st.Content), query) {
			continue
		}
		if !dates.contains(st.Date) {
			continue
		}
		out = append(out, toStoryResponse(st))
	}
	writeJSON(w, http.StatusOK, map[string]any{"stories": out})
}

// dateRange holds optional day-granularity bounds parsed from start_date and
// end_date query parameters.
type dateRange struct {
	start, end time.Time
}

func parseDateRange(q url.Values) (dateRange, error) {
	var r dateRange
	if v := q.Get("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return r, fmt.Errorf("start_date must be YYYY-MM-DD: %w", storee.ErrValidation)
		}
		r.start = t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return r, fmt.Errorf("end_date must be YYYY-MM-DD: %w", storee.ErrValidation)
		}
		r.end = t
	}
	return r, nil
}

// contains reports whether d falls inside the range, bounds inclusive, at
// day granularity.
func (r dateRange) contains(d time.Time) bool {
	day := d.UTC().Truncate(24 * time.Hour)
	if !r.start.IsZero() && day.Before(r.start) {
		return false
	}
	if !r.end.IsZero() && day.After(r.end) {
		return false
	}
	return true
}
