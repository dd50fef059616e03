package http

import (
	"net/http"
	"time"

	"github.com/storee/storee"
	"github.com/storee/storee/interview"
)

type turnResponse struct {
	Speaker string    `json:"speaker"`
	Text    string    `json:"text"`
	At      time.Time `json:"at"`
}

type sessionResponse struct {
	ID              string         `json:"id"`
	Status          string         `json:"status"`
	Turns           []turnResponse `json:"turns"`
	CurrentQuestion string         `json:"current_question,omitempty"`
	InitialContext  string         `json:"initial_context,omitempty"`
	Summary         string         `json:"summary,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	LastUpdatedAt   time.Time      `json:"last_updated_at"`
	EndedAt         *time.Time     `json:"ended_at,omitempty"`
}

func toSessionResponse(s storee.Session) sessionResponse {
	resp := sessionResponse{
		ID:              s.ID,
		Status:          string(s.Status),
		Turns:           make([]turnResponse, len(s.Turns)),
		CurrentQuestion: s.CurrentQuestion,
		InitialContext:  s.InitialContext,
		Summary:         s.Summary,
		CreatedAt:       s.CreatedAt,
		LastUpdatedAt:   s.LastUpdatedAt,
	}
	for i, t := range s.Turns {
		resp.Turns[i] = turnResponse{Speaker: string(t.Speaker), Text: t.Text, At: t.At}
	}
	if !s.EndedAt.IsZero() {
		endedAt := s.EndedAt
		resp.EndedAt = &endedAt
	}
	return resp
}

func (s *Server) handleInterviewStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InitialContext string `json:"initial_context"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	session, err := s.engine.Start(owner(r.Context()), req.InitialContext)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.sessions.CreateSession(r.Context(), session); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

func (s *Server) handleInterviewContinue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reply string `json:"reply"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	session, err := s.sessions.Session(r.Context(), r.PathValue("id"), owner(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	session, err = s.engine.Continue(r.Context(), session, req.Reply)
	if err != nil {
		s.writeError(w, err)
		return
	}

	session, err = s.sessions.UpdateSession(r.Context(), session.ID, session.Owner, storee.SessionUpdate{
		Turns:           session.Turns,
		CurrentQuestion: &session.CurrentQuestion,
		LastUpdatedAt:   &session.LastUpdatedAt,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

func (s *Server) handleInterviewEnd(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Session(r.Context(), r.PathValue("id"), owner(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	session, err = s.engine.End(r.Context(), session)
	if err != nil {
		s.writeError(w, err)
		return
	}

	session, err = s.sessions.UpdateSession(r.Context(), session.ID, session.Owner, storee.SessionUpdate{
		Summary:       &session.Summary,
		EndedAt:       &session.EndedAt,
		LastUpdatedAt: &session.LastUpdatedAt,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

func (s *Server) handleSuggestTitle(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Session(r.Context(), r.PathValue("id"), owner(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	title := s.engine.SuggestTitle(r.Context(), session.Turns)
	writeJSON(w, http.StatusOK, map[string]string{"title": title})
}

func (s *Server) handleCreateMemoryFromSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Date    struct {
			Value       string `json:"value"`
			Type        string `json:"type"`
			Description string `json:"description"`
		} `json:"date"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	memory, err := s.materializer.CreateMemory(r.Context(), owner(r.Context()), interview.MemoryDraft{
		SessionID: r.PathValue("id"),
		Title:     req.Title,
		Content:   req.Content,
		Date: storee.DateSpec{
			Value:       req.Date.Value,
			Type:        storee.DateType(req.Date.Type),
			Description: req.Date.Description,
		},
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMemoryResponse(memory))
}

func (s *Server) handleSessionList(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.sessions.Sessions(r.Context(), owner(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]sessionResponse, len(sessions))
	for i, session := range sessions {
		out[i] = toSessionResponse(session)
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": out})
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Session(r.Context(), r.PathValue("id"), owner(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.DeleteSession(r.Context(), r.PathValue("id"), owner(r.Context())); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
