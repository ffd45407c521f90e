package panel

import (
	"net/http"
)

type promptRequest struct {
	SystemPrompt string `json:"system_prompt"`
}

type promptResponse struct {
	SystemPrompt string `json:"system_prompt"`
	Custom       bool   `json:"custom"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.crm.Statistics(r.Context())
	if err != nil {
		s.fail(w, r, "stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleKanban(w http.ResponseWriter, r *http.Request) {
	columns, err := s.crm.Kanban(r.Context())
	if err != nil {
		s.fail(w, r, "kanban", err)
		return
	}
	writeJSON(w, http.StatusOK, columns)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := s.crm.Analytics(r.Context())
	if err != nil {
		s.fail(w, r, "analytics", err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultConversationsLimit)

	conversations, err := s.crm.RecentConversations(r.Context(), limit)
	if err != nil {
		s.fail(w, r, "conversations", err)
		return
	}
	writeJSON(w, http.StatusOK, conversations)
}

func (s *Server) handleGetPrompt(w http.ResponseWriter, r *http.Request) {
	prompt, err := s.crm.SystemPrompt(r.Context())
	if err != nil {
		s.fail(w, r, "get prompt", err)
		return
	}
	writeJSON(w, http.StatusOK, promptResponse{SystemPrompt: prompt, Custom: prompt != ""})
}

// handleSetPrompt сохраняет промпт ассистента; пустая строка возвращает встроенный
func (s *Server) handleSetPrompt(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, "set prompt", err)
		return
	}

	if err := s.crm.SetSystemPrompt(r.Context(), req.SystemPrompt); err != nil {
		s.fail(w, r, "set prompt", err)
		return
	}
	writeJSON(w, http.StatusOK, promptResponse{SystemPrompt: req.SystemPrompt, Custom: req.SystemPrompt != ""})
}
