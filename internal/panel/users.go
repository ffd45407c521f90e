package panel

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository"
)

type statusRequest struct {
	Status string `json:"status"`
}

// readStatus принимает статус из JSON или из формы
func readStatus(r *http.Request) (string, error) {
	var status string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req statusRequest
		if err := decodeJSON(r, &req); err != nil {
			return "", err
		}
		status = req.Status
	} else {
		status = r.FormValue("status")
	}

	if strings.TrimSpace(status) == "" {
		return "", fmt.Errorf("%w: status is required", errBadRequest)
	}
	return status, nil
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.fail(w, r, "list users", err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	ref, err := pathID(r)
	if err != nil {
		s.fail(w, r, "get user", err)
		return
	}

	user, err := s.users.Find(r.Context(), ref)
	if err != nil {
		s.fail(w, r, "get user", err)
		return
	}
	if user == nil {
		s.fail(w, r, "get user", repository.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	ref, err := pathID(r)
	if err != nil {
		s.fail(w, r, "update user", err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		s.fail(w, r, "update user", err)
		return
	}

	user, err := s.users.Update(r.Context(), ref, func(u *model.User) error {
		if err := applyPatch(body, u, &u.Extra); err != nil {
			return err
		}
		if !u.Status.Valid() {
			if !model.IsKnownStatus(string(u.Status)) {
				return fmt.Errorf("status %q: %w", u.Status, repository.ErrInvalidStatus)
			}
			u.Status = model.ParseFunnelStatus(string(u.Status))
		}
		return nil
	})
	if err != nil {
		s.fail(w, r, "update user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, "delete user", err)
		return
	}
	if err := s.users.Delete(r.Context(), id); err != nil {
		s.fail(w, r, "delete user", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUserStatus(w http.ResponseWriter, r *http.Request) {
	ref, err := pathID(r)
	if err != nil {
		s.fail(w, r, "user status", err)
		return
	}
	status, err := readStatus(r)
	if err != nil {
		s.fail(w, r, "user status", err)
		return
	}

	user, err := s.users.SetStatus(r.Context(), ref, status)
	if err != nil {
		s.fail(w, r, "user status", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUserConversations(w http.ResponseWriter, r *http.Request) {
	ref, err := pathID(r)
	if err != nil {
		s.fail(w, r, "user conversations", err)
		return
	}

	user, err := s.users.Find(r.Context(), ref)
	if err != nil {
		s.fail(w, r, "user conversations", err)
		return
	}
	if user == nil {
		s.fail(w, r, "user conversations", repository.ErrNotFound)
		return
	}

	conversations, err := s.users.Conversations(r.Context(), user.TelegramID)
	if err != nil {
		s.fail(w, r, "user conversations", err)
		return
	}
	writeJSON(w, http.StatusOK, conversations)
}
