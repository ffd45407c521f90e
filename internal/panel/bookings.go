package panel

import (
	"fmt"
	"net/http"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository"
	"github.com/bonuseducation/crm_bot/internal/service"
	"go.uber.org/zap"
)

type statusResponse struct {
	Success bool                 `json:"success"`
	Target  service.StatusTarget `json:"target"`
	Status  model.FunnelStatus   `json:"status"`
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.bookings.List(r.Context())
	if err != nil {
		s.fail(w, r, "list bookings", err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) handleRecentBookings(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultRecentLimit)

	bookings, err := s.bookings.Recent(r.Context(), limit)
	if err != nil {
		s.fail(w, r, "recent bookings", err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, "get booking", err)
		return
	}

	booking, err := s.bookings.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, "get booking", err)
		return
	}
	if booking == nil {
		s.fail(w, r, "get booking", repository.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleUpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, "update booking", err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		s.fail(w, r, "update booking", err)
		return
	}

	booking, err := s.bookings.Update(r.Context(), id, func(b *model.Booking) error {
		if err := applyPatch(body, b, &b.Extra); err != nil {
			return err
		}
		if !b.Status.Valid() {
			if !model.IsKnownStatus(string(b.Status)) {
				return fmt.Errorf("status %q: %w", b.Status, repository.ErrInvalidStatus)
			}
			b.Status = model.ParseFunnelStatus(string(b.Status))
		}
		return nil
	})
	if err != nil {
		s.fail(w, r, "update booking", err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, "delete booking", err)
		return
	}
	if err := s.bookings.Delete(r.Context(), id); err != nil {
		s.fail(w, r, "delete booking", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleBookingStatus - перетаскивание карточки на канбан-доске.
// Карточки доски - пользователи, поэтому id может указывать и на пользователя.
func (s *Server) handleBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, "booking status", err)
		return
	}
	status, err := readStatus(r)
	if err != nil {
		s.fail(w, r, "booking status", err)
		return
	}

	target, err := s.bookings.UpdateStatus(r.Context(), id, status)
	if err != nil {
		s.fail(w, r, "booking status", err)
		return
	}

	if employee := EmployeeFromContext(r.Context()); employee != nil {
		s.logger.Info("Kanban move",
			zap.String("username", employee.Username),
			zap.Int64("id", id),
			zap.String("target", string(target)),
			zap.String("status", status))
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Success: true,
		Target:  target,
		Status:  model.ParseFunnelStatus(status),
	})
}
