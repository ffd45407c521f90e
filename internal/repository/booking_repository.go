package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository/base"
)

type BookingRepository struct {
	store *base.Store
}

func NewBookingRepository(store *base.Store) *BookingRepository {
	return &BookingRepository{store: store}
}

// Create добавляет заявку. ID и created_at проставляются здесь, пустой статус становится pending.
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	err := r.store.Update(ctx, func(doc *model.Document) error {
		booking.ID = base.NextID(doc.Bookings, func(b *model.Booking) int64 { return b.ID })
		booking.CreatedAt = model.NewTimestamp(r.store.Now())
		if booking.Status == "" {
			booking.Status = model.StatusPending
		}

		doc.Bookings = append(doc.Bookings, *booking)
		return nil
	})
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID получает заявку (nil, если не найдена)
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	var result *model.Booking

	err := r.store.View(ctx, func(doc *model.Document) error {
		for _, b := range doc.Bookings {
			if b.ID == id {
				found := b
				result = &found
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	return result, nil
}

// List возвращает все заявки в порядке добавления
func (r *BookingRepository) List(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking

	err := r.store.View(ctx, func(doc *model.Document) error {
		bookings = doc.Bookings
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return bookings, nil
}

// ListByUser возвращает заявки клиента
func (r *BookingRepository) ListByUser(ctx context.Context, telegramID int64) ([]model.Booking, error) {
	bookings := make([]model.Booking, 0)

	err := r.store.View(ctx, func(doc *model.Document) error {
		for _, b := range doc.Bookings {
			if b.UserID == telegramID {
				bookings = append(bookings, b)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list user bookings: %w", err)
	}

	return bookings, nil
}

// Recent возвращает limit последних заявок, новые первыми
func (r *BookingRepository) Recent(ctx context.Context, limit int) ([]model.Booking, error) {
	bookings, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	sorted := append([]model.Booking(nil), bookings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].CreatedAt.Time, sorted[j].CreatedAt.Time
		if ti.Equal(tj) {
			return sorted[i].ID > sorted[j].ID
		}
		return ti.After(tj)
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// Update применяет fn к заявке
func (r *BookingRepository) Update(ctx context.Context, id int64, fn func(b *model.Booking) error) (*model.Booking, error) {
	var result model.Booking

	err := r.store.Update(ctx, func(doc *model.Document) error {
		for i := range doc.Bookings {
			if doc.Bookings[i].ID != id {
				continue
			}

			booking := doc.Bookings[i]
			if err := fn(&booking); err != nil {
				return err
			}
			booking.ID = id
			booking.UpdatedAt = model.NewTimestamp(r.store.Now())

			doc.Bookings[i] = booking
			result = booking
			return nil
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	return &result, nil
}

// UpdateStatus переводит заявку на этап воронки
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status string) (*model.Booking, error) {
	if !model.IsKnownStatus(status) {
		return nil, fmt.Errorf("update booking status %q: %w", status, ErrInvalidStatus)
	}

	return r.Update(ctx, id, func(b *model.Booking) error {
		b.Status = model.ParseFunnelStatus(status)
		return nil
	})
}

// Delete удаляет заявку
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	err := r.store.Update(ctx, func(doc *model.Document) error {
		for i := range doc.Bookings {
			if doc.Bookings[i].ID == id {
				doc.Bookings = append(doc.Bookings[:i], doc.Bookings[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	return nil
}
