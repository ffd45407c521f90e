package repository

import (
	"context"
	"fmt"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository/base"
)

// MaintenanceRepository - статистика и сервисные операции над файлом CRM
type MaintenanceRepository struct {
	store *base.Store
}

func NewMaintenanceRepository(store *base.Store) *MaintenanceRepository {
	return &MaintenanceRepository{store: store}
}

// Statistics пересчитывает счётчики и сохраняет их в файл
func (r *MaintenanceRepository) Statistics(ctx context.Context) (model.Statistics, error) {
	var stats model.Statistics

	err := r.store.Update(ctx, func(doc *model.Document) error {
		doc.Recount()
		stats = doc.Statistics
		return nil
	})
	if err != nil {
		return model.Statistics{}, fmt.Errorf("get statistics: %w", err)
	}

	return stats, nil
}

// Backup копирует текущее состояние CRM в файл dst
func (r *MaintenanceRepository) Backup(ctx context.Context, dst string) error {
	return r.store.Backup(ctx, dst)
}

// PurgeDynamic удаляет всех пользователей, заявки и диалоги. Курсы, преподаватели и сотрудники остаются.
func (r *MaintenanceRepository) PurgeDynamic(ctx context.Context) error {
	err := r.store.Update(ctx, func(doc *model.Document) error {
		doc.Users = []model.User{}
		doc.Bookings = []model.Booking{}
		doc.Conversations = []model.Conversation{}
		return nil
	})
	if err != nil {
		return fmt.Errorf("purge dynamic data: %w", err)
	}

	return nil
}

// KeepOnlyDay оставляет пользователей с first_contact_date == day и их заявки и диалоги за этот день
func (r *MaintenanceRepository) KeepOnlyDay(ctx context.Context, day string) error {
	err := r.store.Update(ctx, func(doc *model.Document) error {
		users := make([]model.User, 0)
		kept := make(map[int64]struct{})
		for _, u := range doc.Users {
			if u.FirstContactDate == day {
				users = append(users, u)
				kept[u.TelegramID] = struct{}{}
			}
		}

		keep := func(telegramID int64) bool {
			if len(kept) == 0 {
				return true
			}
			_, ok := kept[telegramID]
			return ok
		}

		conversations := make([]model.Conversation, 0)
		for _, c := range doc.Conversations {
			if c.CreatedAt.Date() == day && keep(c.TelegramID) {
				conversations = append(conversations, c)
			}
		}

		bookings := make([]model.Booking, 0)
		for _, b := range doc.Bookings {
			if b.CreatedAt.Date() == day && keep(b.UserID) {
				bookings = append(bookings, b)
			}
		}

		doc.Users = users
		doc.Conversations = conversations
		doc.Bookings = bookings
		return nil
	})
	if err != nil {
		return fmt.Errorf("keep only %s: %w", day, err)
	}

	return nil
}

// SyncUsersFromConversations создаёт пользователей для telegram_id, которые есть в диалогах, но отсутствуют в users.
// Возвращает число созданных записей.
func (r *MaintenanceRepository) SyncUsersFromConversations(ctx context.Context) (int, error) {
	created := 0

	err := r.store.Update(ctx, func(doc *model.Document) error {
		known := make(map[int64]struct{}, len(doc.Users))
		for _, u := range doc.Users {
			known[u.TelegramID] = struct{}{}
		}

		for _, c := range doc.Conversations {
			if _, ok := known[c.TelegramID]; ok {
				continue
			}

			doc.Users = append(doc.Users, model.User{
				ID:               base.NextID(doc.Users, func(u *model.User) int64 { return u.ID }),
				TelegramID:       c.TelegramID,
				FirstName:        fmt.Sprintf("Пользователь %d", c.TelegramID),
				Source:           "telegram",
				Status:           model.StatusNew,
				FirstContactDate: c.CreatedAt.Date(),
				IsActive:         model.BoolPtr(true),
				CreatedAt:        c.CreatedAt,
				LastActivity:     c.CreatedAt,
			})
			known[c.TelegramID] = struct{}{}
			created++
		}

		if created == 0 {
			return base.ErrNoChanges
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("sync users from conversations: %w", err)
	}

	return created, nil
}
