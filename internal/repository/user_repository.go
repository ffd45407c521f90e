package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository/base"
)

// UserProfile - данные пользователя, которые присылает Telegram
type UserProfile struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
}

type UserRepository struct {
	store *base.Store
}

func NewUserRepository(store *base.Store) *UserRepository {
	return &UserRepository{store: store}
}

// Register создаёт пользователя, если его нет, иначе обновляет last_activity.
// telegram_id остаётся уникальным: проверка и вставка идут под одной блокировкой.
func (r *UserRepository) Register(ctx context.Context, profile UserProfile) (*model.User, bool, error) {
	var (
		result  model.User
		created bool
	)

	err := r.store.Update(ctx, func(doc *model.Document) error {
		now := r.store.Now()

		if i := indexByTelegramID(doc.Users, profile.TelegramID); i >= 0 {
			doc.Users[i].LastActivity = model.NewTimestamp(now)
			result = doc.Users[i]
			return nil
		}

		user := model.User{
			ID:               base.NextID(doc.Users, func(u *model.User) int64 { return u.ID }),
			TelegramID:       profile.TelegramID,
			Username:         model.StringPtr(profile.Username),
			FirstName:        profile.FirstName,
			LastName:         model.StringPtr(profile.LastName),
			Source:           "telegram",
			Status:           model.StatusNew,
			FirstContactDate: now.In(model.Tashkent).Format("2006-01-02"),
			IsActive:         model.BoolPtr(true),
			CreatedAt:        model.NewTimestamp(now),
			LastActivity:     model.NewTimestamp(now),
		}
		doc.Users = append(doc.Users, user)

		result = user
		created = true
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("register user: %w", err)
	}

	return &result, created, nil
}

// GetByTelegramID получает пользователя по Telegram ID (nil, если не найден)
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var result *model.User

	err := r.store.View(ctx, func(doc *model.Document) error {
		if i := indexByTelegramID(doc.Users, telegramID); i >= 0 {
			found := doc.Users[i]
			result = &found
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}

	return result, nil
}

// Find ищет пользователя по CRM id, а если такого нет - по telegram_id
func (r *UserRepository) Find(ctx context.Context, ref int64) (*model.User, error) {
	var result *model.User

	err := r.store.View(ctx, func(doc *model.Document) error {
		if i := indexByRef(doc.Users, ref); i >= 0 {
			found := doc.Users[i]
			result = &found
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	return result, nil
}

// List возвращает всех пользователей
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User

	err := r.store.View(ctx, func(doc *model.Document) error {
		users = doc.Users
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

// ActiveSince возвращает пользователей, проявлявших активность за последние days дней
func (r *UserRepository) ActiveSince(ctx context.Context, days int) ([]model.User, error) {
	cutoff := r.store.Now().Add(-time.Duration(days) * 24 * time.Hour)
	users := make([]model.User, 0)

	err := r.store.View(ctx, func(doc *model.Document) error {
		for _, u := range doc.Users {
			if !u.LastActivity.Time.IsZero() && !u.LastActivity.Before(cutoff) {
				users = append(users, u)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list active users: %w", err)
	}

	return users, nil
}

// SetPreferredLanguage записывает язык только если он изменился. Возвращает true, если была запись.
func (r *UserRepository) SetPreferredLanguage(ctx context.Context, telegramID int64, lang model.Language) (bool, error) {
	changed := false

	err := r.store.Update(ctx, func(doc *model.Document) error {
		i := indexByTelegramID(doc.Users, telegramID)
		if i < 0 {
			return ErrNotFound
		}
		if doc.Users[i].PreferredLanguage == lang {
			return base.ErrNoChanges
		}

		doc.Users[i].PreferredLanguage = lang
		doc.Users[i].UpdatedAt = model.NewTimestamp(r.store.Now())
		changed = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("set preferred language: %w", err)
	}

	return changed, nil
}

// FillPhone записывает телефон, если у пользователя его ещё нет
func (r *UserRepository) FillPhone(ctx context.Context, telegramID int64, phone string) error {
	err := r.store.Update(ctx, func(doc *model.Document) error {
		i := indexByTelegramID(doc.Users, telegramID)
		if i < 0 {
			return ErrNotFound
		}
		if model.StringValue(doc.Users[i].Phone) != "" || phone == "" {
			return base.ErrNoChanges
		}

		doc.Users[i].Phone = model.StringPtr(phone)
		doc.Users[i].UpdatedAt = model.NewTimestamp(r.store.Now())
		return nil
	})
	if err != nil {
		return fmt.Errorf("fill phone: %w", err)
	}

	return nil
}

// Update применяет fn к пользователю с CRM id (или telegram_id) ref
func (r *UserRepository) Update(ctx context.Context, ref int64, fn func(u *model.User) error) (*model.User, error) {
	var result model.User

	err := r.store.Update(ctx, func(doc *model.Document) error {
		i := indexByRef(doc.Users, ref)
		if i < 0 {
			return ErrNotFound
		}

		user := doc.Users[i]
		if err := fn(&user); err != nil {
			return err
		}
		user.ID = doc.Users[i].ID
		user.TelegramID = doc.Users[i].TelegramID
		user.UpdatedAt = model.NewTimestamp(r.store.Now())

		doc.Users[i] = user
		result = user
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return &result, nil
}

// SetStatus переводит пользователя на этап воронки
func (r *UserRepository) SetStatus(ctx context.Context, ref int64, status string) (*model.User, error) {
	if !model.IsKnownStatus(status) {
		return nil, fmt.Errorf("set user status %q: %w", status, ErrInvalidStatus)
	}

	return r.Update(ctx, ref, func(u *model.User) error {
		u.Status = model.ParseFunnelStatus(status)
		return nil
	})
}

// Delete удаляет пользователя по CRM id
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	err := r.store.Update(ctx, func(doc *model.Document) error {
		for i := range doc.Users {
			if doc.Users[i].ID == id {
				doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}

func indexByTelegramID(users []model.User, telegramID int64) int {
	for i := range users {
		if users[i].TelegramID == telegramID {
			return i
		}
	}
	return -1
}

func indexByRef(users []model.User, ref int64) int {
	for i := range users {
		if users[i].ID == ref {
			return i
		}
	}
	return indexByTelegramID(users, ref)
}
