package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository/base"
)

type ConversationRepository struct {
	store *base.Store
}

func NewConversationRepository(store *base.Store) *ConversationRepository {
	return &ConversationRepository{store: store}
}

// Append дописывает реплику в журнал диалогов
func (r *ConversationRepository) Append(ctx context.Context, telegramID int64, message, response string) (*model.Conversation, error) {
	var result model.Conversation

	err := r.store.Update(ctx, func(doc *model.Document) error {
		result = model.Conversation{
			ID:         base.NextID(doc.Conversations, func(c *model.Conversation) int64 { return c.ID }),
			TelegramID: telegramID,
			Message:    message,
			Response:   response,
			CreatedAt:  model.NewTimestamp(r.store.Now()),
		}
		doc.Conversations = append(doc.Conversations, result)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("append conversation: %w", err)
	}

	return &result, nil
}

// Recent возвращает до limit последних реплик, новые первыми.
// telegramID == 0 означает «по всем пользователям».
func (r *ConversationRepository) Recent(ctx context.Context, telegramID int64, limit int) ([]model.Conversation, error) {
	conversations := make([]model.Conversation, 0)

	err := r.store.View(ctx, func(doc *model.Document) error {
		for _, c := range doc.Conversations {
			if telegramID == 0 || c.TelegramID == telegramID {
				conversations = append(conversations, c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("recent conversations: %w", err)
	}

	// при равном времени новее та, что добавлена позже
	sort.SliceStable(conversations, func(i, j int) bool {
		ti, tj := conversations[i].CreatedAt.Time, conversations[j].CreatedAt.Time
		if ti.Equal(tj) {
			return conversations[i].ID > conversations[j].ID
		}
		return ti.After(tj)
	})

	if limit > 0 && len(conversations) > limit {
		conversations = conversations[:limit]
	}
	return conversations, nil
}

// History возвращает всю переписку пользователя в хронологическом порядке
func (r *ConversationRepository) History(ctx context.Context, telegramID int64) ([]model.Conversation, error) {
	recent, err := r.Recent(ctx, telegramID, 0)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}
	return recent, nil
}
