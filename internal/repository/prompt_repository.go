package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository/base"
)

// PromptRepository хранит системный промпт, который сотрудники задают из панели
type PromptRepository struct {
	store *base.Store
}

func NewPromptRepository(store *base.Store) *PromptRepository {
	return &PromptRepository{store: store}
}

// SystemPrompt читает промпт с диска при каждом вызове, чтобы правки из панели подхватывались сразу.
// Пустая строка - промпт не задан.
func (r *PromptRepository) SystemPrompt(ctx context.Context) (string, error) {
	var prompt string

	err := r.store.View(ctx, func(doc *model.Document) error {
		prompt = strings.TrimSpace(model.StringValue(doc.AIPrompts.SystemPrompt))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("get system prompt: %w", err)
	}

	return prompt, nil
}

// SetSystemPrompt сохраняет промпт. Пустой текст сбрасывает его в null.
func (r *PromptRepository) SetSystemPrompt(ctx context.Context, text string) error {
	err := r.store.Update(ctx, func(doc *model.Document) error {
		doc.AIPrompts.SystemPrompt = model.StringPtr(strings.TrimSpace(text))
		return nil
	})
	if err != nil {
		return fmt.Errorf("set system prompt: %w", err)
	}

	return nil
}
