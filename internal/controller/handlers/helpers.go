package handlers

import (
	"strings"

	"github.com/bonuseducation/crm_bot/internal/conversation"
	"github.com/bonuseducation/crm_bot/internal/repository"
	"github.com/go-telegram/bot/models"
)

// profileFromUser переводит профиль Telegram в данные для CRM
func profileFromUser(from *models.User) repository.UserProfile {
	return repository.UserProfile{
		TelegramID: from.ID,
		Username:   from.Username,
		FirstName:  from.FirstName,
		LastName:   from.LastName,
	}
}

// turnFromMessage собирает ход диалога из сообщения. ok=false, если отвечать не на что.
func turnFromMessage(msg *models.Message) (conversation.Turn, bool) {
	if msg == nil || msg.From == nil {
		return conversation.Turn{}, false
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" || strings.HasPrefix(text, "/") {
		return conversation.Turn{}, false
	}

	return conversation.Turn{
		TelegramID: msg.From.ID,
		Username:   msg.From.Username,
		FirstName:  msg.From.FirstName,
		LastName:   msg.From.LastName,
		Text:       msg.Text,
	}, true
}
