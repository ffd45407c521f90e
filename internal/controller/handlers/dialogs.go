package handlers

import (
	"context"

	"github.com/bonuseducation/crm_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleTextMessage передаёт свободный текст в диалог записи и отвечает клиенту
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	turn, ok := turnFromMessage(update.Message)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	// Пока модель думает, клиент видит "печатает..."
	if _, err := b.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	}); err != nil {
		h.logger.Debug("Failed to send typing action", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	reply, err := h.machine.HandleTurn(ctx, turn)
	if err != nil {
		h.logger.Error("Failed to handle message",
			zap.Int64("telegram_id", turn.TelegramID),
			zap.Error(err))
		text := reply.Text
		if text == "" {
			text = common.ErrorMessage(err)
		}
		h.sendError(ctx, b, chatID, text)
		return
	}

	if reply.Text == "" {
		return
	}

	if reply.Booking != nil {
		h.logger.Info("Lead created from chat",
			zap.Int64("telegram_id", turn.TelegramID),
			zap.Int64("booking_id", reply.Booking.ID))
	}

	h.sendMessage(ctx, b, chatID, reply.Text)
}
