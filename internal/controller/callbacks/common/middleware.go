package common

import (
	"context"

	"github.com/bonuseducation/crm_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithMessage создаёт HandlerContext и проверяет, что у callback есть сообщение
// При ошибке отвечает пользователю и handler не вызывается
func WithMessage(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if hc.Message == nil {
		h.Logger.Warn("Callback without message",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("data", callback.Data))
		hc.AnswerAlert(ErrorMessage(ErrNoMessage))
		return
	}

	handler(hc)
}

// ShowScreen заменяет сообщение новым экраном и подтверждает callback
func ShowScreen(hc *HandlerContext, screen string, text string, keyboard *models.InlineKeyboardMarkup) {
	if err := hc.EditMessage(text, keyboard); err != nil {
		hc.Handler.Logger.Error("Failed to edit message",
			zap.String("screen", screen),
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.Answer(ErrorMessage(err))
		return
	}
	hc.Answer("")
}

// HandleError обрабатывает ошибку и отправляет ответ пользователю
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}
