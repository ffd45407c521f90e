package handlers

import (
	"context"

	"github.com/bonuseducation/crm_bot/internal/controller/callbacks/common"
	"github.com/bonuseducation/crm_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.registerUser(ctx, update)
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.StartText, keyboard.MainMenu())
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, common.HelpText)
}

// HandleCourses обрабатывает команду /courses
func (h *Handlers) HandleCourses(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	groups, err := h.catalogService.CoursesByLanguage(ctx)
	if err != nil {
		h.logger.Error("Failed to load courses", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildCatalogScreen(groups, true)
	h.sendScreen(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleContact обрабатывает команду /contact
func (h *Handlers) HandleContact(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendScreen(ctx, b, update.Message.Chat.ID, common.ContactText, keyboard.ContactMenu())
}

// HandleAbout обрабатывает команду /about
func (h *Handlers) HandleAbout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendScreen(ctx, b, update.Message.Chat.ID, common.AboutText, keyboard.AboutMenu())
}

// HandleBook обрабатывает команду /book - меню выбора курса
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	courses, err := h.catalogService.ActiveCourses(ctx)
	if err != nil {
		h.logger.Error("Failed to load courses for booking", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildBookingMenuScreen(courses)
	h.sendScreen(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleMyBookings обрабатывает команду /mybookings
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	bookings, err := h.bookingService.ListByUser(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to load bookings", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildMyBookingsScreen(bookings)
	h.sendScreen(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleCancel обрабатывает команду /cancel - отмена начатой записи
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	if !h.machine.Cancel(update.Message.From.ID) {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активной записи для отмены.")
		return
	}

	h.logger.Info("Booking draft cancelled", zap.Int64("telegram_id", update.Message.From.ID))
	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"✅ Запись отменена.\n\nИспользуйте /help для просмотра доступных команд.")
}
