package common

import (
	"context"

	"github.com/bonuseducation/crm_bot/internal/controller/callbacks/callbacktypes"
	"github.com/bonuseducation/crm_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Common Navigation Handlers
// ========================

// HandleBackToMain возвращает пользователя к главному меню
func HandleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithMessage(ctx, b, callback, h, func(hc *HandlerContext) {
		// Начатая в чате запись сбрасывается
		if h.Machine.Cancel(hc.TelegramID) {
			h.Logger.Info("Booking draft dropped", zap.Int64("telegram_id", hc.TelegramID))
		}
		ShowScreen(hc, "main", MainMenuText, keyboard.MainMenu())
	})
}

// HandleCourses показывает курсы, сгруппированные по языкам
func HandleCourses(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithMessage(ctx, b, callback, h, func(hc *HandlerContext) {
		groups, err := h.CatalogService.CoursesByLanguage(ctx)
		if err != nil {
			HandleError(hc, err, "courses")
			return
		}

		text, kb := BuildCatalogScreen(groups, false)
		ShowScreen(hc, "courses", text, kb)
	})
}

// HandleContact показывает контакты центра
func HandleContact(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithMessage(ctx, b, callback, h, func(hc *HandlerContext) {
		ShowScreen(hc, "contact", ContactText, keyboard.ContactMenu())
	})
}

// HandleAbout рассказывает о центре
func HandleAbout(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithMessage(ctx, b, callback, h, func(hc *HandlerContext) {
		ShowScreen(hc, "about", AboutText, keyboard.AboutMenu())
	})
}

// HandleContactManager показывает контакты менеджера
func HandleContactManager(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithMessage(ctx, b, callback, h, func(hc *HandlerContext) {
		ShowScreen(hc, "contact_manager", ManagerText, keyboard.ManagerMenu())
	})
}

// HandleMyBookings показывает заявки клиента и их статусы
func HandleMyBookings(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithMessage(ctx, b, callback, h, func(hc *HandlerContext) {
		bookings, err := h.BookingService.ListByUser(ctx, hc.TelegramID)
		if err != nil {
			HandleError(hc, err, "my_bookings")
			return
		}

		text, kb := BuildMyBookingsScreen(bookings)
		ShowScreen(hc, "my_bookings", text, kb)
	})
}
