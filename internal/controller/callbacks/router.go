package callbacks

import (
	"context"
	"strings"

	"github.com/bonuseducation/crm_bot/internal/controller/callbacks/callbacktypes"
	"github.com/bonuseducation/crm_bot/internal/controller/callbacks/common"
	"github.com/bonuseducation/crm_bot/internal/controller/callbacks/student"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	// ===== Navigation =====
	case data == callbacktypes.BackToMain:
		common.HandleBackToMain(ctx, b, callback, h)
	case data == callbacktypes.Courses:
		common.HandleCourses(ctx, b, callback, h)
	case data == callbacktypes.Contact:
		common.HandleContact(ctx, b, callback, h)
	case data == callbacktypes.About:
		common.HandleAbout(ctx, b, callback, h)
	case data == callbacktypes.ContactManager:
		common.HandleContactManager(ctx, b, callback, h)
	case data == callbacktypes.MyBookings:
		common.HandleMyBookings(ctx, b, callback, h)
	case data == callbacktypes.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Booking =====
	// book_course проверяется раньше префикса book_
	case data == callbacktypes.BookCourse:
		student.HandleBookingMenu(ctx, b, callback, h)
	case strings.HasPrefix(data, callbacktypes.BookCoursePrefix):
		student.HandleBookCourse(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback data",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
