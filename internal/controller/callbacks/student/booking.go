package student

import (
	"context"
	"errors"
	"time"

	"github.com/bonuseducation/crm_bot/internal/controller/callbacks/callbacktypes"
	"github.com/bonuseducation/crm_bot/internal/controller/callbacks/common"
	"github.com/bonuseducation/crm_bot/internal/controller/callbacks/common/keyboard"
	"github.com/bonuseducation/crm_bot/internal/repository"
	"github.com/bonuseducation/crm_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Student Booking Handlers
// ========================

// HandleBookingMenu показывает курсы, на которые можно записаться
func HandleBookingMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMessage(ctx, b, callback, h, func(hc *common.HandlerContext) {
		courses, err := h.CatalogService.ActiveCourses(ctx)
		if err != nil {
			common.HandleError(hc, err, "booking_menu")
			return
		}

		text, kb := common.BuildBookingMenuScreen(courses)
		common.ShowScreen(hc, "booking_menu", text, kb)
	})
}

// HandleBookCourse записывает клиента на выбранный курс.
// Имя берётся из профиля Telegram, телефон уточняет менеджер.
func HandleBookCourse(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	courseID, err := common.ParseCourseID(callback.Data)
	if err != nil {
		h.Logger.Warn("Invalid course callback", zap.String("data", callback.Data), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.WithMessage(ctx, b, callback, h, func(hc *common.HandlerContext) {
		from := callback.From
		if _, err := h.UserService.RegisterUser(ctx, repository.UserProfile{
			TelegramID: from.ID,
			Username:   from.Username,
			FirstName:  from.FirstName,
			LastName:   from.LastName,
		}); err != nil {
			h.Logger.Warn("Failed to register user before booking",
				zap.Int64("telegram_id", from.ID),
				zap.Error(err))
		}

		userName := hc.UserName()
		booking, course, err := h.BookingService.CreateCourseBooking(ctx, from.ID, userName, courseID)
		if err != nil {
			if errors.Is(err, service.ErrCourseNotFound) || errors.Is(err, service.ErrCourseInactive) {
				h.Logger.Info("Course unavailable for booking",
					zap.Int64("telegram_id", from.ID),
					zap.Int64("course_id", courseID),
					zap.Error(err))
				common.ShowScreen(hc, "book_course_failed", common.ErrorMessage(err),
					keyboard.NewBuilder().Row(keyboard.BackToMainButton()).Build())
				return
			}
			common.HandleError(hc, err, "book_course")
			return
		}

		h.Logger.Info("Booking created from menu",
			zap.Int64("booking_id", booking.ID),
			zap.Int64("telegram_id", from.ID),
			zap.String("course", course.Name))

		text, kb := common.BuildBookedScreen(course, userName, time.Now())
		common.ShowScreen(hc, "book_course", text, kb)
	})
}
