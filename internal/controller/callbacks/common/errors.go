package common

import (
	"errors"

	"github.com/bonuseducation/crm_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		return "❌ Курс не найден. Попробуйте еще раз."
	case errors.Is(err, service.ErrCourseInactive):
		return "❌ Набор на этот курс сейчас закрыт. Выберите другой курс или свяжитесь с менеджером."
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	default:
		return "❌ Произошла ошибка. Попробуйте позже или свяжитесь с нами: +998 94 843 5105"
	}
}
