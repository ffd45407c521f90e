package common

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCourseID(t *testing.T) {
	id, err := ParseCourseID("book_42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, data := range []string{"book_", "book_course", "book_-1", "book_0", "courses", ""} {
		_, err := ParseCourseID(data)
		assert.ErrorIs(t, err, ErrInvalidFormat, data)
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "❌ Курс не найден. Попробуйте еще раз.",
		ErrorMessage(fmt.Errorf("book: %w", service.ErrCourseNotFound)))
	assert.Contains(t, ErrorMessage(service.ErrCourseInactive), "Набор на этот курс сейчас закрыт")
	assert.Equal(t, "❌ Неверный формат данных", ErrorMessage(ErrInvalidFormat))

	generic := ErrorMessage(errors.New("disk full"))
	assert.Contains(t, generic, "Произошла ошибка")
	assert.NotContains(t, generic, "disk full")
}

func TestBuildBookedScreen(t *testing.T) {
	course := &model.Course{ID: 3, Name: "B1 Средний"}
	at := time.Date(2025, 9, 1, 7, 30, 0, 0, time.UTC)

	text, kb := BuildBookedScreen(course, "Иван Петров", at)

	assert.Contains(t, text, "✅ Заявка на запись принята!")
	assert.Contains(t, text, "📚 Курс: B1 Средний\n")
	assert.Contains(t, text, "👤 Имя: Иван Петров\n")
	assert.Contains(t, text, "📅 Дата подачи: 01.09.2025 12:30")
	require.Len(t, kb.InlineKeyboard, 2)
}

func TestBuildCatalogScreenFooter(t *testing.T) {
	fromCommand, _ := BuildCatalogScreen(nil, true)
	fromButton, _ := BuildCatalogScreen(nil, false)

	assert.Contains(t, fromCommand, "Используйте /book")
	assert.NotContains(t, fromButton, "/book")
}

func TestBuildMyBookingsScreen(t *testing.T) {
	empty, _ := BuildMyBookingsScreen(nil)
	assert.Contains(t, empty, "нет заявок")

	created := time.Date(2025, 9, 1, 5, 0, 0, 0, time.UTC)
	text, _ := BuildMyBookingsScreen([]model.Booking{
		{ID: 7, CourseName: "A1", Status: model.StatusPending, CreatedAt: model.NewTimestamp(created)},
		{ID: 9, CourseName: "B1", Status: model.StatusSuccess, CreatedAt: model.NewTimestamp(created)},
	})

	assert.Contains(t, text, "📅 У вас 2 заявки:")
	assert.Contains(t, text, "⏳ Заявка #7\n📚 Курс: A1\n📊 Статус: Заявка принята\n📅 Создана: 01.09.2025 10:00")
	assert.Contains(t, text, "✅ Заявка #9")
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Иван Петров", DisplayName("Иван", "Петров"))
	assert.Equal(t, "Иван", DisplayName("Иван", ""))
}

func TestIsMessageNotModifiedError(t *testing.T) {
	assert.False(t, IsMessageNotModifiedError(nil))
	assert.True(t, IsMessageNotModifiedError(errors.New("bad request, Bad Request: message is not modified")))
	assert.False(t, IsMessageNotModifiedError(errors.New("forbidden")))
}
