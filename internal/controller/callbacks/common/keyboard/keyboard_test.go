package keyboard

import (
	"testing"

	"github.com/bonuseducation/crm_bot/internal/controller/callbacks/callbacktypes"
	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callbackData(markup *models.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != "" {
				out = append(out, btn.CallbackData)
			}
		}
	}
	return out
}

func TestBuilderSkipsEmptyRows(t *testing.T) {
	markup := NewBuilder().
		Row(Button("a", "x")).
		Row().
		Row(Button("b", "y"), URLButton("c", "https://example.com")).
		Build()

	require.Len(t, markup.InlineKeyboard, 2)
	assert.Len(t, markup.InlineKeyboard[1], 2)
	assert.Equal(t, "https://example.com", markup.InlineKeyboard[1][1].URL)
}

func TestMainMenu(t *testing.T) {
	markup := MainMenu()

	assert.Equal(t, []string{
		callbacktypes.Courses,
		callbacktypes.Contact,
		callbacktypes.About,
		callbacktypes.BookCourse,
		callbacktypes.MyBookings,
	}, callbackData(markup))

	last := markup.InlineKeyboard[len(markup.InlineKeyboard)-1][0]
	assert.Equal(t, InstagramURL, last.URL)
}

func TestBookingMenu(t *testing.T) {
	courses := []model.Course{
		{ID: 1, Name: "A1 Начальный"},
		{ID: 12, Name: "C1 Профессиональный"},
	}

	markup := BookingMenu(courses)

	assert.Equal(t, []string{"book_1", "book_12", callbacktypes.ContactManager, callbacktypes.BackToMain}, callbackData(markup))
	assert.Equal(t, "🇹🇷 A1 Начальный", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "👑 C1 Профессиональный", markup.InlineKeyboard[1][0].Text)
}

func TestManagerMenuLinks(t *testing.T) {
	markup := ManagerMenu()

	require.Len(t, markup.InlineKeyboard, 3)
	assert.Equal(t, PhoneURL, markup.InlineKeyboard[0][0].URL)
	assert.Equal(t, WhatsAppURL, markup.InlineKeyboard[1][0].URL)
	assert.Equal(t, callbacktypes.BackToMain, markup.InlineKeyboard[2][0].CallbackData)
}
