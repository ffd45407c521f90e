package keyboard

import (
	"fmt"

	"github.com/bonuseducation/crm_bot/internal/controller/callbacks/callbacktypes"
	"github.com/bonuseducation/crm_bot/internal/controller/callbacks/common/formatting"
	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/go-telegram/bot/models"
)

// Внешние ссылки учебного центра
const (
	TelegramURL  = "https://t.me/tash_turkdiliuz"
	InstagramURL = "https://www.instagram.com/turkdili.uz/"
	PhoneURL     = "tel:+998948435105"
	WhatsAppURL  = "https://wa.me/998909943433"
)

// BackToMainButton создаёт кнопку "Назад" в главное меню
func BackToMainButton() models.InlineKeyboardButton {
	return Button("🔙 Назад", callbacktypes.BackToMain)
}

// BookCourseButton создаёт кнопку записи на курс
func BookCourseButton() models.InlineKeyboardButton {
	return Button("📝 Записаться на курс", callbacktypes.BookCourse)
}

// ContactManagerButton создаёт кнопку связи с менеджером
func ContactManagerButton() models.InlineKeyboardButton {
	return Button("📞 Связаться с менеджером", callbacktypes.ContactManager)
}

// MainMenu - клавиатура приветствия
func MainMenu() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(Button("🇹🇷 Наши курсы", callbacktypes.Courses)).
		Row(Button("📞 Контакты", callbacktypes.Contact)).
		Row(Button("ℹ️ О нас", callbacktypes.About)).
		Row(BookCourseButton()).
		Row(Button("📅 Мои заявки", callbacktypes.MyBookings)).
		Row(URLButton("📱 Telegram", TelegramURL)).
		Row(URLButton("📷 Instagram", InstagramURL)).
		Build()
}

// CoursesMenu - клавиатура под списком курсов
func CoursesMenu() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(BookCourseButton()).
		Row(ContactManagerButton()).
		Row(BackToMainButton()).
		Build()
}

// ContactMenu - клавиатура под контактами
func ContactMenu() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(BookCourseButton()).
		Row(URLButton("📱 Позвонить", PhoneURL), URLButton("💬 WhatsApp", WhatsAppURL)).
		Row(BackToMainButton()).
		Build()
}

// AboutMenu - клавиатура под рассказом о центре
func AboutMenu() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(BookCourseButton()).
		Row(Button("📞 Связаться с нами", callbacktypes.ContactManager)).
		Row(BackToMainButton()).
		Build()
}

// ManagerMenu - клавиатура под контактами менеджера
func ManagerMenu() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(URLButton("📱 Позвонить", PhoneURL)).
		Row(URLButton("💬 WhatsApp", WhatsAppURL)).
		Row(BackToMainButton()).
		Build()
}

// BookingMenu - выбор курса для записи: по кнопке на каждый курс
func BookingMenu(courses []model.Course) *models.InlineKeyboardMarkup {
	builder := NewBuilder()
	for _, course := range courses {
		builder.Row(Button(
			fmt.Sprintf("%s %s", formatting.LevelEmoji(course.Name), course.Name),
			fmt.Sprintf("%s%d", callbacktypes.BookCoursePrefix, course.ID),
		))
	}
	return builder.
		Row(ContactManagerButton()).
		Row(BackToMainButton()).
		Build()
}

// BookedMenu - клавиатура после успешной записи
func BookedMenu() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(ContactManagerButton()).
		Row(Button("🔙 Главное меню", callbacktypes.BackToMain)).
		Build()
}
