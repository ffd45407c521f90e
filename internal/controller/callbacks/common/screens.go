package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/bonuseducation/crm_bot/internal/controller/callbacks/common/formatting"
	"github.com/bonuseducation/crm_bot/internal/controller/callbacks/common/keyboard"
	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/service"
	"github.com/go-telegram/bot/models"
)

const (
	StartText = "🇹🇷 Привет! Добро пожаловать в Bonus Education!\n\n" +
		"Я помогу вам с курсами по Турецкому, Английскому и Корейскому языкам.\n\n" +
		"Что вас интересует?"

	MainMenuText = "🇹🇷 Добро пожаловать в Bonus Education - Турецкий язык!\n\n" +
		"Я - ваш персональный AI-ассистент по изучению турецкого языка, готовый помочь с любыми вопросами о наших курсах.\n\n" +
		"🎯 Что я могу:\n" +
		"• Рассказать о всех уровнях турецкого языка (A1-C1)\n" +
		"• Ответить на вопросы о программах обучения\n" +
		"• Помочь выбрать подходящий уровень\n" +
		"• Предоставить информацию о ценах и расписании\n" +
		"• Рассказать о форматах обучения (онлайн/офлайн)\n" +
		"• Записать вас на консультацию или курс\n\n" +
		"Просто напишите ваш вопрос, и я с радостью помогу! 😊"

	HelpText = "📋 Доступные команды:\n\n" +
		"/start - Начать работу с ботом\n" +
		"/help - Показать это сообщение\n" +
		"/courses - Посмотреть все курсы\n" +
		"/contact - Контактная информация\n" +
		"/about - О нашем учебном центре\n" +
		"/book - Записаться на курс\n" +
		"/mybookings - Мои заявки\n" +
		"/cancel - Отменить начатую запись\n\n" +
		"💬 Просто напишите любой вопрос, и я отвечу!\n\n" +
		"Примеры вопросов:\n" +
		"• \"Какие уровни турецкого языка у вас есть?\"\n" +
		"• \"Сколько стоят курсы?\"\n" +
		"• \"Когда начинается следующий набор?\"\n" +
		"• \"Есть ли онлайн обучение?\"\n" +
		"• \"Хочу записаться на курс A1\""

	ContactText = "📞 Контактная информация Bonus Education:\n\n" +
		"🏢 Bonus Education - Турецкий язык\n" +
		"📱 Телефон: +998 94 843 5105 / +998 93 843 5105 / +998 90 321 1453\n" +
		"📱 WhatsApp: +998 90 994 3433\n\n" +
		"📱 Социальные сети:\n" +
		"• Telegram: @tash_turkdiliuz\n" +
		"• Instagram: @turkdili.uz | @bonus_education\n" +
		"• YouTube: Bonus Education\n\n" +
		"🕒 Время работы:\n" +
		"Пн-Пт: 9:00 - 18:00\n" +
		"Сб: 10:00 - 16:00\n" +
		"Вс: выходной\n\n" +
		"📍 Адрес: г. Ташкент, Мирободский район, ул. Нуронийлар, 19\n" +
		"🗺 Ориентиры: здание Сената, УзНефтГаз, школа №110, ЦУМ, Центральный банк\n\n" +
		"💬 Или просто напишите мне - я отвечу в течение нескольких минут!"

	AboutText = "🇹🇷 О нашем учебном центре Bonus Education:\n\n" +
		"Мы обучаем: Турецкому, Английскому и Корейскому языкам. 10 лет опыта работы.\n\n" +
		"🚀 Наши преимущества:\n" +
		"• 10 лет опыта преподавания\n" +
		"• 3000+ успешных выпускников\n" +
		"• Опытные преподаватели (турецкий, английский, корейский; также узбекский и русский)\n" +
		"• Небольшие группы (4-8 человек)\n" +
		"• Онлайн и офлайн форматы\n" +
		"• Сертификаты по окончании\n" +
		"• Практические занятия\n\n" +
		"📊 Статистика:\n" +
		"• 3000+ студентов\n" +
		"• 10 лет опыта\n" +
		"• Уровни A1–C1 по каждому языку\n" +
		"• Групповые и индивидуальные занятия\n\n" +
		"🎯 Наша миссия - сделать изучение турецкого языка доступным и эффективным для всех!\n\n" +
		"📍 Адрес: г. Ташкент, Мирободский район, ул. Нуронийлар, 19"

	ManagerText = "📞 Свяжитесь с нашим менеджером:\n\n" +
		"📱 Телефон: +998 94 843 5105 / +998 93 843 5105\n" +
		"💬 WhatsApp: +998 90 994 3433\n" +
		"📧 Telegram: @tash_turkdiliuz\n\n" +
		"🕒 Время работы:\n" +
		"Пн-Пт: 9:00 - 18:00\n" +
		"Сб: 10:00 - 16:00\n\n" +
		"Мы ответим в течение 15 минут! 😊"

	BookingMenuText = "📝 Выберите курс для записи:"

	catalogFooterCommand  = "📝 Хотите записаться на курс? Используйте /book или нажмите кнопку ниже!"
	catalogFooterCallback = "📝 Хотите записаться на курс? Нажмите кнопку ниже!"
)

// BuildCatalogScreen формирует список курсов. fromCommand меняет подсказку внизу.
func BuildCatalogScreen(groups []service.LanguageGroup, fromCommand bool) (string, *models.InlineKeyboardMarkup) {
	footer := catalogFooterCallback
	if fromCommand {
		footer = catalogFooterCommand
	}
	return formatting.FormatCatalog(groups) + footer, keyboard.CoursesMenu()
}

// BuildBookingMenuScreen формирует меню выбора курса
func BuildBookingMenuScreen(courses []model.Course) (string, *models.InlineKeyboardMarkup) {
	return BookingMenuText, keyboard.BookingMenu(courses)
}

// BuildBookedScreen формирует подтверждение записи на курс
func BuildBookedScreen(course *model.Course, userName string, at time.Time) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf(
		"✅ Заявка на запись принята!\n\n"+
			"📚 Курс: %s\n"+
			"👤 Имя: %s\n"+
			"📅 Дата подачи: %s\n\n"+
			"📞 Наш менеджер свяжется с вами в ближайшее время для подтверждения записи.\n\n"+
			"Контакты для связи:\n"+
			"• Телефон: +998 94 843 5105\n"+
			"• Telegram: @tash_turkdiliuz\n"+
			"• WhatsApp: +998 90 994 3433",
		course.Name,
		userName,
		formatting.FormatDateTime(at),
	)
	return text, keyboard.BookedMenu()
}

// BuildMyBookingsScreen формирует список заявок клиента
func BuildMyBookingsScreen(bookings []model.Booking) (string, *models.InlineKeyboardMarkup) {
	if len(bookings) == 0 {
		return "📭 У вас пока нет заявок.\n\nЗапишитесь на курс через /book или просто напишите, что хотите учиться.",
			keyboard.NewBuilder().Row(keyboard.BookCourseButton()).Row(keyboard.BackToMainButton()).Build()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 У вас %d %s:\n\n", len(bookings), formatting.PluralizeBookings(len(bookings)))
	for i := range bookings {
		sb.WriteString(FormatBooking(&bookings[i]))
		sb.WriteString("\n\n")
	}
	return strings.TrimRight(sb.String(), "\n"), keyboard.NewBuilder().
		Row(keyboard.ContactManagerButton()).
		Row(keyboard.BackToMainButton()).
		Build()
}

// FormatBooking форматирует заявку для отображения клиенту
func FormatBooking(booking *model.Booking) string {
	display := formatting.GetStatusDisplay(booking.Status)

	return fmt.Sprintf(
		"%s Заявка #%d\n"+
			"📚 Курс: %s\n"+
			"📊 Статус: %s\n"+
			"📅 Создана: %s",
		display.Emoji,
		booking.ID,
		booking.CourseName,
		display.Text,
		formatting.FormatTimestamp(booking.CreatedAt),
	)
}

// DisplayName собирает имя из профиля Telegram
func DisplayName(firstName, lastName string) string {
	return strings.TrimSpace(firstName + " " + lastName)
}
