package conversation

import (
	"strings"

	"github.com/bonuseducation/crm_bot/internal/intent"
)

// Контакты учебного центра
const (
	ContactPhones    = "+998 94 843 5105 / +998 93 843 5105"
	ContactTelegram  = "@tash_turkdiliuz"
	ContactInstagram = "@turkdili.uz"
	ContactAddress   = "г. Ташкент, Мирободский район, ул. Нуронийлар, 19"
)

const (
	ContactsText = "📞 Наши контакты:\n\n" +
		"📱 Телефон: " + ContactPhones + "\n" +
		"💬 Telegram: " + ContactTelegram + "\n" +
		"📷 Instagram: " + ContactInstagram + "\n" +
		"📍 Адрес: " + ContactAddress

	askNameText         = "Супер! Запишу вас. Как вас зовут?"
	askPhoneText        = "Отлично! Теперь отправьте номер телефона для связи (например: +998 90 123 45 67)"
	askPhoneFormatText  = "Пожалуйста, отправьте номер телефона в формате +998 ..."
	askFullNameText     = "Спасибо! Записал номер. Уточните, пожалуйста, ваше полное имя."
	leadNotes           = "Заявка из чата: авто-создание"
	leadNotesOneMessage = "Заявка из чата: авто-создание (имя и телефон одним сообщением)"

	// ErrorReplyText уходит клиенту, если ход не удалось обработать
	ErrorReplyText = "❌ Произошла ошибка. Попробуйте позже или свяжитесь с нами: +998 94 843 5105"
)

// Запасные ответы, когда модель недоступна
const (
	FallbackCourses = "🇹🇷 Отлично, что интересуетесь турецким языком!\n\n" +
		"📚 Наши курсы:\n" +
		"🇹🇷 A1 - Начальный (2 мес)\n" +
		"🎯 A2 - Элементарный (2 мес)\n" +
		"⭐ B1 - Средний (3 мес)\n" +
		"🚀 B2 - Продвинутый (3 мес)\n" +
		"👑 C1 - Профессиональный (4 мес)\n\n" +
		"Какой уровень вас интересует?"

	FallbackPricing = "💰 Стоимость курсов:\n\n" +
		"🇹🇷 A1-A2: 150,000 сум/месяц\n" +
		"⭐ B1-B2: 200,000 сум/месяц\n" +
		"👑 C1: 250,000 сум/месяц\n" +
		"👤 Индивидуально: 300,000 сум/месяц\n\n" +
		"Есть скидки при оплате за весь курс!"

	FallbackStartDates = "📅 Новые группы стартуют каждый месяц!\n\n" +
		"🗓 Ближайшие даты:\n" +
		"• A1: 1 октября\n" +
		"• B1: 5 октября\n" +
		"• A2: 10 октября\n\n" +
		"Хотите записаться на конкретный курс?"

	FallbackGenericQuota = "🇹🇷 Привет! Я помогу с изучением турецкого языка.\n\n" +
		"Могу рассказать о курсах и записать вас на консультацию. Что вас интересует?"

	FallbackGenericUnavailable = "🇹🇷 Привет! К сожалению, AI временно недоступен.\n\n" +
		"Но я все равно помогу! Вот основная информация:\n\n" +
		"📚 Курсы турецкого языка A1-C1\n" +
		"💰 От 150,000 сум/месяц\n" +
		"📞 +998 94 843 5105\n" +
		"💬 @tash_turkdiliuz\n\n" +
		"Что вас интересует?"
)

// confirmationText - ответ после создания заявки
func confirmationText(name, phone string, schedule intent.Schedule) string {
	var sb strings.Builder

	sb.WriteString("✅ Заявка создана!\n\n")
	sb.WriteString("Имя: " + name + "\n")
	sb.WriteString("Телефон: " + phone + "\n")
	sb.WriteString("Статус: ожидает подтверждения.\n\n")

	if !schedule.Empty() {
		prefs := make([]string, 0, 2)
		if len(schedule.Days) > 0 {
			prefs = append(prefs, strings.Join(schedule.Days, ", "))
		}
		if t := schedule.TimeRange(); t != "" {
			prefs = append(prefs, t)
		}
		sb.WriteString("Предпочтения: " + strings.Join(prefs, " ") + "\n\n")
	}

	sb.WriteString("Мы свяжемся с вами в течение 15–30 минут в рабочее время (Пн–Пт 9:00–18:00).\n\n")
	sb.WriteString("📍 Адрес: " + ContactAddress + "\n")
	sb.WriteString("📞 Телефон: " + ContactPhones + "\n")
	sb.WriteString("💬 Telegram: " + ContactTelegram + "\n\n")
	sb.WriteString("Если удобно, напишите предпочитаемое время звонка.")

	return sb.String()
}

// leadNotesWith добавляет к заметке предпочтения по дням и времени
func leadNotesWith(base string, schedule intent.Schedule) string {
	if summary := schedule.Summary(); summary != "" {
		return base + " | " + summary
	}
	return base
}
