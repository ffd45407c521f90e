package intent

import (
	"testing"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestDetectPreferredLanguage(t *testing.T) {
	tests := []struct {
		text string
		want model.Language
	}{
		{"Хочу изучать турецкий", model.LanguageTurkish},
		{"Interested in ENGLISH classes", model.LanguageEnglish},
		{"Есть курсы корейского?", model.LanguageKorean},
		{"inglizcha kurslar bormi", model.LanguageEnglish},
		{"한국어 배우고 싶어요", model.LanguageKorean},
		{"🇹🇷 и 🇬🇧", model.LanguageTurkish},
		{"турецкий или английский", model.LanguageTurkish},
		{"Сколько стоит?", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPreferredLanguage(tt.text))
		})
	}
}

func TestParseScheduleDays(t *testing.T) {
	for _, day := range weekdays {
		for _, word := range append(append([]string{day.name}, day.aliases...), day.stems...) {
			t.Run(word, func(t *testing.T) {
				got := ParseSchedule(word)
				assert.Equal(t, []string{day.name}, got.Days)
			})
		}
	}
}

func TestParseScheduleIgnoresWordsContainingDayAliases(t *testing.T) {
	for _, text := range []string{"что", "понятно", "спасибо, всё понятно", "среди недели", "вставить", "сбор"} {
		t.Run(text, func(t *testing.T) {
			assert.Empty(t, ParseSchedule(text).Days)
		})
	}
}

func TestParseScheduleAbbreviations(t *testing.T) {
	got := ParseSchedule("Пн, ср, пт 18:00")
	assert.Equal(t, []string{"понедельник", "среда", "пятница"}, got.Days)
	assert.Equal(t, "18:00", got.TimeFrom)

	got = ParseSchedule("по средам и в субботу")
	assert.Equal(t, []string{"среда", "суббота"}, got.Days)
}

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Schedule
	}{
		{
			name: "range with до",
			text: "с 16:00 до 17:30",
			want: Schedule{TimeFrom: "16:00", TimeTo: "17:30"},
		},
		{
			name: "range with dash and days",
			text: "Вторник и Четверг 10.00-12.00",
			want: Schedule{Days: []string{"вторник", "четверг"}, TimeFrom: "10:00", TimeTo: "12:00"},
		},
		{
			name: "range with em dash",
			text: "16:00—17:30",
			want: Schedule{TimeFrom: "16:00", TimeTo: "17:30"},
		},
		{
			name: "range with en dash",
			text: "16:00–17:30",
			want: Schedule{TimeFrom: "16:00", TimeTo: "17:30"},
		},
		{
			name: "range with spaces",
			text: "16 00 до 17 00",
			want: Schedule{TimeFrom: "16:00", TimeTo: "17:00"},
		},
		{
			name: "range with to",
			text: "mon 9 to 11",
			want: Schedule{TimeFrom: "09:00", TimeTo: "11:00"},
		},
		{
			name: "single time",
			text: "можно в субботу в 17:00",
			want: Schedule{Days: []string{"суббота"}, TimeFrom: "17:00"},
		},
		{
			name: "bare hour",
			text: "в 9",
			want: Schedule{TimeFrom: "09:00"},
		},
		{
			name: "afternoon",
			text: "удобно после обеда",
			want: Schedule{TimeFrom: "16:00"},
		},
		{
			name: "explicit time wins over afternoon",
			text: "после обеда в 15:30",
			want: Schedule{TimeFrom: "15:30"},
		},
		{
			name: "phone digits are not a time",
			text: "Иван +998901234567, можно в субботу в 17:00",
			want: Schedule{Days: []string{"суббота"}, TimeFrom: "17:00"},
		},
		{
			name: "invalid hour ignored",
			text: "мне 25 лет",
			want: Schedule{},
		},
		{
			name: "nothing",
			text: "Анна",
			want: Schedule{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSchedule(tt.text))
		})
	}
}

func TestParseScheduleDaysOrdered(t *testing.T) {
	got := ParseSchedule("суббота, среда и понедельник")
	assert.Equal(t, []string{"понедельник", "среда", "суббота"}, got.Days)
}

func TestScheduleSummary(t *testing.T) {
	assert.Equal(t, "Дни: суббота; Время: 17:00", Schedule{Days: []string{"суббота"}, TimeFrom: "17:00"}.Summary())
	assert.Equal(t, "Время: 10:00-12:00", Schedule{TimeFrom: "10:00", TimeTo: "12:00"}.Summary())
	assert.Empty(t, Schedule{}.Summary())
}

func TestScheduleMerge(t *testing.T) {
	base := Schedule{Days: []string{"понедельник"}, TimeFrom: "10:00"}
	merged := base.Merge(Schedule{TimeTo: "12:00"})
	assert.Equal(t, Schedule{Days: []string{"понедельник"}, TimeFrom: "10:00", TimeTo: "12:00"}, merged)
}

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"+998 90 123 45 67 меня зовут Ali", "+998 90 123 45 67"},
		{"+998901234567", "+998901234567"},
		{"мой номер 90-123-45-67", "90-123-45-67"},
		{"звоните +7 999 123 45 67", "+7 999 123 45 67"},
		{"без номера", ""},
		{"курс 2025 года", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPhone(tt.text))
		})
	}
}

func TestDetectBookingIntent(t *testing.T) {
	assert.True(t, DetectBookingIntent("Хочу записаться"))
	assert.True(t, DetectBookingIntent("Запишите меня на A1"))
	assert.True(t, DetectBookingIntent("нужна консультация"))
	assert.True(t, DetectBookingIntent("Можно пробный урок?"))
	assert.True(t, DetectBookingIntent("I want to sign up"))
	assert.False(t, DetectBookingIntent("Сколько стоит курс?"))
}

func TestAsksForContacts(t *testing.T) {
	assert.True(t, AsksForContacts("Дай контакты"))
	assert.True(t, AsksForContacts("Какой у вас адрес?"))
	assert.True(t, AsksForContacts("Где находитесь?"))
	assert.False(t, AsksForContacts("Сколько стоит?"))
}

func TestGuessName(t *testing.T) {
	tests := []struct {
		text  string
		phone string
		want  string
	}{
		{"Иван +998901234567, можно в субботу в 17:00", "+998901234567", "Иван"},
		{"+998 90 123 45 67 меня зовут Ali", "+998 90 123 45 67", "Ali"},
		{"+998901234567, анна петрова", "+998901234567", "Анна Петрова"},
		{"вот мой номер +998901234567", "+998901234567", ""},
		{"+998901234567", "+998901234567", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, GuessName(tt.text, tt.phone))
		})
	}
}

func TestTitleName(t *testing.T) {
	assert.Equal(t, "Анна", TitleName("  анна "))
	assert.Equal(t, "Анна Петрова", TitleName("АННА ПЕТРОВА"))
}
