// Package intent разбирает свободный текст клиента: язык обучения, дни и время,
// номер телефона, желание записаться и просьбу дать контакты.
package intent

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/bonuseducation/crm_bot/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var phoneRE = regexp.MustCompile(`(?:\+?998|\+?7|\+?90)?[\s\-()]?\d{2,3}[\s\-)]?\d{3}[\s\-]?\d{2}[\s\-]?\d{2}`)

type languageMarkers struct {
	lang    model.Language
	markers []string
}

// Порядок важен: турецкий проверяется первым
var languageTable = []languageMarkers{
	{model.LanguageTurkish, []string{"турецк", "turkish", "турк dili", "turk dili", "turk", "🇹🇷"}},
	{model.LanguageEnglish, []string{"англ", "english", "ingliz", "inglizcha", "🇬🇧", "🇺🇸"}},
	{model.LanguageKorean, []string{"корей", "korean", "han'guk", "hanguk", "한국", "🇰🇷"}},
}

var bookingMarkers = []string{
	"запис", "запиш", "хочу курс", "готов начать", "консультаци", "пробный урок", "начать обучение",
	"sign up", "enroll", "trial lesson", "book a lesson",
}

var contactMarkers = []string{
	"контакты", "дай контакты", "как связаться", "связаться с вами", "адрес", "где находитесь", "ваш номер",
}

// Фразы, которыми клиент представляется; отбрасываются при угадывании имени
var introPhrases = []string{"меня зовут", "my name is", "i am", "это", "я"}

// Слова-связки, которые не могут быть именем
var fillerWords = map[string]struct{}{
	"мой": {}, "моя": {}, "номер": {}, "телефон": {}, "тел": {}, "вот": {}, "можно": {},
	"пожалуйста": {}, "my": {}, "phone": {}, "number": {}, "is": {},
}

// DetectPreferredLanguage определяет язык, который клиент хочет изучать. Пустое значение - не определён.
func DetectPreferredLanguage(text string) model.Language {
	if text == "" {
		return ""
	}
	t := strings.ToLower(text)
	for _, entry := range languageTable {
		if containsAny(t, entry.markers) {
			return entry.lang
		}
	}
	return ""
}

// ExtractPhone возвращает первый найденный номер телефона как есть (без пробелов по краям)
func ExtractPhone(text string) string {
	return strings.TrimSpace(phoneRE.FindString(text))
}

// DetectBookingIntent сообщает, что клиент хочет записаться
func DetectBookingIntent(text string) bool {
	return containsAny(strings.ToLower(text), bookingMarkers)
}

// AsksForContacts сообщает, что клиент спрашивает контакты или адрес
func AsksForContacts(text string) bool {
	return containsAny(strings.ToLower(text), contactMarkers)
}

// TitleName приводит имя к виду «Имя Фамилия»
func TitleName(text string) string {
	// Caser хранит состояние, поэтому создаётся на каждый вызов
	return cases.Title(language.Russian).String(strings.TrimSpace(text))
}

// GuessName пытается вытащить имя из сообщения вида «Иван +998…, можно в субботу».
// Убирает номер, берёт текст до первого знака препинания и оставляет до трёх слов из букв.
func GuessName(text, phone string) string {
	rest := text
	if phone != "" {
		rest = strings.Replace(rest, phone, " ", 1)
	}

	if i := strings.IndexAny(rest, ",.;:!?\n"); i >= 0 {
		// номер мог стоять в начале: «+998…, Иван»
		if head := strings.TrimSpace(rest[:i]); head != "" {
			rest = head
		} else {
			rest = strings.TrimLeft(rest[i:], ",.;:!?\n ")
			if j := strings.IndexAny(rest, ",.;:!?\n"); j >= 0 {
				rest = rest[:j]
			}
		}
	}

	rest = strings.TrimSpace(rest)
	lower := strings.ToLower(rest)
	for _, phrase := range introPhrases {
		if strings.HasPrefix(lower, phrase+" ") {
			rest = strings.TrimSpace(rest[len(phrase):])
			break
		}
	}

	words := make([]string, 0, 3)
	for _, word := range strings.Fields(rest) {
		if !isNameWord(word) {
			break
		}
		if _, filler := fillerWords[strings.ToLower(word)]; filler {
			continue
		}
		words = append(words, word)
		if len(words) == 3 {
			break
		}
	}
	if len(words) == 0 {
		return ""
	}

	return TitleName(strings.Join(words, " "))
}

func isNameWord(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) && r != '-' && r != '\'' {
			return false
		}
	}
	return true
}

func containsAny(t string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(t, marker) {
			return true
		}
	}
	return false
}
