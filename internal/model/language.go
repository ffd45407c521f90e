package model

// Language - язык, который хочет изучать клиент. Пустое значение значит «не определён».
type Language string

const (
	LanguageTurkish Language = "Турецкий"
	LanguageEnglish Language = "Английский"
	LanguageKorean  Language = "Корейский"
)

// DefaultLanguage - основное направление центра
const DefaultLanguage = LanguageTurkish
