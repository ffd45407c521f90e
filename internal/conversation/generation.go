package conversation

import (
	"context"
	"errors"
	"strings"

	"github.com/bonuseducation/crm_bot/internal/ai"
	"github.com/bonuseducation/crm_bot/internal/model"
)

// Generator - генеративная модель: промпт на входе, текст на выходе
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// FailureReason - почему модель не ответила
type FailureReason string

const (
	FailureNone        FailureReason = ""
	FailureQuota       FailureReason = "quota"
	FailureTimeout     FailureReason = "timeout"
	FailureEmpty       FailureReason = "empty"
	FailureUnavailable FailureReason = "unavailable"
)

// Generation - результат обращения к модели: либо текст, либо причина отказа
type Generation struct {
	Text    string
	Failure FailureReason
}

// OK сообщает, что модель вернула текст
func (g Generation) OK() bool {
	return g.Failure == FailureNone && g.Text != ""
}

// Classify переводит ошибку клиента модели в причину отказа
func Classify(err error) FailureReason {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ai.ErrQuota):
		return FailureQuota
	case errors.Is(err, context.DeadlineExceeded):
		return FailureTimeout
	case errors.Is(err, ai.ErrEmptyResponse):
		return FailureEmpty
	default:
		return FailureUnavailable
	}
}

type fallbackRule struct {
	keywords []string
	text     string
}

// Проверяются по порядку, срабатывает первое совпадение
var fallbackRules = []fallbackRule{
	{[]string{"курс", "уровень", "изуч", "учит", "обуч"}, FallbackCourses},
	{[]string{"цена", "стоит", "стоимость", "деньг", "оплат"}, FallbackPricing},
	{[]string{"начал", "старт", "когда", "дата"}, FallbackStartDates},
}

// FallbackReply выбирает запасной ответ по ключевым словам сообщения.
// Общий ответ при исчерпанной квоте отличается от ответа при прочих сбоях.
func FallbackReply(reason FailureReason, message string) string {
	t := strings.ToLower(message)
	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			if strings.Contains(t, kw) {
				return rule.text
			}
		}
	}

	if reason == FailureQuota {
		return FallbackGenericQuota
	}
	return FallbackGenericUnavailable
}

// DefaultSystemPrompt - встроенный промпт, если в CRM не задан свой
const DefaultSystemPrompt = `Ты - AI-менеджер учебного центра Bonus Education.
Задача: быстро выявлять потребности, предлагать подходящие программы и доводить до записи.
Важная политика рекомендаций: фокус на Турецком языке (как основном продукте). Английский/Корейский упоминай, что есть, но мягко перенаправляй на Турецкий (быстрее результат за 3–4 месяца против 6–24 у др. языков; высокая разговорная практика).

Контекст услуг:
- Языки обучения: Турецкий (основной), а также Английский, Корейский.
- Уровни: A1–C1, групповые и индивидуальные занятия, онлайн/офлайн.
- Важно: Отвечай на русском, дружелюбно, продающе, с фокусом на следующем шаге.

Стиль и формат:
- Короткие фразы, один вопрос за раз.
- Списки по делу, без «воды». 2–5 пунктов максимум.
- Предлагай конкретный следующий шаг: пробный урок/консультация/запись.
- Контакты не давай, пока явно не попросят.
- Уточняй интересующий язык (Турецкий/Английский/Корейский), уровень и формат.
`

// PromptInput - всё, из чего собирается промпт
type PromptInput struct {
	Override string // промпт из CRM, "" - встроенный
	Language model.Language
	History  []model.Conversation // в хронологическом порядке
	Message  string
}

// BuildPrompt собирает полный промпт для модели
func BuildPrompt(in PromptInput) string {
	var sb strings.Builder

	if override := strings.TrimSpace(in.Override); override != "" {
		sb.WriteString(override)
		sb.WriteString("\n\n")
	} else {
		sb.WriteString(DefaultSystemPrompt)
	}

	if in.Language != "" && in.Language != model.LanguageTurkish {
		lang := string(in.Language)
		sb.WriteString("\n\nВажно: Клиента интересует обучение по языку '" + lang + "'. ")
		sb.WriteString("Дай информацию и предложения применительно к '" + lang +
			"' (структура курсов, формат, цены как в центре аналогично турецкому направлению, без выдумывания несуществующих фактов).")
	}

	if len(in.History) > 0 {
		sb.WriteString("\n\nКонтекст предыдущих сообщений:\n")
		for _, c := range in.History {
			sb.WriteString("Пользователь: " + c.Message + "\n")
			sb.WriteString("Бот: " + c.Response + "\n")
		}
	}

	sb.WriteString("\n\nТекущий вопрос пользователя: " + in.Message)
	sb.WriteString("\n\nОтветь естественно, учитывая контекст диалога. НЕ здоровайся заново, если это продолжение разговора.")

	return sb.String()
}
