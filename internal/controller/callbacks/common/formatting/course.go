package formatting

import (
	"fmt"
	"strings"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/service"
)

var levelEmojis = []struct {
	level string
	emoji string
}{
	{"A1", "🇹🇷"},
	{"A2", "🎯"},
	{"B1", "⭐"},
	{"B2", "🚀"},
	{"C1", "👑"},
}

// LevelEmoji возвращает emoji уровня по названию курса
func LevelEmoji(courseName string) string {
	for _, l := range levelEmojis {
		if strings.Contains(courseName, l.level) {
			return l.emoji
		}
	}
	return "🎓"
}

// LanguageFlag возвращает флаг направления
func LanguageFlag(lang model.Language) string {
	lower := strings.ToLower(string(lang))
	switch {
	case strings.Contains(lower, "тур"):
		return "🇹🇷"
	case strings.Contains(lower, "англ"):
		return "🇬🇧"
	case strings.Contains(lower, "коре"):
		return "🇰🇷"
	default:
		return "🎓"
	}
}

// FormatCourse форматирует курс для списка
func FormatCourse(course model.Course) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "  %s %s\n", LevelEmoji(course.Name), course.Name)
	if course.Description != "" {
		fmt.Fprintf(&sb, "     %s\n", course.Description)
	}
	if course.Duration != "" {
		fmt.Fprintf(&sb, "     ⏱ %s\n", course.Duration)
	}
	if course.Price != "" {
		fmt.Fprintf(&sb, "     💰 %s\n", course.Price)
	}
	return sb.String()
}

// FormatCatalog форматирует курсы, сгруппированные по языкам
func FormatCatalog(groups []service.LanguageGroup) string {
	if len(groups) == 0 {
		return "📚 Сейчас нет открытых курсов.\n\nНапишите нам, и менеджер подберёт вариант обучения."
	}

	var sb strings.Builder
	sb.WriteString("Наши курсы:\n\n")
	for _, group := range groups {
		fmt.Fprintf(&sb, "%s %s (%d %s):\n",
			LanguageFlag(group.Language),
			group.Language,
			len(group.Courses),
			PluralizeCourses(len(group.Courses)),
		)
		for _, course := range group.Courses {
			sb.WriteString(FormatCourse(course))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
