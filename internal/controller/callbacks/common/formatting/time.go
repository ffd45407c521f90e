package formatting

import (
	"time"

	"github.com/bonuseducation/crm_bot/internal/model"
)

// FormatDateTime форматирует дату и время по Ташкенту
func FormatDateTime(t time.Time) string {
	return t.In(model.Tashkent).Format("02.01.2006 15:04")
}

// FormatTimestamp форматирует отметку времени из CRM; пустая даёт "-"
func FormatTimestamp(ts model.Timestamp) string {
	if ts.Time.IsZero() {
		if d := ts.Date(); d != "" {
			return d
		}
		return "-"
	}
	return FormatDateTime(ts.Time)
}
