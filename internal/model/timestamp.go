package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// Tashkent - часовой пояс учебного центра. Время без зоны в старых файлах считается ташкентским.
var Tashkent = time.FixedZone("Asia/Tashkent", 5*60*60)

const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp - момент времени в JSON-документе.
// Нераспознанная строка сохраняется как есть и записывается обратно без изменений.
type Timestamp struct {
	time.Time
	raw string
}

// NewTimestamp оборачивает время
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// IsZero сообщает, что значение отсутствует
func (t Timestamp) IsZero() bool {
	return t.Time.IsZero() && t.raw == ""
}

// Date возвращает дату в формате YYYY-MM-DD по ташкентскому времени
func (t Timestamp) Date() string {
	if t.Time.IsZero() {
		if len(t.raw) >= 10 {
			return t.raw[:10]
		}
		return ""
	}
	return t.In(Tashkent).Format("2006-01-02")
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		if t.raw != "" {
			return json.Marshal(t.raw)
		}
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(timestampLayout))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = Timestamp{}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}

	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	for _, layout := range naiveLayouts {
		if parsed, err := time.ParseInLocation(layout, s, Tashkent); err == nil {
			t.Time = parsed
			return nil
		}
	}

	t.raw = s
	return nil
}
