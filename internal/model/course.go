package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

const DefaultCoursePrice = "Уточняется на консультации"

type Course struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Language       Language `json:"language"`
	Level          *string  `json:"level"`
	Status         *string  `json:"status"`
	Duration       string   `json:"duration"`
	DurationMonths *int     `json:"duration_months"`
	Price          string   `json:"price"`
	IsActive       *bool    `json:"is_active"`
	Days           []string `json:"days"`
	TimeFrom       *string  `json:"time_from"`
	TimeTo         *string  `json:"time_to"`
	TeacherID      *int64   `json:"teacher_id"`
	TeacherName    *string  `json:"teacher_name"`

	Extra Extra `json:"-"`
}

type courseJSON Course

func (c *Course) UnmarshalJSON(data []byte) error {
	return decodeWithExtra(data, (*courseJSON)(c), &c.Extra)
}

func (c Course) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(courseJSON(c), c.Extra)
}

// Active возвращает флаг активности (по умолчанию true)
func (c *Course) Active() bool {
	return c.IsActive == nil || *c.IsActive
}

// ApplyDefaults заполняет отсутствующие поля курса
func (c *Course) ApplyDefaults() {
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.Duration == "" {
		months := 2
		if c.DurationMonths != nil {
			months = *c.DurationMonths
		}
		c.Duration = fmt.Sprintf("%d месяца", months)
	}
	if c.Price == "" {
		c.Price = DefaultCoursePrice
	}
	if c.IsActive == nil {
		c.IsActive = BoolPtr(true)
	}
	if c.Days == nil {
		c.Days = []string{}
	}
}

// Teacher - преподаватель. Курсы ссылаются на него мягко, удаление не каскадное.
type Teacher struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Specialization  string     `json:"specialization"`
	Experience      string     `json:"experience"`
	ExperienceYears *int       `json:"experience_years,omitempty"`
	Languages       StringList `json:"languages"`
	IsActive        *bool      `json:"is_active"`

	Extra Extra `json:"-"`
}

type teacherJSON Teacher

func (t *Teacher) UnmarshalJSON(data []byte) error {
	return decodeWithExtra(data, (*teacherJSON)(t), &t.Extra)
}

func (t Teacher) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(teacherJSON(t), t.Extra)
}

// Active возвращает флаг активности (по умолчанию true)
func (t *Teacher) Active() bool {
	return t.IsActive == nil || *t.IsActive
}

// ApplyDefaults заполняет отсутствующие поля преподавателя
func (t *Teacher) ApplyDefaults() {
	if t.Experience == "" {
		years := 5
		if t.ExperienceYears != nil {
			years = *t.ExperienceYears
		}
		t.Experience = fmt.Sprintf("%d лет", years)
	}
	if len(t.Languages) == 0 {
		t.Languages = StringList{"турецкий", "русский"}
	}
	if t.IsActive == nil {
		t.IsActive = BoolPtr(true)
	}
}

// StringList принимает как JSON-массив, так и строку через запятую
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return fmt.Errorf("languages must be a list or a string: %w", err)
	}

	*l = SplitList(joined)
	return nil
}

// SplitList разбивает строку по запятым, отбрасывая пустые элементы
func SplitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
