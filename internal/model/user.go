package model

import "strings"

// User - клиент, написавший боту
type User struct {
	ID                    int64        `json:"id"`
	TelegramID            int64        `json:"telegram_id"`
	Username              *string      `json:"username"`
	FirstName             string       `json:"first_name"`
	LastName              *string      `json:"last_name"`
	Phone                 *string      `json:"phone"`
	InstagramUsername     *string      `json:"instagram_username"`
	Level                 *string      `json:"level"`
	Source                string       `json:"source"`
	Status                FunnelStatus `json:"status"`
	PreferredLanguage     Language     `json:"preferred_language,omitempty"`
	FirstContactDate      string       `json:"first_contact_date"`
	FirstCallResponse     *string      `json:"first_call_response"`
	FirstCallDate         *string      `json:"first_call_date"`
	SecondContactResponse *string      `json:"second_contact_response"`
	SecondContactDate     *string      `json:"second_contact_date"`
	Decision              *string      `json:"decision"`
	DecisionDate          *string      `json:"decision_date"`
	Result                *string      `json:"result"`
	IsActive              *bool        `json:"is_active"`
	CreatedAt             Timestamp    `json:"created_at"`
	LastActivity          Timestamp    `json:"last_activity"`
	UpdatedAt             Timestamp    `json:"updated_at,omitzero"`

	Extra Extra `json:"-"`
}

type userJSON User

func (u *User) UnmarshalJSON(data []byte) error {
	return decodeWithExtra(data, (*userJSON)(u), &u.Extra)
}

func (u User) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(userJSON(u), u.Extra)
}

// Active возвращает флаг активности (по умолчанию true)
func (u *User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

// DisplayName возвращает имя для карточек в панели
func (u *User) DisplayName() string {
	full := strings.TrimSpace(u.FirstName + " " + StringValue(u.LastName))
	if full != "" {
		return full
	}
	if name := StringValue(u.Username); name != "" {
		return name
	}
	return "Не указано"
}

// StringPtr возвращает указатель на строку; пустая строка даёт nil
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue разыменовывает указатель, nil даёт пустую строку
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// BoolPtr возвращает указатель на значение
func BoolPtr(b bool) *bool {
	return &b
}
