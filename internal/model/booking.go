package model

// Курс и преподаватель по умолчанию для заявок из свободного чата
const (
	UnassignedCourseName  = "Будет уточнено"
	UnassignedTeacherName = "Будет назначен"
	UnknownPhone          = "Не указан"
)

// Booking - заявка на обучение
type Booking struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"user_id"` // telegram_id клиента
	UserName    string       `json:"user_name"`
	UserPhone   string       `json:"user_phone"`
	CourseID    *int64       `json:"course_id"`
	CourseName  string       `json:"course_name"`
	TeacherID   *int64       `json:"teacher_id"`
	TeacherName string       `json:"teacher_name"`
	Status      FunnelStatus `json:"status"`
	Notes       string       `json:"notes"`
	CreatedAt   Timestamp    `json:"created_at"`
	UpdatedAt   Timestamp    `json:"updated_at,omitzero"`

	Extra Extra `json:"-"`
}

type bookingJSON Booking

func (b *Booking) UnmarshalJSON(data []byte) error {
	return decodeWithExtra(data, (*bookingJSON)(b), &b.Extra)
}

func (b Booking) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(bookingJSON(b), b.Extra)
}

// Conversation - одна реплика клиента и ответ бота
type Conversation struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Message    string    `json:"message"`
	Response   string    `json:"response"`
	CreatedAt  Timestamp `json:"created_at"`

	Extra Extra `json:"-"`
}

type conversationJSON Conversation

func (c *Conversation) UnmarshalJSON(data []byte) error {
	return decodeWithExtra(data, (*conversationJSON)(c), &c.Extra)
}

func (c Conversation) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(conversationJSON(c), c.Extra)
}
