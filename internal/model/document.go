package model

// Statistics - производные счётчики. Пересчитываются при каждой загрузке и перед каждой записью.
type Statistics struct {
	TotalUsers         int `json:"total_users"`
	TotalConversations int `json:"total_conversations"`
	TotalBookings      int `json:"total_bookings"`
	ActiveCourses      int `json:"active_courses"`
	ActiveTeachers     int `json:"active_teachers"`
}

type AIPrompts struct {
	SystemPrompt *string `json:"system_prompt"`

	Extra Extra `json:"-"`
}

type aiPromptsJSON AIPrompts

func (p *AIPrompts) UnmarshalJSON(data []byte) error {
	return decodeWithExtra(data, (*aiPromptsJSON)(p), &p.Extra)
}

func (p AIPrompts) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(aiPromptsJSON(p), p.Extra)
}

// Document - весь файл CRM целиком
type Document struct {
	Users         []User         `json:"users"`
	Courses       []Course       `json:"courses"`
	Employees     []Employee     `json:"employees"`
	Teachers      []Teacher      `json:"teachers"`
	Bookings      []Booking      `json:"bookings"`
	Conversations []Conversation `json:"conversations"`
	Statistics    Statistics     `json:"statistics"`
	AIPrompts     AIPrompts      `json:"ai_prompts"`

	Extra Extra `json:"-"`
}

type documentJSON Document

func (d *Document) UnmarshalJSON(data []byte) error {
	return decodeWithExtra(data, (*documentJSON)(d), &d.Extra)
}

func (d Document) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(documentJSON(d), d.Extra)
}

// Recount пересчитывает статистику по коллекциям
func (d *Document) Recount() {
	d.Statistics.TotalUsers = len(d.Users)
	d.Statistics.TotalConversations = len(d.Conversations)
	d.Statistics.TotalBookings = len(d.Bookings)

	d.Statistics.ActiveCourses = 0
	for i := range d.Courses {
		if d.Courses[i].Active() {
			d.Statistics.ActiveCourses++
		}
	}

	d.Statistics.ActiveTeachers = 0
	for i := range d.Teachers {
		if d.Teachers[i].Active() {
			d.Statistics.ActiveTeachers++
		}
	}
}
