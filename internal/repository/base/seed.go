package base

import (
	"time"

	"github.com/bonuseducation/crm_bot/internal/model"
)

type seedCourse struct {
	name        string
	description string
	duration    string
}

var seedCourses = []seedCourse{
	{"Турецкий язык A1 (Начальный уровень)", "Изучение турецкого языка с нуля. Основы грамматики, лексика, произношение", "2 месяца"},
	{"Турецкий язык A2 (Элементарный уровень)", "Продолжение изучения турецкого языка. Расширение словарного запаса и грамматики", "2 месяца"},
	{"Турецкий язык B1 (Средний уровень)", "Средний уровень турецкого языка. Сложные грамматические конструкции, разговорная практика", "3 месяца"},
	{"Турецкий язык B2 (Средне-продвинутый уровень)", "Продвинутый уровень турецкого языка. Свободное общение, понимание сложных текстов", "3 месяца"},
	{"Турецкий язык C1 (Продвинутый уровень)", "Профессиональный уровень турецкого языка. Деловое общение, специализированная лексика", "4 месяца"},
	{"Индивидуальные занятия", "Персональные уроки турецкого языка с опытным преподавателем", "По договоренности"},
}

// Seed возвращает стартовый документ: шесть курсов, два преподавателя, две учётные записи сотрудников
func Seed(now time.Time) *model.Document {
	doc := &model.Document{
		Users:         []model.User{},
		Bookings:      []model.Booking{},
		Conversations: []model.Conversation{},
	}

	for i, c := range seedCourses {
		doc.Courses = append(doc.Courses, model.Course{
			ID:          int64(i + 1),
			Name:        c.name,
			Description: c.description,
			Duration:    c.duration,
			Price:       model.DefaultCoursePrice,
			IsActive:    model.BoolPtr(true),
		})
	}

	doc.Teachers = []model.Teacher{
		{
			ID:             1,
			Name:           "Азиза Каримова",
			Specialization: "Турецкий язык A1-A2",
			Experience:     "5 лет",
			Languages:      model.StringList{"турецкий", "узбекский", "русский"},
			IsActive:       model.BoolPtr(true),
		},
		{
			ID:             2,
			Name:           "Мухаммад Турсун",
			Specialization: "Турецкий язык B1-C1",
			Experience:     "8 лет",
			Languages:      model.StringList{"турецкий", "узбекский", "русский"},
			IsActive:       model.BoolPtr(true),
		},
	}

	// Пароли: "87654321b" и "password" (SHA-256, как в старой панели)
	doc.Employees = []model.Employee{
		{
			ID:           1,
			Name:         "Главный Администратор",
			Role:         "Супер Администратор",
			Username:     "bonusedu",
			PasswordHash: "a6958ecd9b0477cda81904b22e39d8f65cfd922c1ff733aa155c6e9bc62d5e78",
			Email:        "admin@bonuseducation.uz",
			Phone:        "+998901234567",
			Permissions:  append([]model.Permission(nil), model.AllPermissions...),
			IsActive:     model.BoolPtr(true),
			CreatedAt:    model.NewTimestamp(now),
		},
		{
			ID:           2,
			Name:         "Администратор",
			Role:         "Администратор",
			Username:     "admin",
			PasswordHash: "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8",
			Email:        "admin2@bonuseducation.uz",
			Phone:        "+998901234568",
			Permissions:  append([]model.Permission(nil), model.AllPermissions...),
			IsActive:     model.BoolPtr(true),
			CreatedAt:    model.NewTimestamp(now),
		},
	}

	Normalize(doc)
	return doc
}
