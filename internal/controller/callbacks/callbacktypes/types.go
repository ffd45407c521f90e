package callbacktypes

import (
	"github.com/bonuseducation/crm_bot/internal/conversation"
	"github.com/bonuseducation/crm_bot/internal/service"
	"go.uber.org/zap"
)

// Callback data, которые отправляют inline-кнопки бота
const (
	Courses        = "courses"
	Contact        = "contact"
	About          = "about"
	BookCourse     = "book_course"
	ContactManager = "contact_manager"
	BackToMain     = "back_to_main"
	MyBookings     = "my_bookings"
	Noop           = "noop"

	BookCoursePrefix = "book_" // book_<course_id>
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService    *service.UserService
	CatalogService *service.CatalogService
	BookingService *service.BookingService
	Machine        *conversation.Machine
	Logger         *zap.Logger
}
