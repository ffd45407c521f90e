package model

import "strings"

// Permission - раздел панели, к которому у сотрудника есть доступ
type Permission string

const (
	PermissionDashboard Permission = "dashboard"
	PermissionUsers     Permission = "users"
	PermissionTeachers  Permission = "teachers"
	PermissionCourses   Permission = "courses"
	PermissionBookings  Permission = "bookings"
	PermissionKanban    Permission = "kanban"
	PermissionAnalytics Permission = "analytics"
	PermissionEmployees Permission = "employees"
	PermissionAITrainer Permission = "ai_training"
)

// AllPermissions - полный набор разделов (для администраторов)
var AllPermissions = []Permission{
	PermissionDashboard,
	PermissionUsers,
	PermissionTeachers,
	PermissionCourses,
	PermissionBookings,
	PermissionKanban,
	PermissionAnalytics,
	PermissionEmployees,
}

// adminRoleMarker - роль, содержащая это слово, имеет доступ ко всем разделам
const adminRoleMarker = "Администратор"

type Employee struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Role         string       `json:"role"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"password_hash"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Permissions  []Permission `json:"permissions"`
	IsActive     *bool        `json:"is_active"`
	CreatedAt    Timestamp    `json:"created_at"`

	Extra Extra `json:"-"`
}

type employeeJSON Employee

func (e *Employee) UnmarshalJSON(data []byte) error {
	return decodeWithExtra(data, (*employeeJSON)(e), &e.Extra)
}

func (e Employee) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(employeeJSON(e), e.Extra)
}

// Active возвращает флаг активности (по умолчанию true)
func (e *Employee) Active() bool {
	return e.IsActive == nil || *e.IsActive
}

// Can проверяет доступ сотрудника к разделу панели
func (e *Employee) Can(p Permission) bool {
	if len(e.Permissions) == 0 {
		return false
	}
	if strings.Contains(e.Role, adminRoleMarker) {
		return true
	}
	for _, granted := range e.Permissions {
		if granted == p {
			return true
		}
	}
	return false
}
