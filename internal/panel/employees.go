package panel

import (
	"net/http"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/service"
)

// employeeView - карточка сотрудника без хеша пароля
type employeeView struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Role        string             `json:"role"`
	Username    string             `json:"username"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	Permissions []model.Permission `json:"permissions"`
	IsActive    bool               `json:"is_active"`
	CreatedAt   model.Timestamp    `json:"created_at"`
}

func newEmployeeView(e *model.Employee) employeeView {
	permissions := e.Permissions
	if permissions == nil {
		permissions = []model.Permission{}
	}
	return employeeView{
		ID:          e.ID,
		Name:        e.Name,
		Role:        e.Role,
		Username:    e.Username,
		Email:       e.Email,
		Phone:       e.Phone,
		Permissions: permissions,
		IsActive:    e.Active(),
		CreatedAt:   e.CreatedAt,
	}
}

type employeeRequest struct {
	Name        string             `json:"name"`
	Role        string             `json:"role"`
	Username    string             `json:"username"`
	Password    string             `json:"password"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	Permissions []model.Permission `json:"permissions"`
	IsActive    *bool              `json:"is_active"`
}

func (req employeeRequest) input() service.EmployeeInput {
	return service.EmployeeInput{
		Name:        req.Name,
		Role:        req.Role,
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		Phone:       req.Phone,
		Permissions: req.Permissions,
		IsActive:    req.IsActive,
	}
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.employees.List(r.Context())
	if err != nil {
		s.fail(w, r, "list employees", err)
		return
	}

	views := make([]employeeView, 0, len(employees))
	for i := range employees {
		views = append(views, newEmployeeView(&employees[i]))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, "create employee", err)
		return
	}

	employee, err := s.employees.Create(r.Context(), req.input())
	if err != nil {
		s.fail(w, r, "create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, newEmployeeView(employee))
}

func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, "update employee", err)
		return
	}
	var req employeeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, "update employee", err)
		return
	}

	employee, err := s.employees.Update(r.Context(), id, req.input())
	if err != nil {
		s.fail(w, r, "update employee", err)
		return
	}
	writeJSON(w, http.StatusOK, newEmployeeView(employee))
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, "delete employee", err)
		return
	}
	if err := s.employees.Delete(r.Context(), id); err != nil {
		s.fail(w, r, "delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
