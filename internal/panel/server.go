// Package panel - HTTP API административной панели CRM
package panel

import (
	"net/http"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	defaultRecentLimit        = 50
	defaultConversationsLimit = 100
)

// Config - зависимости панели
type Config struct {
	Users     *service.UserService
	Catalog   *service.CatalogService
	Bookings  *service.BookingService
	CRM       *service.CRMService
	Employees *service.EmployeeService
	Logger    *zap.Logger
}

type Server struct {
	users     *service.UserService
	catalog   *service.CatalogService
	bookings  *service.BookingService
	crm       *service.CRMService
	employees *service.EmployeeService
	logger    *zap.Logger

	router *mux.Router
}

func New(cfg Config) *Server {
	s := &Server{
		users:     cfg.Users,
		catalog:   cfg.Catalog,
		bookings:  cfg.Bookings,
		crm:       cfg.CRM,
		employees: cfg.Employees,
		logger:    cfg.Logger,
		router:    mux.NewRouter(),
	}
	s.routes()
	return s
}

// Handler возвращает корневой обработчик для http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router
	r.Use(withRequestID, s.withAccessLog)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSONError(w, req, http.StatusNotFound, "Не найдено")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSONError(w, req, http.StatusMethodNotAllowed, "Метод не поддерживается")
	})

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.withAuth)

	api.HandleFunc("/me", s.handleMe).Methods(http.MethodGet)

	// Дашборд
	api.Handle("/stats", s.require(model.PermissionDashboard, s.handleStats)).Methods(http.MethodGet)

	// Клиенты
	api.Handle("/users", s.require(model.PermissionUsers, s.handleListUsers)).Methods(http.MethodGet)
	api.Handle("/users/{id:[0-9]+}", s.require(model.PermissionUsers, s.handleGetUser)).Methods(http.MethodGet)
	api.Handle("/users/{id:[0-9]+}", s.require(model.PermissionUsers, s.handleUpdateUser)).Methods(http.MethodPatch, http.MethodPut)
	api.Handle("/users/{id:[0-9]+}", s.require(model.PermissionUsers, s.handleDeleteUser)).Methods(http.MethodDelete)
	api.Handle("/users/{id:[0-9]+}/status", s.require(model.PermissionUsers, s.handleUserStatus)).Methods(http.MethodPost)
	api.Handle("/users/{id:[0-9]+}/conversations", s.require(model.PermissionUsers, s.handleUserConversations)).Methods(http.MethodGet)

	// Курсы
	api.Handle("/courses", s.require(model.PermissionCourses, s.handleListCourses)).Methods(http.MethodGet)
	api.Handle("/courses", s.require(model.PermissionCourses, s.handleCreateCourse)).Methods(http.MethodPost)
	api.Handle("/courses/{id:[0-9]+}", s.require(model.PermissionCourses, s.handleGetCourse)).Methods(http.MethodGet)
	api.Handle("/courses/{id:[0-9]+}", s.require(model.PermissionCourses, s.handleUpdateCourse)).Methods(http.MethodPatch, http.MethodPut)
	api.Handle("/courses/{id:[0-9]+}", s.require(model.PermissionCourses, s.handleDeleteCourse)).Methods(http.MethodDelete)

	// Преподаватели
	api.Handle("/teachers", s.require(model.PermissionTeachers, s.handleListTeachers)).Methods(http.MethodGet)
	api.Handle("/teachers", s.require(model.PermissionTeachers, s.handleCreateTeacher)).Methods(http.MethodPost)
	api.Handle("/teachers/{id:[0-9]+}", s.require(model.PermissionTeachers, s.handleGetTeacher)).Methods(http.MethodGet)
	api.Handle("/teachers/{id:[0-9]+}", s.require(model.PermissionTeachers, s.handleUpdateTeacher)).Methods(http.MethodPatch, http.MethodPut)
	api.Handle("/teachers/{id:[0-9]+}", s.require(model.PermissionTeachers, s.handleDeleteTeacher)).Methods(http.MethodDelete)

	// Заявки
	api.Handle("/bookings", s.require(model.PermissionBookings, s.handleListBookings)).Methods(http.MethodGet)
	api.Handle("/bookings/recent", s.require(model.PermissionBookings, s.handleRecentBookings)).Methods(http.MethodGet)
	api.Handle("/bookings/{id:[0-9]+}", s.require(model.PermissionBookings, s.handleGetBooking)).Methods(http.MethodGet)
	api.Handle("/bookings/{id:[0-9]+}", s.require(model.PermissionBookings, s.handleUpdateBooking)).Methods(http.MethodPatch, http.MethodPut)
	api.Handle("/bookings/{id:[0-9]+}", s.require(model.PermissionBookings, s.handleDeleteBooking)).Methods(http.MethodDelete)
	api.Handle("/bookings/{id:[0-9]+}/status", s.require(model.PermissionKanban, s.handleBookingStatus)).Methods(http.MethodPost)

	// Воронка и аналитика
	api.Handle("/kanban", s.require(model.PermissionKanban, s.handleKanban)).Methods(http.MethodGet)
	api.Handle("/analytics", s.require(model.PermissionAnalytics, s.handleAnalytics)).Methods(http.MethodGet)
	api.Handle("/conversations", s.require(model.PermissionAnalytics, s.handleConversations)).Methods(http.MethodGet)

	// Промпт ассистента
	api.Handle("/ai-prompt", s.require(model.PermissionAITrainer, s.handleGetPrompt)).Methods(http.MethodGet)
	api.Handle("/ai-prompt", s.require(model.PermissionAITrainer, s.handleSetPrompt)).Methods(http.MethodPut, http.MethodPost)

	// Сотрудники
	api.Handle("/employees", s.require(model.PermissionEmployees, s.handleListEmployees)).Methods(http.MethodGet)
	api.Handle("/employees", s.require(model.PermissionEmployees, s.handleCreateEmployee)).Methods(http.MethodPost)
	api.Handle("/employees/{id:[0-9]+}", s.require(model.PermissionEmployees, s.handleUpdateEmployee)).Methods(http.MethodPatch, http.MethodPut)
	api.Handle("/employees/{id:[0-9]+}", s.require(model.PermissionEmployees, s.handleDeleteEmployee)).Methods(http.MethodDelete)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newEmployeeView(EmployeeFromContext(r.Context())))
}
