package panel

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const (
	requestIDHeader = "X-Request-Id"

	requestIDKey contextKey = "request_id"
	employeeKey  contextKey = "employee"
)

// withRequestID берёт X-Request-Id из запроса или создаёт новый
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext возвращает id запроса ("" вне HTTP-запроса)
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// EmployeeFromContext возвращает сотрудника, прошедшего авторизацию
func EmployeeFromContext(ctx context.Context) *model.Employee {
	employee, _ := ctx.Value(employeeKey).(*model.Employee)
	return employee
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// withAccessLog пишет строку лога на каждый запрос
func (s *Server) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		s.logger.Info("http_request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", RequestIDFromContext(r.Context())),
		)
	})
}

// withAuth проверяет HTTP Basic по активным сотрудникам
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			s.unauthorized(w, r)
			return
		}

		employee, err := s.employees.Authenticate(r.Context(), username, password)
		if err != nil {
			s.logger.Warn("Panel login failed",
				zap.String("username", username),
				zap.String("request_id", RequestIDFromContext(r.Context())),
				zap.Error(err))
			s.unauthorized(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), employeeKey, employee)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// require пропускает запрос, только если у сотрудника есть доступ к разделу
func (s *Server) require(p model.Permission, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		employee := EmployeeFromContext(r.Context())
		if employee == nil {
			s.unauthorized(w, r)
			return
		}
		if !employee.Can(p) {
			s.logger.Warn("Panel access denied",
				zap.String("username", employee.Username),
				zap.String("permission", string(p)),
				zap.String("request_id", RequestIDFromContext(r.Context())))
			writeJSONError(w, r, http.StatusForbidden, "Доступ запрещен")
			return
		}
		next(w, r)
	})
}

func (s *Server) unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", `Basic realm="Bonus Education CRM", charset="UTF-8"`)
	writeJSONError(w, r, http.StatusUnauthorized, "Не авторизован")
}
