package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// EmployeeInput - данные сотрудника из панели. Пустой пароль при обновлении оставляет старый.
type EmployeeInput struct {
	Name        string
	Role        string
	Username    string
	Password    string
	Email       string
	Phone       string
	Permissions []model.Permission
	IsActive    *bool
}

type EmployeeService struct {
	employeeRepo *repository.EmployeeRepository
	logger       *zap.Logger
}

func NewEmployeeService(employeeRepo *repository.EmployeeRepository, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// Authenticate проверяет логин и пароль. Заблокированный сотрудник не проходит.
func (s *EmployeeService) Authenticate(ctx context.Context, username, password string) (*model.Employee, error) {
	employee, err := s.employeeRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	if employee == nil || !employee.Active() || !VerifyPassword(employee.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return employee, nil
}

func (s *EmployeeService) List(ctx context.Context) ([]model.Employee, error) {
	return s.employeeRepo.List(ctx)
}

// Create добавляет сотрудника, пароль хешируется bcrypt
func (s *EmployeeService) Create(ctx context.Context, in EmployeeInput) (*model.Employee, error) {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	employee := &model.Employee{
		Name:         in.Name,
		Role:         in.Role,
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: hash,
		Email:        in.Email,
		Phone:        in.Phone,
		Permissions:  in.Permissions,
		IsActive:     in.IsActive,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}

	s.logger.Info("Employee created",
		zap.Int64("employee_id", employee.ID),
		zap.String("username", employee.Username),
		zap.String("role", employee.Role),
	)

	return employee, nil
}

// Update переписывает карточку сотрудника
func (s *EmployeeService) Update(ctx context.Context, id int64, in EmployeeInput) (*model.Employee, error) {
	var hash string
	if in.Password != "" {
		var err error
		if hash, err = HashPassword(in.Password); err != nil {
			return nil, err
		}
	}

	employee, err := s.employeeRepo.Update(ctx, id, func(e *model.Employee) error {
		if in.Name != "" {
			e.Name = in.Name
		}
		if in.Role != "" {
			e.Role = in.Role
		}
		if u := strings.TrimSpace(in.Username); u != "" {
			e.Username = u
		}
		if hash != "" {
			e.PasswordHash = hash
		}
		if in.Email != "" {
			e.Email = in.Email
		}
		if in.Phone != "" {
			e.Phone = in.Phone
		}
		if in.Permissions != nil {
			e.Permissions = in.Permissions
		}
		if in.IsActive != nil {
			e.IsActive = in.IsActive
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Employee updated", zap.Int64("employee_id", id))
	return employee, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Employee deleted", zap.Int64("employee_id", id))
	return nil
}

// HashPassword хеширует пароль bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword сверяет пароль с bcrypt-хешем или со старым sha256 в hex
func VerifyPassword(hash, password string) bool {
	if strings.HasPrefix(hash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}

	sum := sha256.Sum256([]byte(password))
	legacy := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(hash)), []byte(legacy)) == 1
}
