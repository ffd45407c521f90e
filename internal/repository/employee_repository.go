package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository/base"
)

type EmployeeRepository struct {
	store *base.Store
}

func NewEmployeeRepository(store *base.Store) *EmployeeRepository {
	return &EmployeeRepository{store: store}
}

// List возвращает всех сотрудников
func (r *EmployeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee

	err := r.store.View(ctx, func(doc *model.Document) error {
		employees = doc.Employees
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	return employees, nil
}

// GetByUsername ищет сотрудника по логину (nil, если не найден)
func (r *EmployeeRepository) GetByUsername(ctx context.Context, username string) (*model.Employee, error) {
	var result *model.Employee

	err := r.store.View(ctx, func(doc *model.Document) error {
		if i := indexByUsername(doc.Employees, username); i >= 0 {
			found := doc.Employees[i]
			result = &found
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}

	return result, nil
}

// Create добавляет сотрудника. Логин должен быть уникальным.
func (r *EmployeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	err := r.store.Update(ctx, func(doc *model.Document) error {
		if indexByUsername(doc.Employees, employee.Username) >= 0 {
			return ErrDuplicateUsername
		}

		employee.ID = base.NextID(doc.Employees, func(e *model.Employee) int64 { return e.ID })
		employee.CreatedAt = model.NewTimestamp(r.store.Now())
		if employee.IsActive == nil {
			employee.IsActive = model.BoolPtr(true)
		}
		if employee.Permissions == nil {
			employee.Permissions = []model.Permission{}
		}

		doc.Employees = append(doc.Employees, *employee)
		return nil
	})
	if err != nil {
		return fmt.Errorf("create employee: %w", err)
	}

	return nil
}

// Update применяет fn к сотруднику. Смена логина на занятый отклоняется.
func (r *EmployeeRepository) Update(ctx context.Context, id int64, fn func(e *model.Employee) error) (*model.Employee, error) {
	var result model.Employee

	err := r.store.Update(ctx, func(doc *model.Document) error {
		for i := range doc.Employees {
			if doc.Employees[i].ID != id {
				continue
			}

			employee := doc.Employees[i]
			if err := fn(&employee); err != nil {
				return err
			}
			employee.ID = id

			if other := indexByUsername(doc.Employees, employee.Username); other >= 0 && other != i {
				return ErrDuplicateUsername
			}

			doc.Employees[i] = employee
			result = employee
			return nil
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}

	return &result, nil
}

// Delete удаляет сотрудника
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	err := r.store.Update(ctx, func(doc *model.Document) error {
		for i := range doc.Employees {
			if doc.Employees[i].ID == id {
				doc.Employees = append(doc.Employees[:i], doc.Employees[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}

	return nil
}

func indexByUsername(employees []model.Employee, username string) int {
	for i := range employees {
		if strings.EqualFold(employees[i].Username, username) {
			return i
		}
	}
	return -1
}
