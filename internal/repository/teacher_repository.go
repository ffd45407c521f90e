package repository

import (
	"context"
	"fmt"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository/base"
)

type TeacherRepository struct {
	store *base.Store
}

func NewTeacherRepository(store *base.Store) *TeacherRepository {
	return &TeacherRepository{store: store}
}

// ListActive возвращает активных преподавателей
func (r *TeacherRepository) ListActive(ctx context.Context) ([]model.Teacher, error) {
	teachers := make([]model.Teacher, 0)

	err := r.store.View(ctx, func(doc *model.Document) error {
		for _, t := range doc.Teachers {
			if t.Active() {
				teachers = append(teachers, t)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list active teachers: %w", err)
	}

	return teachers, nil
}

// List возвращает всех преподавателей
func (r *TeacherRepository) List(ctx context.Context) ([]model.Teacher, error) {
	var teachers []model.Teacher

	err := r.store.View(ctx, func(doc *model.Document) error {
		teachers = doc.Teachers
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}

	return teachers, nil
}

// GetByID получает преподавателя (nil, если не найден)
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	var result *model.Teacher

	err := r.store.View(ctx, func(doc *model.Document) error {
		for _, t := range doc.Teachers {
			if t.ID == id {
				found := t
				result = &found
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}

	return result, nil
}

// Create добавляет преподавателя
func (r *TeacherRepository) Create(ctx context.Context, teacher *model.Teacher) error {
	err := r.store.Update(ctx, func(doc *model.Document) error {
		teacher.ID = base.NextID(doc.Teachers, func(t *model.Teacher) int64 { return t.ID })
		teacher.ApplyDefaults()
		doc.Teachers = append(doc.Teachers, *teacher)
		return nil
	})
	if err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}

	return nil
}

// Update применяет fn к преподавателю
func (r *TeacherRepository) Update(ctx context.Context, id int64, fn func(t *model.Teacher) error) (*model.Teacher, error) {
	var result model.Teacher

	err := r.store.Update(ctx, func(doc *model.Document) error {
		for i := range doc.Teachers {
			if doc.Teachers[i].ID != id {
				continue
			}

			teacher := doc.Teachers[i]
			if err := fn(&teacher); err != nil {
				return err
			}
			teacher.ID = id
			teacher.ApplyDefaults()

			doc.Teachers[i] = teacher
			result = teacher
			return nil
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, fmt.Errorf("update teacher: %w", err)
	}

	return &result, nil
}

// Delete удаляет преподавателя. Курсы, ссылающиеся на него, не трогаются.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	err := r.store.Update(ctx, func(doc *model.Document) error {
		for i := range doc.Teachers {
			if doc.Teachers[i].ID == id {
				doc.Teachers = append(doc.Teachers[:i], doc.Teachers[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}

	return nil
}
