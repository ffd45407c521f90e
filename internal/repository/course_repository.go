package repository

import (
	"context"
	"fmt"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository/base"
)

type CourseRepository struct {
	store *base.Store
}

func NewCourseRepository(store *base.Store) *CourseRepository {
	return &CourseRepository{store: store}
}

// ListActive возвращает активные курсы
func (r *CourseRepository) ListActive(ctx context.Context) ([]model.Course, error) {
	courses := make([]model.Course, 0)

	err := r.store.View(ctx, func(doc *model.Document) error {
		for _, c := range doc.Courses {
			if c.Active() {
				courses = append(courses, c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list active courses: %w", err)
	}

	return courses, nil
}

// List возвращает все курсы, включая выключенные
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course

	err := r.store.View(ctx, func(doc *model.Document) error {
		courses = doc.Courses
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	return courses, nil
}

// GetByID получает курс (nil, если не найден)
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	var result *model.Course

	err := r.store.View(ctx, func(doc *model.Document) error {
		for _, c := range doc.Courses {
			if c.ID == id {
				found := c
				result = &found
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}

	return result, nil
}

// Create добавляет курс
func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	err := r.store.Update(ctx, func(doc *model.Document) error {
		course.ID = base.NextID(doc.Courses, func(c *model.Course) int64 { return c.ID })
		course.ApplyDefaults()
		doc.Courses = append(doc.Courses, *course)
		return nil
	})
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	return nil
}

// Update применяет fn к курсу
func (r *CourseRepository) Update(ctx context.Context, id int64, fn func(c *model.Course) error) (*model.Course, error) {
	var result model.Course

	err := r.store.Update(ctx, func(doc *model.Document) error {
		for i := range doc.Courses {
			if doc.Courses[i].ID != id {
				continue
			}

			course := doc.Courses[i]
			if err := fn(&course); err != nil {
				return err
			}
			course.ID = id
			course.ApplyDefaults()

			doc.Courses[i] = course
			result = course
			return nil
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}

	return &result, nil
}

// Delete удаляет курс
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	err := r.store.Update(ctx, func(doc *model.Document) error {
		for i := range doc.Courses {
			if doc.Courses[i].ID == id {
				doc.Courses = append(doc.Courses[:i], doc.Courses[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	return nil
}
