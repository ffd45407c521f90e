package service

import (
	"context"
	"fmt"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository"
	"go.uber.org/zap"
)

// LanguageGroup - курсы одного языка обучения
type LanguageGroup struct {
	Language model.Language
	Courses  []model.Course
}

// CatalogService - курсы и преподаватели
type CatalogService struct {
	courseRepo  *repository.CourseRepository
	teacherRepo *repository.TeacherRepository
	logger      *zap.Logger
}

func NewCatalogService(courseRepo *repository.CourseRepository, teacherRepo *repository.TeacherRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		courseRepo:  courseRepo,
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

// ActiveCourses возвращает курсы, открытые для записи
func (s *CatalogService) ActiveCourses(ctx context.Context) ([]model.Course, error) {
	return s.courseRepo.ListActive(ctx)
}

// CoursesByLanguage группирует активные курсы по языку в порядке первого появления
func (s *CatalogService) CoursesByLanguage(ctx context.Context) ([]LanguageGroup, error) {
	courses, err := s.courseRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	groups := make([]LanguageGroup, 0)
	index := make(map[model.Language]int)
	for _, c := range courses {
		lang := c.Language
		if lang == "" {
			lang = model.DefaultLanguage
		}

		i, ok := index[lang]
		if !ok {
			i = len(groups)
			index[lang] = i
			groups = append(groups, LanguageGroup{Language: lang})
		}
		groups[i].Courses = append(groups[i].Courses, c)
	}

	return groups, nil
}

func (s *CatalogService) Courses(ctx context.Context) ([]model.Course, error) {
	return s.courseRepo.List(ctx)
}

// Course получает курс (nil, если не найден)
func (s *CatalogService) Course(ctx context.Context, id int64) (*model.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

func (s *CatalogService) CreateCourse(ctx context.Context, course *model.Course) error {
	if course.Name == "" {
		return fmt.Errorf("%w: course name is required", ErrInvalidInput)
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return err
	}

	s.logger.Info("Course created", zap.Int64("course_id", course.ID), zap.String("name", course.Name))
	return nil
}

func (s *CatalogService) UpdateCourse(ctx context.Context, id int64, fn func(c *model.Course) error) (*model.Course, error) {
	course, err := s.courseRepo.Update(ctx, id, fn)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Course updated", zap.Int64("course_id", id))
	return course, nil
}

func (s *CatalogService) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Course deleted", zap.Int64("course_id", id))
	return nil
}

func (s *CatalogService) Teachers(ctx context.Context) ([]model.Teacher, error) {
	return s.teacherRepo.List(ctx)
}

// Teacher получает преподавателя (nil, если не найден)
func (s *CatalogService) Teacher(ctx context.Context, id int64) (*model.Teacher, error) {
	return s.teacherRepo.GetByID(ctx, id)
}

func (s *CatalogService) CreateTeacher(ctx context.Context, teacher *model.Teacher) error {
	if teacher.Name == "" {
		return fmt.Errorf("%w: teacher name is required", ErrInvalidInput)
	}
	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return err
	}

	s.logger.Info("Teacher created", zap.Int64("teacher_id", teacher.ID), zap.String("name", teacher.Name))
	return nil
}

func (s *CatalogService) UpdateTeacher(ctx context.Context, id int64, fn func(t *model.Teacher) error) (*model.Teacher, error) {
	teacher, err := s.teacherRepo.Update(ctx, id, fn)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Teacher updated", zap.Int64("teacher_id", id))
	return teacher, nil
}

// DeleteTeacher удаляет преподавателя. Курсы с его teacher_id остаются как есть.
func (s *CatalogService) DeleteTeacher(ctx context.Context, id int64) error {
	if err := s.teacherRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Teacher deleted", zap.Int64("teacher_id", id))
	return nil
}
