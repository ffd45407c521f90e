package panel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository"
)

// ========================
// Courses
// ========================

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.catalog.Courses(r.Context())
	if err != nil {
		s.fail(w, r, "list courses", err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, "get course", err)
		return
	}

	course, err := s.catalog.Course(r.Context(), id)
	if err != nil {
		s.fail(w, r, "get course", err)
		return
	}
	if course == nil {
		s.fail(w, r, "get course", repository.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var course model.Course
	if err := decodeJSON(r, &course); err != nil {
		s.fail(w, r, "create course", err)
		return
	}

	if err := s.fillTeacherName(r.Context(), course.TeacherID, &course.TeacherName); err != nil {
		s.fail(w, r, "create course", err)
		return
	}
	if err := s.catalog.CreateCourse(r.Context(), &course); err != nil {
		s.fail(w, r, "create course", err)
		return
	}
	writeJSON(w, http.StatusCreated, course)
}

func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, "update course", err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		s.fail(w, r, "update course", err)
		return
	}
	keys, err := patchKeys(body)
	if err != nil {
		s.fail(w, r, "update course", err)
		return
	}

	// Имя преподавателя берётся из справочника, если не передано явно
	var teacherName *string
	if raw, ok := keys["teacher_id"]; ok {
		if _, named := keys["teacher_name"]; !named {
			var teacherID *int64
			if err := json.Unmarshal(raw, &teacherID); err != nil {
				s.fail(w, r, "update course", fmt.Errorf("%w: teacher_id: %v", errBadRequest, err))
				return
			}
			if err := s.fillTeacherName(r.Context(), teacherID, &teacherName); err != nil {
				s.fail(w, r, "update course", err)
				return
			}
		}
	}

	course, err := s.catalog.UpdateCourse(r.Context(), id, func(c *model.Course) error {
		if err := applyPatch(body, c, &c.Extra); err != nil {
			return err
		}
		if _, ok := keys["duration_months"]; ok {
			if _, explicit := keys["duration"]; !explicit {
				c.Duration = "" // пересчитается из duration_months
			}
		}
		if teacherName != nil {
			c.TeacherName = teacherName
		} else if _, named := keys["teacher_name"]; !named && c.TeacherID == nil {
			c.TeacherName = nil
		}
		return nil
	})
	if err != nil {
		s.fail(w, r, "update course", err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, "delete course", err)
		return
	}
	if err := s.catalog.DeleteCourse(r.Context(), id); err != nil {
		s.fail(w, r, "delete course", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fillTeacherName подставляет имя преподавателя, если оно не задано явно
func (s *Server) fillTeacherName(ctx context.Context, teacherID *int64, name **string) error {
	if teacherID == nil || *name != nil {
		return nil
	}

	teacher, err := s.catalog.Teacher(ctx, *teacherID)
	if err != nil {
		return err
	}
	if teacher == nil {
		return fmt.Errorf("teacher %d: %w", *teacherID, repository.ErrNotFound)
	}

	*name = model.StringPtr(teacher.Name)
	return nil
}

// ========================
// Teachers
// ========================

func (s *Server) handleListTeachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := s.catalog.Teachers(r.Context())
	if err != nil {
		s.fail(w, r, "list teachers", err)
		return
	}
	writeJSON(w, http.StatusOK, teachers)
}

func (s *Server) handleGetTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, "get teacher", err)
		return
	}

	teacher, err := s.catalog.Teacher(r.Context(), id)
	if err != nil {
		s.fail(w, r, "get teacher", err)
		return
	}
	if teacher == nil {
		s.fail(w, r, "get teacher", repository.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, teacher)
}

func (s *Server) handleCreateTeacher(w http.ResponseWriter, r *http.Request) {
	var teacher model.Teacher
	if err := decodeJSON(r, &teacher); err != nil {
		s.fail(w, r, "create teacher", err)
		return
	}
	if err := s.catalog.CreateTeacher(r.Context(), &teacher); err != nil {
		s.fail(w, r, "create teacher", err)
		return
	}
	writeJSON(w, http.StatusCreated, teacher)
}

func (s *Server) handleUpdateTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, "update teacher", err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		s.fail(w, r, "update teacher", err)
		return
	}
	keys, err := patchKeys(body)
	if err != nil {
		s.fail(w, r, "update teacher", err)
		return
	}

	teacher, err := s.catalog.UpdateTeacher(r.Context(), id, func(t *model.Teacher) error {
		if err := applyPatch(body, t, &t.Extra); err != nil {
			return err
		}
		if _, ok := keys["experience_years"]; ok {
			if _, explicit := keys["experience"]; !explicit {
				t.Experience = ""
			}
		}
		return nil
	})
	if err != nil {
		s.fail(w, r, "update teacher", err)
		return
	}
	writeJSON(w, http.StatusOK, teacher)
}

func (s *Server) handleDeleteTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, "delete teacher", err)
		return
	}
	if err := s.catalog.DeleteTeacher(r.Context(), id); err != nil {
		s.fail(w, r, "delete teacher", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
