package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrCourseInactive   = errors.New("course is not active")
	ErrStatusTargetGone = errors.New("neither booking nor user found")
	ErrInvalidInput     = errors.New("invalid input")
)

// Lead - заявка, собранная из свободного диалога
type Lead struct {
	TelegramID int64
	Name       string
	Phone      string
	Notes      string
}

// StatusTarget сообщает, что именно сменило статус: заявка или пользователь
type StatusTarget string

const (
	StatusTargetBooking StatusTarget = "booking"
	StatusTargetUser    StatusTarget = "user"
)

type BookingService struct {
	bookingRepo *repository.BookingRepository
	userRepo    *repository.UserRepository
	courseRepo  *repository.CourseRepository
	logger      *zap.Logger
}

func NewBookingService(
	bookingRepo *repository.BookingRepository,
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		courseRepo:  courseRepo,
		logger:      logger,
	}
}

// CreateLead создаёт заявку без курса и преподавателя: их назначит менеджер
func (s *BookingService) CreateLead(ctx context.Context, lead Lead) (*model.Booking, error) {
	booking := &model.Booking{
		UserID:      lead.TelegramID,
		UserName:    strings.TrimSpace(lead.Name),
		UserPhone:   strings.TrimSpace(lead.Phone),
		CourseName:  model.UnassignedCourseName,
		TeacherName: model.UnassignedTeacherName,
		Status:      model.StatusPending,
		Notes:       lead.Notes,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}

	// Телефон из заявки пригодится менеджеру в карточке клиента
	err := s.userRepo.FillPhone(ctx, lead.TelegramID, booking.UserPhone)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn("Failed to save phone on user", zap.Int64("telegram_id", lead.TelegramID), zap.Error(err))
	}

	s.logger.Info("Lead created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("telegram_id", lead.TelegramID),
		zap.String("user_name", booking.UserName),
	)

	return booking, nil
}

// CreateCourseBooking записывает клиента на курс из каталога
func (s *BookingService) CreateCourseBooking(ctx context.Context, telegramID int64, userName string, courseID int64) (*model.Booking, *model.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return nil, nil, ErrCourseNotFound
	}
	if !course.Active() {
		return nil, nil, ErrCourseInactive
	}

	id := course.ID
	booking := &model.Booking{
		UserID:      telegramID,
		UserName:    strings.TrimSpace(userName),
		UserPhone:   model.UnknownPhone,
		CourseID:    &id,
		CourseName:  course.Name,
		TeacherID:   course.TeacherID,
		TeacherName: model.StringValue(course.TeacherName),
		Status:      model.StatusPending,
		Notes:       "Запись через Telegram бота",
	}
	if booking.TeacherName == "" {
		booking.TeacherName = model.UnassignedTeacherName
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, nil, fmt.Errorf("create course booking: %w", err)
	}

	s.logger.Info("Course booked",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("telegram_id", telegramID),
		zap.Int64("course_id", courseID),
	)

	return booking, course, nil
}

// UpdateStatus меняет статус заявки. Канбан показывает и пользователей,
// поэтому при отсутствии заявки с таким id меняется статус пользователя (по id или telegram_id).
func (s *BookingService) UpdateStatus(ctx context.Context, id int64, status string) (StatusTarget, error) {
	if !model.IsKnownStatus(status) {
		return "", fmt.Errorf("update status %q: %w", status, repository.ErrInvalidStatus)
	}

	_, err := s.bookingRepo.UpdateStatus(ctx, id, status)
	if err == nil {
		s.logger.Info("Booking status changed", zap.Int64("booking_id", id), zap.String("status", status))
		return StatusTargetBooking, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	_, err = s.userRepo.SetStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrStatusTargetGone
	}
	if err != nil {
		return "", err
	}

	s.logger.Info("User status changed from kanban", zap.Int64("ref", id), zap.String("status", status))
	return StatusTargetUser, nil
}

func (s *BookingService) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *BookingService) List(ctx context.Context) ([]model.Booking, error) {
	return s.bookingRepo.List(ctx)
}

// Recent - последние заявки, новые первыми
func (s *BookingService) Recent(ctx context.Context, limit int) ([]model.Booking, error) {
	return s.bookingRepo.Recent(ctx, limit)
}

// ListByUser - заявки клиента
func (s *BookingService) ListByUser(ctx context.Context, telegramID int64) ([]model.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, telegramID)
}

func (s *BookingService) Update(ctx context.Context, id int64, fn func(b *model.Booking) error) (*model.Booking, error) {
	booking, err := s.bookingRepo.Update(ctx, id, fn)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking updated", zap.Int64("booking_id", id))
	return booking, nil
}

func (s *BookingService) Delete(ctx context.Context, id int64) error {
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Booking deleted", zap.Int64("booking_id", id))
	return nil
}
