package service

import (
	"context"
	"fmt"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository"
	"go.uber.org/zap"
)

const (
	analyticsRecentBookings = 20
	analyticsActiveDays     = 30
)

// KanbanCard - карточка клиента на доске воронки
type KanbanCard struct {
	ID         int64              `json:"id"`
	TelegramID int64              `json:"telegram_id"`
	UserName   string             `json:"user_name"`
	UserPhone  string             `json:"user_phone"`
	CourseName string             `json:"course_name"`
	Status     model.FunnelStatus `json:"status"`
	CreatedAt  model.Timestamp    `json:"created_at"`
}

// KanbanColumn - один этап воронки
type KanbanColumn struct {
	Status model.FunnelStatus `json:"status"`
	Cards  []KanbanCard       `json:"cards"`
}

type Analytics struct {
	Stats          model.Statistics `json:"stats"`
	RecentBookings []model.Booking  `json:"recent_bookings"`
	ActiveUsers    []model.User     `json:"active_users"`
}

// CRMService - статистика, воронка, аналитика и промпт ассистента
type CRMService struct {
	maintenanceRepo *repository.MaintenanceRepository
	userRepo        *repository.UserRepository
	bookingRepo     *repository.BookingRepository
	convRepo        *repository.ConversationRepository
	promptRepo      *repository.PromptRepository
	logger          *zap.Logger
}

func NewCRMService(
	maintenanceRepo *repository.MaintenanceRepository,
	userRepo *repository.UserRepository,
	bookingRepo *repository.BookingRepository,
	convRepo *repository.ConversationRepository,
	promptRepo *repository.PromptRepository,
	logger *zap.Logger,
) *CRMService {
	return &CRMService{
		maintenanceRepo: maintenanceRepo,
		userRepo:        userRepo,
		bookingRepo:     bookingRepo,
		convRepo:        convRepo,
		promptRepo:      promptRepo,
		logger:          logger,
	}
}

func (s *CRMService) Statistics(ctx context.Context) (model.Statistics, error) {
	return s.maintenanceRepo.Statistics(ctx)
}

// Kanban раскладывает клиентов по этапам воронки. Колонки идут в каноническом порядке.
func (s *CRMService) Kanban(ctx context.Context) ([]KanbanColumn, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	statuses := model.FunnelStatuses()
	columns := make([]KanbanColumn, len(statuses))
	index := make(map[model.FunnelStatus]int, len(statuses))
	for i, st := range statuses {
		columns[i] = KanbanColumn{Status: st, Cards: []KanbanCard{}}
		index[st] = i
	}

	for i := range users {
		u := &users[i]
		phone := model.StringValue(u.Phone)
		if phone == "" {
			phone = model.UnknownPhone
		}

		card := KanbanCard{
			ID:         u.ID,
			TelegramID: u.TelegramID,
			UserName:   u.DisplayName(),
			UserPhone:  phone,
			CourseName: "-",
			Status:     u.Status,
			CreatedAt:  u.LastActivity,
		}

		col, ok := index[u.Status]
		if !ok {
			col = index[model.StatusNew]
		}
		columns[col].Cards = append(columns[col].Cards, card)
	}

	return columns, nil
}

// Analytics - статистика, последние заявки и активные за месяц клиенты
func (s *CRMService) Analytics(ctx context.Context) (*Analytics, error) {
	stats, err := s.maintenanceRepo.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.bookingRepo.Recent(ctx, analyticsRecentBookings)
	if err != nil {
		return nil, err
	}

	active, err := s.userRepo.ActiveSince(ctx, analyticsActiveDays)
	if err != nil {
		return nil, err
	}

	return &Analytics{
		Stats:          stats,
		RecentBookings: recent,
		ActiveUsers:    active,
	}, nil
}

// RecentConversations - последние диалоги по всем клиентам
func (s *CRMService) RecentConversations(ctx context.Context, limit int) ([]model.Conversation, error) {
	return s.convRepo.Recent(ctx, 0, limit)
}

// SystemPrompt возвращает переопределённый промпт ("" - используется встроенный)
func (s *CRMService) SystemPrompt(ctx context.Context) (string, error) {
	return s.promptRepo.SystemPrompt(ctx)
}

func (s *CRMService) SetSystemPrompt(ctx context.Context, text string) error {
	if err := s.promptRepo.SetSystemPrompt(ctx, text); err != nil {
		return fmt.Errorf("set system prompt: %w", err)
	}

	s.logger.Info("System prompt updated", zap.Int("length", len([]rune(text))))
	return nil
}
