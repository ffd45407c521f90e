package service

import (
	"context"
	"fmt"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo *repository.UserRepository
	convRepo *repository.ConversationRepository
	logger   *zap.Logger
}

func NewUserService(userRepo *repository.UserRepository, convRepo *repository.ConversationRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		convRepo: convRepo,
		logger:   logger,
	}
}

// RegisterUser регистрирует нового клиента или обновляет last_activity существующего
func (s *UserService) RegisterUser(ctx context.Context, profile repository.UserProfile) (*model.User, error) {
	user, created, err := s.userRepo.Register(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	if created {
		s.logger.Info("New user registered",
			zap.Int64("user_id", user.ID),
			zap.Int64("telegram_id", profile.TelegramID),
			zap.String("username", profile.Username),
		)
	}

	return user, nil
}

// UpdatePreferredLanguage сохраняет язык обучения. Пустой язык и повтор того же значения файл не трогают.
func (s *UserService) UpdatePreferredLanguage(ctx context.Context, telegramID int64, lang model.Language) error {
	if lang == "" {
		return nil
	}

	changed, err := s.userRepo.SetPreferredLanguage(ctx, telegramID, lang)
	if err != nil {
		return fmt.Errorf("update preferred language: %w", err)
	}

	if changed {
		s.logger.Info("Preferred language updated",
			zap.Int64("telegram_id", telegramID),
			zap.String("language", string(lang)),
		)
	}
	return nil
}

// GetByTelegramID получает пользователя по Telegram ID (nil, если его нет)
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.userRepo.GetByTelegramID(ctx, telegramID)
}

// Find ищет пользователя по id, затем по telegram_id
func (s *UserService) Find(ctx context.Context, ref int64) (*model.User, error) {
	return s.userRepo.Find(ctx, ref)
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// ActiveSince - пользователи, писавшие за последние days дней
func (s *UserService) ActiveSince(ctx context.Context, days int) ([]model.User, error) {
	return s.userRepo.ActiveSince(ctx, days)
}

// Update применяет правку из панели
func (s *UserService) Update(ctx context.Context, ref int64, fn func(u *model.User) error) (*model.User, error) {
	user, err := s.userRepo.Update(ctx, ref, fn)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User updated", zap.Int64("user_id", user.ID), zap.Int64("telegram_id", user.TelegramID))
	return user, nil
}

// SetStatus переводит клиента на этап воронки
func (s *UserService) SetStatus(ctx context.Context, ref int64, status string) (*model.User, error) {
	user, err := s.userRepo.SetStatus(ctx, ref, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User status changed",
		zap.Int64("user_id", user.ID),
		zap.String("status", string(user.Status)),
	)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("User deleted", zap.Int64("user_id", id))
	return nil
}

// Conversations возвращает переписку клиента в хронологическом порядке
func (s *UserService) Conversations(ctx context.Context, telegramID int64) ([]model.Conversation, error) {
	return s.convRepo.History(ctx, telegramID)
}
