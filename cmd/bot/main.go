package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bonuseducation/crm_bot/internal/ai"
	"github.com/bonuseducation/crm_bot/internal/app"
	"github.com/bonuseducation/crm_bot/internal/config"
	"github.com/bonuseducation/crm_bot/internal/controller"
	"github.com/bonuseducation/crm_bot/internal/conversation"
	"github.com/bonuseducation/crm_bot/internal/repository"
	"github.com/bonuseducation/crm_bot/internal/repository/base"
	"github.com/bonuseducation/crm_bot/internal/service"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateBot(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	logger.Sugar().Infow("Starting CRM bot",
		"environment", cfg.Environment,
		"data_file", cfg.DataFile,
		"ai_model", cfg.AIModel,
		"token_length", len(cfg.TelegramToken))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Хранилище и репозитории
	store := base.NewStore(cfg.DataFile, logger)
	userRepo := repository.NewUserRepository(store)
	convRepo := repository.NewConversationRepository(store)
	courseRepo := repository.NewCourseRepository(store)
	teacherRepo := repository.NewTeacherRepository(store)
	bookingRepo := repository.NewBookingRepository(store)
	promptRepo := repository.NewPromptRepository(store)
	maintenanceRepo := repository.NewMaintenanceRepository(store)

	stats, err := maintenanceRepo.Statistics(ctx)
	if err != nil {
		logger.Fatal("Failed to open CRM data", zap.String("path", cfg.DataFile), zap.Error(err))
	}
	logger.Info("CRM data loaded",
		zap.Int("users", stats.TotalUsers),
		zap.Int("bookings", stats.TotalBookings),
		zap.Int("active_courses", stats.ActiveCourses))

	// Сервисы
	userService := service.NewUserService(userRepo, convRepo, logger)
	catalogService := service.NewCatalogService(courseRepo, teacherRepo, logger)
	bookingService := service.NewBookingService(bookingRepo, userRepo, courseRepo, logger)

	generator, err := ai.NewGeminiClient(cfg.AIKey, cfg.AIModel)
	if err != nil {
		logger.Fatal("Failed to create Gemini client", zap.Error(err))
	}

	machine := conversation.NewMachine(
		userService,
		bookingService,
		convRepo,
		promptRepo,
		generator,
		logger,
		conversation.WithGenerateTimeout(cfg.AITimeout),
	)

	b, err := bot.New(cfg.TelegramToken,
		bot.WithErrorsHandler(func(err error) {
			logger.Error("Telegram API error", zap.Error(err))
		}),
	)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, userService, catalogService, bookingService, machine, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично, бот работает и без него
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	scheduler := app.NewScheduler(maintenanceRepo, cfg.BackupDir, cfg.BackupInterval, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return botController.Start(gctx)
	})
	g.Go(func() error {
		scheduler.Run(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
		return
	}

	logger.Info("Bot stopped")
}
