package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bonuseducation/crm_bot/internal/app"
	"github.com/bonuseducation/crm_bot/internal/config"
	"github.com/bonuseducation/crm_bot/internal/panel"
	"github.com/bonuseducation/crm_bot/internal/repository"
	"github.com/bonuseducation/crm_bot/internal/repository/base"
	"github.com/bonuseducation/crm_bot/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := base.NewStore(cfg.DataFile, logger)
	userRepo := repository.NewUserRepository(store)
	convRepo := repository.NewConversationRepository(store)
	courseRepo := repository.NewCourseRepository(store)
	teacherRepo := repository.NewTeacherRepository(store)
	bookingRepo := repository.NewBookingRepository(store)
	employeeRepo := repository.NewEmployeeRepository(store)
	promptRepo := repository.NewPromptRepository(store)
	maintenanceRepo := repository.NewMaintenanceRepository(store)

	srv := panel.New(panel.Config{
		Users:     service.NewUserService(userRepo, convRepo, logger),
		Catalog:   service.NewCatalogService(courseRepo, teacherRepo, logger),
		Bookings:  service.NewBookingService(bookingRepo, userRepo, courseRepo, logger),
		CRM:       service.NewCRMService(maintenanceRepo, userRepo, bookingRepo, convRepo, promptRepo, logger),
		Employees: service.NewEmployeeService(employeeRepo, logger),
		Logger:    logger,
	})

	httpServer := &http.Server{
		Addr:         cfg.PanelAddr,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Panel listening",
			zap.String("addr", cfg.PanelAddr),
			zap.String("data_file", cfg.DataFile))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("Shutting down panel")
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Panel stopped with error", zap.Error(err))
		return
	}

	logger.Info("Panel stopped")
}
