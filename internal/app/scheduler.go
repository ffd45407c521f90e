package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Backuper копирует файл CRM в dst
type Backuper interface {
	Backup(ctx context.Context, dst string) error
}

// Scheduler делает периодические резервные копии файла CRM
type Scheduler struct {
	backuper Backuper
	dir      string
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewScheduler создаёт новый планировщик
func NewScheduler(backuper Backuper, dir string, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		backuper: backuper,
		dir:      dir,
		interval: interval,
		now:      time.Now,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Run выполняет задачу до отмены контекста или Stop. Пустой каталог отключает резервное копирование.
func (s *Scheduler) Run(ctx context.Context) {
	if s.dir == "" || s.interval <= 0 {
		s.logger.Info("Backup scheduler disabled")
		return
	}

	s.logger.Info("Starting backup scheduler",
		zap.String("dir", s.dir),
		zap.Duration("interval", s.interval),
	)

	// Первый запуск сразу при старте
	s.backup(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.backup(ctx)
		case <-s.stopChan:
			s.logger.Info("Backup task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Backup task cancelled")
			return
		}
	}
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping backup scheduler")
		close(s.stopChan)
	})
}

// backup пишет копию в файл с отметкой времени
func (s *Scheduler) backup(ctx context.Context) {
	path, err := BackupNow(ctx, s.backuper, s.dir, s.now())
	if err != nil {
		s.logger.Error("Backup failed", zap.Error(err))
		return
	}

	s.logger.Info("Backup written", zap.String("path", path))
}

// BackupNow создаёт каталог и пишет в него crm_backup_<время>.json
func BackupNow(ctx context.Context, backuper Backuper, dir string, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("crm_backup_%s.json", at.Format("20060102_150405")))
	if err := backuper.Backup(ctx, path); err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}
	return path, nil
}
