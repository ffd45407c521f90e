package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bonuseducation/crm_bot/internal/app"
	"github.com/bonuseducation/crm_bot/internal/config"
	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository"
	"github.com/bonuseducation/crm_bot/internal/repository/base"
	"go.uber.org/zap"
)

const defaultBackupDir = "backups"

var errUsage = errors.New("usage")

const usage = `crmctl - обслуживание файла CRM

Использование:
  crmctl [-backup-dir DIR] <команда> [аргументы]

Команды:
  backup <dir>   записать копию файла в каталог
  purge          удалить всех клиентов, заявки и диалоги
  purge-today    оставить только клиентов, заявки и диалоги за сегодня
  sync-users     создать клиентов для диалогов без карточки
  stats          пересчитать и вывести статистику

Перед purge, purge-today и sync-users всегда пишется резервная копия.
`

func main() {
	backupDir := flag.String("backup-dir", "", "каталог для резервных копий перед изменениями")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir := *backupDir
	if dir == "" {
		dir = cfg.BackupDir
	}
	if dir == "" {
		dir = defaultBackupDir
	}

	store := base.NewStore(cfg.DataFile, logger)
	tool := &maintenance{
		repo:      repository.NewMaintenanceRepository(store),
		backupDir: dir,
		logger:    logger,
	}

	if err := tool.run(ctx, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		logger.Error("Command failed", zap.String("command", flag.Arg(0)), zap.Error(err))
		os.Exit(1)
	}
}

type maintenance struct {
	repo      *repository.MaintenanceRepository
	backupDir string
	logger    *zap.Logger
}

func (m *maintenance) run(ctx context.Context, args []string) error {
	switch args[0] {
	case "backup":
		if len(args) < 2 {
			return fmt.Errorf("%w: backup <dir>", errUsage)
		}
		path, err := app.BackupNow(ctx, m.repo, args[1], time.Now())
		if err != nil {
			return err
		}
		m.logger.Info("Backup written", zap.String("path", path))
		return nil

	case "purge":
		if err := m.backupFirst(ctx); err != nil {
			return err
		}
		if err := m.repo.PurgeDynamic(ctx); err != nil {
			return err
		}
		m.logger.Info("Users, bookings and conversations removed")
		return m.printStats(ctx)

	case "purge-today":
		if err := m.backupFirst(ctx); err != nil {
			return err
		}
		today := model.NewTimestamp(time.Now()).Date()
		if err := m.repo.KeepOnlyDay(ctx, today); err != nil {
			return err
		}
		m.logger.Info("Kept only today's records", zap.String("day", today))
		return m.printStats(ctx)

	case "sync-users":
		if err := m.backupFirst(ctx); err != nil {
			return err
		}
		created, err := m.repo.SyncUsersFromConversations(ctx)
		if err != nil {
			return err
		}
		m.logger.Info("Users synced from conversations", zap.Int("created", created))
		return m.printStats(ctx)

	case "stats":
		return m.printStats(ctx)

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func (m *maintenance) backupFirst(ctx context.Context) error {
	path, err := app.BackupNow(ctx, m.repo, m.backupDir, time.Now())
	if err != nil {
		return fmt.Errorf("backup before change: %w", err)
	}
	m.logger.Info("Backup written", zap.String("path", path))
	return nil
}

func (m *maintenance) printStats(ctx context.Context) error {
	stats, err := m.repo.Statistics(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Пользователи:        %d\n", stats.TotalUsers)
	fmt.Printf("Диалоги:             %d\n", stats.TotalConversations)
	fmt.Printf("Заявки:              %d\n", stats.TotalBookings)
	fmt.Printf("Активные курсы:      %d\n", stats.ActiveCourses)
	fmt.Printf("Активные учителя:    %d\n", stats.ActiveTeachers)
	return nil
}
