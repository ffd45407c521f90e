package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bonuseducation/crm_bot/internal/repository"
	"github.com/bonuseducation/crm_bot/internal/repository/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTool(t *testing.T) (*maintenance, *base.Store) {
	t.Helper()
	dir := t.TempDir()
	store := base.NewStore(filepath.Join(dir, "crm_data.json"), zap.NewNop())
	return &maintenance{
		repo:      repository.NewMaintenanceRepository(store),
		backupDir: filepath.Join(dir, "backups"),
		logger:    zap.NewNop(),
	}, store
}

func TestPurgeWritesBackupFirst(t *testing.T) {
	ctx := context.Background()
	tool, store := newTool(t)

	users := repository.NewUserRepository(store)
	_, _, err := users.Register(ctx, repository.UserProfile{TelegramID: 42, FirstName: "Иван"})
	require.NoError(t, err)

	require.NoError(t, tool.run(ctx, []string{"purge"}))

	entries, err := os.ReadDir(tool.backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// в копии клиент ещё есть
	backup := base.NewStore(filepath.Join(tool.backupDir, entries[0].Name()), zap.NewNop())
	backedUp, err := repository.NewUserRepository(backup).GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.NotNil(t, backedUp)

	list, err := users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	stats, err := tool.repo.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.ActiveCourses)
}

func TestRunUsageErrors(t *testing.T) {
	ctx := context.Background()
	tool, _ := newTool(t)

	assert.ErrorIs(t, tool.run(ctx, []string{"backup"}), errUsage)
	assert.ErrorIs(t, tool.run(ctx, []string{"drop-everything"}), errUsage)
}

func TestBackupCommand(t *testing.T) {
	ctx := context.Background()
	tool, _ := newTool(t)

	dst := filepath.Join(t.TempDir(), "manual")
	require.NoError(t, tool.run(ctx, []string{"backup", dst}))

	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
