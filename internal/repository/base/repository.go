package base

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bonuseducation/crm_bot/internal/model"
	"go.uber.org/zap"
)

// ErrNoChanges возвращается из функции Update, когда документ не изменился и писать файл не нужно
var ErrNoChanges = errors.New("no changes")

// Store - JSON-файл CRM. Каждая операция перечитывает файл целиком,
// а каждая мутация переписывает его целиком под одним мьютексом.
// Между процессами действует правило «последняя запись побеждает».
type Store struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
	now    func() time.Time
}

// NewStore создаёт хранилище поверх файла path
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock подменяет источник времени (для тестов)
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Path возвращает путь к файлу данных
func (s *Store) Path() string {
	return s.path
}

// Now возвращает текущее время хранилища
func (s *Store) Now() time.Time {
	return s.now()
}

// Load читает документ с применёнными значениями по умолчанию
func (s *Store) Load(ctx context.Context) (*model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(), nil
}

// Save приводит документ к каноническому виду и атомарно записывает его
func (s *Store) Save(ctx context.Context, doc *model.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	Normalize(doc)
	return s.save(doc)
}

// View выполняет fn над свежей копией документа без записи
func (s *Store) View(ctx context.Context, fn func(doc *model.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.load())
}

// Update выполняет цикл «прочитать - изменить - записать».
// Если fn вернула ErrNoChanges, файл не переписывается.
func (s *Store) Update(ctx context.Context, fn func(doc *model.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	if err := fn(doc); err != nil {
		if errors.Is(err, ErrNoChanges) {
			return nil
		}
		return err
	}

	Normalize(doc)
	return s.save(doc)
}

// Backup записывает текущий документ в dst
func (s *Store) Backup(ctx context.Context, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := encode(s.load())
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	if err := writeAtomic(dst, data); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

func (s *Store) load() *model.Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("CRM file not found, using seed data", zap.String("path", s.path))
		} else {
			s.logger.Warn("Failed to read CRM file, using seed data", zap.String("path", s.path), zap.Error(err))
		}
		return Seed(s.now())
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("CRM file is corrupt, using seed data", zap.String("path", s.path), zap.Error(err))
		return Seed(s.now())
	}

	Normalize(&doc)
	return &doc
}

func (s *Store) save(doc *model.Document) error {
	data, err := encode(doc)
	if err != nil {
		return fmt.Errorf("encode crm document: %w", err)
	}
	if err := writeAtomic(s.path, data); err != nil {
		return fmt.Errorf("write crm document: %w", err)
	}
	return nil
}

func encode(doc *model.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeAtomic пишет во временный файл рядом с целевым и переименовывает его
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Normalize применяет значения по умолчанию и переводит устаревшие статусы
func Normalize(doc *model.Document) {
	if doc.Users == nil {
		doc.Users = []model.User{}
	}
	if doc.Courses == nil {
		doc.Courses = []model.Course{}
	}
	if doc.Employees == nil {
		doc.Employees = []model.Employee{}
	}
	if doc.Teachers == nil {
		doc.Teachers = []model.Teacher{}
	}
	if doc.Bookings == nil {
		doc.Bookings = []model.Booking{}
	}
	if doc.Conversations == nil {
		doc.Conversations = []model.Conversation{}
	}

	for i := range doc.Users {
		u := &doc.Users[i]
		u.Status = model.ParseFunnelStatus(string(u.Status))
		if u.IsActive == nil {
			u.IsActive = model.BoolPtr(true)
		}
	}
	for i := range doc.Bookings {
		doc.Bookings[i].Status = model.ParseFunnelStatus(string(doc.Bookings[i].Status))
	}
	for i := range doc.Courses {
		doc.Courses[i].ApplyDefaults()
	}
	for i := range doc.Teachers {
		doc.Teachers[i].ApplyDefaults()
	}
	for i := range doc.Employees {
		e := &doc.Employees[i]
		if e.IsActive == nil {
			e.IsActive = model.BoolPtr(true)
		}
		if e.Permissions == nil {
			e.Permissions = []model.Permission{}
		}
	}

	doc.Recount()
}

// NextID возвращает max(id)+1 по коллекции
func NextID[T any](items []T, id func(*T) int64) int64 {
	var highest int64
	for i := range items {
		if v := id(&items[i]); v > highest {
			highest = v
		}
	}
	return highest + 1
}
