package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository"
	"github.com/bonuseducation/crm_bot/internal/repository/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type services struct {
	users     *UserService
	catalog   *CatalogService
	bookings  *BookingService
	employees *EmployeeService
	crm       *CRMService
}

func newServices(t *testing.T) *services {
	t.Helper()

	logger := zap.NewNop()
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, model.Tashkent)
	store := base.NewStore(filepath.Join(t.TempDir(), "crm_data.json"), logger).
		WithClock(func() time.Time { return now })

	userRepo := repository.NewUserRepository(store)
	convRepo := repository.NewConversationRepository(store)
	courseRepo := repository.NewCourseRepository(store)
	teacherRepo := repository.NewTeacherRepository(store)
	bookingRepo := repository.NewBookingRepository(store)

	return &services{
		users:     NewUserService(userRepo, convRepo, logger),
		catalog:   NewCatalogService(courseRepo, teacherRepo, logger),
		bookings:  NewBookingService(bookingRepo, userRepo, courseRepo, logger),
		employees: NewEmployeeService(repository.NewEmployeeRepository(store), logger),
		crm: NewCRMService(
			repository.NewMaintenanceRepository(store),
			userRepo, bookingRepo, convRepo,
			repository.NewPromptRepository(store),
			logger,
		),
	}
}

func TestCreateLeadFillsUserPhoneOnce(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	_, err := s.users.RegisterUser(ctx, repository.UserProfile{TelegramID: 100, FirstName: "Анна"})
	require.NoError(t, err)

	booking, err := s.bookings.CreateLead(ctx, Lead{TelegramID: 100, Name: " Анна ", Phone: "+998901234567"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), booking.ID)
	assert.Equal(t, "Анна", booking.UserName)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, model.UnassignedCourseName, booking.CourseName)
	assert.Equal(t, model.UnassignedTeacherName, booking.TeacherName)
	assert.Nil(t, booking.CourseID)

	_, err = s.bookings.CreateLead(ctx, Lead{TelegramID: 100, Name: "Анна", Phone: "+998909999999"})
	require.NoError(t, err)

	user, err := s.users.GetByTelegramID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "+998901234567", model.StringValue(user.Phone))
}

func TestCreateLeadWithoutUser(t *testing.T) {
	s := newServices(t)

	booking, err := s.bookings.CreateLead(context.Background(), Lead{TelegramID: 5, Name: "Гость", Phone: "+998900000000"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), booking.UserID)
}

func TestCreateCourseBooking(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	booking, course, err := s.bookings.CreateCourseBooking(ctx, 200, "Иван Петров", 1)
	require.NoError(t, err)
	require.NotNil(t, booking.CourseID)
	assert.Equal(t, int64(1), *booking.CourseID)
	assert.Equal(t, course.Name, booking.CourseName)
	assert.Equal(t, model.UnknownPhone, booking.UserPhone)
	assert.Equal(t, model.UnassignedTeacherName, booking.TeacherName)
	assert.Equal(t, model.StatusPending, booking.Status)

	_, _, err = s.bookings.CreateCourseBooking(ctx, 200, "Иван", 99)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	_, err = s.catalog.UpdateCourse(ctx, 2, func(c *model.Course) error {
		c.IsActive = model.BoolPtr(false)
		return nil
	})
	require.NoError(t, err)

	_, _, err = s.bookings.CreateCourseBooking(ctx, 200, "Иван", 2)
	assert.ErrorIs(t, err, ErrCourseInactive)

	mine, err := s.bookings.ListByUser(ctx, 200)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestCourseBookingCopiesTeacher(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	_, err := s.catalog.UpdateCourse(ctx, 3, func(c *model.Course) error {
		id := int64(2)
		c.TeacherID = &id
		c.TeacherName = model.StringPtr("Мухаммад Турсун")
		return nil
	})
	require.NoError(t, err)

	booking, _, err := s.bookings.CreateCourseBooking(ctx, 300, "Ольга", 3)
	require.NoError(t, err)
	require.NotNil(t, booking.TeacherID)
	assert.Equal(t, int64(2), *booking.TeacherID)
	assert.Equal(t, "Мухаммад Турсун", booking.TeacherName)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	user, err := s.users.RegisterUser(ctx, repository.UserProfile{TelegramID: 900, FirstName: "Олег"})
	require.NoError(t, err)
	booking, err := s.bookings.CreateLead(ctx, Lead{TelegramID: 900, Name: "Олег", Phone: "+998901112233"})
	require.NoError(t, err)

	t.Run("booking", func(t *testing.T) {
		target, err := s.bookings.UpdateStatus(ctx, booking.ID, "trial_booking")
		require.NoError(t, err)
		assert.Equal(t, StatusTargetBooking, target)

		got, err := s.bookings.GetByID(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusTrialBooking, got.Status)
	})

	t.Run("legacy value is migrated", func(t *testing.T) {
		_, err := s.bookings.UpdateStatus(ctx, booking.ID, "cancelled")
		require.NoError(t, err)

		got, err := s.bookings.GetByID(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusFailed, got.Status)
	})

	t.Run("falls back to user by telegram id", func(t *testing.T) {
		target, err := s.bookings.UpdateStatus(ctx, 900, "prepayment")
		require.NoError(t, err)
		assert.Equal(t, StatusTargetUser, target)

		got, err := s.users.Find(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPrepayment, got.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := s.bookings.UpdateStatus(ctx, booking.ID, "teleported")
		assert.ErrorIs(t, err, repository.ErrInvalidStatus)
	})

	t.Run("nothing to update", func(t *testing.T) {
		_, err := s.bookings.UpdateStatus(ctx, 12345, "success")
		assert.ErrorIs(t, err, ErrStatusTargetGone)
	})
}

func TestCoursesByLanguage(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	require.NoError(t, s.catalog.CreateCourse(ctx, &model.Course{Name: "English B1", Language: model.LanguageEnglish}))
	require.NoError(t, s.catalog.CreateCourse(ctx, &model.Course{Name: "Закрытый", IsActive: model.BoolPtr(false)}))

	groups, err := s.catalog.CoursesByLanguage(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, model.LanguageTurkish, groups[0].Language)
	assert.Len(t, groups[0].Courses, 6)
	assert.Equal(t, model.LanguageEnglish, groups[1].Language)
	require.Len(t, groups[1].Courses, 1)
	assert.Equal(t, "English B1", groups[1].Courses[0].Name)
}

func TestCatalogRequiresNames(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	err := s.catalog.CreateCourse(ctx, &model.Course{Description: "без названия"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = s.catalog.CreateTeacher(ctx, &model.Teacher{Specialization: "английский"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	teacher := &model.Teacher{Name: "Дилноза"}
	require.NoError(t, s.catalog.CreateTeacher(ctx, teacher))
	assert.Equal(t, int64(3), teacher.ID)
	assert.Equal(t, "5 лет", teacher.Experience)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	t.Run("legacy sha256 hash", func(t *testing.T) {
		employee, err := s.employees.Authenticate(ctx, "admin", "password")
		require.NoError(t, err)
		assert.Equal(t, "admin", employee.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.employees.Authenticate(ctx, "admin", "Password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := s.employees.Authenticate(ctx, "nobody", "password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("bcrypt for new employees", func(t *testing.T) {
		created, err := s.employees.Create(ctx, EmployeeInput{
			Name:     "Менеджер",
			Role:     "Менеджер",
			Username: " manager ",
			Password: "s3cret",
		})
		require.NoError(t, err)
		assert.Equal(t, "manager", created.Username)
		assert.True(t, strings.HasPrefix(created.PasswordHash, "$2"))

		_, err = s.employees.Authenticate(ctx, "manager", "s3cret")
		require.NoError(t, err)
	})

	t.Run("blocked employee", func(t *testing.T) {
		_, err := s.employees.Create(ctx, EmployeeInput{
			Username: "blocked",
			Password: "s3cret",
			IsActive: model.BoolPtr(false),
		})
		require.NoError(t, err)

		_, err = s.employees.Authenticate(ctx, "blocked", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestEmployeeCreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	_, err := s.employees.Create(ctx, EmployeeInput{Username: "admin", Password: "x"})
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)

	_, err = s.employees.Create(ctx, EmployeeInput{Username: "nopass"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	created, err := s.employees.Create(ctx, EmployeeInput{Username: "operator", Password: "first"})
	require.NoError(t, err)

	updated, err := s.employees.Update(ctx, created.ID, EmployeeInput{Phone: "+998901234500"})
	require.NoError(t, err)
	assert.Equal(t, created.PasswordHash, updated.PasswordHash)
	assert.Equal(t, "+998901234500", updated.Phone)

	_, err = s.employees.Update(ctx, created.ID, EmployeeInput{Password: "second"})
	require.NoError(t, err)

	_, err = s.employees.Authenticate(ctx, "operator", "first")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.employees.Authenticate(ctx, "operator", "second")
	assert.NoError(t, err)

	_, err = s.employees.Update(ctx, created.ID, EmployeeInput{Username: "admin"})
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("password")
	require.NoError(t, err)

	tests := []struct {
		name     string
		hash     string
		password string
		want     bool
	}{
		{"bcrypt", hash, "password", true},
		{"bcrypt wrong", hash, "other", false},
		{"sha256", "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8", "password", true},
		{"sha256 upper case", "5E884898DA28047151D0E56F8DC6292773603D0D6AABBDD62A11EF721D1542D8", "password", true},
		{"sha256 wrong", "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8", "Password", false},
		{"empty hash", "", "password", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.hash, tt.password))
		})
	}
}

func TestKanbanColumns(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	_, err := s.users.RegisterUser(ctx, repository.UserProfile{TelegramID: 1, FirstName: "Анна"})
	require.NoError(t, err)
	_, err = s.users.RegisterUser(ctx, repository.UserProfile{TelegramID: 2, Username: "bek"})
	require.NoError(t, err)
	_, err = s.users.SetStatus(ctx, 2, "call_success")
	require.NoError(t, err)

	columns, err := s.crm.Kanban(ctx)
	require.NoError(t, err)
	require.Len(t, columns, len(model.FunnelStatuses()))
	assert.Equal(t, model.StatusPending, columns[0].Status)

	byStatus := make(map[model.FunnelStatus][]KanbanCard)
	for _, col := range columns {
		byStatus[col.Status] = col.Cards
	}

	require.Len(t, byStatus[model.StatusNew], 1)
	assert.Equal(t, "Анна", byStatus[model.StatusNew][0].UserName)
	assert.Equal(t, model.UnknownPhone, byStatus[model.StatusNew][0].UserPhone)

	require.Len(t, byStatus[model.StatusCallSuccess], 1)
	assert.Equal(t, "bek", byStatus[model.StatusCallSuccess][0].UserName)
	assert.Empty(t, byStatus[model.StatusFailed])
}

func TestAnalytics(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	_, err := s.users.RegisterUser(ctx, repository.UserProfile{TelegramID: 1, FirstName: "Анна"})
	require.NoError(t, err)
	_, err = s.bookings.CreateLead(ctx, Lead{TelegramID: 1, Name: "Анна", Phone: "+998901234567"})
	require.NoError(t, err)

	analytics, err := s.crm.Analytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, analytics.Stats.TotalUsers)
	assert.Equal(t, 1, analytics.Stats.TotalBookings)
	assert.Len(t, analytics.RecentBookings, 1)
	assert.Len(t, analytics.ActiveUsers, 1)
}

func TestUpdatePreferredLanguage(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	_, err := s.users.RegisterUser(ctx, repository.UserProfile{TelegramID: 7, FirstName: "Мадина"})
	require.NoError(t, err)

	require.NoError(t, s.users.UpdatePreferredLanguage(ctx, 7, ""))
	user, err := s.users.GetByTelegramID(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, user.PreferredLanguage)

	require.NoError(t, s.users.UpdatePreferredLanguage(ctx, 7, model.LanguageKorean))
	user, err = s.users.GetByTelegramID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, model.LanguageKorean, user.PreferredLanguage)
}
