package conversation

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bonuseducation/crm_bot/internal/ai"
	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository"
	"github.com/bonuseducation/crm_bot/internal/repository/base"
	"github.com/bonuseducation/crm_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func (g *fakeGenerator) lastPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.prompts) == 0 {
		return ""
	}
	return g.prompts[len(g.prompts)-1]
}

type fixture struct {
	machine  *Machine
	gen      *fakeGenerator
	users    *repository.UserRepository
	bookings *repository.BookingRepository
	convs    *repository.ConversationRepository
	prompts  *repository.PromptRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := zap.NewNop()
	store := base.NewStore(filepath.Join(t.TempDir(), "crm_data.json"), logger)

	users := repository.NewUserRepository(store)
	bookings := repository.NewBookingRepository(store)
	courses := repository.NewCourseRepository(store)
	convs := repository.NewConversationRepository(store)
	prompts := repository.NewPromptRepository(store)

	gen := &fakeGenerator{text: "Ответ модели"}
	machine := NewMachine(
		service.NewUserService(users, convs, logger),
		service.NewBookingService(bookings, users, courses, logger),
		convs,
		prompts,
		gen,
		logger,
	)

	return &fixture{
		machine:  machine,
		gen:      gen,
		users:    users,
		bookings: bookings,
		convs:    convs,
		prompts:  prompts,
	}
}

func (f *fixture) say(t *testing.T, telegramID int64, text string) Reply {
	t.Helper()
	reply, err := f.machine.HandleTurn(context.Background(), Turn{
		TelegramID: telegramID,
		FirstName:  "Ali",
		Text:       text,
	})
	require.NoError(t, err)
	return reply
}

func TestStepByStepBooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const tg = int64(700001)

	reply := f.say(t, tg, "Хочу записаться")
	assert.Equal(t, askNameText, reply.Text)
	assert.Equal(t, StateAwaitingName, f.machine.Drafts().State(tg))

	reply = f.say(t, tg, "Анна")
	assert.Equal(t, askPhoneText, reply.Text)
	assert.Equal(t, StateAwaitingPhone, f.machine.Drafts().State(tg))

	reply = f.say(t, tg, "+998901234567")
	require.NotNil(t, reply.Booking)
	assert.Contains(t, reply.Text, "✅ Заявка создана!")
	assert.Contains(t, reply.Text, "Имя: Анна")
	assert.NotContains(t, reply.Text, "Предпочтения")
	assert.Equal(t, StateIdle, f.machine.Drafts().State(tg))
	assert.Equal(t, 0, f.machine.Drafts().Len())

	bookings, err := f.bookings.ListByUser(ctx, tg)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	b := bookings[0]
	assert.Equal(t, "Анна", b.UserName)
	assert.Equal(t, "+998901234567", b.UserPhone)
	assert.Equal(t, model.StatusPending, b.Status)
	assert.Equal(t, model.UnassignedCourseName, b.CourseName)
	assert.Equal(t, model.UnassignedTeacherName, b.TeacherName)
	assert.Nil(t, b.CourseID)
	assert.Equal(t, leadNotes, b.Notes)

	// каждый ответ записан в журнал
	history, err := f.convs.History(ctx, tg)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "Хочу записаться", history[0].Message)
	assert.Equal(t, askNameText, history[0].Response)
	assert.Equal(t, reply.Text, history[2].Response)

	user, err := f.users.GetByTelegramID(ctx, tg)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "+998901234567", model.StringValue(user.Phone))

	assert.Empty(t, f.gen.prompts)
}

func TestNameAndPhoneInOneMessage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const tg = int64(700002)

	reply := f.say(t, tg, "Иван +998901234567, можно в субботу в 17:00")
	require.NotNil(t, reply.Booking)
	assert.Contains(t, reply.Text, "Имя: Иван")
	assert.Contains(t, reply.Text, "Предпочтения: суббота 17:00")

	bookings, err := f.bookings.ListByUser(ctx, tg)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	b := bookings[0]
	assert.Equal(t, "Иван", b.UserName)
	assert.Equal(t, "+998901234567", b.UserPhone)
	assert.Contains(t, b.Notes, "Дни: суббота")
	assert.Contains(t, b.Notes, "Время: 17:00")
	assert.Equal(t, leadNotesOneMessage+" | Дни: суббота; Время: 17:00", b.Notes)

	assert.Equal(t, 0, f.machine.Drafts().Len())
}

func TestPhoneWithoutNameAsksForName(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const tg = int64(700003)

	reply := f.say(t, tg, "вот мой номер +998901234567")
	assert.Equal(t, askFullNameText, reply.Text)
	assert.Nil(t, reply.Booking)
	assert.Equal(t, StateAwaitingName, f.machine.Drafts().State(tg))

	reply = f.say(t, tg, "Петров Пётр")
	require.NotNil(t, reply.Booking)

	bookings, err := f.bookings.ListByUser(ctx, tg)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "Петров Пётр", bookings[0].UserName)
	assert.Equal(t, "+998901234567", bookings[0].UserPhone)
}

func TestBarePhoneUsesProfileName(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const tg = int64(700004)

	reply := f.say(t, tg, "+998901234567")
	require.NotNil(t, reply.Booking)

	bookings, err := f.bookings.ListByUser(ctx, tg)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "Ali", bookings[0].UserName)
}

func TestDraftMissingPhoneReprompts(t *testing.T) {
	f := newFixture(t)
	const tg = int64(700005)

	f.say(t, tg, "Хочу записаться")
	f.say(t, tg, "Анна")

	reply := f.say(t, tg, "во вторник после обеда")
	assert.Equal(t, askPhoneFormatText, reply.Text)

	draft, ok := f.machine.Drafts().Get(tg)
	require.True(t, ok)
	assert.Equal(t, []string{"вторник"}, draft.Schedule.Days)
	assert.Equal(t, "16:00", draft.Schedule.TimeFrom)

	reply = f.say(t, tg, "+998 90 123 45 67")
	require.NotNil(t, reply.Booking)
	assert.Equal(t, leadNotes+" | Дни: вторник; Время: 16:00", reply.Booking.Notes)
}

func TestContactsRequest(t *testing.T) {
	f := newFixture(t)
	const tg = int64(700006)

	reply := f.say(t, tg, "Дай контакты")
	assert.Equal(t, ContactsText, reply.Text)
	assert.Empty(t, f.gen.prompts)

	// во время записи контакты не перехватывают сообщение
	f.say(t, tg, "Хочу записаться")
	reply = f.say(t, tg, "адрес")
	assert.Equal(t, askPhoneText, reply.Text)
}

func TestCancelClearsDraft(t *testing.T) {
	f := newFixture(t)
	const tg = int64(700007)

	f.say(t, tg, "Хочу записаться")
	require.Equal(t, StateAwaitingName, f.machine.Drafts().State(tg))

	assert.True(t, f.machine.Cancel(tg))
	assert.Equal(t, StateIdle, f.machine.Drafts().State(tg))
	assert.False(t, f.machine.Cancel(tg))
}

func TestGenerativeReply(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const tg = int64(700008)

	reply := f.say(t, tg, "Расскажите о центре")
	assert.Equal(t, "Ответ модели", reply.Text)
	assert.Equal(t, FailureNone, reply.Failure)

	prompt := f.gen.lastPrompt()
	assert.Contains(t, prompt, "Ты - AI-менеджер учебного центра Bonus Education.")
	assert.Contains(t, prompt, "Текущий вопрос пользователя: Расскажите о центре")
	assert.NotContains(t, prompt, "Контекст предыдущих сообщений")

	history, err := f.convs.History(ctx, tg)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Ответ модели", history[0].Response)
}

func TestPromptCarriesHistoryAndLanguage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const tg = int64(700009)

	require.NoError(t, f.prompts.SetSystemPrompt(ctx, "Свой промпт"))

	f.gen.text = "первый"
	f.say(t, tg, "Есть английский?")
	f.gen.text = "второй"
	f.say(t, tg, "А группы?")
	f.gen.text = "третий"
	f.say(t, tg, "А цены?")

	prompt := f.gen.lastPrompt()
	assert.True(t, strings.HasPrefix(prompt, "Свой промпт\n\n"))
	assert.NotContains(t, prompt, "Bonus Education")
	// язык берётся из карточки клиента
	assert.Contains(t, prompt, "Клиента интересует обучение по языку 'Английский'")
	// два последних обмена в хронологическом порядке
	assert.Contains(t, prompt, "Контекст предыдущих сообщений:\nПользователь: Есть английский?\nБот: первый\nПользователь: А группы?\nБот: второй\n")

	f.gen.text = "четвёртый"
	f.say(t, tg, "А скидки?")

	prompt = f.gen.lastPrompt()
	assert.NotContains(t, prompt, "Есть английский?")
	assert.Contains(t, prompt, "Пользователь: А группы?\nБот: второй\nПользователь: А цены?\nБот: третий\n")
}

func TestPreferredLanguageSaved(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const tg = int64(700010)

	f.say(t, tg, "Хочу корейский")
	user, err := f.users.GetByTelegramID(ctx, tg)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, model.LanguageKorean, user.PreferredLanguage)

	f.say(t, tg, "Спасибо")
	user, err = f.users.GetByTelegramID(ctx, tg)
	require.NoError(t, err)
	assert.Equal(t, model.LanguageKorean, user.PreferredLanguage)
}

func TestQuotaFallbackIsLogged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const tg = int64(700011)

	f.gen.err = fmt.Errorf("%w: limit", ai.ErrQuota)

	reply := f.say(t, tg, "Какая стоимость?")
	assert.Equal(t, FallbackPricing, reply.Text)
	assert.Equal(t, FailureQuota, reply.Failure)

	history, err := f.convs.History(ctx, tg)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Какая стоимость?", history[0].Message)
	assert.Equal(t, FallbackPricing, history[0].Response)
}

type slowGenerator struct{}

func (slowGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestGenerationTimeout(t *testing.T) {
	f := newFixture(t)
	f.machine.generator = slowGenerator{}
	f.machine.timeout = 20 * time.Millisecond

	reply := f.say(t, 700012, "Привет")
	assert.Equal(t, FailureTimeout, reply.Failure)
	assert.Equal(t, FallbackGenericUnavailable, reply.Text)
}

func TestEmptyTextIgnored(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	reply := f.say(t, 700013, "   ")
	assert.Empty(t, reply.Text)

	recent, err := f.convs.Recent(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, recent)

	user, err := f.users.GetByTelegramID(ctx, 700013)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestConcurrentTurnsOfOneUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const tg = int64(700014)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.machine.HandleTurn(ctx, Turn{TelegramID: tg, Text: fmt.Sprintf("вопрос %d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	history, err := f.convs.History(ctx, tg)
	require.NoError(t, err)
	assert.Len(t, history, 10)

	users, err := f.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

type failingLeads struct{}

func (failingLeads) CreateLead(ctx context.Context, lead service.Lead) (*model.Booking, error) {
	return nil, fmt.Errorf("write crm file: disk full")
}

func TestFailedTurnIsStillLogged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	const tg = int64(700099)

	f.machine.leads = failingLeads{}

	_, err := f.machine.HandleTurn(ctx, Turn{TelegramID: tg, FirstName: "Ali", Text: "Хочу записаться"})
	require.NoError(t, err)
	_, err = f.machine.HandleTurn(ctx, Turn{TelegramID: tg, FirstName: "Ali", Text: "Анна"})
	require.NoError(t, err)

	reply, err := f.machine.HandleTurn(ctx, Turn{TelegramID: tg, FirstName: "Ali", Text: "+998901234567"})
	require.Error(t, err)
	assert.Equal(t, ErrorReplyText, reply.Text)
	assert.Nil(t, reply.Booking)

	history, err := f.convs.History(ctx, tg)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "+998901234567", history[2].Message)
	assert.Equal(t, ErrorReplyText, history[2].Response)

	// черновик остаётся, можно повторить
	draft, ok := f.machine.Drafts().Get(tg)
	require.True(t, ok)
	assert.Equal(t, "Анна", draft.Name)
}
