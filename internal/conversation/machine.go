// Package conversation ведёт диалог с клиентом: собирает заявку по шагам,
// отвечает контактами и передаёт остальные вопросы генеративной модели.
package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bonuseducation/crm_bot/internal/intent"
	"github.com/bonuseducation/crm_bot/internal/model"
	"github.com/bonuseducation/crm_bot/internal/repository"
	"github.com/bonuseducation/crm_bot/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	historyTurns           = 2
	DefaultGenerateTimeout = 30 * time.Second
)

// Users регистрирует клиентов и хранит их язык обучения
type Users interface {
	RegisterUser(ctx context.Context, profile repository.UserProfile) (*model.User, error)
	UpdatePreferredLanguage(ctx context.Context, telegramID int64, lang model.Language) error
}

// Leads создаёт заявки из диалога
type Leads interface {
	CreateLead(ctx context.Context, lead service.Lead) (*model.Booking, error)
}

// History - журнал реплик
type History interface {
	Append(ctx context.Context, telegramID int64, message, response string) (*model.Conversation, error)
	Recent(ctx context.Context, telegramID int64, limit int) ([]model.Conversation, error)
}

// PromptSource отдаёт промпт, заданный в панели
type PromptSource interface {
	SystemPrompt(ctx context.Context) (string, error)
}

// Turn - одно входящее сообщение
type Turn struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	Text       string
}

// Reply - ответ на сообщение. Пустой Text - отвечать нечего.
type Reply struct {
	Text    string
	Booking *model.Booking // созданная в этом ходе заявка
	Failure FailureReason  // причина запасного ответа, если модель не ответила
}

// Machine обрабатывает ходы диалога. Ходы одного пользователя выполняются строго по очереди.
type Machine struct {
	users     Users
	leads     Leads
	history   History
	prompts   PromptSource
	generator Generator
	drafts    *DraftStore
	locks     *userLocker
	timeout   time.Duration
	logger    *zap.Logger
}

type Option func(*Machine)

// WithGenerateTimeout ограничивает время ответа модели
func WithGenerateTimeout(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.timeout = d
		}
	}
}

func NewMachine(users Users, leads Leads, history History, prompts PromptSource, generator Generator, logger *zap.Logger, opts ...Option) *Machine {
	m := &Machine{
		users:     users,
		leads:     leads,
		history:   history,
		prompts:   prompts,
		generator: generator,
		drafts:    NewDraftStore(),
		locks:     newUserLocker(),
		timeout:   DefaultGenerateTimeout,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Drafts возвращает хранилище черновиков
func (m *Machine) Drafts() *DraftStore {
	return m.drafts
}

// Cancel сбрасывает незавершённую заявку пользователя
func (m *Machine) Cancel(telegramID int64) bool {
	unlock := m.locks.Lock(telegramID)
	defer unlock()

	return m.drafts.Clear(telegramID)
}

// HandleTurn обрабатывает сообщение и возвращает ответ.
// Каждый непустой ответ записывается в журнал диалогов. При ошибке возвращается
// и ошибка, и Reply с ErrorReplyText, который тоже попадает в журнал.
func (m *Machine) HandleTurn(ctx context.Context, turn Turn) (Reply, error) {
	if strings.TrimSpace(turn.Text) == "" {
		return Reply{}, nil
	}

	unlock := m.locks.Lock(turn.TelegramID)
	defer unlock()

	logger := m.logger.With(
		zap.Int64("telegram_id", turn.TelegramID),
		zap.String("turn_id", uuid.NewString()),
	)

	reply, stepErr := m.step(ctx, m.drafts, turn, logger)
	if stepErr != nil {
		reply = Reply{Text: ErrorReplyText}
	}

	if _, err := m.history.Append(ctx, turn.TelegramID, turn.Text, reply.Text); err != nil {
		logger.Error("Failed to save conversation", zap.Error(err))
	}

	return reply, stepErr
}

func (m *Machine) step(ctx context.Context, drafts *DraftStore, turn Turn, logger *zap.Logger) (Reply, error) {
	user, err := m.users.RegisterUser(ctx, repository.UserProfile{
		TelegramID: turn.TelegramID,
		Username:   turn.Username,
		FirstName:  turn.FirstName,
		LastName:   turn.LastName,
	})
	if err != nil {
		logger.Error("Failed to register user", zap.Error(err))
	}

	detected := intent.DetectPreferredLanguage(turn.Text)
	if err := m.users.UpdatePreferredLanguage(ctx, turn.TelegramID, detected); err != nil {
		logger.Warn("Failed to update preferred language", zap.Error(err))
	}

	phone := intent.ExtractPhone(turn.Text)
	draft, inBooking := drafts.Get(turn.TelegramID)

	if !inBooking && phone == "" && intent.AsksForContacts(turn.Text) {
		return Reply{Text: ContactsText}, nil
	}

	if inBooking && draft.Intent == intentBooking {
		return m.continueDraft(ctx, drafts, turn, draft, phone, logger)
	}

	if intent.DetectBookingIntent(turn.Text) {
		drafts.Put(turn.TelegramID, Draft{Intent: intentBooking})
		logger.Info("Booking dialog started")
		return Reply{Text: askNameText}, nil
	}

	if phone != "" {
		return m.leadFromPhone(ctx, drafts, turn, phone, logger)
	}

	lang := detected
	if lang == "" && user != nil {
		lang = user.PreferredLanguage
	}
	return m.generate(ctx, turn, lang, logger), nil
}

// continueDraft дополняет черновик данными из сообщения и создаёт заявку, когда всё собрано
func (m *Machine) continueDraft(ctx context.Context, drafts *DraftStore, turn Turn, draft Draft, phone string, logger *zap.Logger) (Reply, error) {
	draft.Schedule = draft.Schedule.Merge(intent.ParseSchedule(withoutPhone(turn.Text, phone)))

	switch {
	case phone != "":
		draft.Phone = phone
		if draft.Name == "" {
			draft.Name = intent.GuessName(turn.Text, phone)
		}
	case draft.Name == "":
		draft.Name = intent.TitleName(turn.Text)
		if draft.Phone == "" {
			drafts.Put(turn.TelegramID, draft)
			return Reply{Text: askPhoneText}, nil
		}
	}

	if !draft.Complete() {
		drafts.Put(turn.TelegramID, draft)
		if draft.Phone == "" {
			return Reply{Text: askPhoneFormatText}, nil
		}
		return Reply{Text: askFullNameText}, nil
	}

	booking, err := m.leads.CreateLead(ctx, service.Lead{
		TelegramID: turn.TelegramID,
		Name:       draft.Name,
		Phone:      draft.Phone,
		Notes:      leadNotesWith(leadNotes, draft.Schedule),
	})
	if err != nil {
		drafts.Put(turn.TelegramID, draft)
		return Reply{}, fmt.Errorf("create lead: %w", err)
	}

	drafts.Clear(turn.TelegramID)
	logger.Info("Booking dialog completed", zap.Int64("booking_id", booking.ID))

	return Reply{
		Text:    confirmationText(booking.UserName, booking.UserPhone, draft.Schedule),
		Booking: booking,
	}, nil
}

// leadFromPhone обрабатывает номер телефона, присланный без начатой записи
func (m *Machine) leadFromPhone(ctx context.Context, drafts *DraftStore, turn Turn, phone string, logger *zap.Logger) (Reply, error) {
	name := intent.GuessName(turn.Text, phone)
	if name == "" && strings.TrimSpace(withoutPhone(turn.Text, phone)) == "" {
		name = intent.TitleName(turn.FirstName)
	}
	schedule := intent.ParseSchedule(withoutPhone(turn.Text, phone))

	draft := Draft{
		Intent:   intentBooking,
		Name:     name,
		Phone:    phone,
		Schedule: schedule,
	}

	if name == "" {
		drafts.Put(turn.TelegramID, draft)
		return Reply{Text: askFullNameText}, nil
	}

	booking, err := m.leads.CreateLead(ctx, service.Lead{
		TelegramID: turn.TelegramID,
		Name:       name,
		Phone:      phone,
		Notes:      leadNotesWith(leadNotesOneMessage, schedule),
	})
	if err != nil {
		drafts.Put(turn.TelegramID, draft)
		return Reply{}, fmt.Errorf("create lead: %w", err)
	}

	drafts.Clear(turn.TelegramID)
	logger.Info("Lead created from a single message", zap.Int64("booking_id", booking.ID))

	return Reply{
		Text:    confirmationText(booking.UserName, booking.UserPhone, schedule),
		Booking: booking,
	}, nil
}

// generate спрашивает модель, а при сбое подбирает запасной ответ
func (m *Machine) generate(ctx context.Context, turn Turn, lang model.Language, logger *zap.Logger) Reply {
	override, err := m.prompts.SystemPrompt(ctx)
	if err != nil {
		logger.Warn("Failed to load system prompt, using default", zap.Error(err))
		override = ""
	}

	recent, err := m.history.Recent(ctx, turn.TelegramID, historyTurns)
	if err != nil {
		logger.Warn("Failed to load conversation history", zap.Error(err))
		recent = nil
	}
	// Recent отдаёт новые первыми, в промпт нужен хронологический порядок
	history := make([]model.Conversation, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		history = append(history, recent[i])
	}

	prompt := BuildPrompt(PromptInput{
		Override: override,
		Language: lang,
		History:  history,
		Message:  turn.Text,
	})

	gen := m.callGenerator(ctx, prompt, logger)
	if gen.OK() {
		return Reply{Text: gen.Text}
	}

	return Reply{
		Text:    FallbackReply(gen.Failure, turn.Text),
		Failure: gen.Failure,
	}
}

func (m *Machine) callGenerator(ctx context.Context, prompt string, logger *zap.Logger) Generation {
	if m.generator == nil {
		return Generation{Failure: FailureUnavailable}
	}

	genCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	started := time.Now()
	text, err := m.generator.Generate(genCtx, prompt)
	if err != nil {
		reason := Classify(err)
		logger.Error("AI generation failed",
			zap.String("reason", string(reason)),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err),
		)
		return Generation{Failure: reason}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Generation{Failure: FailureEmpty}
	}

	logger.Debug("AI generation completed", zap.Duration("elapsed", time.Since(started)))
	return Generation{Text: text}
}

func withoutPhone(text, phone string) string {
	if phone == "" {
		return text
	}
	return strings.Replace(text, phone, " ", 1)
}
