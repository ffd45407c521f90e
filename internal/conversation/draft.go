package conversation

import (
	"sync"

	"github.com/bonuseducation/crm_bot/internal/intent"
)

// State - этап оформления заявки в диалоге
type State string

const (
	StateIdle          State = ""               // Нет активной заявки
	StateAwaitingName  State = "awaiting_name"  // Ждём имя
	StateAwaitingPhone State = "awaiting_phone" // Имя есть, ждём телефон
)

const intentBooking = "booking"

// Draft - незавершённая заявка из чата
type Draft struct {
	Intent   string
	Name     string
	Phone    string
	Course   string
	Schedule intent.Schedule
}

// State вычисляет этап по заполненным полям
func (d *Draft) State() State {
	switch {
	case d == nil || d.Intent == "":
		return StateIdle
	case d.Name == "":
		return StateAwaitingName
	case d.Phone == "":
		return StateAwaitingPhone
	default:
		return StateIdle
	}
}

// Complete сообщает, что для заявки хватает данных
func (d *Draft) Complete() bool {
	return d != nil && d.Name != "" && d.Phone != ""
}

// DraftStore хранит черновики заявок в памяти процесса.
// Черновик появляется с первым сообщением о записи и удаляется после создания заявки,
// по /cancel или при перезапуске.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[int64]*Draft // telegramID -> черновик
}

func NewDraftStore() *DraftStore {
	return &DraftStore{
		drafts: make(map[int64]*Draft),
	}
}

// Get возвращает копию черновика
func (ds *DraftStore) Get(telegramID int64) (Draft, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	d, ok := ds.drafts[telegramID]
	if !ok {
		return Draft{}, false
	}

	cp := *d
	cp.Schedule.Days = append([]string(nil), d.Schedule.Days...)
	return cp, true
}

// Put сохраняет черновик
func (ds *DraftStore) Put(telegramID int64, d Draft) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.drafts[telegramID] = &d
}

// State возвращает этап оформления для пользователя
func (ds *DraftStore) State(telegramID int64) State {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	return ds.drafts[telegramID].State()
}

// Clear удаляет черновик. Возвращает true, если он был.
func (ds *DraftStore) Clear(telegramID int64) bool {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	_, ok := ds.drafts[telegramID]
	delete(ds.drafts, telegramID)
	return ok
}

// Len - число незавершённых заявок
func (ds *DraftStore) Len() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	return len(ds.drafts)
}
