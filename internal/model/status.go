package model

import "strings"

// FunnelStatus - этап воронки продаж для пользователя или заявки
type FunnelStatus string

const (
	StatusPending            FunnelStatus = "pending"              // Заявка из бота, ждёт разбора
	StatusNew                FunnelStatus = "new"                  // Новый лид
	StatusCallSuccess        FunnelStatus = "call_success"         // Дозвонились
	StatusCallFailed         FunnelStatus = "call_failed"          // Не дозвонились
	StatusCallback           FunnelStatus = "callback"             // Перезвонить
	StatusTrialBooking       FunnelStatus = "trial_booking"        // Записан на пробный урок
	StatusOnlineTrialBooking FunnelStatus = "online_trial_booking" // Записан на онлайн пробный урок
	StatusTrialCompleted     FunnelStatus = "trial_completed"      // Пробный урок пройден
	StatusPrepayment         FunnelStatus = "prepayment"           // Внесена предоплата
	StatusWaitingGroup       FunnelStatus = "waiting_group"        // Ждёт набора группы
	StatusSuccess            FunnelStatus = "success"              // Стал студентом
	StatusFailed             FunnelStatus = "failed"               // Отказ
)

var funnelOrder = []FunnelStatus{
	StatusPending,
	StatusNew,
	StatusCallSuccess,
	StatusCallFailed,
	StatusCallback,
	StatusTrialBooking,
	StatusOnlineTrialBooking,
	StatusTrialCompleted,
	StatusPrepayment,
	StatusWaitingGroup,
	StatusSuccess,
	StatusFailed,
}

// legacyStatuses переводит значения из старых версий CRM в текущую воронку
var legacyStatuses = map[string]FunnelStatus{
	"active":      StatusCallSuccess,
	"in_progress": StatusCallSuccess,
	"converted":   StatusSuccess,
	"confirmed":   StatusSuccess,
	"won":         StatusSuccess,
	"cancelled":   StatusFailed,
	"canceled":    StatusFailed,
	"lost":        StatusFailed,
	"inactive":    StatusFailed,
}

// FunnelStatuses возвращает все этапы в порядке колонок канбан-доски
func FunnelStatuses() []FunnelStatus {
	out := make([]FunnelStatus, len(funnelOrder))
	copy(out, funnelOrder)
	return out
}

// Valid сообщает, что статус входит в воронку
func (s FunnelStatus) Valid() bool {
	for _, status := range funnelOrder {
		if s == status {
			return true
		}
	}
	return false
}

// ParseFunnelStatus приводит произвольное значение к статусу воронки.
// Пустые и неизвестные значения становятся StatusNew.
func ParseFunnelStatus(raw string) FunnelStatus {
	value := FunnelStatus(strings.ToLower(strings.TrimSpace(raw)))
	if value.Valid() {
		return value
	}
	if migrated, ok := legacyStatuses[string(value)]; ok {
		return migrated
	}
	return StatusNew
}

// IsKnownStatus сообщает, можно ли принять значение от сотрудника без подмены на StatusNew
func IsKnownStatus(raw string) bool {
	value := strings.ToLower(strings.TrimSpace(raw))
	if FunnelStatus(value).Valid() {
		return true
	}
	_, ok := legacyStatuses[value]
	return ok
}
