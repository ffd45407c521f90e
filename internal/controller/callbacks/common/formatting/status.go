package formatting

import "github.com/bonuseducation/crm_bot/internal/model"

// StatusDisplay представляет отображение этапа воронки
type StatusDisplay struct {
	Emoji string
	Text  string
}

var statusDisplays = map[model.FunnelStatus]StatusDisplay{
	model.StatusPending:            {"⏳", "Заявка принята"},
	model.StatusNew:                {"🆕", "Новая"},
	model.StatusCallSuccess:        {"📞", "Менеджер связался"},
	model.StatusCallFailed:         {"📵", "Не удалось дозвониться"},
	model.StatusCallback:           {"🔁", "Ждём звонка"},
	model.StatusTrialBooking:       {"📝", "Записаны на пробный урок"},
	model.StatusOnlineTrialBooking: {"💻", "Записаны на онлайн пробный урок"},
	model.StatusTrialCompleted:     {"✔️", "Пробный урок пройден"},
	model.StatusPrepayment:         {"💳", "Предоплата внесена"},
	model.StatusWaitingGroup:       {"👥", "Ждём набора группы"},
	model.StatusSuccess:            {"✅", "Вы студент"},
	model.StatusFailed:             {"❌", "Заявка закрыта"},
}

// GetStatusDisplay возвращает emoji и текст для этапа воронки
func GetStatusDisplay(status model.FunnelStatus) StatusDisplay {
	if display, ok := statusDisplays[status]; ok {
		return display
	}
	return StatusDisplay{"❓", "Неизвестно"}
}
