package intent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Schedule - предпочтения клиента по дням и времени. Пустые поля значат «не указано».
type Schedule struct {
	Days     []string
	TimeFrom string
	TimeTo   string
}

// Empty сообщает, что в тексте не нашлось ни дней, ни времени
func (s Schedule) Empty() bool {
	return len(s.Days) == 0 && s.TimeFrom == "" && s.TimeTo == ""
}

// Summary формирует строку «Дни: …; Время: …» для заметок к заявке
func (s Schedule) Summary() string {
	parts := make([]string, 0, 2)
	if len(s.Days) > 0 {
		parts = append(parts, "Дни: "+strings.Join(s.Days, ", "))
	}
	if t := s.TimeRange(); t != "" {
		parts = append(parts, "Время: "+t)
	}
	return strings.Join(parts, "; ")
}

// TimeRange возвращает «HH:MM-HH:MM», «HH:MM» или пустую строку
func (s Schedule) TimeRange() string {
	switch {
	case s.TimeTo != "":
		return s.TimeFrom + "-" + s.TimeTo
	default:
		return s.TimeFrom
	}
}

// Merge переносит в s всё, что указано в other
func (s Schedule) Merge(other Schedule) Schedule {
	if len(other.Days) > 0 {
		s.Days = other.Days
	}
	if other.TimeFrom != "" {
		s.TimeFrom = other.TimeFrom
	}
	if other.TimeTo != "" {
		s.TimeTo = other.TimeTo
	}
	return s
}

// Сокращения совпадают только целым словом, полные названия - по основе,
// чтобы ловить падежи («в субботу», «по средам»).
type weekday struct {
	name    string
	aliases []string
	stems   []string
}

// Порядок - с понедельника по воскресенье
var weekdays = []weekday{
	{"понедельник", []string{"пн", "пон"}, []string{"понедельн"}},
	{"вторник", []string{"вт", "втор"}, []string{"вторник"}},
	{"среда", []string{"ср", "сред"}, []string{"среда", "среду", "среды", "среде", "средам", "средах", "средой"}},
	{"четверг", []string{"чт", "четв"}, []string{"четверг"}},
	{"пятница", []string{"пт", "пятн"}, []string{"пятниц"}},
	{"суббота", []string{"сб", "суб"}, []string{"суббот"}},
	{"воскресенье", []string{"вс", "воскр"}, []string{"воскресен"}},
}

func (d weekday) matches(word string) bool {
	for _, alias := range d.aliases {
		if word == alias {
			return true
		}
	}
	for _, stem := range d.stems {
		if strings.HasPrefix(word, stem) {
			return true
		}
	}
	return false
}

var (
	timeRangeRE  = regexp.MustCompile(`(\d{1,2})(?:[\s:.](\d{2}))?\s*(?:-|–|—|до|to)\s*(\d{1,2})(?:[\s:.](\d{2}))?`)
	singleTimeRE = regexp.MustCompile(`(\d{1,2})[\s:.](\d{2})`)
	bareHourRE   = regexp.MustCompile(`(?:^|[\s,(])(?:в|во|с|со|к|после|at|from)\s+(\d{1,2})`)
)

const afternoonStart = "16:00"

// ParseSchedule извлекает дни недели и время из свободного текста
func ParseSchedule(text string) Schedule {
	t := strings.ToLower(text)

	words := strings.FieldsFunc(t, func(r rune) bool { return !unicode.IsLetter(r) })

	var s Schedule
	for _, day := range weekdays {
		for _, word := range words {
			if day.matches(word) {
				s.Days = append(s.Days, day.name)
				break
			}
		}
	}

	if from, to, ok := findRange(t); ok {
		s.TimeFrom, s.TimeTo = from, to
	} else if at, ok := findSingle(t); ok {
		s.TimeFrom = at
	} else if at, ok := findBareHour(t); ok {
		s.TimeFrom = at
	}

	if s.TimeFrom == "" && strings.Contains(t, "после обеда") {
		s.TimeFrom = afternoonStart
	}

	return s
}

func findRange(t string) (string, string, bool) {
	for _, m := range timeRangeRE.FindAllStringSubmatchIndex(t, -1) {
		if !standalone(t, m[0], m[1]) {
			continue
		}
		from, ok1 := clock(group(t, m, 1), group(t, m, 2))
		to, ok2 := clock(group(t, m, 3), group(t, m, 4))
		if ok1 && ok2 {
			return from, to, true
		}
	}
	return "", "", false
}

func findSingle(t string) (string, bool) {
	for _, m := range singleTimeRE.FindAllStringSubmatchIndex(t, -1) {
		if !standalone(t, m[0], m[1]) {
			continue
		}
		if at, ok := clock(group(t, m, 1), group(t, m, 2)); ok {
			return at, true
		}
	}
	return "", false
}

func findBareHour(t string) (string, bool) {
	for _, m := range bareHourRE.FindAllStringSubmatchIndex(t, -1) {
		if m[1] < len(t) && isDigit(t[m[1]]) {
			continue
		}
		if at, ok := clock(group(t, m, 1), ""); ok {
			return at, true
		}
	}
	return "", false
}

// standalone отбрасывает совпадения, приклеенные к другим цифрам (например, внутри номера телефона)
func standalone(t string, start, end int) bool {
	if start > 0 && (isDigit(t[start-1]) || t[start-1] == '+') {
		return false
	}
	if end < len(t) && isDigit(t[end]) {
		return false
	}
	return true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func group(t string, m []int, n int) string {
	if m[2*n] < 0 {
		return ""
	}
	return t[m[2*n]:m[2*n+1]]
}

func clock(hours, minutes string) (string, bool) {
	h, err := strconv.Atoi(hours)
	if err != nil || h > 23 {
		return "", false
	}

	mm := 0
	if minutes != "" {
		mm, err = strconv.Atoi(minutes)
		if err != nil || mm > 59 {
			return "", false
		}
	}

	return fmt.Sprintf("%02d:%02d", h, mm), true
}
