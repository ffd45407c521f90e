package formatting

// pluralize выбирает форму слова для числа: one (1, 21), few (2-4, 22-24), many (остальные)
func pluralize(count int, one, few, many string) string {
	if count < 0 {
		count = -count
	}
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeCourses возвращает правильное склонение слова "курс"
func PluralizeCourses(count int) string {
	return pluralize(count, "курс", "курса", "курсов")
}

// PluralizeBookings возвращает правильное склонение слова "заявка"
func PluralizeBookings(count int) string {
	return pluralize(count, "заявка", "заявки", "заявок")
}
