package model

import "time"

// Master мастер салона
type Master struct {
	Name           string   `json:"name"`
	TelegramID     int64    `json:"telegram_id"`
	Specialization []string `json:"specialization"`
	Schedule       Schedule `json:"schedule"`
}

// Schedule график работы мастера: рабочие часы, обед,
// выходные дни недели и отпуска
type Schedule struct {
	StartHour      int            `json:"start_hour"`
	EndHour        int            `json:"end_hour"`
	BreakStartHour int            `json:"break_start_hour"`
	BreakEndHour   int            `json:"break_end_hour"`
	ClosedWeekdays []time.Weekday `json:"closed_weekdays"`
	Vacations      []Vacation     `json:"vacations"`
}

// IsClosedOn проверяет является ли день недели выходным
func (s Schedule) IsClosedOn(weekday time.Weekday) bool {
	for _, wd := range s.ClosedWeekdays {
		if wd == weekday {
			return true
		}
	}
	return false
}

// Vacation отпуск мастера, границы включительно
type Vacation struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains проверяет попадает ли дата в диапазон отпуска.
// Сравнение чисто календарное: границы из БД приходят в UTC,
// а проверяемая дата - в часовом поясе салона
func (v Vacation) Contains(date time.Time) bool {
	return !earlierDate(date, v.From) && !earlierDate(v.To, date)
}

// earlierDate сравнивает календарные дни, игнорируя время и часовой пояс
func earlierDate(a, b time.Time) bool {
	if a.Year() != b.Year() {
		return a.Year() < b.Year()
	}
	if a.Month() != b.Month() {
		return a.Month() < b.Month()
	}
	return a.Day() < b.Day()
}

// DateOnly обрезает время, оставляя только дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDate проверяет что две даты приходятся на один календарный день
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
