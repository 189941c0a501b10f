package schedule

import (
	"time"

	"github.com/charodeyka/salon_bot/internal/model"
)

// DayState состояние дня в календарной сетке
type DayState string

const (
	DayToday       DayState = "today"
	DayAvailable   DayState = "available"
	DayUnavailable DayState = "unavailable"
)

// Day один день календарной сетки
type Day struct {
	Date  time.Time
	State DayState
}

// GridRenderer строит календарную сетку доступности мастера.
// Состояние каждого дня берётся только из вердиктов Calculator,
// чтобы сетка никогда не расходилась с проверкой при выборе даты
type GridRenderer struct {
	calc *Calculator
}

// NewGridRenderer создаёт рендерер сетки поверх калькулятора
func NewGridRenderer(calc *Calculator) *GridRenderer {
	return &GridRenderer{calc: calc}
}

func (g *GridRenderer) classify(master *model.Master, date, today time.Time) DayState {
	if model.SameDate(date, today) {
		return DayToday
	}
	if g.calc.IsDateBookable(master, date) {
		return DayAvailable
	}
	return DayUnavailable
}

// Window возвращает days дней начиная с anchor+offset.
// Нулевой anchor означает сегодняшнюю дату
func (g *GridRenderer) Window(master *model.Master, anchor time.Time, offset, days int) []Day {
	today := g.calc.Today()
	if anchor.IsZero() {
		anchor = today
	}
	start := model.DateOnly(anchor).AddDate(0, 0, offset)

	result := make([]Day, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		result = append(result, Day{Date: date, State: g.classify(master, date, today)})
	}

	return result
}

// MonthGrid возвращает календарь месяца anchor построчно по неделям.
// Недели начинаются с понедельника, дни вне месяца - nil ячейки
func (g *GridRenderer) MonthGrid(master *model.Master, anchor time.Time) [][]*Day {
	today := g.calc.Today()
	if anchor.IsZero() {
		anchor = today
	}

	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	last := first.AddDate(0, 1, -1)

	// Колонка первого дня месяца при неделе с понедельника
	col := int(first.Weekday()) - 1
	if first.Weekday() == time.Sunday {
		col = 6
	}

	var weeks [][]*Day
	week := make([]*Day, 7)

	for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
		week[col] = &Day{Date: date, State: g.classify(master, date, today)}
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]*Day, 7)
			col = 0
		}
	}

	if col > 0 {
		weeks = append(weeks, week)
	}

	return weeks
}
