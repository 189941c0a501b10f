package schedule

import (
	"time"

	"github.com/charodeyka/salon_bot/internal/model"
)

// Calculator вычисляет доступность дат и свободные слоты мастера.
// Не хранит состояния: результат зависит только от графика мастера,
// даты и переданного снимка записей, поэтому его можно безопасно
// вызывать из нескольких сессий одновременно
type Calculator struct {
	loc *time.Location
	now func() time.Time
}

// NewCalculator создаёт калькулятор доступности для часового пояса салона
func NewCalculator(loc *time.Location) *Calculator {
	return &Calculator{loc: loc, now: time.Now}
}

// NewCalculatorWithClock создаёт калькулятор с фиксированными часами (для тестов)
func NewCalculatorWithClock(loc *time.Location, now func() time.Time) *Calculator {
	return &Calculator{loc: loc, now: now}
}

// Today возвращает текущую дату в часовом поясе салона
func (c *Calculator) Today() time.Time {
	return model.DateOnly(c.now().In(c.loc))
}

// IsDateBookable проверяет можно ли записаться к мастеру на дату.
// Дата недоступна если: день недели выходной, дата в прошлом
// или дата попадает в отпуск мастера (границы включительно)
func (c *Calculator) IsDateBookable(master *model.Master, date time.Time) bool {
	sched := master.Schedule

	if sched.IsClosedOn(date.Weekday()) {
		return false
	}

	if model.DateOnly(date).Before(c.Today()) {
		return false
	}

	for _, vacation := range sched.Vacations {
		if vacation.Contains(date) {
			return false
		}
	}

	return true
}

// GenerateSlots возвращает свободные слоты мастера на дату в порядке
// возрастания. Перебирает 30-минутные слоты от начала рабочего дня
// до конца (не включая), пропуская обед и занятые подтверждёнными
// записями времена. Для недоступной даты возвращает пустой список
func (c *Calculator) GenerateSlots(master *model.Master, date time.Time, appointments []*model.Appointment) []model.TimeSlot {
	if !c.IsDateBookable(master, date) {
		return nil
	}

	sched := master.Schedule

	booked := make(map[model.TimeSlot]bool)
	for _, appt := range appointments {
		if appt.Status == model.AppointmentStatusConfirmed &&
			appt.Master == master.Name &&
			model.SameDate(appt.Date, date) {
			booked[appt.Slot] = true
		}
	}

	var slots []model.TimeSlot
	for hour := sched.StartHour; hour < sched.EndHour; hour++ {
		// Обед сравнивается по часу: слот 12:30 при обеде 12-13 исключается
		if hour >= sched.BreakStartHour && hour < sched.BreakEndHour {
			continue
		}

		for minute := 0; minute < 60; minute += model.SlotStepMinutes {
			slot := model.TimeSlot{Hour: hour, Minute: minute}
			if booked[slot] {
				continue
			}
			slots = append(slots, slot)
		}
	}

	return slots
}

// AvailableDates возвращает доступные для записи даты из ближайших
// windowDays дней начиная с сегодняшнего
func (c *Calculator) AvailableDates(master *model.Master, windowDays int) []time.Time {
	today := c.Today()

	var dates []time.Time
	for i := 0; i < windowDays; i++ {
		date := today.AddDate(0, 0, i)
		if c.IsDateBookable(master, date) {
			dates = append(dates, date)
		}
	}

	return dates
}
