package schedule_test

import (
	"testing"
	"time"

	"github.com/charodeyka/salon_bot/internal/model"
	"github.com/charodeyka/salon_bot/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Фиксированные часы: понедельник 2 июня 2025, 10:00
func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	}
}

func testMaster() *model.Master {
	return &model.Master{
		Name:           "Дмитрий",
		Specialization: []string{"стрижка"},
		Schedule: model.Schedule{
			StartHour:      8,
			EndHour:        18,
			BreakStartHour: 12,
			BreakEndHour:   13,
			ClosedWeekdays: []time.Weekday{time.Saturday, time.Sunday},
			Vacations: []model.Vacation{
				{
					From: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
					To:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
				},
			},
		},
	}
}

func newTestCalculator() *schedule.Calculator {
	return schedule.NewCalculatorWithClock(time.UTC, fixedClock())
}

func TestGenerateSlots_FullWorkingDay(t *testing.T) {
	calc := newTestCalculator()
	master := testMaster()
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC) // вторник

	slots := calc.GenerateSlots(master, date, nil)

	// 10 рабочих часов минус час обеда = 9 часов по 2 слота
	require.Len(t, slots, 18)
	assert.Equal(t, model.TimeSlot{Hour: 8, Minute: 0}, slots[0])
	assert.Equal(t, model.TimeSlot{Hour: 17, Minute: 30}, slots[len(slots)-1])

	for _, slot := range slots {
		assert.NotEqual(t, 12, slot.Hour, "обеденный час должен быть исключён")
		assert.Less(t, slot.Hour, 18)
		assert.GreaterOrEqual(t, slot.Hour, 8)
	}
}

func TestGenerateSlots_SortedAscending(t *testing.T) {
	calc := newTestCalculator()
	master := testMaster()
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	slots := calc.GenerateSlots(master, date, nil)

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Before(slots[i]), "слоты должны идти по возрастанию")
	}
}

func TestGenerateSlots_ExcludesBooked(t *testing.T) {
	calc := newTestCalculator()
	master := testMaster()
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	appointments := []*model.Appointment{
		{
			Master: master.Name,
			Date:   date,
			Slot:   model.TimeSlot{Hour: 14, Minute: 30},
			Status: model.AppointmentStatusConfirmed,
		},
		// Отменённая запись слот не занимает
		{
			Master: master.Name,
			Date:   date,
			Slot:   model.TimeSlot{Hour: 15, Minute: 0},
			Status: model.AppointmentStatusCancelled,
		},
		// Запись другого мастера не влияет
		{
			Master: "Александр",
			Date:   date,
			Slot:   model.TimeSlot{Hour: 16, Minute: 0},
			Status: model.AppointmentStatusConfirmed,
		},
	}

	slots := calc.GenerateSlots(master, date, appointments)

	require.Len(t, slots, 17)
	assert.NotContains(t, slots, model.TimeSlot{Hour: 14, Minute: 30})
	assert.Contains(t, slots, model.TimeSlot{Hour: 15, Minute: 0})
	assert.Contains(t, slots, model.TimeSlot{Hour: 16, Minute: 0})
}

func TestGenerateSlots_Idempotent(t *testing.T) {
	calc := newTestCalculator()
	master := testMaster()
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	first := calc.GenerateSlots(master, date, nil)
	second := calc.GenerateSlots(master, date, nil)

	assert.Equal(t, first, second)
}

func TestGenerateSlots_UnbookableDate(t *testing.T) {
	calc := newTestCalculator()
	master := testMaster()

	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, calc.GenerateSlots(master, saturday, nil))
}

func TestGenerateSlots_FullDayBreak(t *testing.T) {
	calc := newTestCalculator()
	master := testMaster()
	master.Schedule.BreakStartHour = 8
	master.Schedule.BreakEndHour = 18

	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, calc.GenerateSlots(master, date, nil))
}

func TestGenerateSlots_CountFormula(t *testing.T) {
	calc := newTestCalculator()
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		start, end int
		brS, brE   int
	}{
		{"стандартный день", 8, 18, 12, 13},
		{"без обеда", 9, 17, 0, 0},
		{"длинный обед", 10, 20, 13, 15},
		{"короткий день", 11, 13, 12, 13},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			master := testMaster()
			master.Schedule.Vacations = nil
			master.Schedule.StartHour = tc.start
			master.Schedule.EndHour = tc.end
			master.Schedule.BreakStartHour = tc.brS
			master.Schedule.BreakEndHour = tc.brE

			slots := calc.GenerateSlots(master, date, nil)
			want := 2*(tc.end-tc.start) - 2*(tc.brE-tc.brS)
			assert.Len(t, slots, want)
		})
	}
}

func TestIsDateBookable(t *testing.T) {
	calc := newTestCalculator()
	master := testMaster()

	cases := []struct {
		name string
		date time.Time
		want bool
	}{
		{"сегодня", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), true},
		{"будний день", time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), true},
		{"суббота", time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC), false},
		{"воскресенье", time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), false},
		{"вчера", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{"день перед отпуском", time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), true},
		{"первый день отпуска", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), false},
		{"середина отпуска", time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC), false},
		{"последний день отпуска (включительно)", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), false},
		{"день после отпуска", time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, calc.IsDateBookable(master, tc.date))
		})
	}
}

func TestIsDateBookable_VacationBoundsFromUTCStorage(t *testing.T) {
	// DATE колонки Postgres сканируются как UTC-полночи, а даты
	// запросов живут в часовом поясе салона. Границы отпуска при
	// этом остаются включительными
	moscow := time.FixedZone("MSK", 3*60*60)
	calc := schedule.NewCalculatorWithClock(moscow, func() time.Time {
		return time.Date(2025, 6, 2, 10, 0, 0, 0, moscow)
	})

	master := testMaster()
	master.Schedule.Vacations = []model.Vacation{
		{
			From: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	assert.True(t, calc.IsDateBookable(master, time.Date(2025, 6, 9, 0, 0, 0, 0, moscow)))
	assert.False(t, calc.IsDateBookable(master, time.Date(2025, 6, 10, 0, 0, 0, 0, moscow)),
		"первый день отпуска должен быть закрыт для записи")
	assert.False(t, calc.IsDateBookable(master, time.Date(2025, 6, 13, 0, 0, 0, 0, moscow)))
	assert.True(t, calc.IsDateBookable(master, time.Date(2025, 6, 16, 0, 0, 0, 0, moscow)))
}

func TestAvailableDates(t *testing.T) {
	calc := newTestCalculator()
	master := testMaster()
	master.Schedule.Vacations = nil

	// Окно пн 2 июня - вс 8 июня: сб и вс закрыты
	dates := calc.AvailableDates(master, 7)

	require.Len(t, dates, 5)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC), dates[4])
}

func TestToday_UsesSalonTimezone(t *testing.T) {
	// 2 июня 23:30 UTC это уже 3 июня в Москве (UTC+3)
	moscow := time.FixedZone("MSK", 3*60*60)
	calc := schedule.NewCalculatorWithClock(moscow, func() time.Time {
		return time.Date(2025, 6, 2, 23, 30, 0, 0, time.UTC)
	})

	today := calc.Today()
	assert.Equal(t, 3, today.Day())
	assert.Equal(t, 0, today.Hour())
}
