package schedule_test

import (
	"testing"
	"time"

	"github.com/charodeyka/salon_bot/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow_StatesMatchCalculator(t *testing.T) {
	calc := newTestCalculator()
	grid := schedule.NewGridRenderer(calc)
	master := testMaster()

	window := grid.Window(master, time.Time{}, 0, 14)
	require.Len(t, window, 14)

	for _, day := range window {
		switch day.State {
		case schedule.DayToday:
			assert.Equal(t, calc.Today(), day.Date)
		case schedule.DayAvailable:
			assert.True(t, calc.IsDateBookable(master, day.Date),
				"день %s помечен доступным, но калькулятор не согласен", day.Date)
		case schedule.DayUnavailable:
			assert.False(t, calc.IsDateBookable(master, day.Date),
				"день %s помечен недоступным, но калькулятор не согласен", day.Date)
		}
	}
}

func TestWindow_TodayWinsOverAvailability(t *testing.T) {
	calc := newTestCalculator()
	grid := schedule.NewGridRenderer(calc)
	master := testMaster()

	window := grid.Window(master, time.Time{}, 0, 1)
	require.Len(t, window, 1)

	// Сегодня (2 июня, понедельник) - рабочий день, но состояние today важнее
	assert.Equal(t, schedule.DayToday, window[0].State)
}

func TestWindow_Offset(t *testing.T) {
	calc := newTestCalculator()
	grid := schedule.NewGridRenderer(calc)
	master := testMaster()

	window := grid.Window(master, time.Time{}, 7, 7)
	require.Len(t, window, 7)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), window[0].Date)

	// 10-15 июня отпуск: из окна 9-15 июня доступен только понедельник 9-го
	available := 0
	for _, day := range window {
		if day.State == schedule.DayAvailable {
			available++
		}
	}
	assert.Equal(t, 1, available)
}

func TestMonthGrid_June2025(t *testing.T) {
	calc := newTestCalculator()
	grid := schedule.NewGridRenderer(calc)
	master := testMaster()

	weeks := grid.MonthGrid(master, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))

	// Июнь 2025: 1-е воскресенье, 30-е понедельник → 6 строк
	require.Len(t, weeks, 6)
	for _, week := range weeks {
		require.Len(t, week, 7)
	}

	// 1 июня - воскресенье, последняя колонка первой строки
	for col := 0; col < 6; col++ {
		assert.Nil(t, weeks[0][col], "ячейки до 1 июня должны быть пустыми")
	}
	require.NotNil(t, weeks[0][6])
	assert.Equal(t, 1, weeks[0][6].Date.Day())

	// 2 июня - понедельник, первая колонка второй строки, и это "сегодня"
	require.NotNil(t, weeks[1][0])
	assert.Equal(t, 2, weeks[1][0].Date.Day())
	assert.Equal(t, schedule.DayToday, weeks[1][0].State)

	// 30 июня - понедельник, единственная заполненная ячейка последней строки
	require.NotNil(t, weeks[5][0])
	assert.Equal(t, 30, weeks[5][0].Date.Day())
	for col := 1; col < 7; col++ {
		assert.Nil(t, weeks[5][col], "ячейки после 30 июня должны быть пустыми")
	}
}

func TestMonthGrid_AllDaysPresent(t *testing.T) {
	calc := newTestCalculator()
	grid := schedule.NewGridRenderer(calc)
	master := testMaster()

	weeks := grid.MonthGrid(master, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	seen := make(map[int]bool)
	for _, week := range weeks {
		for _, day := range week {
			if day == nil {
				continue
			}
			assert.Equal(t, time.June, day.Date.Month())
			seen[day.Date.Day()] = true
		}
	}
	assert.Len(t, seen, 30)
}
