package model_test

import (
	"testing"
	"time"

	"github.com/charodeyka/salon_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestVacationContains_InclusiveBounds(t *testing.T) {
	v := model.Vacation{
		From: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	assert.False(t, v.Contains(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)))
	assert.True(t, v.Contains(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)), "первый день включительно")
	assert.True(t, v.Contains(time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)))
	assert.True(t, v.Contains(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)), "последний день включительно")
	assert.False(t, v.Contains(time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)))
}

func TestVacationContains_MixedLocations(t *testing.T) {
	// Хранилище отдаёт границы как UTC-полночи (DATE колонки),
	// а проверяемая дата приходит в часовом поясе салона.
	// Важен календарный день, а не момент времени: полночь 10 июня
	// по Москве это ещё 9 июня 21:00 UTC
	moscow := time.FixedZone("MSK", 3*60*60)
	v := model.Vacation{
		From: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, v.Contains(time.Date(2025, 6, 10, 0, 0, 0, 0, moscow)),
		"первый день отпуска в поясе салона должен попадать в диапазон с UTC границами")
	assert.True(t, v.Contains(time.Date(2025, 6, 15, 0, 0, 0, 0, moscow)))
	assert.False(t, v.Contains(time.Date(2025, 6, 9, 0, 0, 0, 0, moscow)))
	assert.False(t, v.Contains(time.Date(2025, 6, 16, 0, 0, 0, 0, moscow)))

	// И в обратную сторону: границы в поясе салона, дата в UTC
	vMsk := model.Vacation{
		From: time.Date(2025, 6, 10, 0, 0, 0, 0, moscow),
		To:   time.Date(2025, 6, 15, 0, 0, 0, 0, moscow),
	}
	assert.True(t, vMsk.Contains(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, vMsk.Contains(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, vMsk.Contains(time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)))
}
