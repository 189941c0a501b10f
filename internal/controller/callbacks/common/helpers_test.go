package common_test

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/charodeyka/salon_bot/internal/controller/callbacks/common"
	"github.com/charodeyka/salon_bot/internal/model"
	"github.com/charodeyka/salon_bot/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload(t *testing.T) {
	cases := []struct {
		data    string
		want    string
		wantErr bool
	}{
		{"service:Женская стрижка", "Женская стрижка", false},
		{"date:2025-06-03", "2025-06-03", false},
		// Нагрузка сама содержит двоеточие
		{"time:14:30", "14:30", false},
		{"confirm:yes", "yes", false},
		{"noop", "", true},
		{"service:", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := common.Payload(tc.data)
		if tc.wantErr {
			assert.Error(t, err, "data=%q", tc.data)
			continue
		}
		require.NoError(t, err, "data=%q", tc.data)
		assert.Equal(t, tc.want, got)
	}
}

func TestErrorMessage_KnownErrors(t *testing.T) {
	for _, err := range []error{
		model.ErrInvalidTransition,
		model.ErrInvalidDate,
		model.ErrSlotUnavailable,
		model.ErrConflict,
		model.ErrNotFound,
	} {
		msg := common.ErrorMessage(err)
		assert.NotEmpty(t, msg)
		assert.NotContains(t, msg, "err", "пользователь не должен видеть сырую ошибку")
	}
}

func TestGenerateCalendarImage_ProducesPNG(t *testing.T) {
	anchor := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	master := &model.Master{
		Name: "Дмитрий",
		Schedule: model.Schedule{
			StartHour:      8,
			EndHour:        18,
			ClosedWeekdays: []time.Weekday{time.Saturday, time.Sunday},
		},
	}

	calc := schedule.NewCalculatorWithClock(time.UTC, func() time.Time {
		return time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	})
	weeks := schedule.NewGridRenderer(calc).MonthGrid(master, anchor)

	data, err := common.GenerateCalendarImage(anchor, weeks)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err, "результат должен быть валидным PNG")
	assert.Positive(t, img.Bounds().Dx())
	assert.Positive(t, img.Bounds().Dy())
}
