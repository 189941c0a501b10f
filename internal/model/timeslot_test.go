package model_test

import (
	"testing"

	"github.com/charodeyka/salon_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeSlot(t *testing.T) {
	slot, err := model.ParseTimeSlot("14:30")
	require.NoError(t, err)
	assert.Equal(t, model.TimeSlot{Hour: 14, Minute: 30}, slot)

	slot, err = model.ParseTimeSlot("08:00")
	require.NoError(t, err)
	assert.Equal(t, "08:00", slot.String())

	for _, bad := range []string{"", "14", "14:xx", "25:00", "14:60", "14:30:00"} {
		_, err := model.ParseTimeSlot(bad)
		assert.Error(t, err, "значение %q должно отклоняться", bad)
	}
}

func TestTimeSlot_Before(t *testing.T) {
	assert.True(t, model.TimeSlot{Hour: 9, Minute: 30}.Before(model.TimeSlot{Hour: 10, Minute: 0}))
	assert.True(t, model.TimeSlot{Hour: 9, Minute: 0}.Before(model.TimeSlot{Hour: 9, Minute: 30}))
	assert.False(t, model.TimeSlot{Hour: 9, Minute: 30}.Before(model.TimeSlot{Hour: 9, Minute: 30}))
	assert.False(t, model.TimeSlot{Hour: 10, Minute: 0}.Before(model.TimeSlot{Hour: 9, Minute: 30}))
}
