package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charodeyka/salon_bot/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSalonYAML = `
salon:
  name: "Чародейка"
  address: "Азовская улица, 4"
  city: "Москва"
  phone: "+7 (999) 123-45-67"

working_hours:
  start: 8
  end: 18
  break_start: 12
  break_end: 13
  closed_weekdays: [6, 7]

services:
  - name: "Мужская стрижка"
    price: 400
  - name: "Окрашивание"
    price: 1500

masters:
  - name: "Дмитрий"
    telegram_id: 42
    specialization: ["стрижка"]
    vacations:
      - start: "2025-06-10"
        end: "2025-06-15"
  - name: "Александр"
    specialization: ["укладка"]
`

func writeSalonYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "salon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSalon_Valid(t *testing.T) {
	salon, err := config.LoadSalon(writeSalonYAML(t, validSalonYAML))
	require.NoError(t, err)

	assert.Equal(t, "Чародейка", salon.Name)
	assert.Equal(t, "Москва", salon.City)
	require.NotNil(t, salon.Location)
	assert.Equal(t, "Europe/Moscow", salon.Location.String(), "дефолтный часовой пояс")

	assert.Equal(t, 8, salon.WorkingHours.StartHour)
	assert.Equal(t, 18, salon.WorkingHours.EndHour)
	assert.Equal(t, 12, salon.WorkingHours.BreakStartHour)
	assert.Equal(t, 13, salon.WorkingHours.BreakEndHour)
	// ISO 6 и 7 это суббота и воскресенье
	assert.ElementsMatch(t,
		[]time.Weekday{time.Saturday, time.Sunday},
		salon.WorkingHours.ClosedWeekdays)

	require.Len(t, salon.Services, 2)
	assert.Equal(t, 400, salon.Services[0].Price)

	require.Len(t, salon.Masters, 2)
	dmitry := salon.MasterByName("Дмитрий")
	require.NotNil(t, dmitry)
	assert.Equal(t, int64(42), dmitry.TelegramID)
	require.Len(t, dmitry.Schedule.Vacations, 1)
	assert.Equal(t, 10, dmitry.Schedule.Vacations[0].From.Day())
	assert.Equal(t, 15, dmitry.Schedule.Vacations[0].To.Day())

	// График мастера наследует общие рабочие часы
	assert.Equal(t, salon.WorkingHours.StartHour, dmitry.Schedule.StartHour)
	assert.Equal(t, salon.WorkingHours.ClosedWeekdays, dmitry.Schedule.ClosedWeekdays)
}

func TestLoadSalon_Lookups(t *testing.T) {
	salon, err := config.LoadSalon(writeSalonYAML(t, validSalonYAML))
	require.NoError(t, err)

	assert.NotNil(t, salon.ServiceByName("Окрашивание"))
	assert.Nil(t, salon.ServiceByName("Педикюр"))

	assert.NotNil(t, salon.MasterByTelegramID(42))
	assert.Nil(t, salon.MasterByTelegramID(999))
	assert.Nil(t, salon.MasterByName("Василий"))
}

func TestLoadSalon_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		mutate  string
		errPart string
	}{
		{
			name: "нет услуг",
			mutate: `
salon: {name: "X"}
working_hours: {start: 8, end: 18}
masters:
  - name: "Дмитрий"
`,
			errPart: "at least one service",
		},
		{
			name: "нет мастеров",
			mutate: `
salon: {name: "X"}
working_hours: {start: 8, end: 18}
services:
  - name: "Стрижка"
    price: 400
`,
			errPart: "at least one master",
		},
		{
			name: "часы наоборот",
			mutate: `
salon: {name: "X"}
working_hours: {start: 18, end: 8}
services: [{name: "Стрижка", price: 400}]
masters: [{name: "Дмитрий"}]
`,
			errPart: "invalid working hours",
		},
		{
			name: "выходной вне 1-7",
			mutate: `
salon: {name: "X"}
working_hours: {start: 8, end: 18, closed_weekdays: [0]}
services: [{name: "Стрижка", price: 400}]
masters: [{name: "Дмитрий"}]
`,
			errPart: "invalid closed weekday",
		},
		{
			name: "дубликат мастера",
			mutate: `
salon: {name: "X"}
working_hours: {start: 8, end: 18}
services: [{name: "Стрижка", price: 400}]
masters: [{name: "Дмитрий"}, {name: "Дмитрий"}]
`,
			errPart: "duplicate master",
		},
		{
			name: "отпуск задом наперёд",
			mutate: `
salon: {name: "X"}
working_hours: {start: 8, end: 18}
services: [{name: "Стрижка", price: 400}]
masters:
  - name: "Дмитрий"
    vacations:
      - start: "2025-06-15"
        end: "2025-06-10"
`,
			errPart: "vacation ends before it starts",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.LoadSalon(writeSalonYAML(t, tc.mutate))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errPart)
		})
	}
}

func TestLoadSalon_MissingFile(t *testing.T) {
	_, err := config.LoadSalon(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadSalon_UnknownTimezone(t *testing.T) {
	content := `
salon: {name: "X"}
timezone: "Narnia/Lantern"
working_hours: {start: 8, end: 18}
services: [{name: "Стрижка", price: 400}]
masters: [{name: "Дмитрий"}]
`
	_, err := config.LoadSalon(writeSalonYAML(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timezone")
}
