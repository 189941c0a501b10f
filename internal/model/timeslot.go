package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SlotStepMinutes шаг сетки слотов
const SlotStepMinutes = 30

// TimeSlot время начала записи внутри рабочего дня
type TimeSlot struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// ParseTimeSlot разбирает слот из строки вида "14:30"
func ParseTimeSlot(s string) (TimeSlot, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return TimeSlot{}, fmt.Errorf("invalid time slot format: %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeSlot{}, fmt.Errorf("invalid hour in time slot: %q", s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeSlot{}, fmt.Errorf("invalid minute in time slot: %q", s)
	}

	return TimeSlot{Hour: hour, Minute: minute}, nil
}

// String форматирует слот как "14:30"
func (t TimeSlot) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Before сравнивает слоты хронологически
func (t TimeSlot) Before(other TimeSlot) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}
