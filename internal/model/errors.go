package model

import "errors"

// Ошибки бронирования. Все они ожидаемые и восстановимые:
// контроллер заново показывает пользователю актуальные варианты
var (
	ErrInvalidTransition = errors.New("step does not match session state")
	ErrInvalidDate       = errors.New("date is no longer bookable")
	ErrSlotUnavailable   = errors.New("time slot is no longer available")
	ErrConflict          = errors.New("slot already booked")
	ErrNotFound          = errors.New("not found")
)
