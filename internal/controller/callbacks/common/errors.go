package common

import (
	"errors"

	"github.com/charodeyka/salon_bot/internal/model"
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidTransition):
		return "❌ Действие сейчас недоступно. Начните запись заново: «📅 Записаться»"
	case errors.Is(err, model.ErrInvalidDate):
		return "❌ Эта дата больше недоступна. Выберите другую дату"
	case errors.Is(err, model.ErrSlotUnavailable):
		return "❌ Это время уже занято. Выберите другое время"
	case errors.Is(err, model.ErrConflict):
		return "❌ Слот только что заняли. Выберите другое время"
	case errors.Is(err, model.ErrNotFound):
		return "❌ Не найдено. Начните с /start"
	default:
		return "❌ Произошла ошибка"
	}
}
