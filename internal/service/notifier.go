package service

import (
	"context"

	"github.com/charodeyka/salon_bot/internal/model"
)

// AdminNotifier доставляет администратору уведомление о новой записи.
// Узкий интерфейс отвязывает коммит бронирования от транспорта:
// ошибка доставки логируется и никогда не откатывает запись
type AdminNotifier interface {
	NotifyNewAppointment(ctx context.Context, appt *model.Appointment) error
}

// NopNotifier заглушка для тестов и запуска без администратора
type NopNotifier struct{}

func (NopNotifier) NotifyNewAppointment(ctx context.Context, appt *model.Appointment) error {
	return nil
}
