package client

import (
	"context"
	"fmt"

	"github.com/charodeyka/salon_bot/internal/controller/callbacks/callbacktypes"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/common"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/common/formatting"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleMyBookings показывает активные записи пользователя
func HandleMyBookings(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	appointments, err := h.BookingService.MyAppointments(ctx, callback.From.ID)
	if err != nil {
		h.Logger.Error("Failed to list appointments", zap.Int64("user_id", callback.From.ID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	if len(appointments) == 0 {
		kb := keyboard.NewBuilder().
			Row(keyboard.Button("📅 Записаться", "start_booking")).
			Row(keyboard.Button("⬅️ В меню", "client_menu")).
			Build()
		editOrReplace(ctx, b, msg, "📋 У вас пока нет записей", kb)
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	text := "📋 <b>Ваши записи:</b>\n\n"
	kb := keyboard.NewBuilder()
	for i, appt := range appointments {
		text += fmt.Sprintf(
			"%d. ✂️ %s\n    👨‍💼 %s\n    📅 %s в %s\n    💰 %s\n\n",
			i+1,
			appt.Service,
			appt.Master,
			formatting.FormatDate(appt.Date),
			appt.Slot.String(),
			formatting.FormatPrice(appt.Price),
		)
		kb.Row(keyboard.Button(
			fmt.Sprintf("❌ Отменить запись %d", i+1),
			"cancel_booking:"+appt.ID.String(),
		))
	}
	kb.Row(keyboard.Button("⬅️ В меню", "client_menu"))

	editOrReplace(ctx, b, msg, text, kb.Build())
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleCancelBooking отменяет существующую запись пользователя
func HandleCancelBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	payload, err := common.Payload(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	id, err := uuid.Parse(payload)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный идентификатор записи")
		return
	}

	if err := h.BookingService.CancelAppointment(ctx, callback.From.ID, id); err != nil {
		h.Logger.Warn("Failed to cancel appointment",
			zap.Int64("user_id", callback.From.ID),
			zap.String("appointment_id", id.String()),
			zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "✅ Запись отменена")
	HandleMyBookings(ctx, b, callback, h)
}
