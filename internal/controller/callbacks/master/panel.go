package master

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charodeyka/salon_bot/internal/controller/callbacks/callbacktypes"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/common"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/common/formatting"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/common/keyboard"
	"github.com/charodeyka/salon_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleMasterPanel показывает мастеру его записи на сегодня и завтра
func HandleMasterPanel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	m := h.Salon.MasterByTelegramID(callback.From.ID)
	if m == nil {
		h.Logger.Warn("Master panel requested by unknown user", zap.Int64("user_id", callback.From.ID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "🚫 Вы не зарегистрированы как мастер")
		return
	}

	today := h.BookingService.Today()
	tomorrow := today.AddDate(0, 0, 1)

	var text strings.Builder
	fmt.Fprintf(&text, "💼 <b>Панель мастера %s</b>\n\n", m.Name)

	if err := appendDaySection(ctx, &text, h, m.Name, "📅 Сегодня", today); err != nil {
		h.Logger.Error("Failed to load master appointments", zap.String("master", m.Name), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}
	if err := appendDaySection(ctx, &text, h, m.Name, "📅 Завтра", tomorrow); err != nil {
		h.Logger.Error("Failed to load master appointments", zap.String("master", m.Name), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	stats, err := h.BookingService.MasterStats(ctx, m.Name)
	if err == nil {
		fmt.Fprintf(&text, "📊 Всего записей: %d\n💰 Выручка: %s\n",
			stats.Appointments, formatting.FormatPrice(stats.Revenue))
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🔄 Обновить", "master_panel")).
		Row(keyboard.Button("⬅️ Назад (выбор роли)", "show_roles")).
		Build()

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text.String(),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})

	common.AnswerCallback(ctx, b, callback.ID, "")
}

func appendDaySection(ctx context.Context, text *strings.Builder, h *callbacktypes.Handler, masterName, title string, date time.Time) error {
	appointments, err := h.BookingService.MasterAppointmentsOnDate(ctx, masterName, date)
	if err != nil {
		return err
	}

	fmt.Fprintf(text, "%s (%s):\n", title, formatting.FormatDateShort(date))
	if len(appointments) == 0 {
		text.WriteString("    Записей нет\n\n")
		return nil
	}
	for _, appt := range appointments {
		fmt.Fprintf(text, "    %s\n", formatAppointment(appt))
	}
	text.WriteString("\n")
	return nil
}

func formatAppointment(appt *model.Appointment) string {
	return fmt.Sprintf("🕐 %s — %s (%s)", appt.Slot.String(), appt.Service, formatting.FormatPrice(appt.Price))
}
