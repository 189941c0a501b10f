package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/charodeyka/salon_bot/internal/controller/callbacks/callbacktypes"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/common"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/common/formatting"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/common/keyboard"
	"github.com/charodeyka/salon_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// checkAccess проверяет что callback пришёл от администратора
func checkAccess(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) bool {
	if callback.From.ID != h.AdminID {
		h.Logger.Warn("Unauthorized admin panel access attempt", zap.Int64("user_id", callback.From.ID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "🚫 Доступ запрещён")
		return false
	}
	return true
}

// HandleAdminPanel показывает главное меню администратора со сводкой по салону
func HandleAdminPanel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	if !checkAccess(ctx, b, callback, h) {
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	totals, err := h.BookingService.SalonTotals(ctx)
	if err != nil {
		h.Logger.Error("Failed to load salon totals", zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	text := fmt.Sprintf(
		"⚙️ <b>Панель администратора</b>\n\n"+
			"🏠 Салон: %s\n"+
			"📍 %s, %s\n\n"+
			"📊 Всего записей: %d\n"+
			"💰 Общая выручка: %s",
		h.Salon.Name,
		h.Salon.City,
		h.Salon.Address,
		totals.Appointments,
		formatting.FormatPrice(totals.Revenue),
	)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("👥 Мастера", "admin_masters")).
		Row(keyboard.Button("📊 Аналитика", "admin_analytics")).
		Row(keyboard.Button("🏖 Отпуска", "admin_vacations")).
		Row(keyboard.Button("⚙️ Настройки", "admin_settings")).
		Row(keyboard.Button("⬅️ Назад (выбор роли)", "show_roles")).
		Build()

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})

	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleMasters показывает список мастеров с расписанием и отпусками
func HandleMasters(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	if !checkAccess(ctx, b, callback, h) {
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	var text strings.Builder
	text.WriteString("👥 <b>Мастера салона:</b>\n\n")
	for _, master := range h.BookingService.ListMasters() {
		fmt.Fprintf(&text, "👨‍💼 <b>%s</b>\n", master.Name)
		fmt.Fprintf(&text, "    Специализация: %s\n", strings.Join(master.Specialization, ", "))
		fmt.Fprintf(&text, "    Часы работы: %02d:00–%02d:00\n", master.Schedule.StartHour, master.Schedule.EndHour)

		vacations, err := h.BookingService.Vacations(ctx, master.Name)
		if err != nil {
			h.Logger.Error("Failed to load vacations", zap.String("master", master.Name), zap.Error(err))
			continue
		}
		for _, v := range vacations {
			fmt.Fprintf(&text, "    🏖 %s – %s\n",
				formatting.FormatDateShort(v.From), formatting.FormatDateShort(v.To))
		}
		text.WriteString("\n")
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("⬅️ Назад", "admin_panel")).
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

// HandleAnalytics показывает статистику записей по каждому мастеру
func HandleAnalytics(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	if !checkAccess(ctx, b, callback, h) {
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	var text strings.Builder
	text.WriteString("📊 <b>Аналитика по мастерам:</b>\n\n")
	for _, master := range h.BookingService.ListMasters() {
		stats, err := h.BookingService.MasterStats(ctx, master.Name)
		if err != nil {
			h.Logger.Error("Failed to load master stats", zap.String("master", master.Name), zap.Error(err))
			continue
		}
		fmt.Fprintf(&text, "👨‍💼 <b>%s</b>\n    Записей: %d\n    Выручка: %s\n\n",
			master.Name, stats.Appointments, formatting.FormatPrice(stats.Revenue))
	}

	totals, err := h.BookingService.SalonTotals(ctx)
	if err == nil {
		fmt.Fprintf(&text, "<b>Итого:</b> %d записей, %s",
			totals.Appointments, formatting.FormatPrice(totals.Revenue))
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("⬅️ Назад", "admin_panel")).
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

// HandleSettings показывает текущие настройки салона
func HandleSettings(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	if !checkAccess(ctx, b, callback, h) {
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	wh := h.Salon.WorkingHours
	var closed []string
	for _, wd := range wh.ClosedWeekdays {
		closed = append(closed, formatting.GetWeekdayName(wd))
	}

	text := fmt.Sprintf(
		"⚙️ <b>Настройки салона</b>\n\n"+
			"🏠 Название: %s\n"+
			"📍 Адрес: %s, %s\n"+
			"📞 Телефон: %s\n"+
			"🕐 Часы работы: %02d:00–%02d:00\n"+
			"🍽 Перерыв: %02d:00–%02d:00\n"+
			"🚫 Выходные: %s\n"+
			"🌍 Часовой пояс: %s",
		h.Salon.Name,
		h.Salon.City,
		h.Salon.Address,
		h.Salon.Phone,
		wh.StartHour, wh.EndHour,
		wh.BreakStartHour, wh.BreakEndHour,
		strings.Join(closed, ", "),
		h.Salon.Location.String(),
	)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("⬅️ Назад", "admin_panel")).
		Build()

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})

	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleVacations показывает выбор мастера для назначения отпуска
func HandleVacations(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	if !checkAccess(ctx, b, callback, h) {
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	kb := keyboard.NewBuilder()
	for _, master := range h.BookingService.ListMasters() {
		kb.Row(keyboard.Button("👨‍💼 "+master.Name, "vacation_master:"+master.Name))
	}
	kb.Row(keyboard.Button("⬅️ Назад", "admin_panel"))

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        "🏖 <b>Отпуска</b>\n\nВыберите мастера, которому нужно назначить отпуск:",
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb.Build(),
	})

	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleVacationMaster запускает диалог ввода дат отпуска для выбранного мастера
func HandleVacationMaster(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	if !checkAccess(ctx, b, callback, h) {
		return
	}

	masterName, err := common.Payload(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	h.StateManager.SetState(callback.From.ID, state.StateEnteringVacationDates)
	h.StateManager.SetData(callback.From.ID, "vacation_master", masterName)

	text := fmt.Sprintf(
		"🏖 <b>Отпуск для мастера %s</b>\n\n"+
			"Отправьте даты отпуска сообщением в формате:\n"+
			"<code>2026-09-01 2026-09-14</code>\n\n"+
			"Первая дата - начало, вторая - конец (включительно).",
		masterName,
	)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("⬅️ Отмена", "admin_vacations")).
		Build()

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})

	common.AnswerCallback(ctx, b, callback.ID, "")
}
