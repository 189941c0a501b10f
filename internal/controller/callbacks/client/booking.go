package client

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charodeyka/salon_bot/internal/controller/callbacks/callbacktypes"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/common"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/common/formatting"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/common/keyboard"
	"github.com/charodeyka/salon_bot/internal/model"
	"github.com/charodeyka/salon_bot/internal/schedule"
	"github.com/charodeyka/salon_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Неделя кнопок дат листается максимум на месяц вперёд
const maxCalendarOffset = 21

// HandleClientMenu показывает клиентское меню
func HandleClientMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📅 Записаться", "start_booking")).
		Row(keyboard.Button("📋 Мои записи", "my_bookings")).
		Row(keyboard.Button("⬅️ Назад (выбор роли)", "show_roles")).
		Build()

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        "👤 <b>Клиентское меню</b>\n\nВыберите действие:",
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})

	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleStartBooking начинает процесс записи и показывает каталог услуг
func HandleStartBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	h.Logger.Info("HandleStartBooking called", zap.Int64("user_id", callback.From.ID))

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	// Незавершённая сессия пользователя молча сбрасывается
	h.BookingService.StartBooking(callback.From.ID)

	kb := keyboard.NewBuilder()
	for _, svc := range h.BookingService.ListServices() {
		text := fmt.Sprintf("✂️ %s — %s", svc.Name, formatting.FormatPrice(svc.Price))
		kb.Row(keyboard.Button(text, "service:"+svc.Name))
	}
	kb.Row(keyboard.Button("⬅️ Назад", "client_menu"))

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        "🛍️ <b>Выберите услугу:</b>",
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb.Build(),
	})

	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleService обрабатывает выбор услуги и показывает мастеров
func HandleService(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	serviceName, err := common.Payload(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	if _, err := h.BookingService.Advance(ctx, callback.From.ID, service.StepService, serviceName); err != nil {
		h.Logger.Warn("Service selection rejected", zap.Int64("user_id", callback.From.ID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	kb := keyboard.NewBuilder()
	for _, master := range h.BookingService.ListMasters() {
		text := fmt.Sprintf("👨‍💼 %s (%s)", master.Name, strings.Join(master.Specialization, ", "))
		kb.Row(keyboard.Button(text, "master:"+master.Name))
	}
	kb.Row(keyboard.Button("⬅️ Назад", "start_booking"))

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        fmt.Sprintf("🎯 <b>Услуга:</b> %s\n\n<b>Выберите мастера:</b>", serviceName),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb.Build(),
	})

	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleMaster обрабатывает выбор мастера и показывает календарь
func HandleMaster(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
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

	if _, err := h.BookingService.Advance(ctx, callback.From.ID, service.StepMaster, masterName); err != nil {
		h.Logger.Warn("Master selection rejected", zap.Int64("user_id", callback.From.ID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	showDatePicker(ctx, b, callback, h, msg, 0)
}

// HandleCalendarPage обрабатывает пагинацию календаря
func HandleCalendarPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	payload, err := common.Payload(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	offset, err := strconv.Atoi(payload)
	if err != nil || offset < 0 || offset > maxCalendarOffset {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверное смещение")
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	showDatePicker(ctx, b, callback, h, msg, offset)
}

// showDatePicker показывает выбор даты: изображение календаря месяца
// и кнопки доступных дат на неделю начиная с offset
func showDatePicker(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, msg *models.Message, offset int) {
	userID := callback.From.ID

	snap := h.BookingService.Snapshot(userID)
	if snap.Master == "" {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(model.ErrInvalidTransition))
		return
	}

	window, err := h.BookingService.RenderGrid(ctx, snap.Master, time.Time{}, offset, 7)
	if err != nil {
		h.Logger.Error("Failed to render grid", zap.String("master", snap.Master), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	var text strings.Builder
	fmt.Fprintf(&text, "📅 <b>Календарь мастера %s</b>\n\n", snap.Master)

	kb := keyboard.NewBuilder()
	for _, day := range window {
		emoji := dayEmoji(day.State)
		fmt.Fprintf(&text, "%s %s %s\n", emoji, formatting.GetWeekdayShort(day.Date.Weekday()), formatting.FormatDateShort(day.Date))

		bookable := day.State == schedule.DayAvailable
		if day.State == schedule.DayToday {
			// Сегодняшний день показывается отдельным цветом,
			// но записаться на него обычно ещё можно
			bookable, _ = h.BookingService.IsDateBookable(ctx, snap.Master, day.Date)
		}
		if bookable {
			label := fmt.Sprintf("📅 %s %s", formatting.GetWeekdayShort(day.Date.Weekday()), formatting.FormatDateShort(day.Date))
			kb.Row(keyboard.Button(label, "date:"+day.Date.Format("2006-01-02")))
		}
	}
	text.WriteString("\n<b>Выберите дату:</b>")

	var nav []models.InlineKeyboardButton
	if offset > 0 {
		prev := offset - 7
		if prev < 0 {
			prev = 0
		}
		nav = append(nav, keyboard.Button("⬅️ Пред. неделя", fmt.Sprintf("cal_page:%d", prev)))
	}
	if offset < maxCalendarOffset {
		nav = append(nav, keyboard.Button("След. неделя ➡️", fmt.Sprintf("cal_page:%d", offset+7)))
	}
	kb.Row(nav...)
	kb.Row(keyboard.Button("⬅️ Назад", "start_booking"))

	markup := kb.Build()

	// Пробуем отправить изображение календаря месяца; при ошибке
	// рендеринга остаёмся на текстовом календаре
	anchor := h.BookingService.Today().AddDate(0, 0, offset)
	weeks, err := h.BookingService.MonthGrid(ctx, snap.Master, anchor)
	if err == nil {
		imageData, imgErr := common.GenerateCalendarImage(anchor, weeks)
		if imgErr == nil {
			b.SendPhoto(ctx, &bot.SendPhotoParams{
				ChatID:      msg.Chat.ID,
				Photo:       &models.InputFileUpload{Filename: "calendar.png", Data: bytes.NewReader(imageData)},
				Caption:     text.String(),
				ParseMode:   models.ParseModeHTML,
				ReplyMarkup: markup,
			})
			b.DeleteMessage(ctx, &bot.DeleteMessageParams{
				ChatID:    msg.Chat.ID,
				MessageID: msg.ID,
			})
			common.AnswerCallback(ctx, b, callback.ID, "")
			return
		}
		h.Logger.Error("Failed to generate calendar image", zap.Error(imgErr))
	}

	editOrReplace(ctx, b, msg, text.String(), markup)

	common.AnswerCallback(ctx, b, callback.ID, "")
}

// editOrReplace редактирует текстовое сообщение, а сообщение с фото
// (календарь) удаляет и заменяет новым текстовым - Telegram не позволяет
// превратить фото-сообщение в текстовое через editMessageText
func editOrReplace(ctx context.Context, b *bot.Bot, msg *models.Message, text string, markup models.ReplyMarkup) {
	if len(msg.Photo) == 0 {
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      msg.Chat.ID,
			MessageID:   msg.ID,
			Text:        text,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: markup,
		})
		return
	}

	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
}

func dayEmoji(state schedule.DayState) string {
	switch state {
	case schedule.DayToday:
		return "⚪"
	case schedule.DayAvailable:
		return "🟢"
	default:
		return "🔴"
	}
}

// HandleDate обрабатывает выбор даты и показывает свободные слоты
func HandleDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	dateStr, err := common.Payload(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	if _, err := h.BookingService.Advance(ctx, callback.From.ID, service.StepDate, dateStr); err != nil {
		h.Logger.Warn("Date selection rejected",
			zap.Int64("user_id", callback.From.ID),
			zap.String("date", dateStr),
			zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		// Дата могла стать недоступной после отрисовки - перерисовываем календарь
		showDatePicker(ctx, b, callback, h, msg, 0)
		return
	}

	showTimePicker(ctx, b, callback, h, msg)
}

// showTimePicker показывает свободные слоты на выбранную дату
func showTimePicker(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, msg *models.Message) {
	userID := callback.From.ID

	snap := h.BookingService.Snapshot(userID)
	if snap.Master == "" || snap.Date.IsZero() {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(model.ErrInvalidTransition))
		return
	}

	slots, err := h.BookingService.AvailableSlots(ctx, snap.Master, snap.Date)
	if err != nil {
		h.Logger.Error("Failed to generate slots", zap.String("master", snap.Master), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	if len(slots) == 0 {
		kb := keyboard.NewBuilder().
			Row(keyboard.Button("⬅️ К календарю", "cal_page:0")).
			Build()
		editOrReplace(ctx, b, msg, "❌ <b>На эту дату нет свободных слотов</b>\n\nВыберите другую дату.", kb)
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	kb := keyboard.NewBuilder()
	var row []models.InlineKeyboardButton
	for _, slot := range slots {
		row = append(row, keyboard.Button("🕐 "+slot.String(), "time:"+slot.String()))
		if len(row) == 3 {
			kb.Row(row...)
			row = nil
		}
	}
	kb.Row(row...)
	kb.Row(keyboard.Button("⬅️ К календарю", "cal_page:0"))

	editOrReplace(ctx, b, msg, fmt.Sprintf("⏰ <b>Доступное время на %s:</b>", formatting.FormatDate(snap.Date)), kb.Build())

	common.AnswerCallback(ctx, b, callback.ID, "")
}

// HandleTime обрабатывает выбор времени и показывает подтверждение
func HandleTime(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	timeStr, err := common.Payload(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	if _, err := h.BookingService.Advance(ctx, callback.From.ID, service.StepTime, timeStr); err != nil {
		h.Logger.Warn("Time selection rejected",
			zap.Int64("user_id", callback.From.ID),
			zap.String("time", timeStr),
			zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		// Слот могли занять - показываем актуальный список
		showTimePicker(ctx, b, callback, h, msg)
		return
	}

	summary, err := h.BookingService.Summary(callback.From.ID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	text := fmt.Sprintf(
		"✂️ <b>Услуга:</b> %s\n"+
			"👨‍💼 <b>Мастер:</b> %s\n"+
			"📅 <b>Дата:</b> %s\n"+
			"🕐 <b>Время:</b> %s\n"+
			"💰 <b>Цена:</b> %s\n\n"+
			"<b>Подтвердить запись?</b>",
		summary.Service,
		summary.Master,
		formatting.FormatDate(summary.Date),
		summary.Slot.String(),
		formatting.FormatPrice(summary.Price),
	)

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("✅ Да", "confirm:yes"),
			keyboard.Button("❌ Нет", "confirm:no"),
		).
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

// HandleConfirmation обрабатывает подтверждение или отказ от записи
func HandleConfirmation(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	action, err := common.Payload(callback.Data)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	userID := callback.From.ID

	if action == "no" {
		h.BookingService.CancelBooking(userID)

		kb := keyboard.NewBuilder().
			Row(keyboard.Button("📅 Записаться", "start_booking")).
			Row(keyboard.Button("⬅️ В меню", "client_menu")).
			Build()
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      msg.Chat.ID,
			MessageID:   msg.ID,
			Text:        "❌ Запись отменена",
			ReplyMarkup: kb,
		})
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	appt, err := h.BookingService.Confirm(ctx, userID)
	if err != nil {
		h.Logger.Warn("Confirmation failed", zap.Int64("user_id", userID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		// При конфликте сессия вернулась к выбору даты - показываем
		// свежий список слотов на ту же дату
		showTimePicker(ctx, b, callback, h, msg)
		return
	}

	text := fmt.Sprintf(
		"✅ <b>Запись успешно создана!</b>\n\n"+
			"ID: <code>%s</code>\n"+
			"Спасибо за выбор салона %s!",
		appt.ID.String(),
		h.Salon.Name,
	)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📋 Мои записи", "my_bookings")).
		Row(keyboard.Button("⬅️ В меню", "client_menu")).
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
