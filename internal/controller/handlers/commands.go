package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charodeyka/salon_bot/internal/controller/callbacks"
	"github.com/charodeyka/salon_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start - показывает выбор роли
func (h *Handler) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.Logger.Info("HandleStart called",
		zap.Int64("user_id", update.Message.From.ID),
		zap.String("username", update.Message.From.Username))

	// Новый /start сбрасывает любые незавершённые диалоги
	h.StateManager.ClearState(update.Message.From.ID)
	h.BookingService.CancelBooking(update.Message.From.ID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        callbacks.RoleSelectionText,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: callbacks.RoleSelectionKeyboard(),
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handler) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	text := fmt.Sprintf(
		"ℹ️ <b>Салон %s</b>\n"+
			"📍 %s, %s\n"+
			"📞 %s\n\n"+
			"Команды:\n"+
			"/start - начать работу с ботом\n"+
			"/help - эта справка\n\n"+
			"Для записи выберите роль «Клиент» и нажмите «Записаться».",
		h.Salon.Name,
		h.Salon.City,
		h.Salon.Address,
		h.Salon.Phone,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
}

// HandleTextMessage обрабатывает текстовые сообщения в рамках диалогов
// (сейчас единственный диалог - ввод дат отпуска администратором)
func (h *Handler) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	userID := update.Message.From.ID
	currentState := h.StateManager.GetState(userID)

	h.Logger.Info("HandleTextMessage called",
		zap.Int64("user_id", userID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateEnteringVacationDates:
		h.handleVacationDates(ctx, b, update)
	default:
		// Нет активного диалога - произвольный текст игнорируем
		h.Logger.Debug("No active state, ignoring message", zap.Int64("user_id", userID))
	}
}

func (h *Handler) handleVacationDates(ctx context.Context, b *bot.Bot, update *models.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if userID != h.AdminID {
		h.StateManager.ClearState(userID)
		return
	}

	value, ok := h.StateManager.GetData(userID, "vacation_master")
	masterName, isString := value.(string)
	if !ok || !isString || masterName == "" {
		h.StateManager.ClearState(userID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Мастер не выбран. Начните заново через панель администратора.",
		})
		return
	}

	fields := strings.Fields(update.Message.Text)
	if len(fields) != 2 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Неверный формат. Отправьте две даты: 2026-09-01 2026-09-14",
		})
		return
	}

	from, err := time.ParseInLocation("2006-01-02", fields[0], h.Salon.Location)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("❌ Неверная дата начала: %s", fields[0]),
		})
		return
	}
	to, err := time.ParseInLocation("2006-01-02", fields[1], h.Salon.Location)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("❌ Неверная дата конца: %s", fields[1]),
		})
		return
	}
	if to.Before(from) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Дата конца отпуска раньше даты начала",
		})
		return
	}

	if err := h.BookingService.AddVacation(ctx, masterName, from, to); err != nil {
		h.Logger.Error("Failed to add vacation",
			zap.String("master", masterName),
			zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Не удалось сохранить отпуск, попробуйте ещё раз",
		})
		return
	}

	h.StateManager.ClearState(userID)
	h.Logger.Info("✅ Vacation added",
		zap.String("master", masterName),
		zap.String("from", fields[0]),
		zap.String("to", fields[1]))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf("✅ Отпуск мастера %s сохранён: %s – %s\nЭти даты закрыты для записи.",
			masterName, fields[0], fields[1]),
	})
}
