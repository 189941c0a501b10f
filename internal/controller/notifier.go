package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/charodeyka/salon_bot/internal/controller/callbacks/common/formatting"
	"github.com/charodeyka/salon_bot/internal/model"
	"github.com/go-telegram/bot"
)

// TelegramNotifier отправляет служебные уведомления через Telegram:
// администратору о новых записях, мастерам - утреннюю сводку расписания
type TelegramNotifier struct {
	bot     *bot.Bot
	adminID int64
}

// NewTelegramNotifier создаёт notifier. adminID == 0 отключает
// уведомления администратора
func NewTelegramNotifier(b *bot.Bot, adminID int64) *TelegramNotifier {
	return &TelegramNotifier{
		bot:     b,
		adminID: adminID,
	}
}

// NotifyNewAppointment уведомляет администратора о новой записи
func (n *TelegramNotifier) NotifyNewAppointment(ctx context.Context, appt *model.Appointment) error {
	if n.adminID == 0 {
		return nil
	}

	text := fmt.Sprintf(
		"✅ Новая запись!\n\n"+
			"✂️ Услуга: %s\n"+
			"👨‍💼 Мастер: %s\n"+
			"📅 Дата: %s\n"+
			"🕐 Время: %s\n"+
			"💰 Цена: %s\n"+
			"👤 Клиент: %d",
		appt.Service,
		appt.Master,
		formatting.FormatDate(appt.Date),
		appt.Slot.String(),
		formatting.FormatPrice(appt.Price),
		appt.UserID,
	)

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.adminID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("notify admin: %w", err)
	}
	return nil
}

// NotifyMasterSchedule отправляет мастеру сводку записей на сегодня
func (n *TelegramNotifier) NotifyMasterSchedule(ctx context.Context, master *model.Master, appointments []*model.Appointment) error {
	if master.TelegramID == 0 {
		return nil
	}

	var text strings.Builder
	fmt.Fprintf(&text, "📅 Доброе утро, %s!\n\n", master.Name)
	if len(appointments) == 0 {
		text.WriteString("Сегодня записей нет.")
	} else {
		fmt.Fprintf(&text, "Записи на сегодня (%d):\n", len(appointments))
		for _, appt := range appointments {
			fmt.Fprintf(&text, "🕐 %s — %s (%s)\n",
				appt.Slot.String(), appt.Service, formatting.FormatPrice(appt.Price))
		}
	}

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: master.TelegramID,
		Text:   text.String(),
	})
	if err != nil {
		return fmt.Errorf("notify master %s: %w", master.Name, err)
	}
	return nil
}
