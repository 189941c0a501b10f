package callbacks

import (
	"context"
	"strings"

	"github.com/charodeyka/salon_bot/internal/controller/callbacks/admin"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/callbacktypes"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/client"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/common"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/common/keyboard"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/master"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Dispatcher принимает callback query из update и направляет его в Route
type Dispatcher struct {
	deps *callbacktypes.Handler
}

// NewDispatcher создаёт dispatcher с общими зависимостями handlers
func NewDispatcher(deps *callbacktypes.Handler) *Dispatcher {
	return &Dispatcher{deps: deps}
}

// HandleCallbackQuery точка входа для всех нажатий inline кнопок
func (d *Dispatcher) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	Route(ctx, b, update.CallbackQuery, d.deps)
}

// RoleSelectionText текст стартового экрана выбора роли
const RoleSelectionText = "👋 <b>Добро пожаловать!</b>\n\nВыберите вашу роль:"

// RoleSelectionKeyboard клавиатура стартового экрана выбора роли
func RoleSelectionKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("👤 Клиент", "role:client")).
		Row(keyboard.Button("💼 Мастер", "role:master")).
		Row(keyboard.Button("⚙️ Администратор", "role:admin")).
		Build()
}

// Route направляет callback query соответствующему обработчику по префиксу
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data
	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	case data == "noop":
		common.AnswerCallback(ctx, b, callback.ID, "")

	case data == "show_roles":
		handleShowRoles(ctx, b, callback, h)

	case data == "role:client", data == "client_menu", data == "back_to_client":
		client.HandleClientMenu(ctx, b, callback, h)
	case data == "start_booking":
		client.HandleStartBooking(ctx, b, callback, h)
	case strings.HasPrefix(data, "service:"):
		client.HandleService(ctx, b, callback, h)
	case strings.HasPrefix(data, "master:"):
		client.HandleMaster(ctx, b, callback, h)
	case strings.HasPrefix(data, "cal_page:"):
		client.HandleCalendarPage(ctx, b, callback, h)
	case strings.HasPrefix(data, "date:"):
		client.HandleDate(ctx, b, callback, h)
	case strings.HasPrefix(data, "time:"):
		client.HandleTime(ctx, b, callback, h)
	case strings.HasPrefix(data, "confirm:"):
		client.HandleConfirmation(ctx, b, callback, h)
	case data == "my_bookings":
		client.HandleMyBookings(ctx, b, callback, h)
	case strings.HasPrefix(data, "cancel_booking:"):
		client.HandleCancelBooking(ctx, b, callback, h)

	case data == "role:master", data == "master_panel":
		master.HandleMasterPanel(ctx, b, callback, h)

	case data == "role:admin", data == "admin_panel":
		admin.HandleAdminPanel(ctx, b, callback, h)
	case data == "admin_masters":
		admin.HandleMasters(ctx, b, callback, h)
	case data == "admin_analytics":
		admin.HandleAnalytics(ctx, b, callback, h)
	case data == "admin_settings":
		admin.HandleSettings(ctx, b, callback, h)
	case data == "admin_vacations":
		admin.HandleVacations(ctx, b, callback, h)
	case strings.HasPrefix(data, "vacation_master:"):
		admin.HandleVacationMaster(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback data", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "❓ Неизвестная команда")
	}
}

func handleShowRoles(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        RoleSelectionText,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: RoleSelectionKeyboard(),
	})

	common.AnswerCallback(ctx, b, callback.ID, "")
}
