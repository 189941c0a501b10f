package controller

import (
	"context"

	"github.com/charodeyka/salon_bot/internal/config"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks"
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/callbacktypes"
	"github.com/charodeyka/salon_bot/internal/controller/handlers"
	"github.com/charodeyka/salon_bot/internal/controller/state"
	"github.com/charodeyka/salon_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot        *bot.Bot
	handlers   *handlers.Handler
	dispatcher *callbacks.Dispatcher
	logger     *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	salon *config.Salon,
	adminID int64,
	bookingService *service.BookingService,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний диалогов
	stateManager := state.NewManager()

	// Общие зависимости всех обработчиков
	deps := &callbacktypes.Handler{
		Salon:          salon,
		AdminID:        adminID,
		BookingService: bookingService,
		StateManager:   stateManager,
		Logger:         logger,
	}

	return &BotController{
		bot:        botInstance,
		handlers:   handlers.New(deps),
		dispatcher: callbacks.NewDispatcher(deps),
		logger:     logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Регистрируем команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.dispatcher.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
