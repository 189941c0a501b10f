package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/charodeyka/salon_bot/internal/app"
	"github.com/charodeyka/salon_bot/internal/config"
	"github.com/charodeyka/salon_bot/internal/controller"
	"github.com/charodeyka/salon_bot/internal/repository"
	"github.com/charodeyka/salon_bot/internal/repository/memory"
	"github.com/charodeyka/salon_bot/internal/schedule"
	"github.com/charodeyka/salon_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)

	defer logger.Sync()

	salon, err := config.LoadSalon(cfg.SalonConfigPath)
	if err != nil {
		logger.Fatal("Failed to load salon config",
			zap.String("path", cfg.SalonConfigPath),
			zap.Error(err))
	}

	logger.Sugar().Infow("Starting salon bot",
		"environment", cfg.Environment,
		"salon", salon.Name,
		"masters", len(salon.Masters),
		"services", len(salon.Services))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Хранилища: Postgres при заданном DB_DSN, иначе in-memory
	var (
		store     service.AppointmentStore
		vacations service.VacationStore
	)
	if cfg.DBDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.DBDSN)
		if err != nil {
			logger.Fatal("Failed to create database pool", zap.Error(err))
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}

		migrator, err := app.NewMigrator(pool, "migrations")
		if err != nil {
			logger.Fatal("Failed to create migrator", zap.Error(err))
		}
		if err := migrator.Run(ctx); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		migrator.Close()

		store = repository.NewAppointmentRepository(pool)
		vacations = repository.NewVacationRepository(pool)
		logger.Info("✅ Using Postgres storage")
	} else {
		store = memory.NewAppointmentStore()
		vacations = memory.NewVacationStore()
		logger.Warn("DB_DSN not set, using in-memory storage (data is lost on restart)")
	}

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	notifier := controller.NewTelegramNotifier(b, cfg.AdminID)

	calc := schedule.NewCalculator(salon.Location)
	grid := schedule.NewGridRenderer(calc)
	bookingService := service.NewBookingService(salon, calc, grid, store, vacations, notifier, logger)

	if err := bookingService.SeedVacations(ctx); err != nil {
		logger.Fatal("Failed to seed vacations", zap.Error(err))
	}

	scheduler := app.NewScheduler(bookingService, notifier, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	botController := controller.NewBotController(b, salon, cfg.AdminID, bookingService, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	logger.Info("✅ Bot is running, press Ctrl+C to stop")
	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}
