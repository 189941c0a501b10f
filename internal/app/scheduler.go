package app

import (
	"context"
	"time"

	"github.com/charodeyka/salon_bot/internal/model"
	"github.com/charodeyka/salon_bot/internal/service"
	"go.uber.org/zap"
)

// MasterNotifier доставляет мастеру сводку его записей на день
type MasterNotifier interface {
	NotifyMasterSchedule(ctx context.Context, master *model.Master, appointments []*model.Appointment) error
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	bookingService *service.BookingService
	notifier       MasterNotifier
	logger         *zap.Logger
	stopChan       chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(bookingService *service.BookingService, notifier MasterNotifier, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		bookingService: bookingService,
		notifier:       notifier,
		logger:         logger,
		stopChan:       make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runDailySummaryTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runDailySummaryTask раз в сутки рассылает мастерам их записи на сегодня
func (s *Scheduler) runDailySummaryTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.sendDailySummaries(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sendDailySummaries(ctx)
		case <-s.stopChan:
			s.logger.Info("Daily summary task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Daily summary task cancelled")
			return
		}
	}
}

// sendDailySummaries отправляет каждому мастеру сводку на сегодня.
// Ошибка доставки одному мастеру не прерывает рассылку остальным
func (s *Scheduler) sendDailySummaries(ctx context.Context) {
	today := s.bookingService.Today()

	for _, master := range s.bookingService.ListMasters() {
		if master.TelegramID == 0 {
			continue
		}

		appointments, err := s.bookingService.MasterAppointmentsOnDate(ctx, master.Name, today)
		if err != nil {
			s.logger.Error("Failed to load master appointments",
				zap.String("master", master.Name),
				zap.Error(err))
			continue
		}

		if err := s.notifier.NotifyMasterSchedule(ctx, master, appointments); err != nil {
			s.logger.Error("Failed to send daily summary",
				zap.String("master", master.Name),
				zap.Error(err))
		}
	}

	s.logger.Info("Daily summaries sent")
}
