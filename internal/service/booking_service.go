package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charodeyka/salon_bot/internal/config"
	"github.com/charodeyka/salon_bot/internal/model"
	"github.com/charodeyka/salon_bot/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AppointmentStore авторитетное хранилище записей. Create обязан
// атомарно перепроверять занятость слота: проверка доступности на
// предыдущих шагах могла устареть к моменту коммита
type AppointmentStore interface {
	Create(ctx context.Context, draft model.AppointmentDraft) (*model.Appointment, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.Appointment, error)
	ListForMasterOnDate(ctx context.Context, master string, date time.Time) ([]*model.Appointment, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, master string) (model.MasterStats, error)
}

// VacationStore хранилище отпусков мастеров
type VacationStore interface {
	Add(ctx context.Context, master string, vacation model.Vacation) error
	List(ctx context.Context, master string) ([]model.Vacation, error)
}

// BookingSummary сводка бронирования для экрана подтверждения
type BookingSummary struct {
	Service string
	Master  string
	Date    time.Time
	Slot    model.TimeSlot
	Price   int
}

// BookingService оркестрирует процесс записи: ведёт сессию
// пользователя по шагам услуга → мастер → дата → время →
// подтверждение, перепроверяя доступность на каждом шаге,
// и коммитит запись через хранилище
type BookingService struct {
	salon     *config.Salon
	calc      *schedule.Calculator
	grid      *schedule.GridRenderer
	store     AppointmentStore
	vacations VacationStore
	notifier  AdminNotifier
	logger    *zap.Logger
	sessions  *sessionManager
}

func NewBookingService(
	salon *config.Salon,
	calc *schedule.Calculator,
	grid *schedule.GridRenderer,
	store AppointmentStore,
	vacations VacationStore,
	notifier AdminNotifier,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		salon:     salon,
		calc:      calc,
		grid:      grid,
		store:     store,
		vacations: vacations,
		notifier:  notifier,
		logger:    logger,
		sessions:  newSessionManager(),
	}
}

// SeedVacations переносит отпуска из конфигурации в хранилище.
// Пропускает мастеров, у которых отпуска уже есть, чтобы не
// задублировать их при перезапуске с персистентным хранилищем
func (s *BookingService) SeedVacations(ctx context.Context) error {
	for _, master := range s.salon.Masters {
		if len(master.Schedule.Vacations) == 0 {
			continue
		}

		existing, err := s.vacations.List(ctx, master.Name)
		if err != nil {
			return fmt.Errorf("list vacations for %s: %w", master.Name, err)
		}
		if len(existing) > 0 {
			continue
		}

		for _, v := range master.Schedule.Vacations {
			if err := s.vacations.Add(ctx, master.Name, v); err != nil {
				return fmt.Errorf("seed vacation for %s: %w", master.Name, err)
			}
		}
	}
	return nil
}

// masterView возвращает мастера с актуальными отпусками из хранилища
func (s *BookingService) masterView(ctx context.Context, name string) (*model.Master, error) {
	master := s.salon.MasterByName(name)
	if master == nil {
		return nil, model.ErrNotFound
	}

	vacations, err := s.vacations.List(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("list vacations: %w", err)
	}

	view := *master
	view.Schedule.Vacations = vacations
	return &view, nil
}

// ========================
// Каталог
// ========================

// ListServices возвращает каталог услуг
func (s *BookingService) ListServices() []model.Service {
	return s.salon.Services
}

// ListMasters возвращает список мастеров
func (s *BookingService) ListMasters() []*model.Master {
	return s.salon.Masters
}

// Today возвращает текущую дату в часовом поясе салона
func (s *BookingService) Today() time.Time {
	return s.calc.Today()
}

// ========================
// Доступность
// ========================

// IsDateBookable проверяет доступность даты у мастера
func (s *BookingService) IsDateBookable(ctx context.Context, masterName string, date time.Time) (bool, error) {
	view, err := s.masterView(ctx, masterName)
	if err != nil {
		return false, err
	}
	return s.calc.IsDateBookable(view, date), nil
}

// AvailableDates возвращает доступные даты мастера из ближайших windowDays дней
func (s *BookingService) AvailableDates(ctx context.Context, masterName string, windowDays int) ([]time.Time, error) {
	view, err := s.masterView(ctx, masterName)
	if err != nil {
		return nil, err
	}
	return s.calc.AvailableDates(view, windowDays), nil
}

// AvailableSlots возвращает свободные слоты мастера на дату
func (s *BookingService) AvailableSlots(ctx context.Context, masterName string, date time.Time) ([]model.TimeSlot, error) {
	return s.availableSlots(ctx, masterName, date)
}

// RenderGrid возвращает окно календарной сетки мастера
func (s *BookingService) RenderGrid(ctx context.Context, masterName string, anchor time.Time, offset, days int) ([]schedule.Day, error) {
	view, err := s.masterView(ctx, masterName)
	if err != nil {
		return nil, err
	}
	return s.grid.Window(view, anchor, offset, days), nil
}

// MonthGrid возвращает календарь месяца мастера по неделям
func (s *BookingService) MonthGrid(ctx context.Context, masterName string, anchor time.Time) ([][]*schedule.Day, error) {
	view, err := s.masterView(ctx, masterName)
	if err != nil {
		return nil, err
	}
	return s.grid.MonthGrid(view, anchor), nil
}

// ========================
// Сессия бронирования
// ========================

// StartBooking начинает новое бронирование. Незавершённая сессия
// пользователя молча сбрасывается
func (s *BookingService) StartBooking(userID int64) {
	session := s.sessions.getOrCreate(userID)
	session.mu.Lock()
	defer session.mu.Unlock()

	session.reset()
}

// Advance продвигает сессию на один шаг. Шаг, не соответствующий
// текущему состоянию, отклоняется с ErrInvalidTransition, состояние
// при этом не меняется. Доступность даты и слота перепроверяется в
// момент выбора, а не только при отрисовке
func (s *BookingService) Advance(ctx context.Context, userID int64, step Step, value string) (SessionState, error) {
	session := s.sessions.getOrCreate(userID)
	session.mu.Lock()
	defer session.mu.Unlock()

	switch step {
	case StepService:
		if session.State != StateIdle {
			return session.State, model.ErrInvalidTransition
		}

		svc := s.salon.ServiceByName(value)
		if svc == nil {
			return session.State, model.ErrNotFound
		}

		session.Service = svc
		session.State = StateServiceChosen

	case StepMaster:
		if session.State != StateServiceChosen {
			return session.State, model.ErrInvalidTransition
		}

		// Текущее поведение: любой мастер доступен для любой услуги,
		// специализация не ограничивает выбор
		master := s.salon.MasterByName(value)
		if master == nil {
			return session.State, model.ErrNotFound
		}

		session.Master = master.Name
		session.State = StateStaffChosen

	case StepDate:
		if session.State != StateStaffChosen {
			return session.State, model.ErrInvalidTransition
		}

		date, err := time.ParseInLocation("2006-01-02", value, s.salon.Location)
		if err != nil {
			return session.State, model.ErrInvalidDate
		}

		view, err := s.masterView(ctx, session.Master)
		if err != nil {
			return session.State, err
		}
		// Дата могла стать недоступной между отрисовкой и выбором,
		// например если мастеру только что добавили отпуск
		if !s.calc.IsDateBookable(view, date) {
			return session.State, model.ErrInvalidDate
		}

		session.Date = date
		session.State = StateDateChosen

	case StepTime:
		if session.State != StateDateChosen {
			return session.State, model.ErrInvalidTransition
		}

		slot, err := model.ParseTimeSlot(value)
		if err != nil {
			return session.State, model.ErrSlotUnavailable
		}

		available, err := s.availableSlots(ctx, session.Master, session.Date)
		if err != nil {
			return session.State, err
		}

		found := false
		for _, candidate := range available {
			if candidate == slot {
				found = true
				break
			}
		}
		if !found {
			return session.State, model.ErrSlotUnavailable
		}

		session.Slot = slot
		// TimeChosen → AwaitingConfirmation происходит автоматически:
		// сводка для подтверждения уже собрана в сессии
		session.State = StateAwaitingConfirmation

	default:
		return session.State, model.ErrInvalidTransition
	}

	s.logger.Debug("Session advanced",
		zap.Int64("user_id", userID),
		zap.String("step", string(step)),
		zap.String("state", string(session.State)))

	return session.State, nil
}

func (s *BookingService) availableSlots(ctx context.Context, masterName string, date time.Time) ([]model.TimeSlot, error) {
	view, err := s.masterView(ctx, masterName)
	if err != nil {
		return nil, err
	}

	appointments, err := s.store.ListForMasterOnDate(ctx, masterName, date)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	return s.calc.GenerateSlots(view, date, appointments), nil
}

// SessionState возвращает текущее состояние сессии пользователя
func (s *BookingService) SessionState(userID int64) SessionState {
	return s.Snapshot(userID).State
}

// SessionSnapshot копия текущего выбора сессии для отрисовки экранов
type SessionSnapshot struct {
	State   SessionState
	Service string
	Master  string
	Date    time.Time
	Slot    model.TimeSlot
}

// Snapshot возвращает копию текущего выбора пользователя
func (s *BookingService) Snapshot(userID int64) SessionSnapshot {
	session := s.sessions.get(userID)
	if session == nil {
		return SessionSnapshot{State: StateIdle}
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	snap := SessionSnapshot{
		State:  session.State,
		Master: session.Master,
		Date:   session.Date,
		Slot:   session.Slot,
	}
	if session.Service != nil {
		snap.Service = session.Service.Name
	}
	return snap
}

// Summary возвращает сводку бронирования для экрана подтверждения
func (s *BookingService) Summary(userID int64) (*BookingSummary, error) {
	session := s.sessions.get(userID)
	if session == nil {
		return nil, model.ErrNotFound
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.State != StateAwaitingConfirmation {
		return nil, model.ErrInvalidTransition
	}

	return &BookingSummary{
		Service: session.Service.Name,
		Master:  session.Master,
		Date:    session.Date,
		Slot:    session.Slot,
		Price:   session.Service.Price,
	}, nil
}

// Confirm коммитит бронирование. При конфликте записи (слот успели
// занять) сессия возвращается к выбору времени на той же дате:
// услуга, мастер и дата всё ещё валидны, коллизия только по слоту
func (s *BookingService) Confirm(ctx context.Context, userID int64) (*model.Appointment, error) {
	session := s.sessions.get(userID)
	if session == nil {
		return nil, model.ErrNotFound
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.State != StateAwaitingConfirmation {
		return nil, model.ErrInvalidTransition
	}

	draft := model.AppointmentDraft{
		UserID:  userID,
		Service: session.Service.Name,
		Master:  session.Master,
		Date:    session.Date,
		Slot:    session.Slot,
		Price:   session.Service.Price, // цена фиксируется в момент записи
	}

	appt, err := s.store.Create(ctx, draft)
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			s.logger.Warn("Booking conflict at commit time",
				zap.Int64("user_id", userID),
				zap.String("master", session.Master),
				zap.String("slot", session.Slot.String()))

			session.Slot = model.TimeSlot{}
			session.State = StateDateChosen
			return nil, model.ErrConflict
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.sessions.remove(userID)

	s.logger.Info("Appointment committed",
		zap.String("appointment_id", appt.ID.String()),
		zap.Int64("user_id", userID),
		zap.String("service", appt.Service),
		zap.String("master", appt.Master),
		zap.String("date", appt.Date.Format("2006-01-02")),
		zap.String("slot", appt.Slot.String()),
		zap.Int("price", appt.Price))

	// Уведомление администратора не влияет на судьбу записи:
	// ошибка доставки только логируется
	if err := s.notifier.NotifyNewAppointment(ctx, appt); err != nil {
		s.logger.Error("Failed to notify admin about new appointment", zap.Error(err))
	}

	return appt, nil
}

// CancelBooking прерывает бронирование и сбрасывает сессию
func (s *BookingService) CancelBooking(userID int64) {
	s.sessions.remove(userID)
}

// ========================
// Записи и статистика
// ========================

// MyAppointments возвращает подтверждённые записи клиента
func (s *BookingService) MyAppointments(ctx context.Context, userID int64) ([]*model.Appointment, error) {
	return s.store.ListByUser(ctx, userID)
}

// MasterAppointmentsOnDate возвращает записи мастера на дату
func (s *BookingService) MasterAppointmentsOnDate(ctx context.Context, masterName string, date time.Time) ([]*model.Appointment, error) {
	if s.salon.MasterByName(masterName) == nil {
		return nil, model.ErrNotFound
	}
	return s.store.ListForMasterOnDate(ctx, masterName, date)
}

// CancelAppointment отменяет запись клиента. Запись остаётся в
// хранилище со статусом cancelled, слот освобождается
func (s *BookingService) CancelAppointment(ctx context.Context, userID int64, id uuid.UUID) error {
	appointments, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list appointments: %w", err)
	}

	for _, appt := range appointments {
		if appt.ID == id {
			if err := s.store.Cancel(ctx, id); err != nil {
				return err
			}

			s.logger.Info("Appointment cancelled",
				zap.String("appointment_id", id.String()),
				zap.Int64("user_id", userID))
			return nil
		}
	}

	return model.ErrNotFound
}

// MasterStats возвращает статистику мастера
func (s *BookingService) MasterStats(ctx context.Context, masterName string) (model.MasterStats, error) {
	if s.salon.MasterByName(masterName) == nil {
		return model.MasterStats{}, model.ErrNotFound
	}
	return s.store.Stats(ctx, masterName)
}

// SalonTotals возвращает суммарную статистику по всем мастерам
func (s *BookingService) SalonTotals(ctx context.Context) (model.MasterStats, error) {
	var totals model.MasterStats
	for _, master := range s.salon.Masters {
		stats, err := s.store.Stats(ctx, master.Name)
		if err != nil {
			return model.MasterStats{}, err
		}
		totals.Appointments += stats.Appointments
		totals.Revenue += stats.Revenue
	}
	return totals, nil
}

// ========================
// Отпуска
// ========================

// AddVacation добавляет мастеру отпуск (границы включительно)
func (s *BookingService) AddVacation(ctx context.Context, masterName string, from, to time.Time) error {
	if s.salon.MasterByName(masterName) == nil {
		return model.ErrNotFound
	}
	if to.Before(from) {
		return fmt.Errorf("vacation ends before it starts")
	}

	vacation := model.Vacation{From: model.DateOnly(from), To: model.DateOnly(to)}
	if err := s.vacations.Add(ctx, masterName, vacation); err != nil {
		return fmt.Errorf("add vacation: %w", err)
	}

	s.logger.Info("Vacation added",
		zap.String("master", masterName),
		zap.String("from", vacation.From.Format("2006-01-02")),
		zap.String("to", vacation.To.Format("2006-01-02")))

	return nil
}

// Vacations возвращает отпуска мастера
func (s *BookingService) Vacations(ctx context.Context, masterName string) ([]model.Vacation, error) {
	if s.salon.MasterByName(masterName) == nil {
		return nil, model.ErrNotFound
	}
	return s.vacations.List(ctx, masterName)
}
