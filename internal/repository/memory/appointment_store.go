package memory

import (
	"context"
	"sync"
	"time"

	"github.com/charodeyka/salon_bot/internal/model"
	"github.com/google/uuid"
)

// slotKey ключ занятого слота: (мастер, дата, время)
type slotKey struct {
	master string
	date   string
	slot   model.TimeSlot
}

func keyFor(master string, date time.Time, slot model.TimeSlot) slotKey {
	return slotKey{master: master, date: date.Format("2006-01-02"), slot: slot}
}

// AppointmentStore хранилище записей в памяти. Используется когда
// DB_DSN не задан, и в тестах. Create сериализуется мьютексом:
// два конкурентных Create на один слот дают ровно один успех
type AppointmentStore struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*model.Appointment
	order []uuid.UUID // порядок вставки для листингов
	slots map[slotKey]uuid.UUID
	now   func() time.Time
}

// NewAppointmentStore создаёт пустое хранилище записей
func NewAppointmentStore() *AppointmentStore {
	return &AppointmentStore{
		byID:  make(map[uuid.UUID]*model.Appointment),
		slots: make(map[slotKey]uuid.UUID),
		now:   time.Now,
	}
}

// Create сохраняет запись. Возвращает model.ErrConflict если слот
// уже занят подтверждённой записью - это авторитетная проверка
// двойного бронирования, выполняемая в момент коммита
func (s *AppointmentStore) Create(ctx context.Context, draft model.AppointmentDraft) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyFor(draft.Master, draft.Date, draft.Slot)
	if _, taken := s.slots[key]; taken {
		return nil, model.ErrConflict
	}

	appt := &model.Appointment{
		ID:        uuid.New(),
		UserID:    draft.UserID,
		Service:   draft.Service,
		Master:    draft.Master,
		Date:      model.DateOnly(draft.Date),
		Slot:      draft.Slot,
		Price:     draft.Price,
		Status:    model.AppointmentStatusConfirmed,
		CreatedAt: s.now(),
	}

	s.byID[appt.ID] = appt
	s.order = append(s.order, appt.ID)
	s.slots[key] = appt.ID

	copied := *appt
	return &copied, nil
}

// ListByUser возвращает подтверждённые записи клиента в порядке создания
func (s *AppointmentStore) ListByUser(ctx context.Context, userID int64) ([]*model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Appointment
	for _, id := range s.order {
		appt := s.byID[id]
		if appt.UserID == userID && appt.Status == model.AppointmentStatusConfirmed {
			copied := *appt
			result = append(result, &copied)
		}
	}
	return result, nil
}

// ListForMasterOnDate возвращает подтверждённые записи мастера на дату
func (s *AppointmentStore) ListForMasterOnDate(ctx context.Context, master string, date time.Time) ([]*model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Appointment
	for _, id := range s.order {
		appt := s.byID[id]
		if appt.Master == master && model.SameDate(appt.Date, date) && appt.Status == model.AppointmentStatusConfirmed {
			copied := *appt
			result = append(result, &copied)
		}
	}
	return result, nil
}

// Cancel переводит запись в статус cancelled и освобождает слот.
// Сама запись не удаляется: на неё ссылается статистика
func (s *AppointmentStore) Cancel(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt, exists := s.byID[id]
	if !exists {
		return model.ErrNotFound
	}
	if appt.Status != model.AppointmentStatusConfirmed {
		return model.ErrNotFound
	}

	appt.Status = model.AppointmentStatusCancelled
	delete(s.slots, keyFor(appt.Master, appt.Date, appt.Slot))
	return nil
}

// Stats пересчитывает статистику мастера по подтверждённым записям.
// Пересчёт на каждый вызов гарантирует точное совпадение с суммой
// по хранилищу в любой момент времени
func (s *AppointmentStore) Stats(ctx context.Context, master string) (model.MasterStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats model.MasterStats
	for _, appt := range s.byID {
		if appt.Master == master && appt.Status == model.AppointmentStatusConfirmed {
			stats.Appointments++
			stats.Revenue += appt.Price
		}
	}
	return stats, nil
}
