package memory

import (
	"context"
	"sync"

	"github.com/charodeyka/salon_bot/internal/model"
)

// VacationStore отпуска мастеров в памяти. Наполняется из
// конфигурации при старте; администратор может добавлять
// отпуска во время работы
type VacationStore struct {
	mu       sync.RWMutex
	byMaster map[string][]model.Vacation
}

// NewVacationStore создаёт пустое хранилище отпусков
func NewVacationStore() *VacationStore {
	return &VacationStore{byMaster: make(map[string][]model.Vacation)}
}

// Add добавляет отпуск мастеру
func (s *VacationStore) Add(ctx context.Context, master string, vacation model.Vacation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byMaster[master] = append(s.byMaster[master], vacation)
	return nil
}

// List возвращает отпуска мастера
func (s *VacationStore) List(ctx context.Context, master string) ([]model.Vacation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vacations := s.byMaster[master]
	result := make([]model.Vacation, len(vacations))
	copy(result, vacations)
	return result, nil
}
