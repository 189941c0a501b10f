package service

import (
	"sync"
	"time"

	"github.com/charodeyka/salon_bot/internal/model"
)

// SessionState состояние сессии бронирования. Переходы строго
// вперёд: каждый шаг возможен только из предыдущего состояния
type SessionState string

const (
	StateIdle                 SessionState = "idle"
	StateServiceChosen        SessionState = "service_chosen"
	StateStaffChosen          SessionState = "staff_chosen"
	StateDateChosen           SessionState = "date_chosen"
	StateAwaitingConfirmation SessionState = "awaiting_confirmation"
)

// Step шаг бронирования в запросе Advance
type Step string

const (
	StepService Step = "service"
	StepMaster  Step = "master"
	StepDate    Step = "date"
	StepTime    Step = "time"
)

// Session сессия бронирования одного пользователя. Поля заполняются
// по мере прохождения шагов и валидны только для состояний, в
// которых они уже выбраны. Сессия живёт в памяти и не переживает
// перезапуск процесса
type Session struct {
	UserID  int64
	State   SessionState
	Service *model.Service
	Master  string
	Date    time.Time
	Slot    model.TimeSlot

	// Сериализует шаги одного пользователя: быстрый двойной тап
	// обрабатывается по очереди, а не вперемешку
	mu sync.Mutex
}

func (s *Session) reset() {
	s.State = StateIdle
	s.Service = nil
	s.Master = ""
	s.Date = time.Time{}
	s.Slot = model.TimeSlot{}
}

// sessionManager хранит сессии по идентификатору пользователя
type sessionManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func newSessionManager() *sessionManager {
	return &sessionManager{sessions: make(map[int64]*Session)}
}

// getOrCreate возвращает сессию пользователя, создавая её при необходимости
func (m *sessionManager) getOrCreate(userID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[userID]
	if !exists {
		session = &Session{UserID: userID, State: StateIdle}
		m.sessions[userID] = session
	}
	return session
}

// get возвращает сессию пользователя или nil
func (m *sessionManager) get(userID int64) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.sessions[userID]
}

// remove удаляет сессию пользователя
func (m *sessionManager) remove(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
}
