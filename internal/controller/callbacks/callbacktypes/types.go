package callbacktypes

import (
	"github.com/charodeyka/salon_bot/internal/config"
	"github.com/charodeyka/salon_bot/internal/controller/state"
	"github.com/charodeyka/salon_bot/internal/service"
	"go.uber.org/zap"
)

// StateManager интерфейс для управления состоянием диалогов
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) state.UserState
	SetState(telegramID int64, st state.UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	Salon          *config.Salon
	AdminID        int64
	BookingService *service.BookingService
	StateManager   StateManager
	Logger         *zap.Logger
}
