package handlers

import (
	"github.com/charodeyka/salon_bot/internal/controller/callbacks/callbacktypes"
)

// Handler обрабатывает команды и текстовые сообщения.
// Разделяет зависимости с callback handlers
type Handler struct {
	*callbacktypes.Handler
}

// New создаёт обработчик команд
func New(deps *callbacktypes.Handler) *Handler {
	return &Handler{Handler: deps}
}
