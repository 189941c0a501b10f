package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed" // Подтверждена
	AppointmentStatusCancelled AppointmentStatus = "cancelled" // Отменена
)

// Appointment запись клиента к мастеру. Цена фиксируется в момент
// записи и не зависит от последующих изменений каталога
type Appointment struct {
	ID        uuid.UUID         `json:"id"`
	UserID    int64             `json:"user_id"`
	Service   string            `json:"service"`
	Master    string            `json:"master"`
	Date      time.Time         `json:"date"`
	Slot      TimeSlot          `json:"slot"`
	Price     int               `json:"price"`
	Status    AppointmentStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// AppointmentDraft заполненный черновик записи перед сохранением
type AppointmentDraft struct {
	UserID  int64
	Service string
	Master  string
	Date    time.Time
	Slot    TimeSlot
	Price   int
}

// MasterStats статистика мастера по подтверждённым записям
type MasterStats struct {
	Appointments int `json:"appointments"`
	Revenue      int `json:"revenue"` // в рублях
}
