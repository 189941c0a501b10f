package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charodeyka/salon_bot/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Код ошибки PostgreSQL для нарушения уникальности
const uniqueViolationCode = "23505"

// AppointmentRepository хранилище записей в PostgreSQL.
// Защита от двойного бронирования обеспечивается частичным
// уникальным индексом по (master, date, slot) для подтверждённых
// записей: из двух конкурентных вставок одна получит 23505
type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

// Create сохраняет запись. Возвращает model.ErrConflict если слот занят
func (r *AppointmentRepository) Create(ctx context.Context, draft model.AppointmentDraft) (*model.Appointment, error) {
	appt := &model.Appointment{
		ID:      uuid.New(),
		UserID:  draft.UserID,
		Service: draft.Service,
		Master:  draft.Master,
		Date:    model.DateOnly(draft.Date),
		Slot:    draft.Slot,
		Price:   draft.Price,
		Status:  model.AppointmentStatusConfirmed,
	}

	query := `
		INSERT INTO appointments (id, user_id, service, master, date, slot, price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		appt.ID,
		appt.UserID,
		appt.Service,
		appt.Master,
		appt.Date,
		appt.Slot.String(),
		appt.Price,
		appt.Status,
	).Scan(&appt.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, model.ErrConflict
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	return appt, nil
}

// ListByUser получает подтверждённые записи клиента в порядке создания
func (r *AppointmentRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Appointment, error) {
	query := `
		SELECT id, user_id, service, master, date, slot, price, status, created_at
		FROM appointments
		WHERE user_id = $1 AND status = 'confirmed'
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list appointments by user: %w", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListForMasterOnDate получает подтверждённые записи мастера на дату
func (r *AppointmentRepository) ListForMasterOnDate(ctx context.Context, master string, date time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT id, user_id, service, master, date, slot, price, status, created_at
		FROM appointments
		WHERE master = $1 AND date = $2 AND status = 'confirmed'
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, master, model.DateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("list appointments for master: %w", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Cancel переводит запись в статус cancelled
func (r *AppointmentRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE appointments
		SET status = 'cancelled'
		WHERE id = $1 AND status = 'confirmed'
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("cancel appointment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// Stats считает количество и выручку подтверждённых записей мастера
func (r *AppointmentRepository) Stats(ctx context.Context, master string) (model.MasterStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(price), 0)
		FROM appointments
		WHERE master = $1 AND status = 'confirmed'
	`

	var stats model.MasterStats
	err := r.pool.QueryRow(ctx, query, master).Scan(&stats.Appointments, &stats.Revenue)
	if err != nil {
		return model.MasterStats{}, fmt.Errorf("master stats: %w", err)
	}

	return stats, nil
}

func scanAppointments(rows pgx.Rows) ([]*model.Appointment, error) {
	var appointments []*model.Appointment
	for rows.Next() {
		var appt model.Appointment
		var slot string
		err := rows.Scan(
			&appt.ID,
			&appt.UserID,
			&appt.Service,
			&appt.Master,
			&appt.Date,
			&slot,
			&appt.Price,
			&appt.Status,
			&appt.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}

		parsed, err := model.ParseTimeSlot(slot)
		if err != nil {
			return nil, fmt.Errorf("scan appointment slot: %w", err)
		}
		appt.Slot = parsed

		appointments = append(appointments, &appt)
	}

	return appointments, nil
}
