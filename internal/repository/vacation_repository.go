package repository

import (
	"context"
	"fmt"

	"github.com/charodeyka/salon_bot/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VacationRepository отпуска мастеров в PostgreSQL
type VacationRepository struct {
	pool *pgxpool.Pool
}

func NewVacationRepository(pool *pgxpool.Pool) *VacationRepository {
	return &VacationRepository{pool: pool}
}

// Add добавляет отпуск мастеру
func (r *VacationRepository) Add(ctx context.Context, master string, vacation model.Vacation) error {
	query := `
		INSERT INTO vacations (master, date_from, date_to)
		VALUES ($1, $2, $3)
	`

	_, err := r.pool.Exec(ctx, query, master, model.DateOnly(vacation.From), model.DateOnly(vacation.To))
	if err != nil {
		return fmt.Errorf("add vacation: %w", err)
	}

	return nil
}

// List получает отпуска мастера
func (r *VacationRepository) List(ctx context.Context, master string) ([]model.Vacation, error) {
	query := `
		SELECT date_from, date_to
		FROM vacations
		WHERE master = $1
		ORDER BY date_from ASC
	`

	rows, err := r.pool.Query(ctx, query, master)
	if err != nil {
		return nil, fmt.Errorf("list vacations: %w", err)
	}
	defer rows.Close()

	var vacations []model.Vacation
	for rows.Next() {
		var v model.Vacation
		if err := rows.Scan(&v.From, &v.To); err != nil {
			return nil, fmt.Errorf("scan vacation: %w", err)
		}
		vacations = append(vacations, v)
	}

	return vacations, nil
}
