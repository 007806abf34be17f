package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mediflow/mediflow/internal/database"
	"github.com/mediflow/mediflow/internal/model"
)

// PostgresPatientRepository handles patient persistence in PostgreSQL
type PostgresPatientRepository struct {
	db *database.Postgres
}

// NewPostgresPatientRepository creates a new PostgresPatientRepository
func NewPostgresPatientRepository(db *database.Postgres) *PostgresPatientRepository {
	return &PostgresPatientRepository{db: db}
}

// List retrieves all patients
func (r *PostgresPatientRepository) List(ctx context.Context) ([]model.Patient, error) {
	query := `
		SELECT id, name, email, COALESCE(phone, ''), COALESCE(current_status, ''), created_at
		FROM patients
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	var out []model.Patient
	for rows.Next() {
		var p model.Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.CurrentStatus, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate patients: %w", err)
	}
	return out, nil
}

// GetByID retrieves a patient by ID
func (r *PostgresPatientRepository) GetByID(ctx context.Context, id int) (*model.Patient, error) {
	query := `
		SELECT id, name, email, COALESCE(phone, ''), COALESCE(current_status, ''), created_at
		FROM patients
		WHERE id = $1
	`
	var p model.Patient
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.CurrentStatus, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &p, nil
}
