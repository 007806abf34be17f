package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mediflow/mediflow/internal/database"
	"github.com/mediflow/mediflow/internal/model"
)

// PostgresDoctorRepository handles doctor persistence in PostgreSQL
type PostgresDoctorRepository struct {
	db *database.Postgres
}

// NewPostgresDoctorRepository creates a new PostgresDoctorRepository
func NewPostgresDoctorRepository(db *database.Postgres) *PostgresDoctorRepository {
	return &PostgresDoctorRepository{db: db}
}

// List retrieves all doctors
func (r *PostgresDoctorRepository) List(ctx context.Context) ([]model.Doctor, error) {
	query := `
		SELECT id, name, specialization, COALESCE(email, ''), COALESCE(phone, '')
		FROM doctors
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer rows.Close()

	var out []model.Doctor
	for rows.Next() {
		var d model.Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialization, &d.Email, &d.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan doctor: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate doctors: %w", err)
	}
	return out, nil
}

// GetByID retrieves a doctor by ID
func (r *PostgresDoctorRepository) GetByID(ctx context.Context, id int) (*model.Doctor, error) {
	query := `
		SELECT id, name, specialization, COALESCE(email, ''), COALESCE(phone, '')
		FROM doctors
		WHERE id = $1
	`
	var d model.Doctor
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &d.Specialization, &d.Email, &d.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &d, nil
}
