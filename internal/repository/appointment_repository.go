package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mediflow/mediflow/internal/database"
	"github.com/mediflow/mediflow/internal/model"
)

// PostgresAppointmentRepository handles appointment persistence in PostgreSQL
type PostgresAppointmentRepository struct {
	db *database.Postgres
}

// NewPostgresAppointmentRepository creates a new PostgresAppointmentRepository
func NewPostgresAppointmentRepository(db *database.Postgres) *PostgresAppointmentRepository {
	return &PostgresAppointmentRepository{db: db}
}

const appointmentColumns = `
	id, patient_id, doctor_id,
	to_char(scheduled_date, 'YYYY-MM-DD'), to_char(scheduled_time, 'HH24:MI'),
	status, reason, COALESCE(notes, ''), created_at
`

// List retrieves all appointments
func (r *PostgresAppointmentRepository) List(ctx context.Context) ([]model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments ORDER BY scheduled_date, scheduled_time`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// GetByID retrieves an appointment by ID
func (r *PostgresAppointmentRepository) GetByID(ctx context.Context, id int) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	a, err := scanAppointment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return a, nil
}

// Create inserts a new appointment, letting the database assign the next ID
func (r *PostgresAppointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	if a.Status == "" {
		a.Status = model.AppointmentScheduled
	}
	query := `
		INSERT INTO appointments (patient_id, doctor_id, scheduled_date, scheduled_time, status, reason, notes)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		a.PatientID,
		a.DoctorID,
		a.ScheduledDate,
		a.ScheduledTime,
		a.Status,
		a.Reason,
		a.Notes,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// Update merges a partial patch into an existing appointment
func (r *PostgresAppointmentRepository) Update(ctx context.Context, id int, patch *model.AppointmentPatch) (*model.Appointment, error) {
	query := `
		UPDATE appointments SET
			patient_id     = COALESCE($2, patient_id),
			doctor_id      = COALESCE($3, doctor_id),
			scheduled_date = COALESCE($4, scheduled_date::text)::date,
			scheduled_time = COALESCE($5, scheduled_time::text)::time,
			status         = COALESCE($6, status),
			reason         = COALESCE($7, reason),
			notes          = COALESCE($8, notes)
		WHERE id = $1
		RETURNING ` + appointmentColumns
	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}
	a, err := scanAppointment(r.db.QueryRowContext(ctx, query,
		id,
		patch.PatientID,
		patch.DoctorID,
		patch.ScheduledDate,
		patch.ScheduledTime,
		status,
		patch.Reason,
		patch.Notes,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return a, nil
}

// Delete removes an appointment by ID
func (r *PostgresAppointmentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByDate retrieves appointments on an exact calendar date
func (r *PostgresAppointmentRepository) GetByDate(ctx context.Context, date string) ([]model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE scheduled_date = $1 ORDER BY scheduled_time`
	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointments by date: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// GetByPatient retrieves a patient's appointments
func (r *PostgresAppointmentRepository) GetByPatient(ctx context.Context, patientID int) ([]model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE patient_id = $1 ORDER BY scheduled_date, scheduled_time`
	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointments by patient: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*model.Appointment, error) {
	var a model.Appointment
	err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.ScheduledDate,
		&a.ScheduledTime,
		&a.Status,
		&a.Reason,
		&a.Notes,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAppointments(rows *sql.Rows) ([]model.Appointment, error) {
	var out []model.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}
	return out, nil
}
