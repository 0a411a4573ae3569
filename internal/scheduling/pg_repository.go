package scheduling

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const activeSlotConstraint = "uq_appointments_active_slot"

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const appointmentColumns = `
	id, patient_name, patient_email, patient_phone,
	doctor_name, appointment_date, appointment_time,
	reason, notes, user_id, status, created_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment

	err := row.Scan(
		&a.ID,
		&a.PatientName,
		&a.PatientEmail,
		&a.PatientPhone,
		&a.DoctorName,
		&a.AppointmentDate,
		&a.AppointmentTime,
		&a.Reason,
		&a.Notes,
		&a.UserID,
		&a.Status,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	return &a, nil
}

func (r *PgRepository) ListActiveTimes(ctx context.Context, doctorName, date string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT appointment_time
		FROM appointments
		WHERE doctor_name = $1
		  AND appointment_date = $2
		  AND status <> 'cancelled'
	`, doctorName, date)
	if err != nil {
		return nil, fmt.Errorf("list active times: %w", err)
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return times, nil
}

func (r *PgRepository) Insert(ctx context.Context, appt *Appointment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointments (
			id, patient_name, patient_email, patient_phone,
			doctor_name, appointment_date, appointment_time,
			reason, notes, user_id, status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		appt.ID,
		appt.PatientName,
		appt.PatientEmail,
		appt.PatientPhone,
		appt.DoctorName,
		appt.AppointmentDate,
		appt.AppointmentTime,
		appt.Reason,
		appt.Notes,
		appt.UserID,
		appt.Status,
		appt.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == activeSlotConstraint {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("insert appointment: %w", err)
	}

	return nil
}

func (r *PgRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT`+appointmentColumns+`
		FROM appointments
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

func (r *PgRepository) ListAll(ctx context.Context) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+appointmentColumns+`
		FROM appointments
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *PgRepository) ListByUser(ctx context.Context, userID string) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+appointmentColumns+`
		FROM appointments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list appointments by user: %w", err)
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func collectAppointments(rows pgx.Rows) ([]Appointment, error) {
	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) Update(ctx context.Context, id string, patch UpdatePatch) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET status = COALESCE($2, status),
		    notes  = COALESCE($3, notes)
		WHERE id = $1
		RETURNING`+appointmentColumns,
		id, patch.Status, patch.Notes)

	return scanAppointment(row)
}

func (r *PgRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *PgRepository) CompletePast(ctx context.Context, before string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET status = 'completed'
		WHERE appointment_date < $1
		  AND status IN ('pending', 'confirmed')
	`, before)
	if err != nil {
		return 0, fmt.Errorf("complete past appointments: %w", err)
	}

	return tag.RowsAffected(), nil
}
