package bloodbank

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const recordColumns = `id, blood_type, units_available, hospital_name, contact, address, last_updated`

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record

	err := row.Scan(
		&rec.ID,
		&rec.BloodType,
		&rec.UnitsAvailable,
		&rec.HospitalName,
		&rec.Contact,
		&rec.Address,
		&rec.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &rec, nil
}

func (r *PgRepository) ListRecords(ctx context.Context) ([]Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recordColumns+`
		FROM blood_bank
		ORDER BY blood_type, hospital_name
	`)
	if err != nil {
		return nil, fmt.Errorf("list blood bank records: %w", err)
	}
	defer rows.Close()

	var result []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) InsertRecord(ctx context.Context, rec *Record) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO blood_bank (id, blood_type, units_available, hospital_name, contact, address, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		rec.ID,
		rec.BloodType,
		rec.UnitsAvailable,
		rec.HospitalName,
		rec.Contact,
		rec.Address,
		rec.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("insert blood bank record: %w", err)
	}

	return nil
}

func (r *PgRepository) UpdateRecord(ctx context.Context, id string, patch RecordPatch) (*Record, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE blood_bank
		SET units_available = COALESCE($2, units_available),
		    contact         = COALESCE($3, contact),
		    address         = COALESCE($4, address),
		    last_updated    = now()
		WHERE id = $1
		RETURNING `+recordColumns,
		id, patch.UnitsAvailable, patch.Contact, patch.Address)

	return scanRecord(row)
}

func (r *PgRepository) DeleteRecord(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blood_bank WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blood bank record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

const requestColumns = `
	id, user_id, user_name, user_email, user_phone,
	blood_type, units_requested, hospital_name, patient_name,
	urgency, notes, admin_notes, status, created_at`

func scanRequest(row pgx.Row) (*Request, error) {
	var req Request

	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.UserName,
		&req.UserEmail,
		&req.UserPhone,
		&req.BloodType,
		&req.UnitsRequested,
		&req.HospitalName,
		&req.PatientName,
		&req.Urgency,
		&req.Notes,
		&req.AdminNotes,
		&req.Status,
		&req.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	return &req, nil
}

func (r *PgRepository) InsertRequest(ctx context.Context, req *Request) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO blood_requests (
			id, user_id, user_name, user_email, user_phone,
			blood_type, units_requested, hospital_name, patient_name,
			urgency, notes, admin_notes, status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`,
		req.ID,
		req.UserID,
		req.UserName,
		req.UserEmail,
		req.UserPhone,
		req.BloodType,
		req.UnitsRequested,
		req.HospitalName,
		req.PatientName,
		req.Urgency,
		req.Notes,
		req.AdminNotes,
		req.Status,
		req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert blood request: %w", err)
	}

	return nil
}

func (r *PgRepository) ListRequests(ctx context.Context) ([]Request, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+requestColumns+`
		FROM blood_requests
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list blood requests: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

func (r *PgRepository) ListRequestsByUser(ctx context.Context, userID string) ([]Request, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+requestColumns+`
		FROM blood_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list blood requests by user: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

func collectRequests(rows pgx.Rows) ([]Request, error) {
	var result []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) UpdateRequest(ctx context.Context, id string, patch RequestPatch) (*Request, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE blood_requests
		SET status      = COALESCE($2, status),
		    admin_notes = COALESCE($3, admin_notes)
		WHERE id = $1
		RETURNING`+requestColumns,
		id, patch.Status, patch.AdminNotes)

	return scanRequest(row)
}

func (r *PgRepository) DeleteRequest(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blood_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blood request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}
