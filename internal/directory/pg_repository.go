package directory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) List(ctx context.Context) ([]Doctor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, specialization, experience, contact, availability, gender, fees, created_at
		FROM doctors
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer rows.Close()

	var result []Doctor
	for rows.Next() {
		var d Doctor
		err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Specialization,
			&d.Experience,
			&d.Contact,
			&d.Availability,
			&d.Gender,
			&d.Fees,
			&d.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) Insert(ctx context.Context, doctor *Doctor) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO doctors (id, name, specialization, experience, contact, availability, gender, fees, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		doctor.ID,
		doctor.Name,
		doctor.Specialization,
		doctor.Experience,
		doctor.Contact,
		doctor.Availability,
		doctor.Gender,
		doctor.Fees,
		doctor.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert doctor: %w", err)
	}

	return nil
}

func (r *PgRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDoctorNotFound
	}
	return nil
}
