package pharmacy

import (
	"context"
	"encoding/json"
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

const pharmacyColumns = `id, name, address, contact, operating_hours, services, location, created_at`

func scanPharmacy(row pgx.Row) (*Pharmacy, error) {
	var p Pharmacy

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Address,
		&p.Contact,
		&p.OperatingHours,
		&p.Services,
		&p.Location,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPharmacyNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *PgRepository) ListPharmacies(ctx context.Context) ([]Pharmacy, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+pharmacyColumns+`
		FROM pharmacies
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list pharmacies: %w", err)
	}
	defer rows.Close()

	var result []Pharmacy
	for rows.Next() {
		p, err := scanPharmacy(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) InsertPharmacy(ctx context.Context, p *Pharmacy) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO pharmacies (id, name, address, contact, operating_hours, services, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		p.ID,
		p.Name,
		p.Address,
		p.Contact,
		p.OperatingHours,
		p.Services,
		p.Location,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pharmacy: %w", err)
	}

	return nil
}

func (r *PgRepository) UpdatePharmacy(ctx context.Context, id string, patch PharmacyPatch) (*Pharmacy, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE pharmacies
		SET contact         = COALESCE($2, contact),
		    operating_hours = COALESCE($3, operating_hours),
		    services        = COALESCE($4, services)
		WHERE id = $1
		RETURNING `+pharmacyColumns,
		id, patch.Contact, patch.OperatingHours, patch.Services)

	return scanPharmacy(row)
}

func (r *PgRepository) DeletePharmacy(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pharmacies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pharmacy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPharmacyNotFound
	}
	return nil
}

func (r *PgRepository) ListMedicines(ctx context.Context) ([]Medicine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, price, stock, category, created_at
		FROM medicines
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	defer rows.Close()

	var result []Medicine
	for rows.Next() {
		var m Medicine
		err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Stock, &m.Category, &m.CreatedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) InsertMedicine(ctx context.Context, m *Medicine) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO medicines (id, name, description, price, stock, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		m.ID,
		m.Name,
		m.Description,
		m.Price,
		m.Stock,
		m.Category,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert medicine: %w", err)
	}

	return nil
}

func (r *PgRepository) DeleteMedicine(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete medicine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMedicineNotFound
	}
	return nil
}

const orderColumns = `id, user_id, user_name, items, total_amount, status, admin_notes, created_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o     Order
		items []byte
	)

	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.UserName,
		&items,
		&o.TotalAmount,
		&o.Status,
		&o.AdminNotes,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}

	return &o, nil
}

func (r *PgRepository) InsertOrder(ctx context.Context, o *Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO orders (id, user_id, user_name, items, total_amount, status, admin_notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		o.ID,
		o.UserID,
		o.UserName,
		items,
		o.TotalAmount,
		o.Status,
		o.AdminNotes,
		o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func (r *PgRepository) ListOrders(ctx context.Context) ([]Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *PgRepository) ListOrdersByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders by user: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]Order, error) {
	var result []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) UpdateOrder(ctx context.Context, id string, patch OrderPatch) (*Order, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE orders
		SET status      = COALESCE($2, status),
		    admin_notes = COALESCE($3, admin_notes)
		WHERE id = $1
		RETURNING `+orderColumns,
		id, patch.Status, patch.AdminNotes)

	return scanOrder(row)
}
