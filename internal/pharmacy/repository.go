package pharmacy

import (
	"context"
	"errors"
)

var (
	ErrPharmacyNotFound = errors.New("pharmacy not found")
	ErrMedicineNotFound = errors.New("medicine not found")
	ErrOrderNotFound    = errors.New("order not found")
)

type Repository interface {
	ListPharmacies(ctx context.Context) ([]Pharmacy, error)
	InsertPharmacy(ctx context.Context, p *Pharmacy) error
	UpdatePharmacy(ctx context.Context, id string, patch PharmacyPatch) (*Pharmacy, error)
	DeletePharmacy(ctx context.Context, id string) error

	ListMedicines(ctx context.Context) ([]Medicine, error)
	InsertMedicine(ctx context.Context, m *Medicine) error
	DeleteMedicine(ctx context.Context, id string) error

	InsertOrder(ctx context.Context, o *Order) error
	ListOrders(ctx context.Context) ([]Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]Order, error)
	UpdateOrder(ctx context.Context, id string, patch OrderPatch) (*Order, error)
}
