package pharmacy

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyPatch  = errors.New("no update data provided")
	ErrEmptyOrder  = errors.New("order must contain at least one item")
	ErrInvalidItem = errors.New("order item quantity must be positive")
)

type CreatePharmacyInput struct {
	Name           string
	Address        string
	Contact        string
	OperatingHours string
	Services       string
	Location       string
}

type CreateMedicineInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
}

type CreateOrderInput struct {
	Items       []OrderItem
	TotalAmount float64
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListPharmacies(ctx context.Context) ([]Pharmacy, error) {
	pharmacies, err := s.repo.ListPharmacies(ctx)
	if err != nil {
		return nil, err
	}
	if pharmacies == nil {
		pharmacies = []Pharmacy{}
	}
	return pharmacies, nil
}

func (s *Service) CreatePharmacy(ctx context.Context, in CreatePharmacyInput) (*Pharmacy, error) {
	p := &Pharmacy{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Address:        in.Address,
		Contact:        in.Contact,
		OperatingHours: in.OperatingHours,
		Services:       in.Services,
		Location:       in.Location,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.InsertPharmacy(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) UpdatePharmacy(ctx context.Context, id string, patch PharmacyPatch) (*Pharmacy, error) {
	if patch.Contact == nil && patch.OperatingHours == nil && patch.Services == nil {
		return nil, ErrEmptyPatch
	}
	return s.repo.UpdatePharmacy(ctx, id, patch)
}

func (s *Service) DeletePharmacy(ctx context.Context, id string) error {
	return s.repo.DeletePharmacy(ctx, id)
}

func (s *Service) ListMedicines(ctx context.Context) ([]Medicine, error) {
	medicines, err := s.repo.ListMedicines(ctx)
	if err != nil {
		return nil, err
	}
	if medicines == nil {
		medicines = []Medicine{}
	}
	return medicines, nil
}

func (s *Service) CreateMedicine(ctx context.Context, in CreateMedicineInput) (*Medicine, error) {
	m := &Medicine{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.InsertMedicine(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) DeleteMedicine(ctx context.Context, id string) error {
	return s.repo.DeleteMedicine(ctx, id)
}

func (s *Service) CreateOrder(ctx context.Context, userID, userName string, in CreateOrderInput) (*Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidItem
		}
	}

	o := &Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		UserName:    userName,
		Items:       in.Items,
		TotalAmount: in.TotalAmount,
		Status:      OrderPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.InsertOrder(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Service) ListOrdersForCaller(ctx context.Context, userID string, admin bool) ([]Order, error) {
	var (
		orders []Order
		err    error
	)
	if admin {
		orders, err = s.repo.ListOrders(ctx)
	} else {
		orders, err = s.repo.ListOrdersByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

func (s *Service) UpdateOrder(ctx context.Context, id string, patch OrderPatch) (*Order, error) {
	if patch.Status == nil && patch.AdminNotes == nil {
		return nil, ErrEmptyPatch
	}
	return s.repo.UpdateOrder(ctx, id, patch)
}
