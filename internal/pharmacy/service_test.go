package pharmacy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	pharmacies map[string]*Pharmacy
	medicines  map[string]*Medicine
	orders     map[string]*Order
}

func newMemRepo() *memRepo {
	return &memRepo{
		pharmacies: make(map[string]*Pharmacy),
		medicines:  make(map[string]*Medicine),
		orders:     make(map[string]*Order),
	}
}

func (r *memRepo) ListPharmacies(_ context.Context) ([]Pharmacy, error) {
	var out []Pharmacy
	for _, p := range r.pharmacies {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memRepo) InsertPharmacy(_ context.Context, p *Pharmacy) error {
	cp := *p
	r.pharmacies[p.ID] = &cp
	return nil
}

func (r *memRepo) UpdatePharmacy(_ context.Context, id string, patch PharmacyPatch) (*Pharmacy, error) {
	p, ok := r.pharmacies[id]
	if !ok {
		return nil, ErrPharmacyNotFound
	}
	if patch.Contact != nil {
		p.Contact = *patch.Contact
	}
	if patch.OperatingHours != nil {
		p.OperatingHours = *patch.OperatingHours
	}
	if patch.Services != nil {
		p.Services = *patch.Services
	}
	cp := *p
	return &cp, nil
}

func (r *memRepo) DeletePharmacy(_ context.Context, id string) error {
	if _, ok := r.pharmacies[id]; !ok {
		return ErrPharmacyNotFound
	}
	delete(r.pharmacies, id)
	return nil
}

func (r *memRepo) ListMedicines(_ context.Context) ([]Medicine, error) {
	var out []Medicine
	for _, m := range r.medicines {
		out = append(out, *m)
	}
	return out, nil
}

func (r *memRepo) InsertMedicine(_ context.Context, m *Medicine) error {
	cp := *m
	r.medicines[m.ID] = &cp
	return nil
}

func (r *memRepo) DeleteMedicine(_ context.Context, id string) error {
	if _, ok := r.medicines[id]; !ok {
		return ErrMedicineNotFound
	}
	delete(r.medicines, id)
	return nil
}

func (r *memRepo) InsertOrder(_ context.Context, o *Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *memRepo) ListOrders(_ context.Context) ([]Order, error) {
	var out []Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *memRepo) ListOrdersByUser(_ context.Context, userID string) ([]Order, error) {
	var out []Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *memRepo) UpdateOrder(_ context.Context, id string, patch OrderPatch) (*Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if patch.AdminNotes != nil {
		o.AdminNotes = patch.AdminNotes
	}
	cp := *o
	return &cp, nil
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())

	items := []OrderItem{{MedicineID: "med-1", MedicineName: "Paracetamol", Price: 20, Quantity: 2}}

	t.Run("valid order starts pending", func(t *testing.T) {
		order, err := svc.CreateOrder(ctx, "user-1", "Jordan", CreateOrderInput{Items: items, TotalAmount: 40})
		require.NoError(t, err)
		assert.Equal(t, OrderPending, order.Status)
		assert.Equal(t, "Jordan", order.UserName)
	})

	t.Run("empty order rejected", func(t *testing.T) {
		_, err := svc.CreateOrder(ctx, "user-1", "Jordan", CreateOrderInput{})
		assert.ErrorIs(t, err, ErrEmptyOrder)
	})

	t.Run("non positive quantity rejected", func(t *testing.T) {
		bad := []OrderItem{{MedicineID: "med-1", MedicineName: "Paracetamol", Price: 20, Quantity: 0}}
		_, err := svc.CreateOrder(ctx, "user-1", "Jordan", CreateOrderInput{Items: bad, TotalAmount: 0})
		assert.ErrorIs(t, err, ErrInvalidItem)
	})
}

func TestListOrdersForCaller(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())

	items := []OrderItem{{MedicineID: "med-1", MedicineName: "Paracetamol", Price: 20, Quantity: 1}}

	_, err := svc.CreateOrder(ctx, "user-1", "Jordan", CreateOrderInput{Items: items, TotalAmount: 20})
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, "user-2", "Sam", CreateOrderInput{Items: items, TotalAmount: 20})
	require.NoError(t, err)

	own, err := svc.ListOrdersForCaller(ctx, "user-1", false)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := svc.ListOrdersForCaller(ctx, "user-1", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := svc.ListOrdersForCaller(ctx, "user-3", false)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateOrder(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())

	items := []OrderItem{{MedicineID: "med-1", MedicineName: "Paracetamol", Price: 20, Quantity: 1}}
	order, err := svc.CreateOrder(ctx, "user-1", "Jordan", CreateOrderInput{Items: items, TotalAmount: 20})
	require.NoError(t, err)

	_, err = svc.UpdateOrder(ctx, order.ID, OrderPatch{})
	assert.ErrorIs(t, err, ErrEmptyPatch)

	completed := OrderCompleted
	updated, err := svc.UpdateOrder(ctx, order.ID, OrderPatch{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, OrderCompleted, updated.Status)

	_, err = svc.UpdateOrder(ctx, "missing", OrderPatch{Status: &completed})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
