package pharmacy

import "time"

type Pharmacy struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Contact        string    `json:"contact"`
	OperatingHours string    `json:"operating_hours"`
	Services       string    `json:"services"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
}

type PharmacyPatch struct {
	Contact        *string
	OperatingHours *string
	Services       *string
}

type Medicine struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderItem is a line item snapshot; medicine name and price are copied
// at order time so later catalog edits do not rewrite history.
type OrderItem struct {
	MedicineID   string  `json:"medicine_id"`
	MedicineName string  `json:"medicine_name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}

type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	UserName    string      `json:"user_name"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `json:"status"`
	AdminNotes  *string     `json:"admin_notes,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

type OrderPatch struct {
	Status     *OrderStatus
	AdminNotes *string
}
