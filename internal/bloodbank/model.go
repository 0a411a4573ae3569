package bloodbank

import "time"

// Record is one hospital's stock of a blood type.
type Record struct {
	ID             string    `json:"id"`
	BloodType      string    `json:"blood_type"`
	UnitsAvailable int       `json:"units_available"`
	HospitalName   string    `json:"hospital_name"`
	Contact        string    `json:"contact"`
	Address        string    `json:"address"`
	LastUpdated    time.Time `json:"last_updated"`
}

// RecordPatch is a partial update; nil fields are left untouched.
// Any successful patch bumps LastUpdated.
type RecordPatch struct {
	UnitsAvailable *int
	Contact        *string
	Address        *string
}

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestCompleted RequestStatus = "completed"
)

// Request is a user-submitted blood requisition. The requesting user's
// contact details are snapshotted at creation time.
type Request struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	UserName       string        `json:"user_name"`
	UserEmail      string        `json:"user_email"`
	UserPhone      string        `json:"user_phone"`
	BloodType      string        `json:"blood_type"`
	UnitsRequested int           `json:"units_requested"`
	HospitalName   string        `json:"hospital_name"`
	PatientName    string        `json:"patient_name"`
	Urgency        string        `json:"urgency"`
	Notes          *string       `json:"notes,omitempty"`
	AdminNotes     *string       `json:"admin_notes,omitempty"`
	Status         RequestStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}

type RequestPatch struct {
	Status     *RequestStatus
	AdminNotes *string
}
