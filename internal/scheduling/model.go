package scheduling

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Active reports whether the appointment occupies the doctor's calendar.
// Only cancelled appointments release their slot.
func (s Status) Active() bool {
	return s != StatusCancelled
}

// Appointment is the persisted booking record. Doctor name and date are
// the scheduling keys: slots are scoped per (doctor_name, appointment_date)
// and both are treated as opaque strings beyond boundary validation.
type Appointment struct {
	ID              string    `json:"id"`
	PatientName     string    `json:"patient_name"`
	PatientEmail    string    `json:"patient_email"`
	PatientPhone    string    `json:"patient_phone"`
	DoctorName      string    `json:"doctor_name"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Reason          string    `json:"reason"`
	Notes           *string   `json:"notes,omitempty"`
	UserID          string    `json:"user_id"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
