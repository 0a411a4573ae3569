package api

import (
	"github.com/carebridge/healthcare-backend/internal/auth"
	"github.com/carebridge/healthcare-backend/internal/pharmacy"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        *auth.User `json:"user"`
}

type CreateDoctorRequest struct {
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	Experience     string  `json:"experience"`
	Contact        string  `json:"contact"`
	Availability   string  `json:"availability"`
	Gender         string  `json:"gender"`
	Fees           float64 `json:"fees"`
}

type CreateAppointmentRequest struct {
	PatientName     string `json:"patient_name"`
	PatientEmail    string `json:"patient_email"`
	PatientPhone    string `json:"patient_phone"`
	DoctorName      string `json:"doctor_name"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Reason          string `json:"reason"`
}

type UpdateAppointmentRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

type BookedSlotsResponse struct {
	BookedTimes     []string `json:"booked_times"`
	DurationMinutes int      `json:"duration_minutes"`
}

type CreateBloodBankRequest struct {
	BloodType      string `json:"blood_type"`
	UnitsAvailable int    `json:"units_available"`
	HospitalName   string `json:"hospital_name"`
	Contact        string `json:"contact"`
	Address        string `json:"address"`
}

type UpdateBloodBankRequest struct {
	UnitsAvailable *int    `json:"units_available"`
	Contact        *string `json:"contact"`
	Address        *string `json:"address"`
}

type CreateBloodRequestRequest struct {
	BloodType      string  `json:"blood_type"`
	UnitsRequested int     `json:"units_requested"`
	HospitalName   string  `json:"hospital_name"`
	PatientName    string  `json:"patient_name"`
	Urgency        string  `json:"urgency"`
	Notes          *string `json:"notes"`
}

type UpdateBloodRequestRequest struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

type CreatePharmacyRequest struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	Contact        string `json:"contact"`
	OperatingHours string `json:"operating_hours"`
	Services       string `json:"services"`
	Location       string `json:"location"`
}

type UpdatePharmacyRequest struct {
	Contact        *string `json:"contact"`
	OperatingHours *string `json:"operating_hours"`
	Services       *string `json:"services"`
}

type CreateMedicineRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
}

type CreateOrderRequest struct {
	Items       []pharmacy.OrderItem `json:"items"`
	TotalAmount float64              `json:"total_amount"`
}

type UpdateOrderRequest struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

type ChatMessageRequest struct {
	Message   string  `json:"message"`
	Image     *string `json:"image"`
	SessionID *string `json:"session_id"`
}
