package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carebridge/healthcare-backend/internal/scheduling"
)

func createAppointmentHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if req.DoctorName == "" || req.AppointmentDate == "" || req.AppointmentTime == "" {
			writeError(w, http.StatusBadRequest, "missing_fields", "doctor_name, appointment_date and appointment_time are required")
			return
		}

		claims := CallerClaims(r.Context())

		appt, err := svc.Book(r.Context(), scheduling.BookingRequest{
			PatientName:     req.PatientName,
			PatientEmail:    req.PatientEmail,
			PatientPhone:    req.PatientPhone,
			DoctorName:      req.DoctorName,
			AppointmentDate: req.AppointmentDate,
			AppointmentTime: req.AppointmentTime,
			Reason:          req.Reason,
			UserID:          claims.UserID,
		})
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, appt)
	}
}

func handleBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scheduling.ErrInvalidTimeFormat):
		writeError(w, http.StatusBadRequest, "invalid_time", "appointment_time must be HH:MM in 24-hour format")
	case errors.Is(err, scheduling.ErrInvalidDateFormat):
		writeError(w, http.StatusBadRequest, "invalid_date", "appointment_date must be YYYY-MM-DD")
	case errors.Is(err, scheduling.ErrSlotConflict):
		// The message names only the minimum spacing, never whose
		// appointment is in the way.
		writeError(w, http.StatusBadRequest, "slot_unavailable",
			fmt.Sprintf("This time slot is not available. The doctor needs at least %d minutes per patient. Please choose a different time.", scheduling.SlotDurationMinutes))
	case errors.Is(err, scheduling.ErrScheduleBusy):
		writeError(w, http.StatusConflict, "schedule_busy", "this schedule is currently being booked, please retry shortly")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func listAppointmentsHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := CallerClaims(r.Context())

		appts, err := svc.ListForCaller(r.Context(), claims.UserID, claims.Role.IsAdmin())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, appts)
	}
}

func bookedSlotsHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorName := r.URL.Query().Get("doctor_name")
		date := r.URL.Query().Get("appointment_date")
		if doctorName == "" || date == "" {
			writeError(w, http.StatusBadRequest, "missing_params", "doctor_name and appointment_date are required")
			return
		}

		times, duration, err := svc.BookedSlots(r.Context(), doctorName, date)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, BookedSlotsResponse{
			BookedTimes:     times,
			DurationMinutes: duration,
		})
	}
}

func updateAppointmentHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		var req UpdateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		patch := scheduling.UpdatePatch{Notes: req.Notes}
		if req.Status != nil {
			status := scheduling.Status(*req.Status)
			patch.Status = &status
		}

		appt, err := svc.UpdateAppointment(r.Context(), id, patch)
		if err != nil {
			switch {
			case errors.Is(err, scheduling.ErrEmptyPatch):
				writeError(w, http.StatusBadRequest, "empty_patch", "no update data provided")
			case errors.Is(err, scheduling.ErrInvalidStatus):
				writeError(w, http.StatusBadRequest, "invalid_status", "status must be one of pending, confirmed, completed, cancelled")
			case errors.Is(err, scheduling.ErrAppointmentNotFound):
				writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			}
			return
		}

		writeJSON(w, http.StatusOK, appt)
	}
}

func deleteAppointmentHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		if err := svc.DeleteAppointment(r.Context(), id); err != nil {
			if errors.Is(err, scheduling.ErrAppointmentNotFound) {
				writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Appointment deleted successfully"})
	}
}
