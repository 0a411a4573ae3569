package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carebridge/healthcare-backend/internal/directory"
)

func listDoctorsHandler(svc *directory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctors, err := svc.ListDoctors(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, doctors)
	}
}

func createDoctorHandler(svc *directory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateDoctorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if req.Name == "" || req.Specialization == "" {
			writeError(w, http.StatusBadRequest, "missing_fields", "name and specialization are required")
			return
		}

		doctor, err := svc.CreateDoctor(r.Context(), directory.CreateDoctorInput{
			Name:           req.Name,
			Specialization: req.Specialization,
			Experience:     req.Experience,
			Contact:        req.Contact,
			Availability:   req.Availability,
			Gender:         req.Gender,
			Fees:           req.Fees,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusCreated, doctor)
	}
}

func deleteDoctorHandler(svc *directory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_doctor_id", "id must be a valid UUID")
			return
		}

		if err := svc.DeleteDoctor(r.Context(), id); err != nil {
			if errors.Is(err, directory.ErrDoctorNotFound) {
				writeError(w, http.StatusNotFound, "doctor_not_found", "Doctor not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Doctor deleted successfully"})
	}
}
