package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carebridge/healthcare-backend/internal/auth"
	"github.com/carebridge/healthcare-backend/internal/bloodbank"
)

func listBloodBankHandler(svc *bloodbank.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := svc.ListRecords(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, records)
	}
}

func createBloodBankHandler(svc *bloodbank.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateBloodBankRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if req.BloodType == "" || req.HospitalName == "" {
			writeError(w, http.StatusBadRequest, "missing_fields", "blood_type and hospital_name are required")
			return
		}

		rec, err := svc.CreateRecord(r.Context(), bloodbank.CreateRecordInput{
			BloodType:      req.BloodType,
			UnitsAvailable: req.UnitsAvailable,
			HospitalName:   req.HospitalName,
			Contact:        req.Contact,
			Address:        req.Address,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusCreated, rec)
	}
}

func updateBloodBankHandler(svc *bloodbank.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_record_id", "id must be a valid UUID")
			return
		}

		var req UpdateBloodBankRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		rec, err := svc.UpdateRecord(r.Context(), id, bloodbank.RecordPatch{
			UnitsAvailable: req.UnitsAvailable,
			Contact:        req.Contact,
			Address:        req.Address,
		})
		if err != nil {
			switch {
			case errors.Is(err, bloodbank.ErrEmptyPatch):
				writeError(w, http.StatusBadRequest, "empty_patch", "no update data provided")
			case errors.Is(err, bloodbank.ErrRecordNotFound):
				writeError(w, http.StatusNotFound, "record_not_found", "Blood bank record not found")
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			}
			return
		}

		writeJSON(w, http.StatusOK, rec)
	}
}

func deleteBloodBankHandler(svc *bloodbank.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_record_id", "id must be a valid UUID")
			return
		}

		if err := svc.DeleteRecord(r.Context(), id); err != nil {
			if errors.Is(err, bloodbank.ErrRecordNotFound) {
				writeError(w, http.StatusNotFound, "record_not_found", "Blood bank record not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Blood bank record deleted successfully"})
	}
}

// createBloodRequestHandler snapshots the caller's contact details onto
// the request, which means a user lookup on top of the token claims.
func createBloodRequestHandler(svc *bloodbank.Service, users *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateBloodRequestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if req.BloodType == "" || req.UnitsRequested <= 0 || req.PatientName == "" {
			writeError(w, http.StatusBadRequest, "missing_fields", "blood_type, units_requested and patient_name are required")
			return
		}

		claims := CallerClaims(r.Context())
		user, err := users.GetUser(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "user_not_found", "User not found")
			return
		}

		created, err := svc.CreateRequest(r.Context(), bloodbank.Requester{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
		}, bloodbank.CreateRequestInput{
			BloodType:      req.BloodType,
			UnitsRequested: req.UnitsRequested,
			HospitalName:   req.HospitalName,
			PatientName:    req.PatientName,
			Urgency:        req.Urgency,
			Notes:          req.Notes,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func listBloodRequestsHandler(svc *bloodbank.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := CallerClaims(r.Context())

		requests, err := svc.ListRequestsForCaller(r.Context(), claims.UserID, claims.Role.IsAdmin())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, requests)
	}
}

func updateBloodRequestHandler(svc *bloodbank.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_id", "id must be a valid UUID")
			return
		}

		var req UpdateBloodRequestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		patch := bloodbank.RequestPatch{AdminNotes: req.AdminNotes}
		if req.Status != nil {
			status := bloodbank.RequestStatus(*req.Status)
			patch.Status = &status
		}

		updated, err := svc.UpdateRequest(r.Context(), id, patch)
		if err != nil {
			switch {
			case errors.Is(err, bloodbank.ErrEmptyPatch):
				writeError(w, http.StatusBadRequest, "empty_patch", "no update data provided")
			case errors.Is(err, bloodbank.ErrRequestNotFound):
				writeError(w, http.StatusNotFound, "request_not_found", "Blood request not found")
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			}
			return
		}

		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteBloodRequestHandler(svc *bloodbank.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_id", "id must be a valid UUID")
			return
		}

		if err := svc.DeleteRequest(r.Context(), id); err != nil {
			if errors.Is(err, bloodbank.ErrRequestNotFound) {
				writeError(w, http.StatusNotFound, "request_not_found", "Blood request not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Blood request deleted successfully"})
	}
}
