package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carebridge/healthcare-backend/internal/auth"
	"github.com/carebridge/healthcare-backend/internal/pharmacy"
)

func listPharmaciesHandler(svc *pharmacy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pharmacies, err := svc.ListPharmacies(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, pharmacies)
	}
}

func createPharmacyHandler(svc *pharmacy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePharmacyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if req.Name == "" || req.Address == "" {
			writeError(w, http.StatusBadRequest, "missing_fields", "name and address are required")
			return
		}

		p, err := svc.CreatePharmacy(r.Context(), pharmacy.CreatePharmacyInput{
			Name:           req.Name,
			Address:        req.Address,
			Contact:        req.Contact,
			OperatingHours: req.OperatingHours,
			Services:       req.Services,
			Location:       req.Location,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusCreated, p)
	}
}

func updatePharmacyHandler(svc *pharmacy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_pharmacy_id", "id must be a valid UUID")
			return
		}

		var req UpdatePharmacyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		p, err := svc.UpdatePharmacy(r.Context(), id, pharmacy.PharmacyPatch{
			Contact:        req.Contact,
			OperatingHours: req.OperatingHours,
			Services:       req.Services,
		})
		if err != nil {
			switch {
			case errors.Is(err, pharmacy.ErrEmptyPatch):
				writeError(w, http.StatusBadRequest, "empty_patch", "no update data provided")
			case errors.Is(err, pharmacy.ErrPharmacyNotFound):
				writeError(w, http.StatusNotFound, "pharmacy_not_found", "Pharmacy not found")
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			}
			return
		}

		writeJSON(w, http.StatusOK, p)
	}
}

func deletePharmacyHandler(svc *pharmacy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_pharmacy_id", "id must be a valid UUID")
			return
		}

		if err := svc.DeletePharmacy(r.Context(), id); err != nil {
			if errors.Is(err, pharmacy.ErrPharmacyNotFound) {
				writeError(w, http.StatusNotFound, "pharmacy_not_found", "Pharmacy not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Pharmacy deleted successfully"})
	}
}

func listMedicinesHandler(svc *pharmacy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		medicines, err := svc.ListMedicines(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, medicines)
	}
}

func createMedicineHandler(svc *pharmacy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateMedicineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "missing_fields", "name is required")
			return
		}

		m, err := svc.CreateMedicine(r.Context(), pharmacy.CreateMedicineInput{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Stock:       req.Stock,
			Category:    req.Category,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusCreated, m)
	}
}

func deleteMedicineHandler(svc *pharmacy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_medicine_id", "id must be a valid UUID")
			return
		}

		if err := svc.DeleteMedicine(r.Context(), id); err != nil {
			if errors.Is(err, pharmacy.ErrMedicineNotFound) {
				writeError(w, http.StatusNotFound, "medicine_not_found", "Medicine not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Medicine deleted successfully"})
	}
}

func createOrderHandler(svc *pharmacy.Service, users *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		claims := CallerClaims(r.Context())
		user, err := users.GetUser(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "user_not_found", "User not found")
			return
		}

		order, err := svc.CreateOrder(r.Context(), user.ID, user.Name, pharmacy.CreateOrderInput{
			Items:       req.Items,
			TotalAmount: req.TotalAmount,
		})
		if err != nil {
			switch {
			case errors.Is(err, pharmacy.ErrEmptyOrder):
				writeError(w, http.StatusBadRequest, "empty_order", "order must contain at least one item")
			case errors.Is(err, pharmacy.ErrInvalidItem):
				writeError(w, http.StatusBadRequest, "invalid_item", "order item quantity must be positive")
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			}
			return
		}

		writeJSON(w, http.StatusCreated, order)
	}
}

func listOrdersHandler(svc *pharmacy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := CallerClaims(r.Context())

		orders, err := svc.ListOrdersForCaller(r.Context(), claims.UserID, claims.Role.IsAdmin())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, orders)
	}
}

func updateOrderHandler(svc *pharmacy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_order_id", "id must be a valid UUID")
			return
		}

		var req UpdateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		patch := pharmacy.OrderPatch{AdminNotes: req.AdminNotes}
		if req.Status != nil {
			status := pharmacy.OrderStatus(*req.Status)
			patch.Status = &status
		}

		order, err := svc.UpdateOrder(r.Context(), id, patch)
		if err != nil {
			switch {
			case errors.Is(err, pharmacy.ErrEmptyPatch):
				writeError(w, http.StatusBadRequest, "empty_patch", "no update data provided")
			case errors.Is(err, pharmacy.ErrOrderNotFound):
				writeError(w, http.StatusNotFound, "order_not_found", "Order not found")
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			}
			return
		}

		writeJSON(w, http.StatusOK, order)
	}
}
