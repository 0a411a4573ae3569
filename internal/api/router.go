package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/carebridge/healthcare-backend/internal/auth"
	"github.com/carebridge/healthcare-backend/internal/bloodbank"
	"github.com/carebridge/healthcare-backend/internal/chat"
	"github.com/carebridge/healthcare-backend/internal/directory"
	"github.com/carebridge/healthcare-backend/internal/pharmacy"
	"github.com/carebridge/healthcare-backend/internal/scheduling"
)

type RouterConfig struct {
	Auth        *auth.Service
	Scheduling  *scheduling.Service
	Directory   *directory.Service
	BloodBank   *bloodbank.Service
	Pharmacy    *pharmacy.Service
	Chat        *chat.Service
	PgPool      *pgxpool.Pool
	Redis       *redis.Client
	Log         *zap.Logger
	JWTSecret   string
	CORSOrigins []string
	Env         string
	Version     string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", registerHandler(cfg.Auth))
		r.Post("/auth/login", loginHandler(cfg.Auth))
		r.Get("/doctors", listDoctorsHandler(cfg.Directory))
		r.Get("/appointments/booked-slots", bookedSlotsHandler(cfg.Scheduling))
		r.Get("/blood-bank", listBloodBankHandler(cfg.BloodBank))
		r.Get("/pharmacies", listPharmaciesHandler(cfg.Pharmacy))
		r.Get("/medicines", listMedicinesHandler(cfg.Pharmacy))

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(Authenticator(cfg.JWTSecret))

			r.Get("/auth/me", meHandler(cfg.Auth))

			r.Post("/appointments", createAppointmentHandler(cfg.Scheduling))
			r.Get("/appointments", listAppointmentsHandler(cfg.Scheduling))

			r.Post("/blood-requests", createBloodRequestHandler(cfg.BloodBank, cfg.Auth))
			r.Get("/blood-requests", listBloodRequestsHandler(cfg.BloodBank))

			r.Post("/orders", createOrderHandler(cfg.Pharmacy, cfg.Auth))
			r.Get("/orders", listOrdersHandler(cfg.Pharmacy))

			r.Post("/chat/message", sendChatMessageHandler(cfg.Chat))
			r.Get("/chat/history", chatHistoryHandler(cfg.Chat))

			// Admin routes
			r.Group(func(r chi.Router) {
				r.Use(RequireRole(auth.RoleAdmin, auth.RoleSuperAdmin))

				r.Post("/doctors", createDoctorHandler(cfg.Directory))
				r.Delete("/doctors/{id}", deleteDoctorHandler(cfg.Directory))

				r.Patch("/appointments/{id}", updateAppointmentHandler(cfg.Scheduling))
				r.Delete("/appointments/{id}", deleteAppointmentHandler(cfg.Scheduling))

				r.Post("/blood-bank", createBloodBankHandler(cfg.BloodBank))
				r.Patch("/blood-bank/{id}", updateBloodBankHandler(cfg.BloodBank))
				r.Delete("/blood-bank/{id}", deleteBloodBankHandler(cfg.BloodBank))

				r.Patch("/blood-requests/{id}", updateBloodRequestHandler(cfg.BloodBank))
				r.Delete("/blood-requests/{id}", deleteBloodRequestHandler(cfg.BloodBank))

				r.Post("/pharmacies", createPharmacyHandler(cfg.Pharmacy))
				r.Patch("/pharmacies/{id}", updatePharmacyHandler(cfg.Pharmacy))
				r.Delete("/pharmacies/{id}", deletePharmacyHandler(cfg.Pharmacy))

				r.Post("/medicines", createMedicineHandler(cfg.Pharmacy))
				r.Delete("/medicines/{id}", deleteMedicineHandler(cfg.Pharmacy))

				r.Patch("/orders/{id}", updateOrderHandler(cfg.Pharmacy))
			})

			// Super admin routes
			r.Group(func(r chi.Router) {
				r.Use(RequireRole(auth.RoleSuperAdmin))

				r.Post("/admin/admins", createAdminHandler(cfg.Auth))
				r.Get("/admin/admins", listAdminsHandler(cfg.Auth))
				r.Delete("/admin/admins/{id}", deleteAdminHandler(cfg.Auth))
			})
		})
	})

	return r
}
