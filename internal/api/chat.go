package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carebridge/healthcare-backend/internal/chat"
)

func sendChatMessageHandler(svc *chat.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if req.Message == "" && (req.Image == nil || *req.Image == "") {
			writeError(w, http.StatusBadRequest, "missing_fields", "message or image is required")
			return
		}

		claims := CallerClaims(r.Context())

		exchange, err := svc.SendMessage(r.Context(), claims.UserID, chat.SendMessageInput{
			Message:   req.Message,
			Image:     req.Image,
			SessionID: req.SessionID,
		})
		if err != nil {
			switch {
			case errors.Is(err, chat.ErrQuotaExceeded):
				writeError(w, http.StatusTooManyRequests, "quota_exceeded",
					"The assistant is temporarily unavailable due to high demand. Please try again later.")
			default:
				writeError(w, http.StatusInternalServerError, "generation_failed", "Failed to generate a response")
			}
			return
		}

		writeJSON(w, http.StatusOK, exchange)
	}
}

func chatHistoryHandler(svc *chat.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := CallerClaims(r.Context())

		entries, err := svc.History(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, entries)
	}
}
