package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/app"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/domain"
	"github.com/go-chi/chi/v5"
)

// PaymentRecorder is the minimal interface needed to record a payment.
type PaymentRecorder interface {
	RecordPayment(ctx context.Context, in app.RecordPaymentInput) (domain.Payment, error)
}

// Fulfiller is the minimal interface needed to mark an event fulfilled.
type Fulfiller interface {
	MarkFulfilled(ctx context.Context, eventID string) error
}

// HandleRecordPayment returns an HTTP handler that appends a payment to an
// event and confirms the reservation.
func HandleRecordPayment(svc PaymentRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordPaymentRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidBody, "invalid request body")
			return
		}

		payment, err := svc.RecordPayment(r.Context(), app.RecordPaymentInput{
			EventID:     chi.URLParam(r, "eventID"),
			ClientID:    req.ClientID,
			AmountCents: req.AmountCents,
			Method:      req.Method,
		})
		if err != nil {
			respondError(w, err)
			return
		}

		resp := recordPaymentResponse{
			PaymentID:   payment.ID,
			EventID:     payment.EventID,
			AmountCents: payment.AmountCents,
			Method:      payment.Method,
			CreatedAt:   payment.CreatedAt,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleMarkFulfilled returns an HTTP handler for the fulfillment
// transition; reserved stock is returned exactly once.
func HandleMarkFulfilled(svc Fulfiller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.MarkFulfilled(r.Context(), chi.URLParam(r, "eventID")); err != nil {
			respondError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": string(domain.EventStatusCompleted)})
	}
}

type recordPaymentRequest struct {
	ClientID    string `json:"client_id"`
	AmountCents int    `json:"amount_cents"`
	Method      string `json:"method"`
}

type recordPaymentResponse struct {
	PaymentID   string    `json:"payment_id"`
	EventID     string    `json:"event_id"`
	AmountCents int       `json:"amount_cents"`
	Method      string    `json:"method"`
	CreatedAt   time.Time `json:"created_at"`
}
