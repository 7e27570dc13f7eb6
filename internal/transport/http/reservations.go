package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/app"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/domain"
)

const dateLayout = "2006-01-02"

// ReservationCreator is the minimal interface needed to create a reservation.
type ReservationCreator interface {
	CreateReservation(ctx context.Context, in app.CreateReservationInput) (domain.Event, error)
}

// HandleCreateReservation returns an HTTP handler for booking an event.
func HandleCreateReservation(svc ReservationCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createReservationRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidBody, "invalid request body")
			return
		}

		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDateRange, "date must be YYYY-MM-DD")
			return
		}

		lines := make([]app.ReservationLine, 0, len(req.Items))
		for _, it := range req.Items {
			lines = append(lines, app.ReservationLine{
				ItemID:         it.ItemID,
				Quantity:       it.Quantity,
				UnitPriceCents: it.UnitPriceCents,
			})
		}

		event, err := svc.CreateReservation(r.Context(), app.CreateReservationInput{
			ClientID:  req.ClientID,
			EventDate: date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Lines:     lines,
		})
		if err != nil {
			respondError(w, err)
			return
		}

		resp := createReservationResponse{
			EventID:    event.ID,
			Status:     string(event.Status),
			TotalCents: event.TotalCents,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type reservationItemRequest struct {
	ItemID         string `json:"item_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int    `json:"unit_price_cents"`
}

type createReservationRequest struct {
	ClientID  string                   `json:"client_id"`
	Date      string                   `json:"date"`
	StartTime string                   `json:"start_time"`
	EndTime   string                   `json:"end_time"`
	Items     []reservationItemRequest `json:"items"`
}

type createReservationResponse struct {
	EventID    string `json:"event_id"`
	Status     string `json:"status"`
	TotalCents int    `json:"total_cents"`
}
