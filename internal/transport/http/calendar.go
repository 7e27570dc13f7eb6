package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/domain"
	"github.com/go-chi/chi/v5"
)

// DateBlocker is the minimal interface needed to manage blocked dates.
type DateBlocker interface {
	BlockDate(ctx context.Context, date time.Time) (domain.Event, error)
	UnblockDate(ctx context.Context, date time.Time) error
}

func HandleBlockDate(svc DateBlocker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req blockDateRequest
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

		block, err := svc.BlockDate(r.Context(), date)
		if err != nil {
			respondError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(blockDateResponse{
			ID:   block.ID,
			Date: block.EventDate.Format(dateLayout),
		})
	}
}

func HandleUnblockDate(svc DateBlocker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := time.Parse(dateLayout, chi.URLParam(r, "date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDateRange, "date must be YYYY-MM-DD")
			return
		}

		if err := svc.UnblockDate(r.Context(), date); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type blockDateRequest struct {
	Date string `json:"date"`
}

type blockDateResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}
