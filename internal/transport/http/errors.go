package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/domain"
)

const (
	codeNotFound          = "not_found"
	codeInvalidBody       = "invalid_request_body"
	codeInvalidID         = "invalid_id"
	codeInvalidQuantity   = "invalid_quantity"
	codeInvalidAmount     = "invalid_amount"
	codeInvalidDateRange  = "invalid_date_range"
	codeItemsRequired     = "items_required"
	codeNameRequired      = "name_required"
	codeInsufficientStock = "insufficient_stock"
	codeStockConflict     = "stock_conflict"
	codeAlreadyFulfilled  = "already_fulfilled"
	codeDateBlocked       = "date_blocked"
	codeDateNotBlocked    = "date_not_blocked"
	codeItemNotFound      = "item_not_found"
	codeEventNotFound     = "event_not_found"
	codeClientNotFound    = "client_not_found"
	codeInternalError     = "internal_error"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Item      string `json:"item,omitempty"`
	Available *int   `json:"available,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrorResponse(w, status, errorResponse{Error: msg, Code: code})
}

func writeErrorResponse(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(resp)
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// respondError translates a service error into a JSON error response.
func respondError(w http.ResponseWriter, err error) {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		available := insufficient.Available
		writeErrorResponse(w, http.StatusConflict, errorResponse{
			Error:     insufficient.Error(),
			Code:      codeInsufficientStock,
			Item:      insufficient.ItemName,
			Available: &available,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, codeInvalidAmount, err.Error())
	case errors.Is(err, domain.ErrInvalidDateRange):
		writeError(w, http.StatusBadRequest, codeInvalidDateRange, err.Error())
	case errors.Is(err, domain.ErrItemsRequired):
		writeError(w, http.StatusBadRequest, codeItemsRequired, err.Error())
	case errors.Is(err, domain.ErrNameRequired):
		writeError(w, http.StatusBadRequest, codeNameRequired, err.Error())
	case errors.Is(err, domain.ErrItemNotFound):
		writeError(w, http.StatusNotFound, codeItemNotFound, err.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case errors.Is(err, domain.ErrClientNotFound), errors.Is(err, domain.ErrClientMismatch):
		writeError(w, http.StatusNotFound, codeClientNotFound, domain.ErrClientNotFound.Error())
	case errors.Is(err, domain.ErrStockConflict):
		writeError(w, http.StatusConflict, codeStockConflict, err.Error())
	case errors.Is(err, domain.ErrAlreadyFulfilled):
		writeError(w, http.StatusConflict, codeAlreadyFulfilled, err.Error())
	case errors.Is(err, domain.ErrDateBlocked):
		writeError(w, http.StatusConflict, codeDateBlocked, err.Error())
	case errors.Is(err, domain.ErrDateNotBlocked):
		writeError(w, http.StatusNotFound, codeDateNotBlocked, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
