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

// Catalog is the administrative surface over items and clients.
type Catalog interface {
	CreateItem(ctx context.Context, in app.CreateItemInput) (domain.Item, error)
	GetItem(ctx context.Context, itemID string) (domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	AdjustQuantity(ctx context.Context, itemID string, delta int) error
	RegisterClient(ctx context.Context, in app.RegisterClientInput) (domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
}

func HandleCreateItem(svc Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createItemRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidBody, "invalid request body")
			return
		}

		item, err := svc.CreateItem(r.Context(), app.CreateItemInput{
			Name:           req.Name,
			Category:       req.Category,
			UnitPriceCents: req.UnitPriceCents,
			Quantity:       req.Quantity,
			TrackStock:     req.TrackStock,
		})
		if err != nil {
			respondError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(itemResponseFrom(item))
	}
}

func HandleGetItem(svc Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := svc.GetItem(r.Context(), chi.URLParam(r, "itemID"))
		if err != nil {
			respondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(itemResponseFrom(item))
	}
}

func HandleListItems(svc Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListItems(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		resp := make([]itemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, itemResponseFrom(item))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func HandleAdjustQuantity(svc Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adjustQuantityRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidBody, "invalid request body")
			return
		}

		if err := svc.AdjustQuantity(r.Context(), chi.URLParam(r, "itemID"), req.Delta); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func HandleRegisterClient(svc Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerClientRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidBody, "invalid request body")
			return
		}

		client, err := svc.RegisterClient(r.Context(), app.RegisterClientInput{
			Name:  req.Name,
			Phone: req.Phone,
		})
		if err != nil {
			respondError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(clientResponse{
			ID:        client.ID,
			Name:      client.Name,
			Phone:     client.Phone,
			CreatedAt: client.CreatedAt,
		})
	}
}

func HandleListClients(svc Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clients, err := svc.ListClients(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		resp := make([]clientResponse, 0, len(clients))
		for _, c := range clients {
			resp = append(resp, clientResponse{
				ID:        c.ID,
				Name:      c.Name,
				Phone:     c.Phone,
				CreatedAt: c.CreatedAt,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type createItemRequest struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	UnitPriceCents int    `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	TrackStock     bool   `json:"track_stock"`
}

type adjustQuantityRequest struct {
	Delta int `json:"delta"`
}

type registerClientRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type itemResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	UnitPriceCents    int       `json:"unit_price_cents"`
	AvailableQuantity int       `json:"available_quantity"`
	TrackStock        bool      `json:"track_stock"`
	CreatedAt         time.Time `json:"created_at"`
}

func itemResponseFrom(item domain.Item) itemResponse {
	return itemResponse{
		ID:                item.ID,
		Name:              item.Name,
		Category:          item.Category,
		UnitPriceCents:    item.UnitPriceCents,
		AvailableQuantity: item.AvailableQuantity,
		TrackStock:        item.TrackStock,
		CreatedAt:         item.CreatedAt,
	}
}

type clientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
