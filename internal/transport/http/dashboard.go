package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/app"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/domain"
)

// Dashboard serves the read-only administrative aggregations.
type Dashboard interface {
	Stats(ctx context.Context) (app.Stats, error)
	MonthlyRevenue(ctx context.Context) ([]domain.MonthlyBucket, error)
	LowStock(ctx context.Context) ([]domain.StockAlert, error)
}

func HandleStats(svc Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(stats)
	}
}

func HandleMonthlyRevenue(svc Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buckets, err := svc.MonthlyRevenue(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}

		resp := make([]monthlyBucketResponse, 0, len(buckets))
		for _, b := range buckets {
			resp = append(resp, monthlyBucketResponse{
				Month:        b.Month.Format("2006-01"),
				Events:       b.Events,
				RevenueCents: b.RevenueCents,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func HandleLowStock(svc Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alerts, err := svc.LowStock(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}

		resp := make([]stockAlertResponse, 0, len(alerts))
		for _, a := range alerts {
			resp = append(resp, stockAlertResponse{
				ItemID:            a.Item.ID,
				Name:              a.Item.Name,
				AvailableQuantity: a.Item.AvailableQuantity,
				Level:             string(a.Level),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type monthlyBucketResponse struct {
	Month        string `json:"month"`
	Events       int    `json:"events"`
	RevenueCents int    `json:"revenue_cents"`
}

type stockAlertResponse struct {
	ItemID            string `json:"item_id"`
	Name              string `json:"name"`
	AvailableQuantity int    `json:"available_quantity"`
	Level             string `json:"level"`
}
