package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/app"
	"github.com/VictorManuelRompichAjcip20/alquifiestas-main/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReservationService struct {
	event domain.Event
	err   error
	got   app.CreateReservationInput
}

func (f *fakeReservationService) CreateReservation(_ context.Context, in app.CreateReservationInput) (domain.Event, error) {
	f.got = in
	if f.err != nil {
		return domain.Event{}, f.err
	}
	return f.event, nil
}

func TestHandleCreateReservation(t *testing.T) {
	t.Parallel()

	body := `{
		"client_id": "client-1",
		"date": "2025-07-14",
		"start_time": "10:00",
		"end_time": "18:00",
		"items": [{"item_id": "item-1", "quantity": 5, "unit_price_cents": 1500}]
	}`

	t.Run("returns 201 with event id and total", func(t *testing.T) {
		svc := &fakeReservationService{event: domain.Event{
			ID:         "event-1",
			Status:     domain.EventStatusReserved,
			TotalCents: 7500,
		}}
		req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
		rec := httptest.NewRecorder()
		HandleCreateReservation(svc)(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp createReservationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "event-1", resp.EventID)
		assert.Equal(t, "reserved", resp.Status)
		assert.Equal(t, 7500, resp.TotalCents)

		assert.Equal(t, "client-1", svc.got.ClientID)
		require.Len(t, svc.got.Lines, 1)
		assert.Equal(t, 5, svc.got.Lines[0].Quantity)
	})

	t.Run("insufficient stock maps to 409 with item details", func(t *testing.T) {
		svc := &fakeReservationService{err: &domain.InsufficientStockError{ItemName: "Round table", Available: 0}}
		req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
		rec := httptest.NewRecorder()
		HandleCreateReservation(svc)(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)

		var resp struct {
			Code      string `json:"code"`
			Item      string `json:"item"`
			Available *int   `json:"available"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "insufficient_stock", resp.Code)
		assert.Equal(t, "Round table", resp.Item)
		require.NotNil(t, resp.Available)
		assert.Equal(t, 0, *resp.Available)
	})

	t.Run("bad json returns 400", func(t *testing.T) {
		svc := &fakeReservationService{}
		req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		HandleCreateReservation(svc)(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad date returns 400", func(t *testing.T) {
		svc := &fakeReservationService{}
		req := httptest.NewRequest(http.MethodPost, "/reservations",
			strings.NewReader(`{"client_id":"c","date":"14/07/2025","start_time":"10:00","end_time":"18:00","items":[]}`))
		rec := httptest.NewRecorder()
		HandleCreateReservation(svc)(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("error sentinels map to status codes", func(t *testing.T) {
		cases := []struct {
			err  error
			want int
		}{
			{domain.ErrClientNotFound, http.StatusNotFound},
			{domain.ErrItemNotFound, http.StatusNotFound},
			{domain.ErrDateBlocked, http.StatusConflict},
			{domain.ErrStockConflict, http.StatusConflict},
			{domain.ErrItemsRequired, http.StatusBadRequest},
			{context.DeadlineExceeded, http.StatusInternalServerError},
		}
		for _, tc := range cases {
			svc := &fakeReservationService{err: tc.err}
			req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
			rec := httptest.NewRecorder()
			HandleCreateReservation(svc)(rec, req)
			assert.Equalf(t, tc.want, rec.Code, "error %v", tc.err)
		}
	})
}
