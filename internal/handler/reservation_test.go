package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-agency/backend/internal/domain"
	"github.com/pkordes/travel-agency/backend/internal/handler"
	"github.com/pkordes/travel-agency/backend/internal/service"
)

func TestBookReservation(t *testing.T) {
	resv := reservationFixture(t)
	customerID := resv.Customer().ID
	tripID := resv.Trip().ID

	resvs := &mockReservationServicer{
		book: func(_ context.Context, cID, tID uuid.UUID, partySize int) (*domain.Reservation, error) {
			assert.Equal(t, customerID, cID)
			assert.Equal(t, tripID, tID)
			assert.Equal(t, 2, partySize)
			return resv, nil
		},
	}
	h := newHTTPHandler(nil, nil, nil, resvs)

	body := jsonBody(t, map[string]any{
		"customerId": customerID,
		"tripId":     tripID,
		"partySize":  2,
	})
	rec := doRequest(t, h, http.MethodPost, "/api/reservations", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[handler.ReservationResponse](t, rec)
	assert.Equal(t, resv.Number, resp.Number)
	assert.Equal(t, "PENDING", resp.Status)
	// 1200.00 base * 1.10 cultural * 2 people
	assert.Equal(t, "2640.00", resp.TotalPrice)
	require.NotNil(t, resp.Customer)
	assert.Equal(t, "Maria Garcia", resp.Customer.DisplayName)
	require.NotNil(t, resp.Trip)
	assert.Equal(t, 18, resp.Trip.AvailableSpots)
	assert.Nil(t, resp.Payment)
}

func TestBookReservationNotEnoughSpots(t *testing.T) {
	resvs := &mockReservationServicer{
		book: func(_ context.Context, _, _ uuid.UUID, _ int) (*domain.Reservation, error) {
			return nil, fmt.Errorf("service.ReservationService.Book: %w: only 1 spots left on trip CUL-PAR-001",
				domain.ErrInvalidArgument)
		},
	}
	h := newHTTPHandler(nil, nil, nil, resvs)

	body := jsonBody(t, map[string]any{
		"customerId": uuid.New(), "tripId": uuid.New(), "partySize": 2,
	})
	rec := doRequest(t, h, http.MethodPost, "/api/reservations", body)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeBody[handler.ErrorResponse](t, rec)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "only 1 spots left on trip CUL-PAR-001", resp.Error.Message)
}

func TestConfirmReservation(t *testing.T) {
	resv := reservationFixture(t)
	require.NoError(t, resv.Confirm())

	resvs := &mockReservationServicer{
		confirm: func(_ context.Context, number string) (*domain.Reservation, error) {
			assert.Equal(t, resv.Number, number)
			return resv, nil
		},
	}
	h := newHTTPHandler(nil, nil, nil, resvs)

	rec := doRequest(t, h, http.MethodPost, "/api/reservations/"+resv.Number+"/confirm", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CONFIRMED", decodeBody[handler.ReservationResponse](t, rec).Status)
}

func TestConfirmReservationConflict(t *testing.T) {
	resvs := &mockReservationServicer{
		confirm: func(_ context.Context, _ string) (*domain.Reservation, error) {
			return nil, fmt.Errorf("service.ReservationService.Confirm: %w: can only confirm a pending reservation, status is CANCELLED",
				domain.ErrInvalidState)
		},
	}
	h := newHTTPHandler(nil, nil, nil, resvs)

	rec := doRequest(t, h, http.MethodPost, "/api/reservations/RES-1/confirm", nil)

	require.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeBody[handler.ErrorResponse](t, rec)
	assert.Equal(t, "invalid_state", resp.Error.Code)
}

func TestRecordPayment(t *testing.T) {
	resv := reservationFixture(t)
	paidAt := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	resvs := &mockReservationServicer{
		recordPayment: func(_ context.Context, number string, input service.PaymentInput) (*domain.Reservation, error) {
			assert.Equal(t, resv.Number, number)
			assert.Equal(t, resv.TotalPrice(), input.Amount)
			assert.Equal(t, domain.PaymentBankTransfer, input.Method)
			assert.Equal(t, paidAt, input.PaymentDate)

			payment, err := domain.NewPayment(input.Amount, input.PaymentDate, input.Method, input.TransactionReference)
			require.NoError(t, err)
			require.NoError(t, resv.RecordPayment(payment))
			return resv, nil
		},
	}
	h := newHTTPHandler(nil, nil, nil, resvs)

	body := jsonBody(t, map[string]any{
		"amount":               resv.TotalPrice().String(),
		"method":               "BANK_TRANSFER",
		"transactionReference": "TXN-2026-000123",
		"paymentDate":          paidAt,
	})
	rec := doRequest(t, h, http.MethodPost, "/api/reservations/"+resv.Number+"/payment", body)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[handler.ReservationResponse](t, rec)
	assert.Equal(t, "CONFIRMED", resp.Status)
	require.NotNil(t, resp.Payment)
	assert.Equal(t, "2640.00", resp.Payment.Amount)
	assert.Equal(t, "BANK_TRANSFER", resp.Payment.Method)
}

func TestGetReservationNotFound(t *testing.T) {
	resvs := &mockReservationServicer{
		getByNumber: func(_ context.Context, _ string) (*domain.Reservation, error) {
			return nil, fmt.Errorf("service.ReservationService.GetByNumber: %w: reservation", domain.ErrNotFound)
		},
	}
	h := newHTTPHandler(nil, nil, nil, resvs)

	rec := doRequest(t, h, http.MethodGet, "/api/reservations/RES-unknown", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCustomerReservations(t *testing.T) {
	resv := reservationFixture(t)
	customerID := resv.Customer().ID

	resvs := &mockReservationServicer{
		listByCustomer: func(_ context.Context, id uuid.UUID) ([]*domain.Reservation, error) {
			assert.Equal(t, customerID, id)
			return []*domain.Reservation{resv}, nil
		},
	}
	h := newHTTPHandler(nil, nil, nil, resvs)

	rec := doRequest(t, h, http.MethodGet, "/api/customers/"+customerID.String()+"/reservations", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody[[]handler.ReservationResponse](t, rec)
	require.Len(t, data, 1)
	assert.Equal(t, resv.Number, data[0].Number)
}
