package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v82"

	"cleanfoss-backend/config"
	"cleanfoss-backend/services"
)

type stubIntentClient struct {
	intent *stripe.PaymentIntent
	err    error
}

func (s *stubIntentClient) CreateIntent(amountOre int64, currency, email, description string, metadata map[string]string) (*stripe.PaymentIntent, error) {
	return s.intent, s.err
}

func (s *stubIntentClient) GetIntent(id string) (*stripe.PaymentIntent, error) {
	return s.intent, s.err
}

func paymentTestRouter(t *testing.T, client services.IntentClient) *gin.Engine {
	prev := Payments
	Payments = services.NewPaymentService(config.DB, client)
	t.Cleanup(func() { Payments = prev })

	r := gin.New()
	r.POST("/api/payments/create-intent", CreatePaymentIntent)
	r.POST("/api/payments/confirm", ConfirmPayment)
	return r
}

func TestCreatePaymentIntentEndpoint(t *testing.T) {
	t.Run("returns the client secret", func(t *testing.T) {
		setupMockDB(t)
		router := paymentTestRouter(t, &stubIntentClient{intent: &stripe.PaymentIntent{
			ID:           "pi_123",
			ClientSecret: "pi_123_secret_abc",
		}})

		body := `{"amount": 299, "customerEmail": "mette@example.com", "customerName": "Mette Hansen"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/create-intent", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "pi_123_secret_abc")
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		setupMockDB(t)
		router := paymentTestRouter(t, &stubIntentClient{})

		body := `{"amount": 0, "customerEmail": "mette@example.com", "customerName": "Mette"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/create-intent", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestConfirmPaymentEndpoint(t *testing.T) {
	t.Run("unsettled intent is rejected without touching the booking", func(t *testing.T) {
		mock := setupMockDB(t)
		router := paymentTestRouter(t, &stubIntentClient{intent: &stripe.PaymentIntent{
			ID:     "pi_123",
			Status: stripe.PaymentIntentStatusRequiresPaymentMethod,
		}})

		body := `{"paymentIntentId": "pi_123", "bookingId": "` + uuid.NewString() + `"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/confirm", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("settled intent confirms the booking", func(t *testing.T) {
		mock := setupMockDB(t)
		router := paymentTestRouter(t, &stubIntentClient{intent: &stripe.PaymentIntent{
			ID:       "pi_123",
			Status:   stripe.PaymentIntentStatusSucceeded,
			Amount:   29900,
			Currency: stripe.CurrencyDKK,
		}})

		bookingID := uuid.New()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "status", "total_price"}).
				AddRow(bookingID, "PENDING", 299.0))
		mock.ExpectExec(`UPDATE "bookings"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "payments"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		body := `{"paymentIntentId": "pi_123", "bookingId": "` + bookingID.String() + `"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/confirm", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"CONFIRMED"`)
		assert.Contains(t, w.Body.String(), "pi_123")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid booking id format", func(t *testing.T) {
		setupMockDB(t)
		router := paymentTestRouter(t, &stubIntentClient{})

		body := `{"paymentIntentId": "pi_123", "bookingId": "nope"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/confirm", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already completed booking conflicts", func(t *testing.T) {
		mock := setupMockDB(t)
		router := paymentTestRouter(t, &stubIntentClient{intent: &stripe.PaymentIntent{
			ID:     "pi_123",
			Status: stripe.PaymentIntentStatusSucceeded,
		}})

		bookingID := uuid.New()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
				AddRow(bookingID, "COMPLETED"))
		mock.ExpectRollback()

		body := `{"paymentIntentId": "pi_123", "bookingId": "` + bookingID.String() + `"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/confirm", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
