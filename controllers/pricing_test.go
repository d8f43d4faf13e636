package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pricingTestRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/pricing/preview", PricingPreview)
	return r
}

func TestPricingPreviewEndpoint(t *testing.T) {
	t.Run("prices a selection", func(t *testing.T) {
		mock := setupMockDB(t)
		router := pricingTestRouter()

		mock.ExpectQuery(`SELECT \* FROM "services"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "duration"}).
				AddRow("service-1", "Premium Wash", 350.0, 90))
		mock.ExpectQuery(`SELECT \* FROM "service_extras"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "service_id", "name", "price"}).
				AddRow("extra-1", "service-1", "Interior Detail", 75.0))

		body := `{"serviceId": "service-1", "vehicleType": "SUV", "extras": ["extra-1"]}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/pricing/preview", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Pricing struct {
				BasePrice         float64 `json:"basePrice"`
				ExtrasPrice       float64 `json:"extrasPrice"`
				VehicleMultiplier float64 `json:"vehicleMultiplier"`
				Subtotal          float64 `json:"subtotal"`
				VAT               float64 `json:"vat"`
				Total             float64 `json:"total"`
				Currency          string  `json:"currency"`
			} `json:"pricing"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.True(t, resp.Success)
		assert.Equal(t, 350.0, resp.Pricing.BasePrice)
		assert.Equal(t, 1.3, resp.Pricing.VehicleMultiplier)
		assert.Equal(t, 75.0, resp.Pricing.ExtrasPrice)
		assert.Equal(t, 530.0, resp.Pricing.Subtotal)
		assert.Equal(t, 133.0, resp.Pricing.VAT)
		assert.Equal(t, 663.0, resp.Pricing.Total)
		assert.Equal(t, "DKK", resp.Pricing.Currency)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown service", func(t *testing.T) {
		mock := setupMockDB(t)
		router := pricingTestRouter()

		mock.ExpectQuery(`SELECT \* FROM "services"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		body := `{"serviceId": "service-missing"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/pricing/preview", strings.NewReader(body))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Service not found")
	})

	t.Run("missing service id", func(t *testing.T) {
		setupMockDB(t)
		router := pricingTestRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/pricing/preview", strings.NewReader(`{}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
