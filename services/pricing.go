// services/pricing.go
package services

import (
	"errors"
	"math"

	"cleanfoss-backend/config"
	"cleanfoss-backend/models"

	"gorm.io/gorm"
)

var ErrServiceNotFound = errors.New("service not found")

// vehicleMultipliers scales the base price per vehicle category. Unknown
// categories fall back to 1.0.
var vehicleMultipliers = map[string]float64{
	"CAR": 1.0,
	"SUV": 1.3,
	"VAN": 1.5,
}

const DefaultVehicleType = "CAR"

// Quote is the priced breakdown for one service selection. The same inputs
// always produce the same quote; clients reconcile against it.
type Quote struct {
	BasePrice         float64 `json:"basePrice"`
	ExtrasPrice       float64 `json:"extrasPrice"`
	VehicleMultiplier float64 `json:"vehicleMultiplier"`
	Subtotal          float64 `json:"subtotal"`
	VAT               float64 `json:"vat"`
	Total             float64 `json:"total"`
	Currency          string  `json:"currency"`
}

// roundKr rounds to the nearest whole krone, halves away from zero.
func roundKr(v float64) float64 {
	return math.Round(v)
}

// VehicleMultiplier returns the category multiplier, 1.0 for unrecognized
// categories.
func VehicleMultiplier(vehicleType string) float64 {
	if m, ok := vehicleMultipliers[vehicleType]; ok {
		return m
	}
	return 1.0
}

// ComputeQuote applies the multiplier to the base price, adds extras, and
// puts VAT on top. Pure arithmetic; catalog lookups happen in QuoteService.
func ComputeQuote(basePrice float64, vehicleType string, extraPrices []float64, vatRate float64) Quote {
	multiplier := VehicleMultiplier(vehicleType)
	adjusted := roundKr(basePrice * multiplier)

	var extras float64
	for _, p := range extraPrices {
		extras += p
	}

	subtotal := adjusted + extras
	vat := roundKr(subtotal * vatRate)

	return Quote{
		BasePrice:         basePrice,
		ExtrasPrice:       extras,
		VehicleMultiplier: multiplier,
		Subtotal:          subtotal,
		VAT:               vat,
		Total:             subtotal + vat,
	}
}

// QuoteService prices a service selection from the catalog. Unknown extra
// ids contribute zero rather than erroring; an unknown service id is a
// hard failure.
func QuoteService(db *gorm.DB, serviceID, vehicleType string, extraIDs []string) (*Quote, *models.Service, []models.ServiceExtra, error) {
	var service models.Service
	if err := db.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrServiceNotFound
		}
		return nil, nil, nil, err
	}

	var extras []models.ServiceExtra
	if len(extraIDs) > 0 {
		if err := db.Where("service_id = ? AND id IN ?", serviceID, extraIDs).
			Find(&extras).Error; err != nil {
			return nil, nil, nil, err
		}
	}

	prices := make([]float64, 0, len(extras))
	for _, e := range extras {
		prices = append(prices, e.Price)
	}

	cfg := config.App()
	quote := ComputeQuote(service.Price, vehicleType, prices, cfg.VATRate)
	quote.Currency = cfg.Currency
	return &quote, &service, extras, nil
}
