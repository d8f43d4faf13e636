// services/intake.go
//
// Booking submissions arrive in one of two client shapes: the "enhanced"
// wizard payload (nested customerInfo/vehicleInfo/pricing) and the older
// "wizard" payload (flat customer/location/totalPrice). Detection is a pure
// classification step over the top-level keys; each shape is then validated
// as a whole before anything touches the database.
package services

import (
	"encoding/json"
	"errors"
	"time"

	"cleanfoss-backend/utils"

	"github.com/google/uuid"
)

type BookingFormat string

const (
	FormatEnhanced BookingFormat = "enhanced"
	FormatWizard   BookingFormat = "wizard"
)

var ErrUnknownFormat = errors.New("unrecognized booking format")

// DetectFormat classifies a raw submission by the presence of its
// discriminating top-level fields. No mutation, no I/O.
func DetectFormat(raw map[string]json.RawMessage) (BookingFormat, error) {
	if hasKeys(raw, "customerInfo", "vehicleInfo", "pricing", "selectedDateTime") {
		return FormatEnhanced, nil
	}
	if hasKeys(raw, "customer", "location", "scheduledAt", "totalPrice") {
		return FormatWizard, nil
	}
	return "", ErrUnknownFormat
}

func hasKeys(raw map[string]json.RawMessage, keys ...string) bool {
	for _, k := range keys {
		if _, ok := raw[k]; !ok {
			return false
		}
	}
	return true
}

type ContactInfo struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

type AddressInfo struct {
	Street     string `json:"street" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	City       string `json:"city" validate:"required"`
}

type VehicleInfo struct {
	Make         string `json:"make" validate:"required"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Color        string `json:"color"`
	LicensePlate string `json:"licensePlate"`
}

type enhancedCustomerInfo struct {
	Name    string      `json:"name" validate:"required"`
	Email   string      `json:"email" validate:"required,email"`
	Phone   string      `json:"phone" validate:"required"`
	Address AddressInfo `json:"address" validate:"required"`
}

type PricingLine struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type EnhancedPricing struct {
	LineItems []PricingLine `json:"lineItems"`
	Subtotal  float64       `json:"subtotal"`
	Discount  float64       `json:"discount"`
	Total     float64       `json:"total"`
	VAT       float64       `json:"vat"`
}

// EnhancedRequest is the booking-wizard submission shape.
type EnhancedRequest struct {
	CustomerInfo     enhancedCustomerInfo `json:"customerInfo" validate:"required"`
	ServiceID        string               `json:"serviceId" validate:"required"`
	VehicleInfo      VehicleInfo          `json:"vehicleInfo" validate:"required"`
	VehicleType      string               `json:"vehicleType"`
	SelectedDateTime time.Time            `json:"selectedDateTime" validate:"required"`
	SelectedExtras   []string             `json:"selectedExtras"`
	Pricing          EnhancedPricing      `json:"pricing"`
	SpecialRequests  string               `json:"specialRequests"`
}

type wizardLocation struct {
	Name       string `json:"name"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// WizardRequest is the flat submission shape used by older clients.
type WizardRequest struct {
	ServiceID   string         `json:"serviceId" validate:"required"`
	Extras      []string       `json:"extras"`
	VehicleID   string         `json:"vehicleId"`
	ScheduledAt time.Time      `json:"scheduledAt" validate:"required"`
	Duration    int            `json:"duration" validate:"min=0"`
	Customer    ContactInfo    `json:"customer" validate:"required"`
	Location    wizardLocation `json:"location" validate:"required"`
	TotalPrice  float64        `json:"totalPrice" validate:"min=0"`
	Notes       string         `json:"notes"`
	CompanyID   string         `json:"companyId"`
}

// BookingDraft is the normalized submission both shapes converge to; the
// persistence writer only ever sees drafts.
type BookingDraft struct {
	Format      BookingFormat
	Contact     ContactInfo
	Address     wizardLocation
	ServiceID   string
	ExtraIDs    []string
	VehicleInfo *VehicleInfo
	VehicleID   *uuid.UUID
	VehicleType string
	ScheduledAt time.Time
	Duration    int
	// Supplied total (wizard shape). Nil means the pricing composer
	// decides.
	TotalPrice *float64
	Notes      string
	CompanyID  string
}

// ParseBookingRequest detects the submission shape, validates it and
// normalizes it into a BookingDraft. Validation violations are aggregated;
// a non-nil error means the payload shape itself was unusable.
func ParseBookingRequest(body []byte) (*BookingDraft, []utils.FieldError, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, nil, ErrUnknownFormat
	}

	format, err := DetectFormat(raw)
	if err != nil {
		return nil, nil, err
	}

	switch format {
	case FormatEnhanced:
		var req EnhancedRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, nil, ErrUnknownFormat
		}
		if errs := utils.ValidateStruct(&req); len(errs) > 0 {
			return nil, errs, nil
		}
		return draftFromEnhanced(&req), nil, nil
	default:
		var req WizardRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, nil, ErrUnknownFormat
		}
		if errs := utils.ValidateStruct(&req); len(errs) > 0 {
			return nil, errs, nil
		}
		return draftFromWizard(&req)
	}
}

func draftFromEnhanced(req *EnhancedRequest) *BookingDraft {
	vi := req.VehicleInfo
	return &BookingDraft{
		Format: FormatEnhanced,
		Contact: ContactInfo{
			Name:  req.CustomerInfo.Name,
			Email: req.CustomerInfo.Email,
			Phone: req.CustomerInfo.Phone,
		},
		Address: wizardLocation{
			Address:    req.CustomerInfo.Address.Street,
			City:       req.CustomerInfo.Address.City,
			PostalCode: req.CustomerInfo.Address.PostalCode,
		},
		ServiceID:   req.ServiceID,
		ExtraIDs:    req.SelectedExtras,
		VehicleInfo: &vi,
		VehicleType: req.VehicleType,
		ScheduledAt: req.SelectedDateTime,
		Notes:       req.SpecialRequests,
	}
}

func draftFromWizard(req *WizardRequest) (*BookingDraft, []utils.FieldError, error) {
	draft := &BookingDraft{
		Format:      FormatWizard,
		Contact:     req.Customer,
		Address:     req.Location,
		ServiceID:   req.ServiceID,
		ExtraIDs:    req.Extras,
		ScheduledAt: req.ScheduledAt,
		Duration:    req.Duration,
		TotalPrice:  &req.TotalPrice,
		Notes:       req.Notes,
		CompanyID:   req.CompanyID,
	}
	if req.VehicleID != "" {
		id, err := uuid.Parse(req.VehicleID)
		if err != nil {
			return nil, []utils.FieldError{{Field: "vehicleId", Message: "must be a valid UUID"}}, nil
		}
		draft.VehicleID = &id
	}
	return draft, nil, nil
}
