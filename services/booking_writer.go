// services/booking_writer.go
package services

import (
	"errors"

	"cleanfoss-backend/config"
	"cleanfoss-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
)

// ResolveTenant picks the tenant every row of a booking is written under:
// the authenticated user's company, else the payload's explicit company,
// else the configured default.
func ResolveTenant(authCompanyID *string, payloadCompanyID string) string {
	if authCompanyID != nil && *authCompanyID != "" {
		return *authCompanyID
	}
	if payloadCompanyID != "" {
		return payloadCompanyID
	}
	return config.App().DefaultCompanyID
}

// rebalanceLines scales catalog-priced line rows so their totals sum to
// the net amount actually charged. Rounding residue lands on the first
// (base service) line.
func rebalanceLines(lines []models.BookingService, net float64) {
	if len(lines) == 0 {
		return
	}
	var sum float64
	for _, l := range lines {
		sum += l.Total
	}
	if sum == 0 {
		lines[0].UnitPrice = net
		lines[0].Total = net
		return
	}
	var allocated float64
	for i := range lines {
		scaled := roundKr(lines[i].Total * net / sum)
		lines[i].UnitPrice = scaled
		lines[i].Total = scaled
		allocated += scaled
	}
	lines[0].UnitPrice += net - allocated
	lines[0].Total += net - allocated
}

// WriteBooking persists a validated draft as one atomic unit: identity,
// location, vehicle, booking and its line rows all commit together or not
// at all.
func WriteBooking(db *gorm.DB, authUserID *uuid.UUID, authCompanyID *string, draft *BookingDraft) (*models.Booking, error) {
	var booking *models.Booking

	err := db.Transaction(func(tx *gorm.DB) error {
		companyID := ResolveTenant(authCompanyID, draft.CompanyID)
		if draft.CompanyID != "" {
			var company models.Company
			if err := tx.First(&company, "id = ?", draft.CompanyID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCompanyNotFound
				}
				return err
			}
		}

		customer, err := ResolveCustomer(tx, authUserID, draft.Contact)
		if err != nil {
			return err
		}

		country := draft.Address.Country
		if country == "" {
			country = "Denmark"
		}
		location := models.Location{
			CompanyID:  companyID,
			Name:       draft.Address.Name,
			Address:    draft.Address.Address,
			City:       draft.Address.City,
			PostalCode: draft.Address.PostalCode,
			Country:    country,
		}
		if err := tx.Create(&location).Error; err != nil {
			return err
		}

		var vehicleID *uuid.UUID
		switch {
		case draft.VehicleID != nil:
			var vehicle models.Vehicle
			if err := tx.First(&vehicle, "id = ? AND customer_id = ?", *draft.VehicleID, customer.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrVehicleNotFound
				}
				return err
			}
			vehicleID = &vehicle.ID
		case draft.VehicleInfo != nil:
			vehicle := models.Vehicle{
				CustomerID:   customer.ID,
				CompanyID:    companyID,
				Brand:        draft.VehicleInfo.Make,
				Model:        draft.VehicleInfo.Model,
				Year:         draft.VehicleInfo.Year,
				Color:        draft.VehicleInfo.Color,
				LicensePlate: draft.VehicleInfo.LicensePlate,
			}
			if err := tx.Create(&vehicle).Error; err != nil {
				return err
			}
			vehicleID = &vehicle.ID
		}

		quote, service, extras, err := QuoteService(tx, draft.ServiceID, draft.VehicleType, draft.ExtraIDs)
		if err != nil {
			return err
		}

		lines := []models.BookingService{{
			ServiceID: service.ID,
			Name:      service.Name,
			Quantity:  1,
			UnitPrice: quote.Subtotal - quote.ExtrasPrice,
			Total:     quote.Subtotal - quote.ExtrasPrice,
		}}
		for _, extra := range extras {
			lines = append(lines, models.BookingService{
				ServiceID: extra.ID,
				Name:      extra.Name,
				Quantity:  1,
				UnitPrice: extra.Price,
				Total:     extra.Price,
			})
		}

		total := quote.Total
		vat := quote.VAT
		if draft.TotalPrice != nil {
			// Wizard clients send the price they displayed; it is stored
			// verbatim, with the VAT share backed out of it. The line rows
			// are rescaled so they still sum to the net amount.
			total = *draft.TotalPrice
			vat = roundKr(total - total/(1+config.App().VATRate))
			rebalanceLines(lines, total-vat)
		}

		duration := draft.Duration
		if duration == 0 {
			duration = service.Duration
		}
		if duration == 0 {
			duration = config.App().DefaultBookingDuration
		}

		b := models.Booking{
			CompanyID:    companyID,
			CustomerID:   customer.ID,
			LocationID:   location.ID,
			VehicleID:    vehicleID,
			ScheduledAt:  draft.ScheduledAt,
			Duration:     duration,
			TotalPrice:   total,
			VAT:          vat,
			Notes:        draft.Notes,
			Status:       models.BookingPending,
			SourceFormat: string(draft.Format),
			Services:     lines,
		}
		if err := tx.Create(&b).Error; err != nil {
			return err
		}

		booking = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}
