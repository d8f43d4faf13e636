package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanfoss-backend/models"
)

func TestResolveTenant(t *testing.T) {
	authCo := "company-7"
	empty := ""

	assert.Equal(t, "company-7", ResolveTenant(&authCo, "payload-co"))
	assert.Equal(t, "payload-co", ResolveTenant(nil, "payload-co"))
	assert.Equal(t, "payload-co", ResolveTenant(&empty, "payload-co"))
	assert.Equal(t, "default-company", ResolveTenant(nil, ""))
}

func wizardDraft() *BookingDraft {
	total := 299.0
	return &BookingDraft{
		Format: FormatWizard,
		Contact: ContactInfo{
			Name:  "Mette Hansen",
			Email: "mette@example.com",
			Phone: "+4520123456",
		},
		Address: wizardLocation{
			Address:    "Nørregade 12",
			City:       "København",
			PostalCode: "1165",
		},
		ServiceID:   "service-1",
		ExtraIDs:    []string{"extra-1"},
		ScheduledAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		Duration:    90,
		TotalPrice:  &total,
	}
}

func TestRebalanceLines(t *testing.T) {
	t.Run("scales lines to the net amount", func(t *testing.T) {
		lines := []models.BookingService{
			{Name: "Premium Wash", UnitPrice: 350, Total: 350},
			{Name: "Interior Detail", UnitPrice: 75, Total: 75},
		}
		rebalanceLines(lines, 239)

		assert.Equal(t, 197.0, lines[0].Total)
		assert.Equal(t, 42.0, lines[1].Total)
	})

	t.Run("rounding residue lands on the base line", func(t *testing.T) {
		lines := []models.BookingService{
			{Total: 100}, {Total: 100}, {Total: 100},
		}
		rebalanceLines(lines, 100)

		var sum float64
		for _, l := range lines {
			sum += l.Total
		}
		assert.Equal(t, 100.0, sum)
		assert.Equal(t, 34.0, lines[0].Total)
	})

	t.Run("zero-priced lines take the whole net on the base line", func(t *testing.T) {
		lines := []models.BookingService{{Total: 0}, {Total: 0}}
		rebalanceLines(lines, 120)

		assert.Equal(t, 120.0, lines[0].Total)
		assert.Equal(t, 0.0, lines[1].Total)
	})
}

func TestWriteBooking(t *testing.T) {
	t.Run("writes guest booking atomically", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectExec(`INSERT INTO "users"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "locations"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT \* FROM "services"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "name", "price", "duration"}).
				AddRow("service-1", "default-company", "Premium Wash", 350.0, 90))
		mock.ExpectQuery(`SELECT \* FROM "service_extras"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "service_id", "name", "price"}).
				AddRow("extra-1", "service-1", "Interior Detail", 75.0))
		mock.ExpectExec(`INSERT INTO "bookings"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "booking_services"`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		booking, err := WriteBooking(db, nil, nil, wizardDraft())
		require.NoError(t, err)

		assert.Equal(t, models.BookingPending, booking.Status)
		assert.Equal(t, "default-company", booking.CompanyID)
		// Wizard totals are stored verbatim with the VAT share backed out.
		assert.Equal(t, 299.0, booking.TotalPrice)
		assert.Equal(t, 60.0, booking.VAT)
		assert.Equal(t, 90, booking.Duration)
		assert.Equal(t, "wizard", booking.SourceFormat)
		require.Len(t, booking.Services, 2)
		assert.Equal(t, "Premium Wash", booking.Services[0].Name)
		assert.Equal(t, "Interior Detail", booking.Services[1].Name)
		// Line rows are rescaled to the charged amount: they must sum to
		// the total net of VAT.
		assert.Equal(t, 197.0, booking.Services[0].Total)
		assert.Equal(t, 42.0, booking.Services[1].Total)
		var lineSum float64
		for _, line := range booking.Services {
			lineSum += line.Total
		}
		assert.Equal(t, booking.TotalPrice, lineSum+booking.VAT)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the booking insert fails", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectExec(`INSERT INTO "users"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "locations"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT \* FROM "services"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "duration"}).
				AddRow("service-1", "Premium Wash", 350.0, 90))
		mock.ExpectQuery(`SELECT \* FROM "service_extras"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectExec(`INSERT INTO "bookings"`).
			WillReturnError(errors.New("deadlock detected"))
		mock.ExpectRollback()

		_, err := WriteBooking(db, nil, nil, wizardDraft())
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects unknown explicit company", func(t *testing.T) {
		db, mock := setupMockDB(t)

		draft := wizardDraft()
		draft.CompanyID = "ghost-co"

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "companies"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := WriteBooking(db, nil, nil, draft)
		assert.ErrorIs(t, err, ErrCompanyNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects vehicle reference owned by nobody", func(t *testing.T) {
		db, mock := setupMockDB(t)

		draft := wizardDraft()
		vehicleID := uuid.New()
		draft.VehicleID = &vehicleID

		customerID := uuid.New()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "phone", "role"}).
				AddRow(customerID, "mette@example.com", "Mette Hansen", "+4520123456", "customer"))
		mock.ExpectExec(`INSERT INTO "locations"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT \* FROM "vehicles"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := WriteBooking(db, nil, nil, draft)
		assert.ErrorIs(t, err, ErrVehicleNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("enhanced draft registers the described vehicle", func(t *testing.T) {
		db, mock := setupMockDB(t)

		draft := &BookingDraft{
			Format: FormatEnhanced,
			Contact: ContactInfo{
				Name:  "Jonas Berg",
				Email: "jonas@example.com",
				Phone: "+4530303030",
			},
			Address: wizardLocation{
				Address:    "Vestergade 4",
				City:       "Aarhus",
				PostalCode: "8000",
			},
			ServiceID:   "service-1",
			VehicleInfo: &VehicleInfo{Make: "Volvo", Model: "XC60", Year: 2022},
			VehicleType: "SUV",
			ScheduledAt: time.Date(2026, 9, 2, 14, 30, 0, 0, time.UTC),
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectExec(`INSERT INTO "users"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "locations"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "vehicles"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT \* FROM "services"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "duration"}).
				AddRow("service-1", "Premium Wash", 350.0, 90))
		mock.ExpectExec(`INSERT INTO "bookings"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "booking_services"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		booking, err := WriteBooking(db, nil, nil, draft)
		require.NoError(t, err)

		require.NotNil(t, booking.VehicleID)
		// Server-side pricing: 350 * 1.3 = 455, VAT 114, total 569.
		assert.Equal(t, 569.0, booking.TotalPrice)
		assert.Equal(t, 114.0, booking.VAT)
		assert.Equal(t, "enhanced", booking.SourceFormat)
		var lineSum float64
		for _, line := range booking.Services {
			lineSum += line.Total
		}
		assert.Equal(t, booking.TotalPrice, lineSum+booking.VAT)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
