// services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"cleanfoss-backend/config"
	"cleanfoss-backend/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrPaymentNotSucceeded = errors.New("payment not succeeded")
	ErrBookingNotPayable   = errors.New("booking is not awaiting payment")
)

// IntentClient is the slice of the processor API the bridge needs. The
// concrete client talks to Stripe; tests substitute their own.
type IntentClient interface {
	CreateIntent(amountOre int64, currency, email, description string, metadata map[string]string) (*stripe.PaymentIntent, error)
	GetIntent(id string) (*stripe.PaymentIntent, error)
}

type stripeClient struct{}

// NewStripeClient configures the Stripe SDK from the app config.
func NewStripeClient() IntentClient {
	stripe.Key = config.App().StripeSecretKey
	return &stripeClient{}
}

func (stripeClient) CreateIntent(amountOre int64, currency, email, description string, metadata map[string]string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(amountOre),
		Currency:     stripe.String(strings.ToLower(currency)),
		ReceiptEmail: stripe.String(email),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if description != "" {
		params.Description = stripe.String(description)
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	return paymentintent.New(params)
}

func (stripeClient) GetIntent(id string) (*stripe.PaymentIntent, error) {
	return paymentintent.Get(id, nil)
}

type PaymentService struct {
	db     *gorm.DB
	client IntentClient
}

func NewPaymentService(db *gorm.DB, client IntentClient) *PaymentService {
	return &PaymentService{db: db, client: client}
}

// CreateIntent asks the processor to mint a payment intent and returns the
// client-usable secret. No booking state changes here.
func (s *PaymentService) CreateIntent(amount float64, currency, email, name, description, bookingID string) (clientSecret, intentID string, err error) {
	if currency == "" {
		currency = config.App().Currency
	}
	metadata := map[string]string{"customerName": name}
	if bookingID != "" {
		metadata["bookingId"] = bookingID
	}

	amountOre := int64(math.Round(amount * 100))
	pi, err := s.client.CreateIntent(amountOre, currency, email, description, metadata)
	if err != nil {
		return "", "", err
	}
	return pi.ClientSecret, pi.ID, nil
}

// ConfirmPayment reconciles a client-reported success against the
// processor before touching the booking. The processor's status is
// authoritative; a client-reported success is never trusted on its own.
//
// On success the PENDING->CONFIRMED transition and the payment row commit
// in one transaction. Re-confirming an already confirmed booking with the
// same intent id is a no-op returning the existing payment.
func (s *PaymentService) ConfirmPayment(bookingID uuid.UUID, intentID string) (*models.Booking, *models.Payment, error) {
	pi, err := s.client.GetIntent(intentID)
	if err != nil {
		return nil, nil, fmt.Errorf("payment lookup failed: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, nil, fmt.Errorf("%w: processor status %q", ErrPaymentNotSucceeded, pi.Status)
	}

	var booking models.Booking
	var payment models.Payment

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if booking.Status == models.BookingConfirmed {
			if err := tx.First(&payment, "booking_id = ? AND provider_ref = ?", bookingID, intentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrBookingNotPayable
				}
				return err
			}
			return nil
		}

		if !models.CanTransition(booking.Status, models.BookingConfirmed) {
			return ErrBookingNotPayable
		}

		if err := tx.Model(&booking).Update("status", models.BookingConfirmed).Error; err != nil {
			return err
		}
		booking.Status = models.BookingConfirmed

		payment = models.Payment{
			BookingID:   booking.ID,
			Amount:      float64(pi.Amount) / 100,
			Currency:    strings.ToUpper(string(pi.Currency)),
			ProviderRef: pi.ID,
			Status:      models.PaymentCompleted,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &booking, &payment, nil
}
