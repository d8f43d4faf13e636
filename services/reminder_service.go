// services/reminder_service.go
package services

import (
	"fmt"
	"os"
	"time"

	"cleanfoss-backend/models"
	"cleanfoss-backend/utils"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Every day at 8 AM, remind customers about tomorrow's bookings
	c.AddFunc("0 8 * * *", func() {
		s.SendDailyReminders()
	})

	c.Start()
	log.Info("Reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Info("Starting daily reminder processing...")

	bookings, err := s.upcomingBookings()
	if err != nil {
		log.Errorf("Failed to fetch upcoming bookings: %v", err)
		return
	}

	for i := range bookings {
		s.sendReminder(&bookings[i])
	}

	log.Infof("Daily reminder processing completed, %d bookings", len(bookings))
}

// upcomingBookings returns tomorrow's confirmed bookings with their
// customers preloaded.
func (s *ReminderService) upcomingBookings() ([]models.Booking, error) {
	start := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))
	end := start.AddDate(0, 0, 1)

	var bookings []models.Booking
	err := s.db.Preload("Customer").Preload("Location").
		Where("status = ? AND scheduled_at >= ? AND scheduled_at < ?",
			models.BookingConfirmed, start, end).
		Find(&bookings).Error
	return bookings, err
}

// RenderReminder builds the SMS body for a booking reminder.
func RenderReminder(name string, scheduledAt time.Time, address string) string {
	msg := fmt.Sprintf("Hi %s, a reminder about your car wash tomorrow at %s.",
		name, scheduledAt.Format("15:04"))
	if address != "" {
		msg += " Location: " + address + "."
	}
	return msg
}

func (s *ReminderService) sendReminder(booking *models.Booking) {
	if booking.Customer == nil || booking.Customer.Phone == "" {
		return
	}

	address := ""
	if booking.Location != nil {
		address = booking.Location.Address
	}
	message := RenderReminder(booking.Customer.Name, booking.ScheduledAt, address)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(booking.Customer.Phone)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Errorf("Failed to send reminder to %s: %v", booking.Customer.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Infof("Reminder sent to %s, SID: %s", booking.Customer.Phone, *resp.Sid)
	}

	entry := models.NotificationLog{
		CompanyID:  booking.CompanyID,
		CustomerID: booking.CustomerID,
		BookingID:  booking.ID,
		Type:       "reminder",
		Message:    message,
		Status:     status,
		ErrorMsg:   errorMsg,
		Channel:    "sms",
		SentAt:     time.Now(),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Errorf("Failed to log reminder for booking %s: %v", booking.ID, err)
	}
}
