// services/notification_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"os"

	"queueflow-backend/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// NotificationService sends an SMS to the customer when their token is
// called to a counter. Delivery is best effort: a failed send is logged and
// never blocks the status transition.
type NotificationService struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_FROM_NUMBER")

	service := &NotificationService{db: db, from: from}
	if accountSid == "" || authToken == "" || from == "" {
		log.Println("Twilio credentials not configured, SMS notifications disabled")
		return service
	}

	service.client = twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})
	return service
}

// NotifyTokenCalled tells the customer their token is now being served.
func (s *NotificationService) NotifyTokenCalled(token models.Token) {
	if s.client == nil || token.CustomerPhone == "" {
		return
	}

	counterName := "the counter"
	if token.CounterID != nil {
		var counter models.Counter
		if err := s.db.First(&counter, "id = ?", token.CounterID).Error; err == nil {
			counterName = counter.Name
		}
	}

	body := fmt.Sprintf("Your token %s is now being served at %s. Please proceed.",
		token.TokenNumber, counterName)
	if err := s.send(token.CustomerPhone, body); err != nil {
		log.Printf("Failed to send SMS for token %s: %v", token.TokenNumber, err)
		return
	}
	log.Printf("SMS sent for token %s", token.TokenNumber)
}

func (s *NotificationService) send(to, body string) error {
	if s.client == nil {
		return errors.New("twilio client not configured")
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	_, err := s.client.Api.CreateMessage(params)
	return err
}
