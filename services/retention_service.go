// services/retention_service.go
package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"safiwash-backend/models"
	"safiwash-backend/utils"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// Customers with no visit for this many days are considered at risk of
// churning and get a re-engagement SMS.
const AtRiskDays = 14

const defaultRetentionMessage = "Hi [CustomerName], we miss you and your [CarModel] at SafiWash! Come back this week for a sparkling clean ride."

type RetentionService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewRetentionService(db *gorm.DB) *RetentionService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &RetentionService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *RetentionService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	if _, err := c.AddFunc("0 9 * * *", s.SendRetentionMessages); err != nil {
		log.Errorf("Failed to schedule retention job: %v", err)
		return
	}

	c.Start()
	log.Info("Retention scheduler started")
}

// SendRetentionMessages texts every at-risk customer that has not already
// been contacted since their last visit.
func (s *RetentionService) SendRetentionMessages() {
	log.Info("Starting retention message processing...")

	customers, err := s.AtRiskCustomers()
	if err != nil {
		log.Errorf("Failed to fetch at-risk customers: %v", err)
		return
	}

	for _, customer := range customers {
		if s.alreadyContacted(customer) {
			continue
		}
		s.sendMessage(customer)
	}

	log.Info("Retention message processing completed")
}

// AtRiskCustomers returns customers whose last visit is more than AtRiskDays
// ago. Customers who have never visited are left alone.
func (s *RetentionService) AtRiskCustomers() ([]models.Customer, error) {
	cutoff := utils.BeginningOfDay(time.Now()).AddDate(0, 0, -AtRiskDays)

	var customers []models.Customer
	err := s.db.Where("last_visit IS NOT NULL AND last_visit < ?", cutoff).
		Order("last_visit ASC").
		Find(&customers).Error
	return customers, err
}

func (s *RetentionService) alreadyContacted(customer models.Customer) bool {
	if customer.LastVisit == nil {
		return true
	}
	var count int64
	if err := s.db.Model(&models.RetentionLog{}).
		Where("customer_id = ? AND status = ? AND sent_at > ?", customer.ID, "sent", *customer.LastVisit).
		Count(&count).Error; err != nil {
		log.Errorf("Customer %s: failed to check retention log: %v", customer.ID, err)
		return true
	}
	return count > 0
}

func (s *RetentionService) sendMessage(customer models.Customer) {
	message := os.Getenv("RETENTION_MESSAGE")
	if message == "" {
		message = defaultRetentionMessage
	}
	message = strings.ReplaceAll(message, "[CustomerName]", customer.Name)
	message = strings.ReplaceAll(message, "[CarModel]", customer.CarModel)

	daysInactive := 0
	if customer.LastVisit != nil {
		daysInactive = utils.DaysBetween(*customer.LastVisit, time.Now())
	}

	entry := models.RetentionLog{
		CustomerID:   customer.ID,
		Message:      message,
		Channel:      "sms",
		DaysInactive: daysInactive,
		SentAt:       time.Now(),
	}

	from := os.Getenv("TWILIO_FROM_NUMBER")
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(customer.Phone)
	params.SetFrom(from)
	params.SetBody(message)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Errorf("Customer %s: failed to send retention SMS: %v", customer.ID, err)
		entry.Status = "failed"
		entry.ErrorMessage = err.Error()
	} else {
		entry.Status = "sent"
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Errorf("Customer %s: failed to record retention log: %v", customer.ID, err)
	}
}

// EstimatedLostRevenue prices the at-risk list at the average active service
// price, for the dashboard.
func (s *RetentionService) EstimatedLostRevenue(atRiskCount int) float64 {
	var avgPrice float64
	if err := s.db.Model(&models.Service{}).
		Where("is_active = ?", true).
		Select("COALESCE(AVG(price), 0)").
		Scan(&avgPrice).Error; err != nil || avgPrice == 0 {
		avgPrice = 350
	}
	return float64(atRiskCount) * avgPrice
}

// String label for how long a customer has been gone, used in the dashboard.
func InactiveLabel(lastVisit *time.Time) string {
	if lastVisit == nil {
		return "never visited"
	}
	days := utils.DaysBetween(*lastVisit, time.Now())
	switch days {
	case 0:
		return "today"
	case 1:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}
