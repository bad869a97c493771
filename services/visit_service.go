// services/visit_service.go
package services

import (
	"strings"
	"time"

	"safiwash-backend/models"
	"safiwash-backend/utils"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// VisitService owns the check-in accounting: it records visits, keeps the
// customer counters in step with the visit log, answers loyalty queries and
// computes the revenue reports.
type VisitService struct {
	db *gorm.DB
}

func NewVisitService(db *gorm.DB) *VisitService {
	return &VisitService{db: db}
}

// RecordVisitInput carries one check-in from the counter.
type RecordVisitInput struct {
	CustomerID      uuid.UUID
	ServiceID       uuid.UUID
	PaymentMethod   string
	IsLoyaltyReward bool
	// AmountOverride replaces the catalog price for a paid visit, e.g. a
	// negotiated discount. Ignored on reward visits.
	AmountOverride *float64
	VisitedAt      *time.Time
	Notes          string
}

// LoyaltyStatus is the customer's progress toward a free wash.
type LoyaltyStatus struct {
	Points    int     `json:"points"`
	Threshold int     `json:"threshold"`
	Eligible  bool    `json:"eligible"`
	Progress  float64 `json:"progress"`
}

type ServiceRevenue struct {
	ServiceID  uuid.UUID `json:"serviceId"`
	Name       string    `json:"name"`
	VisitCount int       `json:"visitCount"`
	Revenue    float64   `json:"revenue"`
}

type DailyRevenue struct {
	Date       time.Time `json:"date"`
	VisitCount int       `json:"visitCount"`
	Revenue    float64   `json:"revenue"`
}

type RevenueReport struct {
	Start        time.Time        `json:"start"`
	End          time.Time        `json:"end"`
	TotalRevenue float64          `json:"totalRevenue"`
	VisitCount   int              `json:"visitCount"`
	RewardCount  int              `json:"rewardCount"`
	ByService    []ServiceRevenue `json:"byService"`
	Daily        []DailyRevenue   `json:"daily"`
}

type TopCustomer struct {
	CustomerID  uuid.UUID `json:"customerId"`
	Name        string    `json:"name"`
	TotalVisits int       `json:"totalVisits"`
	TotalSpent  float64   `json:"totalSpent"`
}

// RecordVisit creates one visit row and updates the customer's counters in a
// single transaction. Either both land or neither does.
func (s *VisitService) RecordVisit(input RecordVisitInput) (*models.Visit, error) {
	if !models.ValidPaymentMethod(input.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}
	if input.AmountOverride != nil && *input.AmountOverride < 0 {
		return nil, ErrNegativeAmount
	}

	visitedAt := time.Now()
	if input.VisitedAt != nil {
		visitedAt = *input.VisitedAt
	}

	var visit models.Visit
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, "id = ?", input.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return errors.Wrap(err, "load customer")
		}

		var service models.Service
		if err := tx.First(&service, "id = ?", input.ServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrServiceNotFound
			}
			return errors.Wrap(err, "load service")
		}
		if !service.IsActive {
			return ErrServiceInactive
		}

		var amount float64
		var newPoints interface{}
		if input.IsLoyaltyReward {
			if !RewardEligible(customer.LoyaltyPoints) {
				return ErrRewardNotEligible
			}
			// Free wash: no charge, redemption consumes the balance.
			amount = 0
			newPoints = 0
		} else {
			amount = service.Price
			if input.AmountOverride != nil {
				amount = *input.AmountOverride
			}
			newPoints = gorm.Expr("loyalty_points + ?", 1)
		}

		visit = models.Visit{
			CustomerID:      customer.ID,
			ServiceID:       service.ID,
			AmountPaid:      amount,
			PaymentMethod:   input.PaymentMethod,
			IsLoyaltyReward: input.IsLoyaltyReward,
			VisitedAt:       visitedAt,
			VisitDate:       utils.BeginningOfDay(visitedAt),
			Notes:           input.Notes,
		}
		if err := tx.Create(&visit).Error; err != nil {
			return errors.Wrap(err, "create visit")
		}

		if err := tx.Model(&models.Customer{}).Where("id = ?", customer.ID).
			Updates(map[string]interface{}{
				"total_visits":   gorm.Expr("total_visits + ?", 1),
				"total_spent":    gorm.Expr("total_spent + ?", amount),
				"loyalty_points": newPoints,
				"last_visit":     visitedAt,
			}).Error; err != nil {
			return errors.Wrap(err, "update customer counters")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &visit, nil
}

// Status returns the customer's loyalty balance and reward eligibility.
func (s *VisitService) Status(customerID uuid.UUID) (*LoyaltyStatus, error) {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, errors.Wrap(err, "load customer")
	}

	return &LoyaltyStatus{
		Points:    customer.LoyaltyPoints,
		Threshold: LoyaltyThreshold,
		Eligible:  RewardEligible(customer.LoyaltyPoints),
		Progress:  LoyaltyProgress(customer.LoyaltyPoints),
	}, nil
}

// Revenue computes the report for a date range, boundaries inclusive. Reward
// visits count toward visit totals but contribute nothing to revenue.
func (s *VisitService) Revenue(start, end time.Time) (*RevenueReport, error) {
	start = utils.BeginningOfDay(start)
	end = utils.BeginningOfDay(end)

	report := RevenueReport{Start: start, End: end}

	if err := s.db.Model(&models.Visit{}).
		Where("is_loyalty_reward = ? AND visit_date BETWEEN ? AND ?", false, start, end).
		Select("COALESCE(SUM(amount_paid), 0)").
		Scan(&report.TotalRevenue).Error; err != nil {
		return nil, errors.Wrap(err, "sum revenue")
	}

	var visitCount, rewardCount int64
	if err := s.db.Model(&models.Visit{}).
		Where("visit_date BETWEEN ? AND ?", start, end).
		Count(&visitCount).Error; err != nil {
		return nil, errors.Wrap(err, "count visits")
	}
	if err := s.db.Model(&models.Visit{}).
		Where("is_loyalty_reward = ? AND visit_date BETWEEN ? AND ?", true, start, end).
		Count(&rewardCount).Error; err != nil {
		return nil, errors.Wrap(err, "count reward visits")
	}
	report.VisitCount = int(visitCount)
	report.RewardCount = int(rewardCount)

	if err := s.db.Table("visits").
		Select("services.id as service_id, services.name, COUNT(visits.id) as visit_count, COALESCE(SUM(visits.amount_paid), 0) as revenue").
		Joins("JOIN services ON services.id = visits.service_id").
		Where("visits.is_loyalty_reward = ? AND visits.visit_date BETWEEN ? AND ?", false, start, end).
		Group("services.id, services.name").
		Order("revenue DESC").
		Scan(&report.ByService).Error; err != nil {
		return nil, errors.Wrap(err, "revenue by service")
	}

	if err := s.db.Model(&models.Visit{}).
		Select("visit_date as date, COUNT(id) as visit_count, COALESCE(SUM(CASE WHEN is_loyalty_reward = ? THEN 0 ELSE amount_paid END), 0) as revenue", true).
		Where("visit_date BETWEEN ? AND ?", start, end).
		Group("visit_date").
		Order("visit_date DESC").
		Scan(&report.Daily).Error; err != nil {
		return nil, errors.Wrap(err, "daily revenue")
	}

	return &report, nil
}

// TopCustomers ranks customers by lifetime spend.
func (s *VisitService) TopCustomers(limit int) ([]TopCustomer, error) {
	var rows []TopCustomer
	if err := s.db.Model(&models.Customer{}).
		Select("id as customer_id, name, total_visits, total_spent").
		Order("total_spent DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "top customers")
	}
	return rows, nil
}

// SearchCustomers does a case-insensitive substring match over name, phone
// and plate number.
func (s *VisitService) SearchCustomers(query string, limit int) ([]models.Customer, error) {
	term := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	var customers []models.Customer
	if err := s.db.
		Where("LOWER(name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(plate_number) LIKE ?", term, term, term).
		Order("total_visits DESC").
		Limit(limit).
		Find(&customers).Error; err != nil {
		return nil, errors.Wrap(err, "search customers")
	}
	return customers, nil
}

// CustomerVisits returns a customer's visit history, newest first.
func (s *VisitService) CustomerVisits(customerID uuid.UUID) ([]models.Visit, error) {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, errors.Wrap(err, "load customer")
	}

	var visits []models.Visit
	if err := s.db.Where("customer_id = ?", customerID).
		Order("visited_at DESC").
		Find(&visits).Error; err != nil {
		return nil, errors.Wrap(err, "load visits")
	}
	return visits, nil
}

// RebuildCounters replays a customer's visit log and rewrites the cached
// counters from it. The counters are a cache over the log, so this always
// converges to what RecordVisit maintains incrementally.
func (s *VisitService) RebuildCounters(customerID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&customer, "id = ?", customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return errors.Wrap(err, "load customer")
		}

		var visits []models.Visit
		if err := tx.Where("customer_id = ?", customerID).
			Order("visited_at ASC").
			Find(&visits).Error; err != nil {
			return errors.Wrap(err, "load visits")
		}

		totalVisits := 0
		totalSpent := 0.0
		points := 0
		var lastVisit *time.Time
		for i := range visits {
			v := visits[i]
			totalVisits++
			totalSpent += v.AmountPaid
			if v.IsLoyaltyReward {
				points = 0
			} else {
				points++
			}
			lastVisit = &visits[i].VisitedAt
		}

		customer.TotalVisits = totalVisits
		customer.TotalSpent = totalSpent
		customer.LoyaltyPoints = points
		customer.LastVisit = lastVisit
		if err := tx.Save(&customer).Error; err != nil {
			return errors.Wrap(err, "save customer counters")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
