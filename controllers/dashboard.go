package controllers

import (
	"net/http"
	"time"

	"safiwash-backend/config"
	"safiwash-backend/models"
	"safiwash-backend/services"
	"safiwash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DashboardStats struct {
	TotalCustomers int     `json:"totalCustomers"`
	VisitsToday    int     `json:"visitsToday"`
	RevenueToday   float64 `json:"revenueToday"`
	RevenueWeek    float64 `json:"revenueWeek"`
	RevenueMonth   float64 `json:"revenueMonth"`
	LoyaltyDue     int     `json:"loyaltyDue"`
	AtRiskCount    int     `json:"atRiskCount"`
	LostRevenue    float64 `json:"lostRevenue"`
}

type RecentVisit struct {
	VisitID         uuid.UUID `json:"visitId"`
	CustomerName    string    `json:"customerName"`
	PlateNumber     string    `json:"plateNumber"`
	ServiceName     string    `json:"serviceName"`
	AmountPaid      float64   `json:"amountPaid"`
	IsLoyaltyReward bool      `json:"isLoyaltyReward"`
	VisitedAt       time.Time `json:"visitedAt"`
}

type AtRiskCustomer struct {
	CustomerID uuid.UUID `json:"customerId"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	LastVisit  string    `json:"lastVisit"`
}

// GetDashboardOverview returns the landing-page metrics: headline stats,
// recent activity, top spenders and the at-risk list.
func GetDashboardOverview(c *gin.Context) {
	now := time.Now()
	today := utils.BeginningOfDay(now)
	// Same "last 7 days" window as the reports endpoint: today plus the six
	// days before it.
	weekAgo := today.AddDate(0, 0, -6)
	monthStart := utils.BeginningOfMonth(now)

	svc := services.NewVisitService(config.DB)
	retention := services.NewRetentionService(config.DB)

	stats, err := collectStats(svc, retention, today, weekAgo, monthStart)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute dashboard stats")
		return
	}

	recentVisits, err := recentVisitRows(10)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load recent visits")
		return
	}

	topCustomers, err := svc.TopCustomers(5)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load top customers")
		return
	}

	atRisk, err := retention.AtRiskCustomers()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load at-risk customers")
		return
	}
	atRiskRows := make([]AtRiskCustomer, 0, len(atRisk))
	for _, customer := range atRisk {
		atRiskRows = append(atRiskRows, AtRiskCustomer{
			CustomerID: customer.ID,
			Name:       customer.Name,
			Phone:      customer.Phone,
			LastVisit:  services.InactiveLabel(customer.LastVisit),
		})
		if len(atRiskRows) >= 10 {
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":           stats,
		"recentVisits":    recentVisits,
		"topCustomers":    topCustomers,
		"atRiskCustomers": atRiskRows,
	})
}

func collectStats(svc *services.VisitService, retention *services.RetentionService, today, weekAgo, monthStart time.Time) (DashboardStats, error) {
	var stats DashboardStats

	var totalCustomers int64
	if err := config.DB.Model(&models.Customer{}).Count(&totalCustomers).Error; err != nil {
		return stats, err
	}
	stats.TotalCustomers = int(totalCustomers)

	todayReport, err := svc.Revenue(today, today)
	if err != nil {
		return stats, err
	}
	stats.VisitsToday = todayReport.VisitCount
	stats.RevenueToday = todayReport.TotalRevenue

	weekReport, err := svc.Revenue(weekAgo, today)
	if err != nil {
		return stats, err
	}
	stats.RevenueWeek = weekReport.TotalRevenue

	monthReport, err := svc.Revenue(monthStart, today)
	if err != nil {
		return stats, err
	}
	stats.RevenueMonth = monthReport.TotalRevenue

	var loyaltyDue int64
	if err := config.DB.Model(&models.Customer{}).
		Where("loyalty_points >= ?", services.LoyaltyThreshold).
		Count(&loyaltyDue).Error; err != nil {
		return stats, err
	}
	stats.LoyaltyDue = int(loyaltyDue)

	atRisk, err := retention.AtRiskCustomers()
	if err != nil {
		return stats, err
	}
	stats.AtRiskCount = len(atRisk)
	stats.LostRevenue = retention.EstimatedLostRevenue(len(atRisk))

	return stats, nil
}

func recentVisitRows(limit int) ([]RecentVisit, error) {
	var rows []RecentVisit
	err := config.DB.Table("visits").
		Select("visits.id as visit_id, customers.name as customer_name, customers.plate_number, services.name as service_name, visits.amount_paid, visits.is_loyalty_reward, visits.visited_at").
		Joins("JOIN customers ON customers.id = visits.customer_id").
		Joins("JOIN services ON services.id = visits.service_id").
		Order("visits.visited_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
