// controllers/report.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"safiwash-backend/config"
	"safiwash-backend/models"
	"safiwash-backend/services"
	"safiwash-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportController handles all reporting functions
type ReportController struct{}

type LoyaltyStats struct {
	EligibleCount int     `json:"eligibleCount"`
	AvgPoints     float64 `json:"avgPoints"`
}

// ReportSummary is the full reports payload
type ReportSummary struct {
	Range        string                  `json:"range"`
	Revenue      *services.RevenueReport `json:"revenue"`
	TopCustomers []services.TopCustomer  `json:"topCustomers"`
	Loyalty      LoyaltyStats            `json:"loyalty"`
}

// GetReportAnalytics returns revenue and loyalty reports for a date range.
// ?range=today|week|month selects a preset; ?start=YYYY-MM-DD&end=YYYY-MM-DD
// overrides it.
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	now := time.Now()
	rangeName := c.DefaultQuery("range", "week")

	var start, end time.Time
	switch rangeName {
	case "today":
		start, end = now, now
	case "week":
		start, end = now.AddDate(0, 0, -6), now
	case "month":
		start, end = utils.BeginningOfMonth(now), now
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown range, expected today, week or month")
		return
	}

	if s := c.Query("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid start date, expected YYYY-MM-DD")
			return
		}
		start = parsed
		rangeName = "custom"
	}
	if e := c.Query("end"); e != "" {
		parsed, err := time.Parse("2006-01-02", e)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid end date, expected YYYY-MM-DD")
			return
		}
		end = parsed
		rangeName = "custom"
	}

	svc := services.NewVisitService(config.DB)

	revenue, err := svc.Revenue(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute revenue report")
		return
	}

	limit := 5
	if n, err := strconv.Atoi(c.DefaultQuery("top", "5")); err == nil && n > 0 {
		limit = n
	}
	topCustomers, err := svc.TopCustomers(limit)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top customers")
		return
	}

	loyalty, err := rc.getLoyaltyStats()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get loyalty statistics")
		return
	}

	c.JSON(http.StatusOK, ReportSummary{
		Range:        rangeName,
		Revenue:      revenue,
		TopCustomers: topCustomers,
		Loyalty:      loyalty,
	})
}

func (rc *ReportController) getLoyaltyStats() (LoyaltyStats, error) {
	var stats LoyaltyStats

	var eligible int64
	if err := config.DB.Model(&models.Customer{}).
		Where("loyalty_points >= ?", services.LoyaltyThreshold).
		Count(&eligible).Error; err != nil {
		return stats, err
	}
	stats.EligibleCount = int(eligible)

	if err := config.DB.Model(&models.Customer{}).
		Select("COALESCE(AVG(loyalty_points), 0)").
		Scan(&stats.AvgPoints).Error; err != nil {
		return stats, err
	}

	return stats, nil
}
