package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"safiwash-backend/config"
	"safiwash-backend/models"
	"safiwash-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDashboardRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Service{},
		&models.Visit{},
		&models.RetentionLog{},
	))
	config.DB = db

	r := gin.New()
	r.GET("/api/dashboard", GetDashboardOverview)
	return r
}

func TestDashboard_WeekWindowIsSevenDays(t *testing.T) {
	router := setupDashboardRouter(t)

	customer := models.Customer{
		Name:        "Peter Kamau",
		Phone:       "+254700123456",
		PlateNumber: "KDJ 512P",
		JoinedDate:  time.Now(),
	}
	require.NoError(t, config.DB.Create(&customer).Error)
	wash := models.Service{Name: "Standard Wash", Price: 350, Duration: 30, IsActive: true}
	require.NoError(t, config.DB.Create(&wash).Error)

	svc := services.NewVisitService(config.DB)
	visits := []struct {
		amount  float64
		daysAgo int
	}{
		{100, 7}, // outside the window
		{200, 6}, // oldest day inside the window
		{400, 0},
	}
	for _, v := range visits {
		amt := v.amount
		when := time.Now().AddDate(0, 0, -v.daysAgo)
		_, err := svc.RecordVisit(services.RecordVisitInput{
			CustomerID:     customer.ID,
			ServiceID:      wash.ID,
			PaymentMethod:  models.PaymentCash,
			AmountOverride: &amt,
			VisitedAt:      &when,
		})
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response struct {
		Stats DashboardStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, 1, response.Stats.TotalCustomers)
	assert.Equal(t, 1, response.Stats.VisitsToday)
	assert.Equal(t, 400.0, response.Stats.RevenueToday)
	// Today plus the six days before it, same as the reports endpoint
	assert.Equal(t, 600.0, response.Stats.RevenueWeek)
}
