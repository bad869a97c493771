package services

import (
	"testing"
	"time"

	"safiwash-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtRiskCustomers(t *testing.T) {
	db := newTestDB(t)
	svc := NewRetentionService(db)

	old := time.Now().AddDate(0, 0, -20)
	recent := time.Now().AddDate(0, 0, -3)

	rows := []models.Customer{
		{Name: "Gone Customer", Phone: "+254701000001", PlateNumber: "KAA 001A", JoinedDate: time.Now(), LastVisit: &old},
		{Name: "Recent Customer", Phone: "+254701000002", PlateNumber: "KAA 002B", JoinedDate: time.Now(), LastVisit: &recent},
		{Name: "Never Visited", Phone: "+254701000003", PlateNumber: "KAA 003C", JoinedDate: time.Now()},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	atRisk, err := svc.AtRiskCustomers()
	require.NoError(t, err)
	require.Len(t, atRisk, 1)
	assert.Equal(t, "Gone Customer", atRisk[0].Name)
}

func TestEstimatedLostRevenue(t *testing.T) {
	db := newTestDB(t)
	svc := NewRetentionService(db)

	seedService(t, db, "Standard Wash", 300, true)
	seedService(t, db, "Premium Detail", 500, true)
	seedService(t, db, "Retired Wash", 5000, false)

	// Average of the active services only
	assert.Equal(t, 800.0, svc.EstimatedLostRevenue(2))
}

func TestEstimatedLostRevenue_EmptyCatalogFallback(t *testing.T) {
	db := newTestDB(t)
	svc := NewRetentionService(db)

	assert.Equal(t, 700.0, svc.EstimatedLostRevenue(2))
}

func TestInactiveLabel(t *testing.T) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	lastWeek := now.AddDate(0, 0, -7)

	assert.Equal(t, "never visited", InactiveLabel(nil))
	assert.Equal(t, "today", InactiveLabel(&now))
	assert.Equal(t, "yesterday", InactiveLabel(&yesterday))
	assert.Equal(t, "7 days ago", InactiveLabel(&lastWeek))
}
