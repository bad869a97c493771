// controllers/checkin.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"safiwash-backend/config"
	"safiwash-backend/services"
	"safiwash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CheckInInput defines the expected JSON structure for logging a visit
type CheckInInput struct {
	CustomerID      uuid.UUID  `json:"customerId" binding:"required"`
	ServiceID       uuid.UUID  `json:"serviceId" binding:"required"`
	PaymentMethod   string     `json:"paymentMethod" binding:"required,oneof=cash mobile_money card"`
	IsLoyaltyReward bool       `json:"isLoyaltyReward"`
	Amount          *float64   `json:"amount" binding:"omitempty,min=0"`
	VisitedAt       *time.Time `json:"visitedAt"`
	Notes           string     `json:"notes"`
}

// CheckIn records a visit and updates the customer's counters atomically
func CheckIn(c *gin.Context) {
	var input CheckInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc := services.NewVisitService(config.DB)
	visit, err := svc.RecordVisit(services.RecordVisitInput{
		CustomerID:      input.CustomerID,
		ServiceID:       input.ServiceID,
		PaymentMethod:   input.PaymentMethod,
		IsLoyaltyReward: input.IsLoyaltyReward,
		AmountOverride:  input.Amount,
		VisitedAt:       input.VisitedAt,
		Notes:           input.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound),
			errors.Is(err, services.ErrServiceNotFound):
			utils.RespondWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrServiceInactive),
			errors.Is(err, services.ErrRewardNotEligible),
			errors.Is(err, services.ErrInvalidPaymentMethod),
			errors.Is(err, services.ErrNegativeAmount):
			utils.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Check-in failed, nothing was recorded")
		}
		return
	}

	c.JSON(http.StatusCreated, visit)
}

// GetLoyaltyStatus returns a customer's points balance and reward eligibility
func GetLoyaltyStatus(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	svc := services.NewVisitService(config.DB)
	status, err := svc.Status(customerUUID)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load loyalty status")
		}
		return
	}

	c.JSON(http.StatusOK, status)
}

// SearchCustomers backs the check-in form autocomplete
func SearchCustomers(c *gin.Context) {
	query := c.Query("q")
	if len(query) < 2 {
		c.JSON(http.StatusOK, []gin.H{})
		return
	}

	svc := services.NewVisitService(config.DB)
	customers, err := svc.SearchCustomers(query, 10)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to search customers")
		return
	}

	results := make([]gin.H, 0, len(customers))
	for _, customer := range customers {
		results = append(results, gin.H{
			"id":            customer.ID,
			"name":          customer.Name,
			"phone":         customer.Phone,
			"plateNumber":   customer.PlateNumber,
			"loyaltyPoints": customer.LoyaltyPoints,
		})
	}

	c.JSON(http.StatusOK, results)
}
