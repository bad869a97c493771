package controllers

import (
	"errors"
	"net/http"
	"time"

	"safiwash-backend/config"
	"safiwash-backend/models"
	"safiwash-backend/services"
	"safiwash-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for registering a customer
type CreateCustomerInput struct {
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	PlateNumber string `json:"plateNumber" binding:"required"`
	CarModel    string `json:"carModel"`
	Notes       string `json:"notes"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	PlateNumber *string `json:"plateNumber"`
	CarModel    *string `json:"carModel"`
	Notes       *string `json:"notes"`
}

// CreateCustomer registers a new customer
func CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate phone format
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check if phone already exists
	var existingCustomer models.Customer
	if err := config.DB.Where("phone = ?", input.Phone).
		First(&existingCustomer).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Customer with this phone number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	customer := models.Customer{
		ID:          uuid.New(),
		Name:        input.Name,
		Phone:       input.Phone,
		PlateNumber: utils.NormalizePlate(input.PlateNumber),
		CarModel:    input.CarModel,
		Notes:       input.Notes,
		JoinedDate:  utils.BeginningOfDay(time.Now()),
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers lists customers, most loyal first. A ?search= parameter
// filters by name, phone or plate substring.
func GetCustomers(c *gin.Context) {
	if search := c.Query("search"); search != "" {
		svc := services.NewVisitService(config.DB)
		customers, err := svc.SearchCustomers(search, 100)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to search customers")
			return
		}
		c.JSON(http.StatusOK, customers)
		return
	}

	var customers []models.Customer
	if err := config.DB.Order("total_visits DESC").Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer with their visit history
func GetCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	svc := services.NewVisitService(config.DB)
	visits, err := svc.CustomerVisits(customer.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load visit history")
		return
	}

	status, err := svc.Status(customer.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load loyalty status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": customer,
		"visits":   visits,
		"loyalty":  status,
	})
}

// UpdateCustomer updates an existing customer's profile fields
func UpdateCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Retrieve existing customer
	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}

		// Check if phone is being changed to another existing customer
		if customer.Phone != *input.Phone {
			var existingCustomer models.Customer
			if err := config.DB.Where("phone = ?", *input.Phone).
				First(&existingCustomer).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another customer with this phone number already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		customer.Phone = *input.Phone
	}
	if input.PlateNumber != nil {
		customer.PlateNumber = utils.NormalizePlate(*input.PlateNumber)
	}
	if input.CarModel != nil {
		customer.CarModel = *input.CarModel
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer soft deletes a customer
func DeleteCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	result := config.DB.Where("id = ?", customerUUID).Delete(&models.Customer{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// RebuildCustomerCounters recomputes a customer's cached counters from the
// visit log. Maintenance endpoint for when the cache is suspected stale.
func RebuildCustomerCounters(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	svc := services.NewVisitService(config.DB)
	customer, err := svc.RebuildCounters(customerUUID)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to rebuild counters")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}
