// services/errors.go
package services

import "github.com/pkg/errors"

// Check-in failures fall into two recoverable classes: a missing reference
// (customer or service id) and an invalid state (inactive service, reward
// without enough points, unknown payment method). Anything else that comes
// out of the transaction is a storage failure and rolls the whole check-in
// back.
var (
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrServiceNotFound      = errors.New("service not found")
	ErrServiceInactive      = errors.New("service is not active")
	ErrRewardNotEligible    = errors.New("not enough loyalty points for a free wash")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrNegativeAmount       = errors.New("amount cannot be negative")
)
