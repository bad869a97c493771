// services/loyalty.go
package services

// LoyaltyThreshold is the number of paid visits required before a customer
// earns a free wash.
const LoyaltyThreshold = 10

// RewardEligible reports whether a customer with the given points balance can
// redeem a free wash.
func RewardEligible(points int) bool {
	return points >= LoyaltyThreshold
}

// LoyaltyProgress returns progress toward the next free wash as a fraction in
// [0, 1], for UI progress bars.
func LoyaltyProgress(points int) float64 {
	if points <= 0 {
		return 0
	}
	if points >= LoyaltyThreshold {
		return 1
	}
	return float64(points) / float64(LoyaltyThreshold)
}
