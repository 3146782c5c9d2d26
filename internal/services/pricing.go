package services

// ComputeTotal derives a booking's total price from the package unit
// price and the party size. A party size below one books for one.
// Pure; called exactly once at booking creation, and the result is
// persisted as a snapshot that later package price changes never touch.
func ComputeTotal(unitPrice float64, partySize int) float64 {
	if partySize < 1 {
		partySize = 1
	}
	return unitPrice * float64(partySize)
}
