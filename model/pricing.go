package model

// PricingResult is derived from the draft on every change and never stored.
// The total excludes any promo discount: promo codes are validated and
// priced by the server at submission time only.
type PricingResult struct {
	TicketsTotal     float64
	ConcessionsTotal float64
	Total            float64
}

// ComputeTotals prices the draft. A concession id with no catalog entry
// contributes zero so a still-loading catalog cannot break the summary.
// bonusAmount is expected to be clamped already (see ClampBonus); the floor
// at zero here keeps the total non-negative regardless.
func ComputeTotals(basePrice float64, seatCount int, selection ConcessionSelection, catalog []Concession, useBonuses bool, bonusAmount float64) PricingResult {
	tickets := float64(seatCount) * basePrice

	prices := make(map[int64]float64, len(catalog))
	for _, item := range catalog {
		prices[item.Id] = item.Price
	}
	var concessions float64
	for id, qty := range selection {
		concessions += prices[id] * float64(qty)
	}

	subtotal := tickets + concessions
	total := subtotal
	if useBonuses {
		total = subtotal - bonusAmount
		if total < 0 {
			total = 0
		}
	}
	return PricingResult{
		TicketsTotal:     tickets,
		ConcessionsTotal: concessions,
		Total:            total,
	}
}

// ClampBonus bounds a user-entered bonus amount to [0, min(balance, subtotal)].
// Out-of-range input is clamped, not rejected.
func ClampBonus(amount float64, balance float64, subtotal float64) float64 {
	limit := balance
	if subtotal < limit {
		limit = subtotal
	}
	if limit < 0 {
		limit = 0
	}
	if amount < 0 {
		return 0
	}
	if amount > limit {
		return limit
	}
	return amount
}
