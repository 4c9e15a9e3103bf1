package utils

import (
	"collectrent/internal/domain"
)

// RentPerPeriod returns the rent owed for one period of the given
// length under the listed terms. Callers validate the period length
// against the terms bounds before pricing it.
func RentPerPeriod(pricePerTick domain.Balance, periodLength domain.Tick) domain.Balance {
	return pricePerTick * domain.Balance(periodLength)
}

// TermCost returns the total rent over a whole term. The first period
// is collected up front and the rest fall due period by period, so this
// is the lessee's total exposure, not an immediate charge.
func TermCost(pricePerTick domain.Balance, periodLength domain.Tick, numPeriods uint64) domain.Balance {
	return RentPerPeriod(pricePerTick, periodLength) * domain.Balance(numPeriods)
}
