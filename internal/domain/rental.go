package domain

import "github.com/google/uuid"

// RentalAgreement is the live contract for a rented asset. At most one
// agreement exists per asset, and only while the asset status is RENTED.
//
// NextDueTick is always StartTick + k*PeriodLength for some k >= 1. The
// first period is paid when the agreement is created, so the first due
// tick is one full period after the start.
type RentalAgreement struct {
	AssetID       AssetID   `json:"asset_id"`
	Lessor        uuid.UUID `json:"lessor"`
	Lessee        uuid.UUID `json:"lessee"`
	RentPerPeriod Balance   `json:"rent_per_period"`
	PeriodLength  Tick      `json:"period_length"`
	StartTick     Tick      `json:"start_tick"`
	EndTick       Tick      `json:"end_tick"`
	AutoRenew     bool      `json:"auto_renew"`
	NextDueTick   Tick      `json:"next_due_tick"`
}
