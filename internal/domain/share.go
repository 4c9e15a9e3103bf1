package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WholeShare is the upper bound on the sum of shares for one asset.
var WholeShare = decimal.NewFromInt(1)

// Share records a fractional equip of a rented asset to an account.
// Shares delegate usage rights only; the lessee remains solely
// responsible for rent.
type Share struct {
	AssetID AssetID         `json:"asset_id"`
	Account uuid.UUID       `json:"account"`
	Share   decimal.Decimal `json:"share"`
}

// ValidShareValue reports whether v lies in (0, 1].
func ValidShareValue(v decimal.Decimal) bool {
	return v.IsPositive() && !v.GreaterThan(WholeShare)
}
