package domain

import "github.com/google/uuid"

type EventType string

const (
	EventAssetMinted      EventType = "ASSET_MINTED"
	EventAssetListed      EventType = "ASSET_LISTED"
	EventAssetUnlisted    EventType = "ASSET_UNLISTED"
	EventAssetRented      EventType = "ASSET_RENTED"
	EventRentCollected    EventType = "RENT_COLLECTED"
	EventRentalExtended   EventType = "RENTAL_EXTENDED"
	EventRecurringChanged EventType = "RECURRING_CHANGED"
	EventRentalExpired    EventType = "RENTAL_EXPIRED"
	EventRentalDefaulted  EventType = "RENTAL_DEFAULTED"
	EventAssetBurned      EventType = "ASSET_BURNED"
	EventShareEquipped    EventType = "SHARE_EQUIPPED"
	EventShareUnequipped  EventType = "SHARE_UNEQUIPPED"
)

// Event is an observable outcome of a dispatch or a scheduler pass.
// Lessor, Lessee and Amount are zero-valued when they do not apply to
// the event type.
type Event struct {
	Type       EventType         `json:"type"`
	AssetID    AssetID           `json:"asset_id"`
	Tick       Tick              `json:"tick"`
	Lessor     uuid.UUID         `json:"lessor,omitempty"`
	Lessee     uuid.UUID         `json:"lessee,omitempty"`
	Amount     Balance           `json:"amount,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}
