package domain

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

type AssetStatus string

const (
	AssetStatusCreated  AssetStatus = "CREATED"
	AssetStatusRentable AssetStatus = "RENTABLE"
	AssetStatusRented   AssetStatus = "RENTED"
	AssetStatusBurned   AssetStatus = "BURNED"
)

// AssetID is the 16-byte identifier of an asset, hex-encoded on the wire.
type AssetID [16]byte

// NewAssetID derives an id from the owner and a fresh nonce. Ids are
// unguessable; the registry still rejects the (vanishingly unlikely)
// collision on insert.
func NewAssetID(owner uuid.UUID) AssetID {
	nonce := uuid.New()
	sum := blake2b.Sum256(append(owner[:], nonce[:]...))

	var id AssetID
	copy(id[:], sum[:16])
	return id
}

// ParseAssetID decodes a 32-character hex string into an AssetID.
func ParseAssetID(s string) (AssetID, error) {
	var id AssetID
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("invalid asset id %q: %w", s, err)
	}
	if len(b) != len(id) {
		return id, fmt.Errorf("invalid asset id %q: want %d bytes, got %d", s, len(id), len(b))
	}
	copy(id[:], b)
	return id, nil
}

func (id AssetID) String() string {
	return hex.EncodeToString(id[:])
}

func (id AssetID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *AssetID) UnmarshalText(text []byte) error {
	parsed, err := ParseAssetID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// TermsTemplate is the owner's pricing for an asset while it is listed.
// A lessee's requested period length must fall within the bounds.
type TermsTemplate struct {
	PricePerTick    Balance `json:"price_per_tick"`
	MinPeriodLength Tick    `json:"min_period_length"`
	MaxPeriodLength Tick    `json:"max_period_length"`
}

// Validate rejects terms no rental could ever satisfy.
func (t TermsTemplate) Validate() error {
	if t.PricePerTick <= 0 {
		return fmt.Errorf("%w: price per tick must be positive", ErrInvalidTerms)
	}
	if t.MinPeriodLength == 0 {
		return fmt.Errorf("%w: minimum period length must be positive", ErrInvalidTerms)
	}
	if t.MinPeriodLength > t.MaxPeriodLength {
		return fmt.Errorf("%w: minimum period length exceeds maximum", ErrInvalidTerms)
	}
	return nil
}

type Asset struct {
	ID           AssetID        `json:"id"`
	Owner        uuid.UUID      `json:"owner"`
	Status       AssetStatus    `json:"status"`
	Terms        *TermsTemplate `json:"terms,omitempty"`
	MintedAtTick Tick           `json:"minted_at_tick"`
}
