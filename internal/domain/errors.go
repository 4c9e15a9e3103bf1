package domain

import "errors"

// Every error a dispatch can fail with is recoverable by the caller:
// on any of these the registry, the rental ledger and the share records
// are exactly as they were before the call.
var (
	ErrAssetNotFound      = errors.New("asset not found")
	ErrDuplicateAsset     = errors.New("asset id already exists")
	ErrNotOwner           = errors.New("caller is not the asset owner")
	ErrNotLessee          = errors.New("caller is not the current lessee")
	ErrAssetNotRentable   = errors.New("asset is not listed for rent")
	ErrAssetRented        = errors.New("asset has an active rental")
	ErrAssetNotRented     = errors.New("asset has no active rental")
	ErrAssetNotBurnable   = errors.New("asset cannot be burned while rented")
	ErrAgreementNotFound  = errors.New("rental agreement not found")
	ErrCannotRentOwnAsset = errors.New("cannot rent an asset to its owner")

	ErrRentalPeriodTooShort = errors.New("period length below the listed minimum")
	ErrRentalPeriodTooLong  = errors.New("period length above the listed maximum")
	ErrInvalidTerms         = errors.New("invalid rental terms")
	ErrInvalidPeriodCount   = errors.New("period count must be positive")

	ErrShareOverflow = errors.New("shares would exceed the whole asset")
	ErrNoSuchShare   = errors.New("no share recorded for account")
	ErrInvalidShare  = errors.New("share must be greater than zero and at most one")

	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
)
