// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointSecurityConfig maps named HTTP routes to their required
// security level. Route names are assigned by the router.
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Health and clock - Public
	"Health":      SecurityPublic,
	"CurrentTick": SecurityPublic,

	// Accounts - onboarding is public, the rest is caller-scoped
	"CreateAccount":    SecurityPublic,
	"GetBalance":       SecurityAccess,
	"ListTransactions": SecurityAccess,
	"Deposit":          SecurityAccess,

	// Asset registry - reads are public (the market view), writes
	// require the caller
	"GetAsset":      SecurityPublic,
	"ListAssets":    SecurityPublic,
	"MintAsset":     SecurityAccess,
	"BurnAsset":     SecurityAccess,
	"SetRentable":   SecurityAccess,
	"SetUnrentable": SecurityAccess,

	// Rentals - Access Protected
	"RentAsset":    SecurityAccess,
	"ExtendRent":   SecurityAccess,
	"SetRecurring": SecurityAccess,
	"GetAgreement": SecurityAccess,
	"ListRentals":  SecurityAccess,

	// Shares - Access Protected
	"EquipShare":   SecurityAccess,
	"UnequipShare": SecurityAccess,
	"ListShares":   SecurityAccess,

	// Event history - Access Protected
	"AssetHistory": SecurityAccess,
}

// GetSecurityLevel returns the security level for a named route
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
