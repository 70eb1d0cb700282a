package platform

import "errors"

// Error taxonomy for the Platform capability. These are sentinel errors
// so call sites can errors.Is-dispatch the degrade-vs-abort policy
// without depending on a specific venue implementation.
var (
	// ErrReadOnly is returned by PlaceBet on venues that are informational
	// only (e.g. Metaculus): they never execute orders.
	ErrReadOnly = errors.New("platform: venue is read-only")
	// ErrInsufficientBalance is returned when the venue's reported balance
	// cannot cover the requested bet amount.
	ErrInsufficientBalance = errors.New("platform: insufficient balance")
	// ErrMarketNotFound is returned when the referenced market id does not
	// exist on the venue.
	ErrMarketNotFound = errors.New("platform: market not found")
	// ErrTransport wraps any network/auth failure talking to the venue.
	ErrTransport = errors.New("platform: transport error")
)
