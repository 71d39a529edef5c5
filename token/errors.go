package token

import "errors"

// Error taxonomy: authorization failures come from the access and sigauth
// packages, availability failures are access.ErrPaused, and the sentinels
// below cover state invariants and input validation. Each one is terminal
// for the call that produced it; no partial effects survive.
var (
	// State invariant errors.
	ErrSupplyOverflow        = errors.New("token: mint would exceed the supply cap")
	ErrInsufficientBalance   = errors.New("token: insufficient balance")
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")

	// Input validation errors.
	ErrZeroAddressRecipient = errors.New("token: recipient is the zero address")
	ErrZeroAddress          = errors.New("token: address must not be zero")
	ErrLengthMismatch       = errors.New("token: recipient and amount lists differ in length")
	ErrCommunityNotSet      = errors.New("token: community account not configured")
	ErrRescueSelf           = errors.New("token: cannot rescue the ledger's own asset")
	ErrRescueZeroRecipient  = errors.New("token: rescue recipient is the zero address")
	ErrInvalidCap           = errors.New("token: cap must be non-zero")

	// Signature authorization errors (permit).
	ErrExpiredDeadline = errors.New("token: permit deadline has passed")

	// Lifecycle errors.
	ErrAlreadyInitialized = errors.New("token: logic already initialized")
)
