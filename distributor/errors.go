package distributor

import "errors"

// Every operation fails with exactly one of these sentinels, possibly
// wrapped with call-site detail. All failures are terminal for the single
// call that raised them: no partial state survives, and the caller may
// retry with corrected input.
var (
	// ErrUnauthorized is returned when a caller other than the owner
	// invokes an administrative operation.
	ErrUnauthorized = errors.New("distributor: caller is not the owner")

	// ErrAlreadyClaimed is returned when an account that has already
	// exercised its allocation claims again, with any arguments.
	ErrAlreadyClaimed = errors.New("distributor: allocation already claimed")

	// ErrNoRoot is returned when a claim arrives while no commitment is
	// published.
	ErrNoRoot = errors.New("distributor: no commitment published")

	// ErrInvalidProof covers a bad proof path, a wrong amount, and a bad
	// leaf encoding alike; membership failures are deliberately
	// undifferentiated.
	ErrInvalidProof = errors.New("distributor: proof does not match commitment")

	// ErrPoolExhausted is returned when the owner's balance cannot cover
	// the requested amount.
	ErrPoolExhausted = errors.New("distributor: insufficient funds in distribution pool")

	// ErrInvalidRecipient is returned for a push to the zero address.
	ErrInvalidRecipient = errors.New("distributor: recipient is the zero address")

	// ErrLengthMismatch is returned when a batch's recipient and amount
	// slices differ in length.
	ErrLengthMismatch = errors.New("distributor: recipients and amounts differ in length")

	// ErrInvalidOwner is returned when ownership would transfer to the
	// zero address.
	ErrInvalidOwner = errors.New("distributor: new owner is the zero address")
)
