// auction/errors.go
package auction

import "errors"

// Command rejection reasons. All of these are local to the offending
// command: room state is untouched and only the sender is notified.
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrNotAuthorized       = errors.New("only the host may do that")
	ErrInvalidState        = errors.New("command not valid in current phase")
	ErrInsufficientFunds   = errors.New("insufficient balance")
	ErrIneligible          = errors.New("participant not eligible")
)
