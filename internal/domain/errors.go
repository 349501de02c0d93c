package domain

import (
	"errors"
	"fmt"
)

// Kind is the failure category shown to users. All kinds are recoverable.
type Kind string

const (
	KindNotFound    Kind = "NOT_FOUND"
	KindValidation  Kind = "VALIDATION"
	KindAlreadyDone Kind = "ALREADY_DONE"
	KindPermission  Kind = "PERMISSION"
)

// Error is a user-facing failure. Two errors match under errors.Is when their codes match,
// so a message specialised with Withf still matches its sentinel.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Withf returns a copy of e with a formatted message.
func (e *Error) Withf(format string, args ...any) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

func newErr(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

var (
	ErrItemNotFound  = newErr(KindNotFound, "NOT_FOUND", "That item does not exist.")
	ErrMemeNotFound  = newErr(KindNotFound, "MEME_NOT_FOUND", "Nothing is saved under that ID.")
	ErrUnknownGame   = newErr(KindNotFound, "UNKNOWN_GAME", "That game is not supported.")
	ErrUserNotFound  = newErr(KindNotFound, "USER_NOT_FOUND", "User not found.")
	ErrNoMemesByName = newErr(KindNotFound, "NO_MEMES", "Nothing is saved for that name.")

	ErrItemUnavailable    = newErr(KindValidation, "UNAVAILABLE", "That item is not for sale right now.")
	ErrAlreadyOwned       = newErr(KindValidation, "ALREADY_OWNED", "You already own that item.")
	ErrInsufficientFunds  = newErr(KindValidation, "INSUFFICIENT_FUNDS", "Not enough balance.")
	ErrNotConsumable      = newErr(KindValidation, "NOT_CONSUMABLE", "That item cannot be used.")
	ErrNotOwned           = newErr(KindValidation, "NOT_OWNED", "You do not own that item.")
	ErrNotEnoughItems     = newErr(KindValidation, "NOT_ENOUGH_ITEMS", "Not enough of that item.")
	ErrAutoUsed           = newErr(KindValidation, "AUTO_USED", "That item is used automatically when you check in.")
	ErrNoEffect           = newErr(KindValidation, "NO_EFFECT", "That item has no effect yet.")
	ErrInvalidBet         = newErr(KindValidation, "INVALID_BET", "Bet must be zero (all in) or positive.")
	ErrBetTooHigh         = newErr(KindValidation, "BET_TOO_HIGH", "Bet exceeds the table limit.")
	ErrNoBalance          = newErr(KindValidation, "NO_BALANCE", "You have no balance. Check in to earn some!")
	ErrNothingToUpdate    = newErr(KindValidation, "NOTHING_TO_UPDATE", "Give at least one of content, keyword or name.")
	ErrInvalidInput       = newErr(KindValidation, "INVALID_INPUT", "Invalid input.")
	ErrInvalidBuffRequest = newErr(KindValidation, "INVALID_BUFF", "Multiplier must be at least 1 and duration at least 1 day.")

	ErrAlreadyCheckedIn = newErr(KindAlreadyDone, "ALREADY_CHECKED_IN", "You already checked in today!")
	ErrBuffActive       = newErr(KindAlreadyDone, "BUFF_ACTIVE", "That effect is already active. Use it up first.")

	ErrNotOwner = newErr(KindPermission, "NOT_OWNER", "You can only change entries you saved yourself.")
	ErrNotAdmin = newErr(KindPermission, "NOT_ADMIN", "Admins only.")
)

// AsError unwraps err into a user-facing failure, if it is one.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
