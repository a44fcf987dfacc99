package economy

import (
	"errors"
	"fmt"
	"time"
)

// Error kinds returned by economy operations. All of them describe
// user-recoverable conditions; a losing bet is a normal outcome, never an
// error.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSelfTransfer      = errors.New("cannot transfer money to yourself")
	ErrUnknownItem       = errors.New("item is not in the shop")
	ErrInvalidAmount     = errors.New("amount must be at least 1")
)

// CooldownError reports an activity attempted before its window elapsed.
type CooldownError struct {
	Activity  Kind
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s is on cooldown for another %s", e.Activity, e.Remaining)
}
