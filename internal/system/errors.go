package system

import "errors"

// Forfeit reasons. A turn that fails with one of these resolves with no
// effect; the battle goes on.
var (
	ErrForfeit          = errors.New("turn forfeited")
	ErrNoTarget         = forfeit("no legal target")
	ErrTargetOutOfRange = forfeit("target index out of range")
	ErrTargetDead       = forfeit("target already dead")
	ErrNoMemo           = forfeit("no previous action to repeat")
	ErrNoItem           = forfeit("no item in that inventory slot")
	ErrNotUsable        = forfeit("item is not usable")
	ErrUnknownAction    = forfeit("unknown action")
	ErrProvider         = forfeit("action provider failed")
)

// ErrInvariant marks an engine bug: negative HP, a dead combatant left on a
// side. It aborts the current round of the affected battle only.
var ErrInvariant = errors.New("battle invariant violated")

type forfeitError struct{ reason string }

func forfeit(reason string) error { return &forfeitError{reason: reason} }

func (e *forfeitError) Error() string        { return e.reason }
func (e *forfeitError) Is(target error) bool { return target == ErrForfeit }
