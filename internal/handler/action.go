package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/l1jgo/skirmish/internal/world"
)

// ErrBadAction is returned for input that names no known action.
var ErrBadAction = errors.New("unrecognised action")

// ParseAction turns one line of player input into an action.
//
//	""           → Repeat (same as last time)
//	"attack N"   → Attack target N of the opposing side
//	"use N"      → use inventory item N on yourself
//
// Verbs are case-insensitive and may be abbreviated to their first letter.
func ParseAction(line string) (world.Action, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return world.Repeat(), nil
	}
	verb := strings.ToLower(fields[0])
	switch verb {
	case "attack", "a", "use", "u":
	default:
		return world.Action{}, fmt.Errorf("%w: %q", ErrBadAction, line)
	}
	if len(fields) != 2 {
		return world.Action{}, fmt.Errorf("%w: %q needs exactly one index", ErrBadAction, verb)
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 0 {
		return world.Action{}, fmt.Errorf("%w: bad index %q", ErrBadAction, fields[1])
	}
	if verb[0] == 'a' {
		return world.Attack(n), nil
	}
	return world.UseItem(n), nil
}
