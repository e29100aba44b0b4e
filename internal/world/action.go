package world

import "fmt"

// ActionKind tags what a combatant does on its turn.
type ActionKind int

const (
	ActionNone    ActionKind = 0
	ActionAttack  ActionKind = 1 // Index = target position in the opposing side
	ActionUseItem ActionKind = 2 // Index = inventory position; the user is the target
	ActionRepeat  ActionKind = 3 // "same as last time"
)

// Action is the tagged value an action provider yields.
type Action struct {
	Kind  ActionKind
	Index int
}

func Attack(target int) Action { return Action{Kind: ActionAttack, Index: target} }
func UseItem(slot int) Action  { return Action{Kind: ActionUseItem, Index: slot} }
func Repeat() Action           { return Action{Kind: ActionRepeat} }

func (a Action) String() string {
	switch a.Kind {
	case ActionAttack:
		return fmt.Sprintf("attack %d", a.Index)
	case ActionUseItem:
		return fmt.Sprintf("use %d", a.Index)
	case ActionRepeat:
		return "repeat"
	default:
		return "none"
	}
}
