package event

import (
	"github.com/google/uuid"
	"github.com/l1jgo/skirmish/internal/core/ecs"
)

// Battle events. Every event carries the battle it happened in and the round
// number, so a single bus can serve all battles of the world.

type DamageDealt struct {
	BattleID     uuid.UUID
	Round        int
	AttackerID   ecs.EntityID
	AttackerName string
	TargetID     ecs.EntityID
	TargetName   string
	Amount       int
	TargetHP     int
}

type CombatantKilled struct {
	BattleID   uuid.UUID
	Round      int
	KillerID   ecs.EntityID
	KillerName string
	VictimID   ecs.EntityID
	VictimName string
}

type ExperienceAwarded struct {
	BattleID   uuid.UUID
	Round      int
	PlayerID   ecs.EntityID
	PlayerName string
	Amount     int
	Total      int
}

type LevelUp struct {
	BattleID   uuid.UUID
	Round      int
	PlayerID   ecs.EntityID
	PlayerName string
	NewLevel   int
}

// TurnForfeited reports a turn that resolved with no effect.
type TurnForfeited struct {
	BattleID      uuid.UUID
	Round         int
	CombatantID   ecs.EntityID
	CombatantName string
	Reason        string
}

type ItemUsed struct {
	BattleID   uuid.UUID
	Round      int
	UserID     ecs.EntityID
	UserName   string
	ItemName   string
	TargetName string
	TargetHP   int
}

type RoundCompleted struct {
	BattleID uuid.UUID
	Round    int
}

// BattleResolved is emitted once, when one side has no combatants left.
// WinningSide is 1 or 2, or 0 when both sides emptied in the same round.
type BattleResolved struct {
	BattleID    uuid.UUID
	Round       int
	WinningSide int
}
