package handler

import (
	"fmt"
	"io"
	"strings"

	"github.com/l1jgo/skirmish/internal/core/event"
	"github.com/l1jgo/skirmish/internal/world"
	"golang.org/x/text/width"
)

// FormatSide lists combatants as "index: name (HP n)" so a player can pick a
// target index.
func FormatSide(side []*world.Combatant) string {
	parts := make([]string, len(side))
	for i, c := range side {
		parts[i] = fmt.Sprintf("%d: %s (HP %d)", i, c.Name, c.Stats.HP)
	}
	return strings.Join(parts, "  ")
}

// RenderSnapshot writes a two-column status table, side 1 on the left. Names
// are padded by display width so CJK names line up.
func RenderSnapshot(w io.Writer, title string, snap world.Snapshot) {
	left := statusCells(snap.Side1)
	right := statusCells(snap.Side2)
	col := 0
	for _, s := range left {
		col = max(col, DisplayWidth(s))
	}
	col = max(col, DisplayWidth("Side 1"))

	fmt.Fprintf(w, "── %s · round %d\n", title, snap.Round)
	fmt.Fprintf(w, "  %s │ %s\n", PadRight("Side 1", col), "Side 2")
	rows := max(len(left), len(right))
	for i := 0; i < rows; i++ {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		fmt.Fprintf(w, "  %s │ %s\n", PadRight(l, col), r)
	}
}

func statusCells(side []world.MemberStatus) []string {
	out := make([]string, len(side))
	for i, m := range side {
		out[i] = fmt.Sprintf("%s %d", m.Name, m.HP)
	}
	return out
}

// DisplayWidth counts terminal columns: wide and fullwidth runes take two.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// PadRight pads s with spaces up to n display columns.
func PadRight(s string, n int) string {
	if pad := n - DisplayWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// FormatEvent renders a battle event as one line of narration. Unknown
// events yield "".
func FormatEvent(ev any) string {
	switch e := ev.(type) {
	case event.DamageDealt:
		return fmt.Sprintf("%s dealt %d damage to %s", e.AttackerName, e.Amount, e.TargetName)
	case event.CombatantKilled:
		if e.KillerName == "" {
			return fmt.Sprintf("%s collapsed", e.VictimName)
		}
		return fmt.Sprintf("Killed %s", e.VictimName)
	case event.ExperienceAwarded:
		return fmt.Sprintf("%s gained %d exp", e.PlayerName, e.Amount)
	case event.LevelUp:
		return fmt.Sprintf("Levelled up! %s is now level %d", e.PlayerName, e.NewLevel)
	case event.TurnForfeited:
		return fmt.Sprintf("%s takes no action (%s)", e.CombatantName, e.Reason)
	case event.ItemUsed:
		return fmt.Sprintf("%s used %s, HP now %d", e.UserName, e.ItemName, e.TargetHP)
	case event.BattleResolved:
		if e.WinningSide == 0 {
			return fmt.Sprintf("Battle over after %d rounds", e.Round)
		}
		return fmt.Sprintf("Side %d wins after %d rounds", e.WinningSide, e.Round)
	}
	return ""
}

// SubscribeConsole narrates every battle event to w.
func SubscribeConsole(bus *event.Bus, w io.Writer) {
	bus.SubscribeAll(func(ev any) {
		if line := FormatEvent(ev); line != "" {
			fmt.Fprintln(w, line)
		}
	})
}
