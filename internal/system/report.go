package system

import (
	"io"
	"time"

	coresys "github.com/l1jgo/skirmish/internal/core/system"
	"github.com/l1jgo/skirmish/internal/handler"
	"github.com/l1jgo/skirmish/internal/world"
)

// ReportSystem prints the status table of every battle that is still being
// fought (Phase 3).
type ReportSystem struct {
	world *world.State
	out   io.Writer
}

func NewReportSystem(ws *world.State, out io.Writer) *ReportSystem {
	return &ReportSystem{world: ws, out: out}
}

func (s *ReportSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *ReportSystem) Update(_ time.Duration) {
	s.world.EachBattle(func(b *world.Battle) {
		if b.Broken || b.Round == 0 {
			return
		}
		handler.RenderSnapshot(s.out, b.String(), b.Snapshot())
	})
}
