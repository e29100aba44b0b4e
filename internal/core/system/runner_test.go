package system

import (
	"reflect"
	"testing"
	"time"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r recorder) Phase() Phase           { return r.phase }
func (r recorder) Update(_ time.Duration) { *r.log = append(*r.log, r.name) }

func TestRunnerOrdersByPhaseThenRegistration(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{"cleanup", PhaseCleanup, &log})
	r.Register(recorder{"battle", PhaseUpdate, &log})
	r.Register(recorder{"dispatch", PhasePostUpdate, &log})
	r.Register(recorder{"battle2", PhaseUpdate, &log})
	r.Register(recorder{"input", PhasePreUpdate, &log})

	r.Tick(time.Millisecond)

	want := []string{"input", "battle", "battle2", "dispatch", "cleanup"}
	if !reflect.DeepEqual(log, want) {
		t.Fatalf("order = %v, want %v", log, want)
	}
	if r.Ticks() != 1 {
		t.Fatalf("Ticks = %d, want 1", r.Ticks())
	}
}

func TestTickPhaseRunsOnePhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{"battle", PhaseUpdate, &log})
	r.Register(recorder{"cleanup", PhaseCleanup, &log})

	r.TickPhase(PhaseCleanup, 0)

	if !reflect.DeepEqual(log, []string{"cleanup"}) {
		t.Fatalf("ran %v", log)
	}
	if r.Ticks() != 0 {
		t.Fatalf("TickPhase advanced the tick counter to %d", r.Ticks())
	}
}
