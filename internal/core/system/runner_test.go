package system

import (
	"testing"
	"time"
)

type recorder struct {
	phase Phase
	name  string
	log   *[]string
}

func (r recorder) Phase() Phase           { return r.phase }
func (r recorder) Update(_ time.Duration) { *r.log = append(*r.log, r.name) }

func TestRunnerPhaseOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{PhaseCollide, "collide", &log})
	r.Register(recorder{PhaseOrbit, "orbit", &log})
	r.Register(recorder{PhaseAttract, "attract-a", &log})
	r.Register(recorder{PhaseControl, "control", &log})
	r.Register(recorder{PhaseAttract, "attract-b", &log})
	r.Register(recorder{PhaseIntegrate, "integrate", &log})

	r.Tick(time.Millisecond)

	want := []string{"orbit", "control", "integrate", "attract-a", "attract-b", "collide"}
	if len(log) != len(want) {
		t.Fatalf("ran %v", log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("order %v, want %v", log, want)
		}
	}
}

func TestTickPhaseRunsOnlyThatPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{PhaseOrbit, "orbit", &log})
	r.Register(recorder{PhaseEffects, "effects", &log})
	r.TickPhase(PhaseEffects, time.Millisecond)
	if len(log) != 1 || log[0] != "effects" {
		t.Fatalf("ran %v", log)
	}
	if PhaseCleanup.String() != "cleanup" || Phase(99).String() != "unknown" {
		t.Fatal("phase names")
	}
}
