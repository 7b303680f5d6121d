package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseDispatch  Phase = iota // 0: deliver last tick's events
	PhaseOrbit                  // 1: advance planets
	PhaseControl                // 2: autopilot or player input → heading, thrust
	PhaseIntegrate              // 3: craft velocity and position
	PhaseAttract                // 4: magnet pull on garbage
	PhaseCollide                // 5: hits, collection, push-out
	PhaseEffects                // 6: particle aging
	PhaseCleanup                // 7: destroy queued entities
)

var phaseNames = [...]string{"dispatch", "orbit", "control", "integrate", "attract", "collide", "effects", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
