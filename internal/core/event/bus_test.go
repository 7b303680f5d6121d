package event

import "testing"

func TestEventsDeliveredNextTick(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(e GarbageCollected) { got = append(got, e.Points) })
	var lost int
	Subscribe(b, func(GarbageLost) { lost++ })

	Emit(b, GarbageCollected{Points: 1})
	Emit(b, GarbageLost{})
	Emit(b, GarbageCollected{Points: 2})
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatal("events must not be visible before the swap")
	}
	if b.Pending() != 3 {
		t.Fatalf("pending = %d", b.Pending())
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 || lost != 1 {
		t.Fatalf("got %v lost %d", got, lost)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 2 {
		t.Fatal("events redelivered after second swap")
	}
}

func TestResetDropsQueued(t *testing.T) {
	b := NewBus()
	n := 0
	Subscribe(b, func(CraftDestroyed) { n++ })
	Emit(b, CraftDestroyed{Cause: "sun"})
	b.Reset()
	b.SwapBuffers()
	b.DispatchAll()
	if n != 0 {
		t.Fatal("reset must drop queued events")
	}
}
