package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBurstExitsAfterNTicks(t *testing.T) {
	w := Burst(3, 42)
	ctx := WorkloadContext{}
	assert.Equal(t, ActionContinue, w.Tick(ctx).Action)
	assert.Equal(t, ActionContinue, w.Tick(ctx).Action)
	r := w.Tick(ctx)
	assert.Equal(t, ActionExit, r.Action)
	assert.Equal(t, 42, r.ExitStatus)
}

func TestSleepAfterAlternatesBurstAndSleep(t *testing.T) {
	w := SleepAfter(2, 3, 2, "ch")
	ctx := WorkloadContext{}

	assert.Equal(t, ActionContinue, w.Tick(ctx).Action) // cpu tick 1/2
	r := w.Tick(ctx)                                     // cpu tick 2/2 -> sleep
	assert.Equal(t, ActionSleep, r.Action)
	assert.Equal(t, "ch", r.Chan)

	assert.Equal(t, ActionSleep, w.Tick(ctx).Action)    // sleep tick 2/3
	assert.Equal(t, ActionSleep, w.Tick(ctx).Action)    // sleep tick 3/3
	assert.Equal(t, ActionContinue, w.Tick(ctx).Action) // cycle 2, cpu tick 1/2

	last := w.Tick(ctx) // cpu tick 2/2 of the final cycle -> exit
	assert.Equal(t, ActionExit, last.Action)
}

func TestSleepAfterExitsAfterLastCycle(t *testing.T) {
	w := SleepAfter(1, 1, 1, "ch")
	ctx := WorkloadContext{}
	r := w.Tick(ctx) // only cpu tick, 1 cycle total -> exit
	assert.Equal(t, ActionExit, r.Action)
	assert.Equal(t, 0, r.ExitStatus)
}
