package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnProcessRanDemotesAfterQuantumExpires(t *testing.T) {
	tab := newTestTable()
	tab.enableMLFQ()
	p := &tab.procs[0]
	p.Pid = 1
	p.State = StateRunning
	p.CurQueue = 0
	p.Ticks[0] = quantum(0) // already used its level-0 quantum this run

	tab.onProcessRan(p)

	assert.Equal(t, StateRunnable, p.State)
	assert.Equal(t, 1, p.CurQueue)
	assert.Equal(t, int64(0), p.Ticks[0])
	require.Equal(t, 1, tab.mlfq.levels[1].size())
	assert.Same(t, p, tab.mlfq.levels[1].front())
}

func TestOnProcessRanKeepsLevelWhenQuantumRemains(t *testing.T) {
	tab := newTestTable()
	tab.enableMLFQ()
	p := &tab.procs[0]
	p.Pid = 1
	p.State = StateRunning
	p.CurQueue = 2
	p.Ticks[2] = quantum(2) - 1

	tab.onProcessRan(p)

	assert.Equal(t, 2, p.CurQueue)
	require.Equal(t, 1, tab.mlfq.levels[2].size())
}

func TestOnProcessRanStaysAtBottomLevel(t *testing.T) {
	tab := newTestTable()
	tab.enableMLFQ()
	p := &tab.procs[0]
	p.Pid = 1
	p.State = StateRunning
	p.CurQueue = MAXQUEUE - 1
	p.Ticks[MAXQUEUE-1] = quantum(MAXQUEUE - 1)

	tab.onProcessRan(p)

	assert.Equal(t, MAXQUEUE-1, p.CurQueue, "bottom level has nowhere lower to demote to")
}

func TestAgeLockedPromotesLongWaitingProcess(t *testing.T) {
	tick := int64(AGE + 5)
	tab := NewProcTable(func() int64 { return tick }, nil)
	tab.enableMLFQ()
	p := &tab.procs[0]
	p.Pid = 1
	p.State = StateRunnable
	p.CurQueue = 2
	p.ResetTicks = 0
	tab.mlfq.levels[2].pushBack(p)

	tab.mu.Lock()
	tab.ageLocked()
	tab.mu.Unlock()

	assert.Equal(t, 1, p.CurQueue)
	assert.Equal(t, tick, p.ResetTicks)
	assert.Equal(t, 0, tab.mlfq.levels[2].size())
	assert.Equal(t, 1, tab.mlfq.levels[1].size())
}

func TestSweepIdleIncrementsIotimeForSleepers(t *testing.T) {
	tab := newTestTable()
	p := &tab.procs[0]
	p.State = StateSleeping

	tab.SweepIdle()
	assert.Equal(t, int64(1), p.Iotime)
}
