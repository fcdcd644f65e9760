package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable() *ProcTable {
	tick := int64(0)
	return NewProcTable(func() int64 { return tick }, nil)
}

func TestRRPolicyPrefersLowestSlot(t *testing.T) {
	tab := newTestTable()
	tab.procs[5].State = StateRunnable
	tab.procs[5].Pid = 6
	tab.procs[2].State = StateRunnable
	tab.procs[2].Pid = 3

	p := (&RRPolicy{}).Choose(tab)
	require.NotNil(t, p)
	assert.Equal(t, 3, p.Pid)
}

func TestFCFSPolicyPicksOldest(t *testing.T) {
	tab := newTestTable()
	tab.procs[0].State = StateRunnable
	tab.procs[0].Pid = 1
	tab.procs[0].Ctime = 50
	tab.procs[1].State = StateRunnable
	tab.procs[1].Pid = 2
	tab.procs[1].Ctime = 10

	p := (&FCFSPolicy{}).Choose(tab)
	require.NotNil(t, p)
	assert.Equal(t, 2, p.Pid)
}

func TestPBSPolicyTieBreaksByNRun(t *testing.T) {
	tab := newTestTable()
	tab.procs[0].State = StateRunnable
	tab.procs[0].Pid = 1
	tab.procs[0].Priority = 40
	tab.procs[0].NRun = 3
	tab.procs[1].State = StateRunnable
	tab.procs[1].Pid = 2
	tab.procs[1].Priority = 40
	tab.procs[1].NRun = 1

	p := (&PBSPolicy{}).Choose(tab)
	require.NotNil(t, p)
	assert.Equal(t, 2, p.Pid, "equal priority should fall back to fewest dispatches")
}

func TestPBSPolicyPrefersNumericallyLowerPriority(t *testing.T) {
	tab := newTestTable()
	tab.procs[0].State = StateRunnable
	tab.procs[0].Pid = 1
	tab.procs[0].Priority = 80
	tab.procs[1].State = StateRunnable
	tab.procs[1].Pid = 2
	tab.procs[1].Priority = 20

	p := (&PBSPolicy{}).Choose(tab)
	require.NotNil(t, p)
	assert.Equal(t, 2, p.Pid)
}

func TestMLFQPolicyChoosesLowestNonEmptyLevel(t *testing.T) {
	tab := newTestTable()
	tab.enableMLFQ()

	low := &tab.procs[0]
	low.State = StateRunnable
	low.Pid = 1
	low.CurQueue = 2

	high := &tab.procs[1]
	high.State = StateRunnable
	high.Pid = 2
	high.CurQueue = 0

	tab.mlfq.levels[2].pushBack(low)
	tab.mlfq.levels[0].pushBack(high)

	p := (&MLFQPolicy{}).Choose(tab)
	require.NotNil(t, p)
	assert.Equal(t, 2, p.Pid, "level 0 must be preferred over level 2")
}

func TestMLFQPolicySkipsStaleEntries(t *testing.T) {
	tab := newTestTable()
	tab.enableMLFQ()

	stale := &tab.procs[0]
	stale.State = StateZombie // no longer eligible, but left enqueued
	stale.Pid = 1
	stale.CurQueue = 0

	fresh := &tab.procs[1]
	fresh.State = StateRunnable
	fresh.Pid = 2
	fresh.CurQueue = 0

	tab.mlfq.levels[0].pushBack(stale)
	tab.mlfq.levels[0].pushBack(fresh)

	p := (&MLFQPolicy{}).Choose(tab)
	require.NotNil(t, p)
	assert.Equal(t, 2, p.Pid)
}

func TestUnknownPolicyNameErrors(t *testing.T) {
	_, err := NewPolicy("not-a-policy")
	assert.Error(t, err)
}

func TestEmptyPolicyNameDefaultsToRR(t *testing.T) {
	p, err := NewPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyRR, p.name())
}
