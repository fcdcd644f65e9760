package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPriorityUpdatesAndReturnsOld(t *testing.T) {
	tab := newTestTable()
	p := &tab.procs[0]
	p.Pid = 1
	p.State = StateRunnable
	p.Priority = DefaultPriority

	old, preempted, err := tab.SetPriority(1, 20)
	require.NoError(t, err)
	assert.Equal(t, DefaultPriority, old)
	assert.Equal(t, 20, p.Priority)
	assert.False(t, preempted, "lowering the numeric priority never preempts")
}

func TestSetPriorityFlagsPreemptionOnDowngradeWhileRunning(t *testing.T) {
	tab := newTestTable()
	p := &tab.procs[0]
	p.Pid = 1
	p.State = StateRunning
	p.Priority = 20

	_, preempted, err := tab.SetPriority(1, 80)
	require.NoError(t, err)
	assert.True(t, preempted)
}

func TestSetPriorityRejectsOutOfRange(t *testing.T) {
	tab := newTestTable()
	_, _, err := tab.SetPriority(1, 101)
	assert.Error(t, err)
	_, _, err = tab.SetPriority(1, -1)
	assert.Error(t, err)
}

func TestSetPriorityUnknownPidErrors(t *testing.T) {
	tab := newTestTable()
	_, _, err := tab.SetPriority(404, 10)
	assert.Error(t, err)
}
