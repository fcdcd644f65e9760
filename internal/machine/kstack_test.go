package machine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kornnellio/xv6sched/internal/machine"
)

func TestKStackAllocatorExhaustsCapacity(t *testing.T) {
	a := machine.NewKStackAllocator(2)

	k1, err := a.Alloc()
	require.NoError(t, err)
	assert.True(t, k1.Valid())

	_, err = a.Alloc()
	require.NoError(t, err)

	_, err = a.Alloc()
	assert.Error(t, err)
}

func TestKStackAllocatorFreeReclaimsSlot(t *testing.T) {
	a := machine.NewKStackAllocator(1)
	k1, err := a.Alloc()
	require.NoError(t, err)

	a.Free(k1)
	_, err = a.Alloc()
	assert.NoError(t, err)
}

func TestKStackAllocatorUnboundedWhenCapacityZero(t *testing.T) {
	a := machine.NewKStackAllocator(0)
	for i := 0; i < 1000; i++ {
		_, err := a.Alloc()
		require.NoError(t, err)
	}
}

func TestZeroKStackIsInvalid(t *testing.T) {
	var k machine.KStack
	assert.False(t, k.Valid())
}
