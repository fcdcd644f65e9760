package machine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kornnellio/xv6sched/internal/machine"
)

func TestSetupReturnsEmptyAddrSpace(t *testing.T) {
	as := machine.Setup()
	require.NotNil(t, as)
}

func TestCopyReturnsDistinctAddrSpace(t *testing.T) {
	src := machine.Setup()
	dst, err := machine.Copy(src, 1<<20)
	require.NoError(t, err)
	require.NotNil(t, dst)
	assert.NotSame(t, src, dst)
}

func TestCopyRejectsNilSource(t *testing.T) {
	_, err := machine.Copy(nil, 1<<20)
	assert.Error(t, err)
}

func TestCopyRejectsOversizedSource(t *testing.T) {
	src := machine.Setup()
	_, err := machine.Copy(src, -1)
	assert.Error(t, err)
}

func TestFreeAcceptsNil(t *testing.T) {
	assert.NotPanics(t, func() { machine.Free(nil) })
}
