package machine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kornnellio/xv6sched/internal/machine"
)

func TestNewFileKeepsName(t *testing.T) {
	f := machine.NewFile("/etc/passwd")
	require.NotNil(t, f)
	assert.Equal(t, "/etc/passwd", f.Name)
}

func TestDupReturnsSameFile(t *testing.T) {
	f := machine.NewFile("/dev/null")
	dup := machine.Dup(f)
	assert.Same(t, f, dup)
}

func TestDupAndCloseOnNilAreNoOps(t *testing.T) {
	assert.Nil(t, machine.Dup(nil))
	assert.NotPanics(t, func() { machine.Close(nil) })
	assert.NotPanics(t, func() { machine.Iput(nil) })
}

func TestIdupIsAnAliasForDup(t *testing.T) {
	f := machine.NewFile("/")
	assert.Same(t, f, machine.Idup(f))
}
