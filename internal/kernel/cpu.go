package kernel

import (
	"github.com/kornnellio/xv6sched/internal/klog"
	"github.com/kornnellio/xv6sched/internal/machine"
)

// CPU is one simulated processor: an independent dispatch loop that, once
// per tick, asks the table's Policy for a process, runs it synchronously
// for that tick, and applies whatever the process asked for next. This
// generalizes xv6's per-CPU `scheduler()` loop, collapsing `swtch`'s pair
// of context switches into a single synchronous call since there is no
// second goroutine-stack to switch to or from (see SPEC_FULL.md's note
// on the simulated machine).
type CPU struct {
	ID     int
	table  *ProcTable
	policy Policy
	log    *klog.Logger
}

func newCPU(id int, t *ProcTable, policy Policy, log *klog.Logger) *CPU {
	return &CPU{ID: id, table: t, policy: policy, log: log}
}

// dispatchOnce runs exactly one tick's worth of scheduling on this CPU:
// choose, run, apply. Returns false if no process was runnable this tick
// (the CPU sat idle), mirroring xv6's halt-and-retry behavior without an
// actual `hlt` instruction to execute.
func (c *CPU) dispatchOnce(tick int64) bool {
	t := c.table
	t.mu.Lock()
	p := c.policy.Choose(t)
	if p == nil {
		t.mu.Unlock()
		return false
	}
	if t.mlfq != nil {
		t.mlfq.levels[p.CurQueue].popFront()
		p.ResetTicks = t.now()
	}
	if p.State != StateRunnable {
		// Choose and the queue-popping logic only ever hand back a
		// RUNNABLE process; anything else is a scheduler invariant
		// violation (spec.md §7).
		t.mu.Unlock()
		panic("kernel: scheduler chose a non-runnable process")
	}
	p.State = StateRunning
	p.NRun++
	t.IncrementRunning(p)
	// switchuvm: install p's address space before letting it run, and
	// switchkvm back to the kernel's own once it returns control.
	machine.Install(p.AddrSpace)
	t.mu.Unlock()

	result := p.Workload.Tick(WorkloadContext{Tick: tick, Pid: p.Pid})

	machine.InstallKernel()
	t.mu.Lock()
	switch result.Action {
	case ActionContinue:
		t.onProcessRan(p)
	case ActionSleep:
		t.Sleep(p, result.Chan)
	case ActionExit:
		t.Exit(p, result.ExitStatus)
	default:
		t.mu.Unlock()
		panic("kernel: workload returned unknown action")
	}
	t.mu.Unlock()

	if c.log != nil {
		c.log.Debugf("cpu %d tick %d ran pid %d (%s) -> %v", c.ID, tick, p.Pid, p.Name, result.Action)
	}
	return true
}
