package kernel

import "fmt"

// SetPriority changes pid's static priority for PBS, returning the
// previous value. Exactly xv6's set_priority() field update; the
// preemption half of the original ("yield if priority got worse") needs
// no separate call here, because Choose is re-run fresh every tick (see
// cpu.go) rather than pinning a process across ticks once dispatched —
// a lower-priority process becomes eligible for the very next tick
// automatically. Preempted reports whether this change would, under a
// literal per-quantum xv6, have triggered an immediate yield (the
// caller's own priority got numerically worse), purely for logging.
func (t *ProcTable) SetPriority(pid int, newPriority int) (old int, preempted bool, err error) {
	if newPriority < 0 || newPriority > 100 {
		return 0, false, fmt.Errorf("kernel: priority %d out of range [0,100]", newPriority)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.procs {
		p := &t.procs[i]
		if p.Pid != pid || p.State == StateUnused {
			continue
		}
		old = p.Priority
		p.Priority = newPriority
		preempted = newPriority > old && p.State == StateRunning
		return old, preempted, nil
	}
	return 0, false, fmt.Errorf("kernel: set priority: no such pid %d", pid)
}
