package kernel

import (
	"fmt"

	"github.com/kornnellio/xv6sched/internal/machine"
)

// maxAddrSpaceSize bounds how large a simulated address space fork may
// copy before machine.Copy reports failure, modelling a kernel low on
// free pages (spec.md §7's "copyuvm fails" edge case).
const maxAddrSpaceSize = 1 << 20

// Fork allocates a child of parent, duplicates its address space and open
// files, and marks it RUNNABLE — exactly xv6's fork(). workload is the
// simulated user-mode program the child will run; spec.md's scheduler
// core is agnostic to what a process actually computes, so the caller
// (a scenario loader, a test) supplies it directly rather than forking a
// copy of the parent's own workload.
func (t *ProcTable) Fork(parent *Proc, name string, workload Workload) (*Proc, error) {
	child, err := t.Allocate()
	if err != nil {
		return nil, fmt.Errorf("kernel: fork: %w", err)
	}

	as, err := machine.Copy(parent.AddrSpace, maxAddrSpaceSize)
	if err != nil {
		t.mu.Lock()
		if child.KStack.Valid() && t.kstacks != nil {
			t.kstacks.Free(child.KStack)
		}
		child.KStack = machine.KStack{}
		child.State = StateUnused
		t.mu.Unlock()
		return nil, fmt.Errorf("kernel: fork: copy address space: %w", err)
	}

	t.mu.Lock()
	child.AddrSpace = as
	child.Parent = parent
	child.Name = name
	child.Priority = parent.Priority
	child.Workload = workload
	for i := range parent.Files {
		if parent.Files[i] != nil {
			child.Files[i] = machine.Dup(parent.Files[i])
		}
	}
	child.Cwd = machine.Idup(parent.Cwd)
	child.State = StateRunnable
	if t.mlfq != nil {
		child.ResetTicks = t.now()
		t.mlfq.levels[child.CurQueue].pushBack(child)
	}
	t.mu.Unlock()
	return child, nil
}

// Exit tears down p: closes its files, releases its cwd, reparents its
// children to init (waking init if any child is already a zombie),
// wakes p's own parent, and marks p ZOMBIE. Exactly xv6's exit(), except
// the final `sched()` call — there is no separate scheduler stack to
// jump to here, the dispatch loop that called this simply returns
// control once Exit unlocks. Caller must hold t.mu; panics if p is
// init itself, per spec.md §7 ("init exiting is fatal").
func (t *ProcTable) Exit(p *Proc, status int) {
	if p == t.initProc {
		panic("kernel: init exiting")
	}
	if p.State != StateRunning {
		panic("kernel: exit called on non-running process")
	}

	for i := range p.Files {
		machine.Close(p.Files[i])
		p.Files[i] = nil
	}
	machine.Iput(p.Cwd)
	p.Cwd = nil

	for i := range t.procs {
		c := &t.procs[i]
		if c.Parent != p {
			continue
		}
		c.Parent = t.initProc
		if c.State == StateZombie {
			t.wakeupLocked(t.initProc)
		}
	}

	p.Etime = t.now()
	p.exitStatus = status
	p.State = StateZombie
	if p.Parent != nil {
		t.wakeupLocked(p.Parent)
	}
}

// Wait is the non-blocking half of xv6's wait(): it checks once whether
// any child of parent has already exited, reaps it if so, and reports
// its pid and exit status. Callers loop this across ticks (typically via
// a Workload that sleeps on parent between calls) rather than blocking
// inside a single call, since there is no OS thread to park here. Returns
// ok == false with no error when parent has children but none has
// exited yet; returns an error when parent has no children at all,
// mirroring xv6's wait() returning -1.
func (t *ProcTable) Wait(parent *Proc) (pid int, status int, ok bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	haveChildren := false
	for i := range t.procs {
		c := &t.procs[i]
		if c.Parent != parent {
			continue
		}
		haveChildren = true
		if c.State == StateZombie {
			pid = c.Pid
			status = c.exitStatus
			t.reapLocked(c)
			return pid, status, true, nil
		}
	}
	if !haveChildren {
		return 0, 0, false, fmt.Errorf("kernel: wait: no children")
	}
	return 0, 0, false, nil
}

// Waitx behaves like Wait but additionally reports the reaped child's
// accumulated wait time (wtime, ticks spent RUNNABLE) and run time
// (rtime), per spec.md §4.2's waitx syscall. Unlike Wait, it returns an
// error (not ok == false) when parent has children but none has exited
// yet.
func (t *ProcTable) Waitx(parent *Proc) (pid int, status int, rtime int64, wtime int64, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	haveChildren := false
	for i := range t.procs {
		c := &t.procs[i]
		if c.Parent != parent {
			continue
		}
		haveChildren = true
		if c.State == StateZombie {
			pid = c.Pid
			status = c.exitStatus
			rtime = c.Rtime
			wtime = (c.Etime - c.Ctime) - c.Rtime - c.Iotime
			if wtime < 0 {
				wtime = 0
			}
			t.reapLocked(c)
			return pid, status, rtime, wtime, nil
		}
	}
	if !haveChildren {
		return 0, 0, 0, 0, fmt.Errorf("kernel: waitx: no children")
	}
	return 0, 0, 0, 0, fmt.Errorf("kernel: waitx: no zombie child yet")
}
