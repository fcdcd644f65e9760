package kernel

// IncrementRunning records one tick of CPU time for p, called by the CPU
// dispatch loop (cpu.go) immediately before invoking p.Workload.Tick —
// exactly xv6's per-timer-tick `p->rtime++` for the currently running
// process, plus the MLFQ per-level tick counter the original keeps in
// `p->ticks[p->cur_q]`. Caller must hold t.mu.
func (t *ProcTable) IncrementRunning(p *Proc) {
	p.Rtime++
	if t.mlfq != nil {
		p.Ticks[p.CurQueue]++
	}
}

// SweepIdle increments Iotime for every SLEEPING process and runs the
// MLFQ aging pass, once per simulated tick. Unlike IncrementRunning (one
// call per dispatching CPU), this runs exactly once per tick regardless
// of NCPU — called by the timer goroutine inside Kernel.RunWithOpts
// before the tick's CPUs dispatch, mirroring xv6's timer-interrupt
// handler sweeping ptable once per clock tick.
func (t *ProcTable) SweepIdle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.procs {
		if t.procs[i].State == StateSleeping {
			t.procs[i].Iotime++
		}
	}
	if t.mlfq != nil {
		t.ageLocked()
	}
}

// ageLocked promotes any RUNNABLE-and-queued MLFQ process that has
// waited longer than AGE ticks at its current level to the next lower
// (more favorable) level, resetting its wait clock — xv6's `ageproc`.
// Caller must hold t.mu.
func (t *ProcTable) ageLocked() {
	now := t.now()
	for level := 1; level < MAXQUEUE; level++ {
		q := t.mlfq.levels[level]
		var stale []*Proc
		q.each(func(i int, p *Proc) {
			if now-p.ResetTicks > AGE {
				stale = append(stale, p)
			}
		})
		for _, p := range stale {
			q.each(func(i int, cand *Proc) {
				if cand == p {
					q.removeAt(i)
				}
			})
			p.CurQueue = level - 1
			p.ResetTicks = now
			t.mlfq.levels[p.CurQueue].pushBack(p)
		}
	}
}

// onProcessRan finishes a tick in which p returned ActionContinue: for
// MLFQ, demotes p to the next queue level once its quantum for the
// current level is spent (resetting its level tick counter), otherwise
// pushes it to the back of its current level so same-level processes
// round-robin against each other while each accumulates ticks toward its
// own quantum. Caller must hold t.mu and must already have popped p from
// its queue's front; for non-MLFQ policies this is a no-op beyond the
// state transition below.
func (t *ProcTable) onProcessRan(p *Proc) {
	p.State = StateRunnable
	if t.mlfq == nil {
		return
	}
	level := p.CurQueue
	if p.Ticks[level] >= quantum(level) {
		p.Ticks[level] = 0
		if level < MAXQUEUE-1 {
			p.CurQueue = level + 1
		}
		p.ResetTicks = t.now()
		t.mlfq.levels[p.CurQueue].pushBack(p)
		return
	}
	t.mlfq.levels[level].pushBack(p)
}
