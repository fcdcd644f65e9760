package kernel

// Policy picks the next process to run. Exactly one implementation is
// wired into a Kernel at boot (CLI flag, see cmd/xv6ctl), generalizing
// xv6's compile-time `#ifdef` policy switch into a Go interface selected
// once at startup — a tagged-variant design per the Open Questions
// decisions in DESIGN.md, not a runtime-switchable strategy, since
// spec.md never describes changing policy on a live table.
//
// Choose must be called with the table's lock already held. It scans
// t.procs directly (never through forEach's callback form, to keep the
// RR/FCFS/PBS scan order an explicit, auditable loop matching xv6's own
// `for(p = ptable.proc; ...)`).
type Policy interface {
	// Choose returns the RUNNABLE process to dispatch next, or nil if
	// none is runnable.
	Choose(t *ProcTable) *Proc

	// name reports the policy's short identifier, used by New to detect
	// the MLFQ policy and wire in the queue set.
	name() string
}

// NewPolicy builds the named policy, or an error for an unrecognized
// name. Called once at boot.
func NewPolicy(name string) (Policy, error) {
	if name == "" {
		name = defaultName
	}
	switch name {
	case PolicyRR:
		return &RRPolicy{}, nil
	case PolicyFCFS:
		return &FCFSPolicy{}, nil
	case PolicyPBS:
		return &PBSPolicy{}, nil
	case PolicyMLFQ:
		return &MLFQPolicy{}, nil
	default:
		return nil, &UnknownPolicyError{Name: name}
	}
}

// UnknownPolicyError reports an unrecognized --policy flag value.
type UnknownPolicyError struct{ Name string }

func (e *UnknownPolicyError) Error() string {
	return "kernel: unknown policy " + e.Name
}

// RRPolicy implements round-robin: a linear scan from slot 0 returning
// the first RUNNABLE process found. The scheduler loop's own
// slot-ordering gives later dispatch rounds preference to low slot
// indices, exactly as spec.md §4.3 describes — RRPolicy itself carries
// no rotation state.
type RRPolicy struct{}

func (*RRPolicy) name() string { return PolicyRR }

func (*RRPolicy) Choose(t *ProcTable) *Proc {
	for i := range t.procs {
		if t.procs[i].State == StateRunnable {
			return &t.procs[i]
		}
	}
	return nil
}

// FCFSPolicy picks the RUNNABLE process with the smallest Ctime (ties
// broken by lowest slot index, matching the scan order). Non-preemptive
// in effect: the scheduler loop calls Choose every tick (cpu.go), but the
// oldest RUNNABLE process keeps winning until it sleeps or exits, since
// no timer quantum ever moves it aside.
type FCFSPolicy struct{}

func (*FCFSPolicy) name() string { return PolicyFCFS }

func (*FCFSPolicy) Choose(t *ProcTable) *Proc {
	var min *Proc
	for i := range t.procs {
		p := &t.procs[i]
		if p.State != StateRunnable {
			continue
		}
		if min == nil || p.Ctime < min.Ctime {
			min = p
		}
	}
	return min
}

// PBSPolicy picks the RUNNABLE process with the smallest Priority
// (numerically lower is more favorable), ties broken by smallest NRun,
// further ties broken by scan order. This is the Open-Questions-fixed
// comparison (`minProc.Priority`, not the bare `minProc` the original
// buggily compared against) — see DESIGN.md.
type PBSPolicy struct{}

func (*PBSPolicy) name() string { return PolicyPBS }

func (*PBSPolicy) Choose(t *ProcTable) *Proc {
	var min *Proc
	for i := range t.procs {
		p := &t.procs[i]
		if p.State != StateRunnable {
			continue
		}
		if min == nil ||
			p.Priority < min.Priority ||
			(p.Priority == min.Priority && p.NRun < min.NRun) {
			min = p
		}
	}
	return min
}

// MLFQPolicy picks the front of the lowest non-empty queue level. The
// queue set itself is owned by the ProcTable (t.mlfq), populated by
// Fork/Wakeup/the tick handler's demotion logic, never by Choose.
type MLFQPolicy struct{}

func (*MLFQPolicy) name() string { return PolicyMLFQ }

func (*MLFQPolicy) Choose(t *ProcTable) *Proc {
	if t.mlfq == nil {
		panic("kernel: MLFQ policy selected but queues not initialized")
	}
	for level := 0; level < MAXQUEUE; level++ {
		q := t.mlfq.levels[level]
		for q.size() > 0 {
			p := q.front()
			if p.State != StateRunnable {
				// Stale entry (process no longer RUNNABLE but never
				// dequeued explicitly) — drop it and keep scanning this
				// level.
				q.popFront()
				continue
			}
			return p
		}
	}
	return nil
}
