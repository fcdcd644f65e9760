package kernel

import "github.com/kornnellio/xv6sched/internal/machine"

// ProcState tracks the lifecycle of a process-table slot.
//
// UNUSED -> EMBRYO (Allocate), EMBRYO -> RUNNABLE (Fork finishes setup),
// RUNNABLE <-> RUNNING (dispatch/yield), RUNNING -> SLEEPING (Sleep),
// SLEEPING -> RUNNABLE (Wakeup or Kill), RUNNING -> ZOMBIE (Exit),
// ZOMBIE -> UNUSED (Reap).
type ProcState int

const (
	StateUnused ProcState = iota
	StateEmbryo
	StateSleeping
	StateRunnable
	StateRunning
	StateZombie
)

func (s ProcState) String() string {
	switch s {
	case StateUnused:
		return "UNUSED"
	case StateEmbryo:
		return "EMBRYO"
	case StateSleeping:
		return "SLEEPING"
	case StateRunnable:
		return "RUNNABLE"
	case StateRunning:
		return "RUNNING"
	case StateZombie:
		return "ZOMBIE"
	default:
		return "???"
	}
}

// Proc is one process-table slot. Every field is protected by the owning
// ProcTable's single lock except where noted; every exported kernel
// primitive in this package documents whether it expects the caller to
// already hold that lock.
type Proc struct {
	Pid    int
	State  ProcState
	Parent *Proc
	Chan   any // wakeup channel identity; non-nil iff State == StateSleeping
	Killed bool

	Ctime      int64 // tick of creation
	Etime      int64 // tick of exit, or -1 while alive
	Rtime      int64 // accumulated ticks RUNNING
	Iotime     int64 // accumulated ticks SLEEPING
	exitStatus int   // set by Exit, read by Wait/Waitx before reaping

	Priority int // [0,100], lower is more favorable
	NRun     int // times dispatched

	// MLFQ bookkeeping. CurQueue is -1 outside MLFQ.
	ResetTicks int64
	CurQueue   int
	Ticks      [MAXQUEUE]int64

	Name string

	// Workload is the simulated user-mode program this process runs. It
	// is invoked once per tick while the process is RUNNING; see
	// workload.go. nil for a process that has not yet been given one
	// (an EMBRYO between Allocate and Fork finishing setup).
	Workload Workload

	// Collaborators owned by this slot, opaque to the scheduler core.
	AddrSpace *machine.AddrSpace
	KStack    machine.KStack
	Files     [NOFILE]*machine.File
	Cwd       *machine.File
}

// resetForAllocate clears accounting and identity fields the way xv6's
// allocproc does.
func (p *Proc) resetForAllocate(pid int, now int64, mlfq bool) {
	p.Pid = pid
	p.State = StateEmbryo
	p.Parent = nil
	p.Chan = nil
	p.Killed = false
	p.Ctime = now
	p.Etime = -1
	p.Rtime = 0
	p.Iotime = 0
	p.exitStatus = 0
	p.Priority = DefaultPriority
	p.NRun = 0
	p.ResetTicks = 0
	p.Name = ""
	p.Workload = nil
	if mlfq {
		p.CurQueue = 0
		for i := range p.Ticks {
			p.Ticks[i] = 0
		}
	} else {
		p.CurQueue = -1
		for i := range p.Ticks {
			p.Ticks[i] = -1
		}
	}
}
