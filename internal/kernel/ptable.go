package kernel

import (
	"fmt"
	"sync"

	"github.com/kornnellio/xv6sched/internal/machine"
)

// ProcTable is the fixed-size, single-coarse-lock process table described
// by spec.md §3. It is the Go-idiomatic generalization of
// kornnellio-gosv's Supervisor{processes map[string]*Process; mu
// sync.RWMutex}: the map becomes a fixed [NPROC]Proc array (xv6's
// `struct proc proc[NPROC]`) and the RWMutex becomes a single Mutex,
// since every scheduling decision needs exclusive access — there is no
// read-only path that benefits from RLock under this policy set.
type ProcTable struct {
	mu    sync.Mutex
	procs [NPROC]Proc

	nextPid  int
	initProc *Proc

	kstacks *machine.KStackAllocator
	nowFn   func() int64

	mlfq *mlfqQueues // non-nil only when the MLFQ policy is selected
}

// NewProcTable constructs an empty table. nowFn supplies the current tick;
// kstacks bounds the simulated kernel-stack pool (pass nil for an
// unbounded pool).
func NewProcTable(nowFn func() int64, kstacks *machine.KStackAllocator) *ProcTable {
	t := &ProcTable{
		nextPid: 1,
		nowFn:   nowFn,
		kstacks: kstacks,
	}
	for i := range t.procs {
		t.procs[i].State = StateUnused
		t.procs[i].CurQueue = -1
	}
	return t
}

// enableMLFQ wires the queue set into the table. Called once at boot when
// PolicyMLFQ is selected.
func (t *ProcTable) enableMLFQ() {
	t.mlfq = newMLFQQueues()
}

// Lock and Unlock expose the table's single coarse lock to callers outside
// this package that need to bracket several primitive calls atomically.
// Code inside this package should prefer t.mu directly.
func (t *ProcTable) Lock()   { t.mu.Lock() }
func (t *ProcTable) Unlock() { t.mu.Unlock() }

func (t *ProcTable) now() int64 { return t.nowFn() }

// allocateLocked scans for an UNUSED slot, as xv6's allocproc. Caller must
// hold t.mu.
func (t *ProcTable) allocateLocked() (*Proc, error) {
	for i := range t.procs {
		if t.procs[i].State == StateUnused {
			p := &t.procs[i]
			pid := t.nextPid
			t.nextPid++
			p.resetForAllocate(pid, t.now(), t.mlfq != nil)
			return p, nil
		}
	}
	return nil, fmt.Errorf("kernel: process table full")
}

// Allocate reserves a slot, transitions it to EMBRYO, and asks the
// kernel-stack allocator for a stack. On stack-allocation failure the
// slot reverts to UNUSED, per spec.md §4.1/§7.
func (t *ProcTable) Allocate() (*Proc, error) {
	t.mu.Lock()
	p, err := t.allocateLocked()
	t.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if t.kstacks != nil {
		ks, err := t.kstacks.Alloc()
		if err != nil {
			t.mu.Lock()
			p.State = StateUnused
			t.mu.Unlock()
			return nil, fmt.Errorf("kernel: allocate: %w", err)
		}
		p.KStack = ks
	}
	return p, nil
}

// reapLocked frees p's kernel stack and address space and returns the
// slot to UNUSED. Preconditions: t.mu held, p.State == StateZombie.
func (t *ProcTable) reapLocked(p *Proc) {
	if p.State != StateZombie {
		panic("kernel: reap of non-zombie process")
	}
	if t.kstacks != nil {
		t.kstacks.Free(p.KStack)
	}
	p.KStack = machine.KStack{}
	machine.Free(p.AddrSpace)
	p.AddrSpace = nil
	for i := range p.Files {
		machine.Close(p.Files[i])
		p.Files[i] = nil
	}
	machine.Iput(p.Cwd)
	p.Cwd = nil

	p.Pid = 0
	p.Parent = nil
	p.Name = ""
	p.Killed = false
	p.State = StateUnused
	p.CurQueue = -1
}

// forEach calls fn for every slot in slot order. Caller must hold t.mu.
func (t *ProcTable) forEach(fn func(*Proc)) {
	for i := range t.procs {
		fn(&t.procs[i])
	}
}
