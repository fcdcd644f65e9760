package kernel

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/kornnellio/xv6sched/internal/klog"
	"github.com/kornnellio/xv6sched/internal/machine"
)

// Kernel wires a ProcTable, a Policy, and NCPU simulated processors into
// a runnable machine — the Go-native stand-in for xv6's boot sequence
// (mpmain launching each CPU's scheduler()), generalized from
// kornnellio-gosv's Supervisor launching one goroutine per managed OS
// process into one goroutine per simulated CPU.
type Kernel struct {
	Table *ProcTable
	cpus  []*CPU
	log   *klog.Logger

	tick int64 // atomic; advanced only by the timer loop inside Run
}

// Config collects the boot-time parameters a real xv6 build would fix at
// compile time via Makefile flags (NCPU, the policy #ifdef, NPROC).
// NPROC/MAXQUEUE/NUMQUEUE/AGE remain Go constants (const.go) for fidelity
// to the original's compile-time sizing; NCPU and Policy are the runtime
// knobs surfaced by cmd/xv6ctl's flags, and KStackLimit bounds the
// simulated kernel-stack pool.
type Config struct {
	NCPU        int
	PolicyName  string
	KStackLimit int // <=0 means unbounded
	Log         *klog.Logger
}

// New builds a Kernel from cfg. Returns an error for an unrecognized
// policy name.
func New(cfg Config) (*Kernel, error) {
	if cfg.NCPU <= 0 {
		cfg.NCPU = NCPU
	}
	log := cfg.Log
	if log == nil {
		log = klog.New("sched")
	}

	k := &Kernel{log: log}
	k.Table = NewProcTable(k.now, machine.NewKStackAllocator(cfg.KStackLimit))

	policy, err := NewPolicy(cfg.PolicyName)
	if err != nil {
		return nil, err
	}
	if policy.name() == PolicyMLFQ {
		k.Table.enableMLFQ()
	}

	k.cpus = make([]*CPU, cfg.NCPU)
	for i := range k.cpus {
		k.cpus[i] = newCPU(i, k.Table, policy, log)
	}
	return k, nil
}

func (k *Kernel) now() int64 { return atomic.LoadInt64(&k.tick) }

// Now returns the current simulated tick, safe to call from any goroutine.
func (k *Kernel) Now() int64 { return k.now() }

// Boot allocates the init process (pid 1, parent of every reparented
// orphan) and registers it as Table.initProc. Must be called once,
// before Run, with a workload that keeps init "running" (e.g. Burst with
// a very large n, or a dedicated idle workload) — exiting init is a
// fatal invariant violation per spec.md §7.
func (k *Kernel) Boot(initWorkload Workload) (*Proc, error) {
	p, err := k.Table.Allocate()
	if err != nil {
		return nil, err
	}
	k.Table.mu.Lock()
	p.AddrSpace = machine.Setup()
	p.Name = "init"
	p.Workload = initWorkload
	p.State = StateRunnable
	k.Table.initProc = p
	if k.Table.mlfq != nil {
		p.ResetTicks = k.now()
		k.Table.mlfq.levels[p.CurQueue].pushBack(p)
	}
	k.Table.mu.Unlock()
	return p, nil
}

// Fork is a convenience wrapper over Table.Fork using the kernel's own
// tick source, matching the other exported kernel primitives' shape.
func (k *Kernel) Fork(parent *Proc, name string, workload Workload) (*Proc, error) {
	return k.Table.Fork(parent, name, workload)
}

// Waitx wraps Table.Waitx; exported on Kernel so Workload closures (see
// workload.go's WaitForChild) can be handed the Kernel instead of the
// lower-level ProcTable.
func (k *Kernel) Waitx(parent *Proc) (pid int, status int, rtime int64, wtime int64, err error) {
	return k.Table.Waitx(parent)
}

// RunOpts carries optional hooks for Run. OnTick, when set, is called
// once per tick after SweepIdle but before that tick's CPUs dispatch,
// letting a caller (the CLI's scenario actions, a test) inject a
// Kill/SetPriority call at a specific simulated tick — the stand-in for
// a separate live invocation of xv6's kill/setPriority user programs
// against an already-running system.
type RunOpts struct {
	OnTick func(tick int64)
}

// Run advances the simulated machine using default options; see
// RunWithOpts for injecting a per-tick hook.
func (k *Kernel) Run(ctx context.Context, ticks int64) error {
	return k.RunWithOpts(ctx, ticks, RunOpts{})
}

// RunWithOpts advances the simulated machine exactly ticks times,
// dispatching all configured CPUs concurrently each tick via
// golang.org/x/sync/errgroup. It returns ctx's error if cancelled before
// the last tick, otherwise nil; CPU goroutines never return an error, and
// a panic raised during dispatch (an invariant violation) is not
// recovered. This is the simulated analogue of xv6's timer-interrupt-driven
// scheduler loop: the original's "run until stopped" is expressed here
// as "run for a bounded number of ticks", since there is no real
// hardware clock to run against indefinitely in a test or CLI demo.
// RunWithOpts is Run with RunOpts.OnTick support.
func (k *Kernel) RunWithOpts(ctx context.Context, ticks int64, opts RunOpts) error {
	if ticks <= 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	goCh := make([]chan int64, len(k.cpus))
	doneCh := make([]chan struct{}, len(k.cpus))
	for i, cpu := range k.cpus {
		i, cpu := i, cpu
		goCh[i] = make(chan int64)
		doneCh[i] = make(chan struct{})
		g.Go(func() error {
			for tick := range goCh[i] {
				cpu.dispatchOnce(tick)
				doneCh[i] <- struct{}{}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer func() {
			for _, ch := range goCh {
				close(ch)
			}
		}()
		for tick := int64(1); tick <= ticks; tick++ {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			k.Table.SweepIdle()
			atomic.StoreInt64(&k.tick, tick)
			if opts.OnTick != nil {
				opts.OnTick(tick)
			}
			for i := range k.cpus {
				goCh[i] <- tick
			}
			for i := range k.cpus {
				<-doneCh[i]
			}
		}
		return nil
	})

	return g.Wait()
}
