// Package kernel implements the process table, scheduler loop, sleep/wakeup
// primitives and scheduling policies of a teaching Unix-like kernel,
// modelled on xv6's proc.c.
package kernel

// Compile-time-ish tunables. In xv6 these live in param.h; here they stay
// plain Go constants with the same names and defaults, matching the
// original's compile-time sizing rather than becoming a runtime Config
// field — see DESIGN.md's "Other design decisions" section.
const (
	// NPROC is the number of process-table slots.
	NPROC = 64
	// NCPU is the default number of simulated CPUs.
	NCPU = 2
	// NOFILE is the number of open files per process.
	NOFILE = 16
	// MAXQUEUE is the number of MLFQ priority levels.
	MAXQUEUE = 5
	// NUMQUEUE is the per-level MLFQ queue capacity.
	NUMQUEUE = NPROC
	// AGE is the number of ticks a queued process may go undispatched
	// before it is promoted one level.
	AGE = 30
	// DefaultPriority is the priority assigned to a freshly allocated
	// process.
	DefaultPriority = 60
)

// Policy names, used by the CLI and by Config to select one compiled-in
// scheduling discipline.
const (
	PolicyRR    = "rr"
	PolicyFCFS  = "fcfs"
	PolicyPBS   = "pbs"
	PolicyMLFQ  = "mlfq"
	defaultName = PolicyRR
)
