package kernel

// WorkloadAction tells the dispatch loop what a process wants to do after
// running for one tick.
type WorkloadAction int

const (
	// ActionContinue leaves the process RUNNABLE for the next dispatch.
	ActionContinue WorkloadAction = iota
	// ActionSleep transitions the process to SLEEPING on Chan.
	ActionSleep
	// ActionExit transitions the process to ZOMBIE with ExitStatus.
	ActionExit
)

// WorkloadResult is what a Workload returns from Tick.
type WorkloadResult struct {
	Action     WorkloadAction
	Chan       any // wakeup channel identity, meaningful iff Action == ActionSleep
	ExitStatus int // meaningful iff Action == ActionExit
}

// WorkloadContext carries the per-tick facts a simulated user-mode program
// may need without letting it reach into the process table directly —
// xv6 code never touches another process's memory, so a workload should
// not be able to either.
type WorkloadContext struct {
	Tick int64
	Pid  int
}

// Workload is a simulated user-mode program. Tick is called synchronously,
// once per dispatch, by the CPU goroutine that won the scheduling decision
// for this tick — see cpu.go. This stands in for the context-switch into
// user mode and back described by spec.md §6: the workload "runs" for
// exactly one tick's worth of virtual work and then returns control.
type Workload interface {
	Tick(ctx WorkloadContext) WorkloadResult
}

// WorkloadFunc adapts a plain function to the Workload interface, mirroring
// the http.HandlerFunc idiom the pack's service-shaped repos use for
// single-method interfaces.
type WorkloadFunc func(ctx WorkloadContext) WorkloadResult

func (f WorkloadFunc) Tick(ctx WorkloadContext) WorkloadResult { return f(ctx) }

// Burst returns a workload that runs for exactly n ticks and then exits
// with status. Useful for CPU-bound scenarios (spec.md §8's RR fairness
// test) and as a building block for composite workloads below.
func Burst(n int, status int) Workload {
	ran := 0
	return WorkloadFunc(func(ctx WorkloadContext) WorkloadResult {
		ran++
		if ran >= n {
			return WorkloadResult{Action: ActionExit, ExitStatus: status}
		}
		return WorkloadResult{Action: ActionContinue}
	})
}

// SleepAfter returns a workload that runs cpuTicks ticks, then returns
// ActionSleep on ch sleepTicks times in a row (going back to sleep each
// time it is dispatched until that count is reached), repeated cycles
// times, exiting with status 0 after the last cycle. It only runs again
// after a sleep when something calls Wakeup(ch) or Kill on it; nothing in
// the kernel wakes ch on its own. Models the classic "CPU burst, I/O
// wait, repeat" process shape used by spec.md §8's iotime/rtime
// accounting scenarios.
func SleepAfter(cpuTicks, sleepTicks, cycles int, ch any) Workload {
	cycle := 0
	ranInCycle := 0
	asleep := false
	sleptTicks := 0
	return WorkloadFunc(func(ctx WorkloadContext) WorkloadResult {
		if asleep {
			sleptTicks++
			if sleptTicks >= sleepTicks {
				asleep = false
				sleptTicks = 0
			} else {
				return WorkloadResult{Action: ActionSleep, Chan: ch}
			}
		}
		ranInCycle++
		if ranInCycle >= cpuTicks {
			ranInCycle = 0
			cycle++
			if cycle >= cycles {
				return WorkloadResult{Action: ActionExit, ExitStatus: 0}
			}
			asleep = true
			return WorkloadResult{Action: ActionSleep, Chan: ch}
		}
		return WorkloadResult{Action: ActionContinue}
	})
}

// WaitForChild returns a workload that calls Waitx once per tick until a
// child reaps, then exits 0. Used to exercise Wait/Waitx's blocking-loop
// semantics (decomposed into a non-blocking check invoked once per tick)
// under a scenario-driven process tree.
func WaitForChild(k *Kernel, self *Proc) Workload {
	return WorkloadFunc(func(ctx WorkloadContext) WorkloadResult {
		_, _, _, _, err := k.Waitx(self)
		if err == nil {
			return WorkloadResult{Action: ActionExit, ExitStatus: 0}
		}
		return WorkloadResult{Action: ActionSleep, Chan: self}
	})
}
