package kernel

// CheckKilled reports whether p has been marked for death, the
// simulated analogue of xv6's trap-return check
// (`if(myproc()->killed) exit()`). Workloads that want to honor Kill
// promptly should call this at the start of their Tick and return
// ActionExit(-1) if it reports true; nothing in the core forces a
// workload to check it, matching xv6's own cooperative model — a killed
// process in a tight uninterruptible loop keeps running until it next
// traps.
func (t *ProcTable) CheckKilled(p *Proc) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return p.Killed
}
