package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kornnellio/xv6sched/internal/kernel"
)

// Scenario is the config-file format for `xv6ctl run --scenario`,
// generalized from the teacher's Config/ServiceConfig (main.go's
// loadConfig) from "OS processes to exec" to "simulated workloads to
// fork at boot".
type Scenario struct {
	Policy  string           `json:"policy"`
	NCPU    int              `json:"ncpu"`
	Ticks   int64            `json:"ticks"`
	Procs   []ScenarioProc   `json:"procs"`
	Actions []ScenarioAction `json:"actions"`
}

// ScenarioAction schedules a kill or set-priority call to fire once the
// machine reaches Tick, modelling original_source/ps.c and
// setPriority.c being invoked against a live system at an arbitrary
// point in its run.
type ScenarioAction struct {
	Tick     int64  `json:"tick"`
	Kind     string `json:"kind"` // "kill" or "priority"
	Pid      int    `json:"pid"`
	Priority int    `json:"priority"` // meaningful iff Kind == "priority"
}

// ScenarioProc describes one process to fork from init at boot.
type ScenarioProc struct {
	Name string `json:"name"`
	// Priority is a pointer so an absent field (PBS not in use, or "use
	// the default") is distinguishable from an explicit priority of 0
	// (PBS's most-favorable value).
	Priority *int `json:"priority"`

	// Shape selects the Workload constructor (workload.go): "burst" runs
	// CPUTicks ticks then exits; "io" alternates CPUTicks running and
	// SleepTicks sleeping for Cycles cycles (kernel.SleepAfter, sleeping
	// on a channel named after the process). The run command issues no
	// Wakeup on that channel, so an "io" process stays SLEEPING after its
	// first burst unless a "kill" action wakes it.
	Shape      string `json:"shape"`
	CPUTicks   int    `json:"cpu_ticks"`
	SleepTicks int    `json:"sleep_ticks"`
	Cycles     int    `json:"cycles"`
}

func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Policy == "" {
		s.Policy = kernel.PolicyRR
	}
	if s.NCPU <= 0 {
		s.NCPU = kernel.NCPU
	}
	if s.Ticks <= 0 {
		s.Ticks = 100
	}
	return &s, nil
}

func (sp ScenarioProc) workload() (kernel.Workload, error) {
	switch sp.Shape {
	case "", "burst":
		n := sp.CPUTicks
		if n <= 0 {
			n = 10
		}
		return kernel.Burst(n, 0), nil
	case "io":
		return kernel.SleepAfter(sp.CPUTicks, sp.SleepTicks, sp.Cycles, sp.Name), nil
	default:
		return nil, fmt.Errorf("xv6ctl: unknown workload shape %q", sp.Shape)
	}
}
