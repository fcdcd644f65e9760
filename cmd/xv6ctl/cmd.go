package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kornnellio/xv6sched/internal/kernel"
	"github.com/kornnellio/xv6sched/internal/klog"
)

// policyValue implements pflag.Value so an unrecognized --policy name
// is rejected by cobra's own flag parsing, before RunE ever runs —
// the pflag-native equivalent of arctir-proctor's newOptions/
// resolveOutputType style of flag validation.
type policyValue struct{ name string }

var _ pflag.Value = (*policyValue)(nil)

func (p *policyValue) String() string { return p.name }

func (p *policyValue) Set(v string) error {
	if _, err := kernel.NewPolicy(v); err != nil {
		return err
	}
	p.name = v
	return nil
}

func (p *policyValue) Type() string { return "policy" }

// newRootCmd builds the xv6ctl command tree, generalizing
// arctir-proctor's SetupCLI (proctor/cmd/cmd.go) from a process
// inspector to a simulated scheduler.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "xv6ctl",
		Short: "Drive the simulated xv6-style multi-policy scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		scenarioPath string
		policyFlag   = &policyValue{name: kernel.PolicyRR}
		ncpuFlag     int
		ticksFlag    int64
		debugFlag    bool
		psEvery      int64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Boot the simulated machine and run a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario := &Scenario{Policy: policyFlag.name, NCPU: ncpuFlag, Ticks: ticksFlag}
			if scenarioPath != "" {
				loaded, err := loadScenario(scenarioPath)
				if err != nil {
					return fmt.Errorf("xv6ctl: load scenario: %w", err)
				}
				scenario = loaded
				if cmd.Flags().Changed("policy") {
					scenario.Policy = policyFlag.name
				}
				if cmd.Flags().Changed("ncpu") {
					scenario.NCPU = ncpuFlag
				}
				if cmd.Flags().Changed("ticks") {
					scenario.Ticks = ticksFlag
				}
			}

			log := klog.New("sched")
			log.SetDebug(debugFlag)

			k, err := kernel.New(kernel.Config{
				NCPU:       scenario.NCPU,
				PolicyName: scenario.Policy,
				Log:        log,
			})
			if err != nil {
				return fmt.Errorf("xv6ctl: %w", err)
			}

			initProc, err := k.Boot(kernel.Burst(1<<30, 0))
			if err != nil {
				return fmt.Errorf("xv6ctl: boot: %w", err)
			}

			for _, sp := range scenario.Procs {
				wl, err := sp.workload()
				if err != nil {
					return err
				}
				child, err := k.Fork(initProc, sp.Name, wl)
				if err != nil {
					return fmt.Errorf("xv6ctl: fork %s: %w", sp.Name, err)
				}
				if sp.Priority != nil {
					if _, _, err := k.Table.SetPriority(child.Pid, *sp.Priority); err != nil {
						return err
					}
				}
			}

			onTick := func(tick int64) {
				for _, a := range scenario.Actions {
					if a.Tick != tick {
						continue
					}
					switch a.Kind {
					case "kill":
						k.Table.Kill(a.Pid)
					case "priority":
						k.Table.SetPriority(a.Pid, a.Priority)
					}
				}
				if psEvery > 0 && tick%psEvery == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "-- tick %d --\n", tick)
					kernel.WritePSTable(cmd.OutOrStdout(), k.Table.GetPS())
				}
			}

			if err := k.RunWithOpts(context.Background(), scenario.Ticks, kernel.RunOpts{OnTick: onTick}); err != nil {
				return fmt.Errorf("xv6ctl: run: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "-- final --")
			kernel.WritePSTable(cmd.OutOrStdout(), k.Table.GetPS())
			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "path to a scenario JSON file")
	cmd.Flags().Var(policyFlag, "policy", "scheduling policy: rr, fcfs, pbs, mlfq")
	cmd.Flags().IntVar(&ncpuFlag, "ncpu", kernel.NCPU, "number of simulated CPUs")
	cmd.Flags().Int64Var(&ticksFlag, "ticks", 100, "number of simulated ticks to run")
	cmd.Flags().Int64Var(&psEvery, "ps-every", 0, "print a ps table every N ticks (0 disables)")
	cmd.Flags().BoolVar(&debugFlag, "debug", false, "enable per-dispatch debug logging")

	return cmd
}
