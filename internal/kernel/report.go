package kernel

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// PSRow is one line of a getps report.
type PSRow struct {
	Pid      int
	Name     string
	State    string
	Priority int
	NRun     int
	CurQueue int
	Rtime    int64
	Iotime   int64
	Ctime    int64
	Wtime    int64
	Ticks    [MAXQUEUE]int64
}

// GetPS snapshots every non-UNUSED slot in slot order, mirroring
// original_source/proc.c's getps: wtime is etime-ctime-rtime-iotime,
// substituting now for an unset (-1) etime and clamping to zero, except
// under MLFQ where it is always now-reset_ticks (how long the process
// has sat at its current queue level without being dispatched).
func (t *ProcTable) GetPS() []PSRow {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	rows := make([]PSRow, 0, NPROC)
	for i := range t.procs {
		p := &t.procs[i]
		if p.State == StateUnused {
			continue
		}
		etime := p.Etime
		if etime < 0 {
			etime = now
		}
		wtime := etime - p.Ctime - p.Rtime - p.Iotime
		if wtime < 0 {
			wtime = 0
		}
		if t.mlfq != nil {
			wtime = now - p.ResetTicks
		}
		rows = append(rows, PSRow{
			Pid:      p.Pid,
			Name:     p.Name,
			State:    p.State.String(),
			Priority: p.Priority,
			NRun:     p.NRun,
			CurQueue: p.CurQueue,
			Rtime:    p.Rtime,
			Iotime:   p.Iotime,
			Ctime:    p.Ctime,
			Wtime:    wtime,
			Ticks:    p.Ticks,
		})
	}
	return rows
}

// WritePSTable renders rows as an aligned table to w, the same shape as
// arctir-proctor's createTableListOutput, extended with the per-level
// MLFQ ticks columns original_source/proc.c's getps prints as "q0..q4".
func WritePSTable(w io.Writer, rows []PSRow) {
	header := []string{"PID", "NAME", "STATE", "PRIORITY", "N_RUN", "QUEUE", "RTIME", "WTIME", "IOTIME", "CTIME"}
	for i := 0; i < MAXQUEUE; i++ {
		header = append(header, fmt.Sprintf("Q%d", i))
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	for _, r := range rows {
		queue := "-"
		if r.CurQueue >= 0 {
			queue = strconv.Itoa(r.CurQueue)
		}
		row := []string{
			strconv.Itoa(r.Pid),
			r.Name,
			r.State,
			strconv.Itoa(r.Priority),
			strconv.Itoa(r.NRun),
			queue,
			fmt.Sprintf("%d", r.Rtime),
			fmt.Sprintf("%d", r.Wtime),
			fmt.Sprintf("%d", r.Iotime),
			fmt.Sprintf("%d", r.Ctime),
		}
		for _, tk := range r.Ticks {
			if tk < 0 {
				row = append(row, "-")
				continue
			}
			row = append(row, strconv.FormatInt(tk, 10))
		}
		table.Append(row)
	}
	table.Render()
}
