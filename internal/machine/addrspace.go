// Package machine provides fake implementations of the external
// collaborators spec.md §6 lists as out of scope for the scheduler core:
// address-space management, kernel-stack allocation, and the file/inode
// layer. The context-switch stand-in (Workload.Tick) lives in
// internal/kernel instead. None of this models real paging or
// a real filesystem; it exists only so the core in internal/kernel can be
// driven end-to-end under `go test` and under the CLI demo.
package machine

import "fmt"

// AddrSpace is an opaque address-space handle, standing in for xv6's
// pde_t* pgdir. Only its size is tracked.
type AddrSpace struct {
	size int
}

// Setup creates a fresh, empty address space (xv6's setupkvm + inituvm for
// the first process).
func Setup() *AddrSpace {
	return &AddrSpace{}
}

// Copy duplicates src, failing if maxSize is exceeded, modelling
// copyuvm's allocation failure path.
func Copy(src *AddrSpace, maxSize int) (*AddrSpace, error) {
	if src == nil {
		return nil, fmt.Errorf("machine: copy of nil address space")
	}
	if src.size > maxSize {
		return nil, fmt.Errorf("machine: address space too large to copy")
	}
	return &AddrSpace{size: src.size}, nil
}

// Install switches the simulated MMU to p's address space (switchuvm).
// It is a no-op bookkeeping call in this model.
func Install(a *AddrSpace) {
	_ = a
}

// InstallKernel switches back to the kernel's own address space
// (switchkvm), run after a process yields control back to the scheduler.
func InstallKernel() {}

// Free releases a's resources (freevm). No-op here since AddrSpace holds
// no real memory.
func Free(a *AddrSpace) {
	_ = a
}
