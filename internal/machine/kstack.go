package machine

import "fmt"

// KStack is a handle to a simulated kernel stack, standing in for the
// char* returned by kalloc() in xv6. A nil KStack means "unallocated".
type KStack struct {
	id int
}

// Valid reports whether the stack handle refers to an allocated stack.
func (k KStack) Valid() bool { return k.id != 0 }

// KStackAllocator is a small fixed pool modelling the kernel's page
// allocator for kernel stacks, so spec.md's "kernel-stack alloc fails"
// edge case (§7) is reachable under test without exhausting NPROC slots
// first.
type KStackAllocator struct {
	capacity int
	inUse    int
	next     int
}

// NewKStackAllocator returns an allocator with room for capacity stacks.
// capacity <= 0 means unbounded, matching a real kernel with ample RAM.
func NewKStackAllocator(capacity int) *KStackAllocator {
	return &KStackAllocator{capacity: capacity}
}

// Alloc returns a fresh stack handle, or an error if the pool is
// exhausted (kalloc() returning 0).
func (a *KStackAllocator) Alloc() (KStack, error) {
	if a.capacity > 0 && a.inUse >= a.capacity {
		return KStack{}, fmt.Errorf("machine: out of kernel stacks")
	}
	a.next++
	a.inUse++
	return KStack{id: a.next}, nil
}

// Free returns a stack to the pool (kfree).
func (a *KStackAllocator) Free(k KStack) {
	if !k.Valid() {
		return
	}
	a.inUse--
}
