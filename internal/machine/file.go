package machine

import "sync"

// File is a reference-counted stand-in for xv6's struct file / struct
// inode, enough to exercise fork's fd-duplication (filedup) and exit's
// cwd release (iput) without a real filesystem.
type File struct {
	mu   sync.Mutex
	refs int
	Name string
}

// NewFile returns a File with one reference held.
func NewFile(name string) *File {
	return &File{refs: 1, Name: name}
}

// Dup increments the reference count and returns f, mirroring filedup.
func Dup(f *File) *File {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refs++
	return f
}

// Idup increments the reference count on a cwd inode, mirroring idup.
func Idup(f *File) *File {
	return Dup(f)
}

// Close decrements the reference count (fileclose). Nothing further
// happens at zero, since a File holds no real resource.
func Close(f *File) {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refs--
}

// Iput decrements the reference count on a cwd inode (iput), wrapped in
// the begin_op/end_op logging bookends in the original; no log is needed
// here since there is no on-disk journal to protect.
func Iput(f *File) {
	Close(f)
}
