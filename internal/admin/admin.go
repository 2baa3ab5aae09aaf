// Package admin implements the verb dispatchers. Each verb opens a
// queue, performs one administrative action, and closes the handle;
// batch verbs run every item in command-line order and report the last
// non-zero system error as the process status. The kernel sits behind
// the Queues interface so the reconciliation and aggregation policies
// are testable without real message queues.
package admin

import (
	"io"

	"golang.org/x/sys/unix"

	"github.com/mqtools/mqctl/internal/exitcode"
	"github.com/mqtools/mqctl/internal/mqueue"
)

// Ownership is the slice of stat relevant to queue administration.
type Ownership struct {
	UID  uint32
	GID  uint32
	Mode uint32 // permission bits only
}

// Handle is one open queue descriptor.
type Handle interface {
	Close() error
	Attributes() (mqueue.Attr, error)
	Send(payload []byte, prio uint) error
	Receive(buf []byte) (int, uint, error)
	Stat() (Ownership, error)
	Chown(uid, gid uint32) error
	Chmod(mode uint32) error
}

// Queues is the queue subsystem: the kernel in production, a fake in
// tests.
type Queues interface {
	Open(name string, flags int) (Handle, error)
	Create(name string, flags int, mode uint32, attr mqueue.Attr) (Handle, error)
	Unlink(name string) error
}

// Admin runs verbs against a queue subsystem, writing data to Out and
// diagnostics to Err.
type Admin struct {
	Queues Queues
	Out    io.Writer
	Err    io.Writer
}

// Flag aliases so the fake in tests does not need x/sys.
const (
	ReadOnly  = unix.O_RDONLY
	WriteOnly = unix.O_WRONLY
	ReadWrite = unix.O_RDWR
	NonBlock  = unix.O_NONBLOCK
)

// worst tracks the batch exit status: zero until a failure, then the
// most recent failure's status.
type worst struct {
	status int
}

func (w *worst) observe(err error) {
	if err != nil {
		w.status = exitcode.Status(err)
	}
}
