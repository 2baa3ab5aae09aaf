//go:build linux

// Package mqueue wraps the kernel's POSIX message queue syscalls. The
// x/sys/unix package carries the syscall numbers but no high-level
// bindings, so the calls are made directly. On Linux a queue descriptor
// is an ordinary file descriptor, which is what lets Stat, Chown, and
// Chmod below work without any extra conversion step.
package mqueue

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

type rawAttr struct {
	Flags   int64
	MaxMsg  int64
	MsgSize int64
	CurMsgs int64
	_       [4]int64
}

// MQ is an open queue descriptor.
type MQ struct {
	fd   int
	name string
}

// Open opens an existing queue. flags is a combination of unix.O_RDONLY,
// unix.O_WRONLY, unix.O_RDWR, and unix.O_NONBLOCK.
func Open(name string, flags int) (*MQ, error) {
	return open(name, flags, 0, nil)
}

// Create opens a queue, creating it with the given permission bits and
// attributes if it does not exist.
func Create(name string, flags int, mode uint32, attr Attr) (*MQ, error) {
	raw := rawAttr{
		Flags:   attr.Flags,
		MaxMsg:  attr.MaxMsg,
		MsgSize: attr.MsgSize,
	}
	return open(name, flags|unix.O_CREAT, mode, &raw)
}

func open(name string, flags int, mode uint32, attr *rawAttr) (*MQ, error) {
	namep, err := unix.BytePtrFromString(queuePath(name))
	if err != nil {
		return nil, fmt.Errorf("mq_open %s: %w", name, err)
	}
	fd, _, errno := unix.Syscall6(unix.SYS_MQ_OPEN,
		uintptr(unsafe.Pointer(namep)),
		uintptr(flags),
		uintptr(mode),
		uintptr(unsafe.Pointer(attr)),
		0, 0)
	if errno != 0 {
		return nil, fmt.Errorf("mq_open %s: %w", name, errno)
	}
	return &MQ{fd: int(fd), name: name}, nil
}

// Unlink removes the named queue. Messages still held by the queue are
// destroyed once every open descriptor is closed.
func Unlink(name string) error {
	namep, err := unix.BytePtrFromString(queuePath(name))
	if err != nil {
		return fmt.Errorf("mq_unlink %s: %w", name, err)
	}
	_, _, errno := unix.Syscall(unix.SYS_MQ_UNLINK,
		uintptr(unsafe.Pointer(namep)), 0, 0)
	if errno != 0 {
		return fmt.Errorf("mq_unlink %s: %w", name, errno)
	}
	return nil
}

// Close releases the descriptor. The queue itself persists in the kernel.
func (q *MQ) Close() error {
	if err := unix.Close(q.fd); err != nil {
		return fmt.Errorf("mq_close %s: %w", q.name, err)
	}
	return nil
}

// Attributes fetches the queue's current attributes.
func (q *MQ) Attributes() (Attr, error) {
	var raw rawAttr
	_, _, errno := unix.Syscall6(unix.SYS_MQ_GETSETATTR,
		uintptr(q.fd),
		0,
		uintptr(unsafe.Pointer(&raw)),
		0, 0, 0)
	if errno != 0 {
		return Attr{}, fmt.Errorf("mq_getattr %s: %w", q.name, errno)
	}
	return Attr{
		Flags:   raw.Flags,
		MaxMsg:  raw.MaxMsg,
		MsgSize: raw.MsgSize,
		CurMsgs: raw.CurMsgs,
	}, nil
}

// Send enqueues one message at the given priority. Blocking behavior
// follows the descriptor's O_NONBLOCK flag.
func (q *MQ) Send(payload []byte, prio uint) error {
	var p unsafe.Pointer
	if len(payload) > 0 {
		p = unsafe.Pointer(&payload[0])
	}
	_, _, errno := unix.Syscall6(unix.SYS_MQ_TIMEDSEND,
		uintptr(q.fd),
		uintptr(p),
		uintptr(len(payload)),
		uintptr(prio),
		0, // no timeout: block per descriptor flags
		0)
	if errno != 0 {
		return fmt.Errorf("mq_send %s: %w", q.name, errno)
	}
	return nil
}

// Receive dequeues the oldest highest-priority message into buf and
// returns its length and priority. buf must be at least the queue's
// message size or the kernel rejects the call with EMSGSIZE.
func (q *MQ) Receive(buf []byte) (int, uint, error) {
	var prio uint32
	var p unsafe.Pointer
	if len(buf) > 0 {
		p = unsafe.Pointer(&buf[0])
	}
	n, _, errno := unix.Syscall6(unix.SYS_MQ_TIMEDRECEIVE,
		uintptr(q.fd),
		uintptr(p),
		uintptr(len(buf)),
		uintptr(unsafe.Pointer(&prio)),
		0, // no timeout: block per descriptor flags
		0)
	if errno != 0 {
		return 0, 0, fmt.Errorf("mq_receive %s: %w", q.name, errno)
	}
	return int(n), uint(prio), nil
}

// Stat reports ownership and permission bits through the descriptor.
func (q *MQ) Stat() (unix.Stat_t, error) {
	var st unix.Stat_t
	if err := unix.Fstat(q.fd, &st); err != nil {
		return unix.Stat_t{}, fmt.Errorf("fstat %s: %w", q.name, err)
	}
	return st, nil
}

// Chown changes the queue's owner and group through the descriptor.
func (q *MQ) Chown(uid, gid uint32) error {
	if err := unix.Fchown(q.fd, int(uid), int(gid)); err != nil {
		return fmt.Errorf("fchown %s: %w", q.name, err)
	}
	return nil
}

// Chmod changes the queue's permission bits through the descriptor.
func (q *MQ) Chmod(mode uint32) error {
	if err := unix.Fchmod(q.fd, mode); err != nil {
		return fmt.Errorf("fchmod %s: %w", q.name, err)
	}
	return nil
}

// queuePath strips the mandatory leading slash: the syscall ABI takes
// the bare name and the glibc wrapper is the layer that requires the
// slash form, which this tool presents to users.
func queuePath(name string) string {
	if len(name) > 0 && name[0] == '/' {
		return name[1:]
	}
	return name
}
