//go:build linux

package admin

import (
	"os"

	"github.com/mqtools/mqctl/internal/mqueue"
)

// Kernel is the real queue subsystem.
type Kernel struct{}

func (Kernel) Open(name string, flags int) (Handle, error) {
	q, err := mqueue.Open(name, flags)
	if err != nil {
		return nil, err
	}
	return kernelHandle{q}, nil
}

func (Kernel) Create(name string, flags int, mode uint32, attr mqueue.Attr) (Handle, error) {
	q, err := mqueue.Create(name, flags, mode, attr)
	if err != nil {
		return nil, err
	}
	return kernelHandle{q}, nil
}

func (Kernel) Unlink(name string) error {
	return mqueue.Unlink(name)
}

type kernelHandle struct {
	q *mqueue.MQ
}

func (h kernelHandle) Close() error { return h.q.Close() }

func (h kernelHandle) Attributes() (mqueue.Attr, error) { return h.q.Attributes() }

func (h kernelHandle) Send(p []byte, prio uint) error { return h.q.Send(p, prio) }

func (h kernelHandle) Receive(b []byte) (int, uint, error) { return h.q.Receive(b) }

func (h kernelHandle) Chown(uid, gid uint32) error { return h.q.Chown(uid, gid) }

func (h kernelHandle) Chmod(mode uint32) error { return h.q.Chmod(mode) }

func (h kernelHandle) Stat() (Ownership, error) {
	st, err := h.q.Stat()
	if err != nil {
		return Ownership{}, err
	}
	return Ownership{UID: st.Uid, GID: st.Gid, Mode: uint32(st.Mode) & 0o7777}, nil
}

// New returns an Admin wired to the kernel and the process streams.
func New() *Admin {
	return &Admin{Queues: Kernel{}, Out: os.Stdout, Err: os.Stderr}
}
